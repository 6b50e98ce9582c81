package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wareki/internal/server"
	"github.com/mesh-intelligence/wareki/pkg/types"
	"github.com/mesh-intelligence/wareki/pkg/wareki"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <yyyy-mm-dd>",
		Short: "Convert a Gregorian date to an era date",
		Example: `  wareki convert 1989-01-08
  wareki convert 2019-05-01 --locale en --json`,
		Args: args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			iso, err := types.ParseDate(argv[0])
			if err != nil {
				return err
			}
			d, err := cal.DateOf(iso)
			if err != nil {
				return err
			}
			return a.printDate(cmd, cal, d)
		},
	}
}

func newTodayCmd(a *app) *cobra.Command {
	var tz string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's era date",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, argv []string) error {
			loc := time.Local
			if tz != "" {
				l, err := time.LoadLocation(tz)
				if err != nil {
					return usageError{fmt.Errorf("time zone %q: %w", tz, err)}
				}
				loc = l
			}
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			d, err := cal.Now(loc)
			if err != nil {
				return err
			}
			return a.printDate(cmd, cal, d)
		},
	}
	cmd.Flags().StringVar(&tz, "tz", "", "IANA time zone, e.g. Asia/Tokyo (default: local)")
	return cmd
}

func newToISOCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "to-iso <era> <year> <month> <day>",
		Short: "Convert an era date to a Gregorian date",
		Long: "Convert an era date to a Gregorian date. The era is a value (4),\n" +
			"an abbreviation (H) or a name (Heisei).",
		Example: "  wareki to-iso Showa 64 1 7",
		Args:    args(cobra.ExactArgs(4)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			nums, err := atoiArgs(argv[1:], "year", "month", "day")
			if err != nil {
				return err
			}
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			era, err := cal.LookupEra(argv[0])
			if err != nil {
				return err
			}
			d, err := cal.Date(era, nums[0], time.Month(nums[1]), nums[2])
			if err != nil {
				return err
			}
			return a.printISO(cmd, cal, d)
		},
	}
}

func newToISOYearDayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "to-iso-yday <era> <year> <day-of-year>",
		Short:   "Convert an era year and day of year to a Gregorian date",
		Example: "  wareki to-iso-yday R 1 121",
		Args:    args(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			nums, err := atoiArgs(argv[1:], "year", "day-of-year")
			if err != nil {
				return err
			}
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			era, err := cal.LookupEra(argv[0])
			if err != nil {
				return err
			}
			d, err := cal.DateYearDay(era, nums[0], nums[1])
			if err != nil {
				return err
			}
			return a.printISO(cmd, cal, d)
		},
	}
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "parse <display>",
		Short:   "Parse an era date display string such as H01.01.08",
		Example: "  wareki parse S64.01.07",
		Args:    args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			d, err := cal.Parse(argv[0])
			if err != nil {
				return err
			}
			return a.printISO(cmd, cal, d)
		},
	}
}

// printDate writes the display form and the localized rendering of d.
func (a *app) printDate(cmd *cobra.Command, cal *wareki.Calendar, d wareki.Date) error {
	v, err := dateView(cal, d)
	if err != nil {
		return err
	}
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	if v.Localized == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), v.Display)
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v.Display, v.Localized)
	return err
}

// printISO writes the Gregorian form of d.
func (a *app) printISO(cmd *cobra.Command, cal *wareki.Calendar, d wareki.Date) error {
	if a.flags.jsonMode {
		v, err := server.NewDateView(cal, d, nil)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), d.ISO())
	return err
}

func atoiArgs(argv []string, names ...string) ([]int, error) {
	out := make([]int, len(argv))
	for i, s := range argv {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, usageError{fmt.Errorf("%s must be an integer, got %q", names[i], s)}
		}
		out[i] = n
	}
	return out, nil
}
