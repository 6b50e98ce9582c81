package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wareki/internal/eraconfig"
	"github.com/mesh-intelligence/wareki/internal/server"
	"github.com/mesh-intelligence/wareki/pkg/types"
)

func newErasCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eras",
		Short: "List and extend the eras",
	}
	cmd.AddCommand(newErasListCmd(a), newErasAddCmd(a), newErasImportCmd(a))
	return cmd
}

func newErasListCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the eras in effect",
		Long: "List the eras in effect. With --yaml the list is written as an era\n" +
			"config file that eras import and --eras-file accept.",
		Args: args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, argv []string) error {
			if asYAML && a.flags.jsonMode {
				return usageError{errors.New("--yaml and --json cannot be combined")}
			}
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			if asYAML {
				data, err := eraconfig.Marshal(cal.Eras())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			views := make([]server.EraView, 0, len(cal.Eras()))
			for _, era := range cal.Eras() {
				v, err := eraView(cal, era)
				if err != nil {
					return err
				}
				views = append(views, v)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), views)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VALUE\tABBR\tNAME\tLOCAL\tSINCE\tUNTIL")
			for _, v := range views {
				until := v.Until
				if until == "" {
					until = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", v.Value, v.Abbr, v.Name, v.LongName, v.Since, until)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "write the eras as an era config file")
	return cmd
}

func newErasAddCmd(a *app) *cobra.Command {
	var value int
	cmd := &cobra.Command{
		Use:   "add <name> <abbr> <since>",
		Short: "Append an era to the catalog",
		Long: "Append an era to the catalog. The era starts on <since> (YYYY-MM-DD) and\n" +
			"takes the next value unless --value is given.",
		Example: "  wareki eras add Reiwa R 2019-05-01",
		Args:    args(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			since, err := types.ParseDate(argv[2])
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if cfg.ErasFile != "" {
				slog.Warn("an era config file is in use; conversions ignore the catalog",
					slog.String("eras_file", cfg.ErasFile))
			}

			catalog, err := attachCatalog(cfg)
			if err != nil {
				return err
			}
			defer catalog.Detach()

			if value == 0 {
				current, err := catalog.Eras()
				if err != nil {
					return err
				}
				value = current[len(current)-1].Value + 1
			}
			era := types.Era{Value: value, Name: argv[0], Abbr: argv[1], Since: since}
			id, err := catalog.Append(era)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"era_id": id, "era": era})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added era %d %s (%s) from %s\n", era.Value, era.Name, era.Abbr, era.Since)
			return nil
		},
	}
	cmd.Flags().IntVar(&value, "value", 0, "era value (default: next after the current era)")
	return cmd
}

func newErasImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Append the eras of an era config file to the catalog",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			records, err := eraconfig.Load(argv[0])
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			catalog, err := attachCatalog(cfg)
			if err != nil {
				return err
			}
			defer catalog.Detach()

			n, err := catalog.Import(records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d eras\n", n)
			return nil
		},
	}
}
