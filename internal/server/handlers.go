package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mesh-intelligence/wareki/pkg/types"
	"github.com/mesh-intelligence/wareki/pkg/wareki"
)

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listEras(c echo.Context) error {
	lang := langParam(c)
	all := s.cal.Eras()
	out := make([]EraView, 0, len(all))
	for _, era := range all {
		v, err := NewEraView(s.cal, era, lang)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getEra(c echo.Context) error {
	era, err := s.cal.LookupEra(c.Param("era"))
	if err != nil {
		return err
	}
	v, err := NewEraView(s.cal, era, langParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) dateOfISO(c echo.Context) error {
	iso, err := types.ParseDate(c.Param("iso"))
	if err != nil {
		return err
	}
	d, err := s.cal.DateOf(iso)
	if err != nil {
		return err
	}
	return s.writeDate(c, d)
}

func (s *Server) dateOfEra(c echo.Context) error {
	era, err := s.cal.LookupEra(c.Param("era"))
	if err != nil {
		return err
	}
	nums, err := intParams(c, "year", "month", "day")
	if err != nil {
		return err
	}
	d, err := s.cal.Date(era, nums[0], time.Month(nums[1]), nums[2])
	if err != nil {
		return err
	}
	return s.writeDate(c, d)
}

func (s *Server) dateOfEraYearDay(c echo.Context) error {
	era, err := s.cal.LookupEra(c.Param("era"))
	if err != nil {
		return err
	}
	nums, err := intParams(c, "year", "yday")
	if err != nil {
		return err
	}
	d, err := s.cal.DateYearDay(era, nums[0], nums[1])
	if err != nil {
		return err
	}
	return s.writeDate(c, d)
}

func (s *Server) parse(c echo.Context) error {
	d, err := s.cal.Parse(c.Param("display"))
	if err != nil {
		return err
	}
	return s.writeDate(c, d)
}

func (s *Server) writeDate(c echo.Context, d wareki.Date) error {
	v, err := NewDateView(s.cal, d, langParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// langParam returns the lang query parameter, or nil when absent.
func langParam(c echo.Context) *string {
	if !c.QueryParams().Has("lang") {
		return nil
	}
	lang := c.QueryParam("lang")
	return &lang
}

func intParams(c echo.Context, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		n, err := strconv.Atoi(c.Param(name))
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
		}
		out[i] = n
	}
	return out, nil
}
