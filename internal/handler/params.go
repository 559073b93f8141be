package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hissain/fastrep/internal/model"
)

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(c echo.Context, name string) (*time.Time, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func isValidMode(mode string) bool {
	return mode == model.ModeWeekly || mode == model.ModeBiweekly || mode == model.ModeMonthly
}
