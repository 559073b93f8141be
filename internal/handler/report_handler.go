package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hissain/fastrep/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/reports/:mode", h.Generate)
}

type reportResponse struct {
	Mode  string `json:"mode,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Text  string `json:"text"`
	HTML  string `json:"html"`
}

// Generate assembles a report for a named mode or an explicit range.
// @Summary Generate report
// @Description Generate text and HTML renderings for a rolling window mode. Explicit start/end query parameters bypass the mode.
// @Tags reports
// @Produce json
// @Param mode path string true "weekly, biweekly or monthly"
// @Param start query string false "Custom range start (YYYY-MM-DD)"
// @Param end query string false "Custom range end (YYYY-MM-DD)"
// @Success 200 {object} reportResponse
// @Failure 400 {object} errorResponse
// @Router /reports/{mode} [get]
func (h *ReportHandler) Generate(c echo.Context) error {
	params := service.GenerateParams{Mode: c.Param("mode")}

	start, ok := parseDateQuery(c, "start")
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid start date"})
	}
	end, ok := parseDateQuery(c, "end")
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid end date"})
	}
	params.Start, params.End = start, end

	if start == nil && end == nil && !isValidMode(params.Mode) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid report mode"})
	}

	report, err := h.service.Generate(c.Request().Context(), params)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := reportResponse{
		Mode: report.Mode,
		Text: report.Text,
		HTML: report.HTML,
	}
	if report.Start != nil {
		resp.Start = report.Start.Format("2006-01-02")
	}
	if report.End != nil {
		resp.End = report.End.Format("2006-01-02")
	}

	return c.JSON(http.StatusOK, resp)
}
