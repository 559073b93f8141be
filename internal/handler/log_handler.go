package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hissain/fastrep/internal/model"
	"github.com/hissain/fastrep/internal/service"
)

type LogHandler struct {
	service  service.LogService
	settings service.SettingsService
}

func NewLogHandler(service service.LogService, settings service.SettingsService) *LogHandler {
	return &LogHandler{service: service, settings: settings}
}

func (h *LogHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/logs", h.Create)
	g.GET("/logs", h.List)
	g.PUT("/logs/:id", h.Update)
	g.DELETE("/logs/:id", h.Delete)
	g.DELETE("/logs", h.Clear)
	g.GET("/projects", h.ListProjects)
}

type logRequest struct {
	Project     string `json:"project"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type logResponse struct {
	ID          string `json:"id"`
	Project     string `json:"project"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CreatedAt   string `json:"createdAt"`
}

type logListResponse struct {
	Logs  []logResponse `json:"logs"`
	Total int           `json:"total"`
}

type projectListResponse struct {
	Projects []string `json:"projects"`
}

func toLogResponse(e model.LogEntry) logResponse {
	return logResponse{
		ID:          strconv.FormatInt(e.ID, 10),
		Project:     e.Project,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Create adds a new work-log entry.
// @Summary Create log entry
// @Description Add a new dated, project-tagged work note
// @Tags logs
// @Accept json
// @Produce json
// @Param entry body logRequest true "Log entry"
// @Success 201 {object} logResponse
// @Failure 400 {object} errorResponse
// @Router /logs [post]
func (h *LogHandler) Create(c echo.Context) error {
	var req logRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	entry, err := h.service.Create(c.Request().Context(), req.Project, req.Description, req.Date)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toLogResponse(entry))
}

// List returns recent log entries.
// @Summary List log entries
// @Description Get recent entries, newest first. Default limit comes from the UI settings.
// @Tags logs
// @Produce json
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} logListResponse
// @Router /logs [get]
func (h *LogHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit == 0 {
		if ui, err := h.settings.GetUISettings(c.Request().Context()); err == nil {
			limit = ui.RecentLimit
		}
	}

	entries, err := h.service.List(c.Request().Context(), limit)
	if err != nil {
		return writeServiceError(c, err)
	}

	response := logListResponse{
		Logs:  make([]logResponse, len(entries)),
		Total: len(entries),
	}
	for i, e := range entries {
		response.Logs[i] = toLogResponse(e)
	}

	return c.JSON(http.StatusOK, response)
}

// Update replaces a log entry's project, description and date.
// @Summary Update log entry
// @Description Replace project, description and date of an entry
// @Tags logs
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param entry body logRequest true "New values"
// @Success 204 "No Content"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /logs/{id} [put]
func (h *LogHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	var req logRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.service.Update(c.Request().Context(), id, req.Project, req.Description, req.Date); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes a log entry.
// @Summary Delete log entry
// @Tags logs
// @Param id path int true "Entry ID"
// @Success 204 "No Content"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /logs/{id} [delete]
func (h *LogHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Clear wipes all log entries.
// @Summary Clear all log entries
// @Tags logs
// @Produce json
// @Success 200 {object} deletedCountResponse
// @Router /logs [delete]
func (h *LogHandler) Clear(c echo.Context) error {
	deleted, err := h.service.Clear(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, deletedCountResponse{Deleted: deleted})
}

// ListProjects returns distinct project names.
// @Summary List projects
// @Tags logs
// @Produce json
// @Success 200 {object} projectListResponse
// @Router /projects [get]
func (h *LogHandler) ListProjects(c echo.Context) error {
	projects, err := h.service.Projects(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, projectListResponse{Projects: projects})
}
