package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hissain/fastrep/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/report", h.GetReportSettings)
	g.PUT("/settings/report", h.UpdateReportSettings)
	g.GET("/settings/ai", h.GetAISettings)
	g.PUT("/settings/ai", h.UpdateAISettings)
	g.POST("/settings/ai/test", h.TestAI)
	g.GET("/settings/ui", h.GetUISettings)
	g.PUT("/settings/ui", h.UpdateUISettings)
}

type aiTestRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
}

type aiTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GetReportSettings returns the report and enrichment preferences.
// @Summary Get report settings
// @Tags settings
// @Produce json
// @Success 200 {object} service.ReportSettings
// @Failure 500 {object} errorResponse
// @Router /settings/report [get]
func (h *SettingsHandler) GetReportSettings(c echo.Context) error {
	settings, err := h.service.GetReportSettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateReportSettings updates the report and enrichment preferences.
// @Summary Update report settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body service.ReportSettings true "Report settings"
// @Success 200 {object} service.ReportSettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/report [put]
func (h *SettingsHandler) UpdateReportSettings(c echo.Context) error {
	var req service.ReportSettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.service.SetReportSettings(c.Request().Context(), &req); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
	}

	return h.GetReportSettings(c)
}

// GetAISettings returns the AI provider configuration.
// @Summary Get AI settings
// @Description Get the AI provider configuration with a masked API key
// @Tags settings
// @Produce json
// @Success 200 {object} service.AISettings
// @Failure 500 {object} errorResponse
// @Router /settings/ai [get]
func (h *SettingsHandler) GetAISettings(c echo.Context) error {
	settings, err := h.service.GetAISettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateAISettings updates the AI provider configuration.
// @Summary Update AI settings
// @Description Update the AI provider configuration. Empty apiKey keeps the existing key.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body service.AISettings true "AI settings"
// @Success 200 {object} service.AISettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/ai [put]
func (h *SettingsHandler) UpdateAISettings(c echo.Context) error {
	var req service.AISettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.service.SetAISettings(c.Request().Context(), &req); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
	}

	return h.GetAISettings(c)
}

// TestAI tests the AI provider connection.
// @Summary Test AI connection
// @Description Test the AI provider connection with a "Hello world" message
// @Tags settings
// @Accept json
// @Produce json
// @Param config body aiTestRequest true "AI test configuration"
// @Success 200 {object} aiTestResponse
// @Failure 400 {object} errorResponse
// @Router /settings/ai/test [post]
func (h *SettingsHandler) TestAI(c echo.Context) error {
	var req aiTestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if req.Provider == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "provider is required"})
	}
	if req.Model == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "model is required"})
	}

	response, err := h.service.TestAI(c.Request().Context(), req.Provider, req.APIKey, req.BaseURL, req.Model)
	if err != nil {
		return c.JSON(http.StatusOK, aiTestResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, aiTestResponse{
		Success: true,
		Message: response,
	})
}

// GetUISettings returns front-end preferences.
// @Summary Get UI settings
// @Tags settings
// @Produce json
// @Success 200 {object} service.UISettings
// @Failure 500 {object} errorResponse
// @Router /settings/ui [get]
func (h *SettingsHandler) GetUISettings(c echo.Context) error {
	settings, err := h.service.GetUISettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateUISettings updates front-end preferences.
// @Summary Update UI settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body service.UISettings true "UI settings"
// @Success 200 {object} service.UISettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/ui [put]
func (h *SettingsHandler) UpdateUISettings(c echo.Context) error {
	var req service.UISettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.service.SetUISettings(c.Request().Context(), &req); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
	}

	return h.GetUISettings(c)
}
