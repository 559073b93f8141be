package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hissain/fastrep/internal/model"
	"github.com/hissain/fastrep/internal/repository"
	"github.com/hissain/fastrep/internal/service/ai"
)

// ReportSettings holds the report and enrichment preferences.
type ReportSettings struct {
	Template           string `json:"template"`
	EnabledWeekly      bool   `json:"enabledWeekly"`
	EnabledBiweekly    bool   `json:"enabledBiweekly"`
	EnabledMonthly     bool   `json:"enabledMonthly"`
	SummaryPoints      string `json:"summaryPoints"`
	SummaryThreshold   int    `json:"summaryThreshold"`
	CustomInstructions string `json:"customInstructions"`
}

// AISettings holds the AI provider configuration.
type AISettings struct {
	Provider       string `json:"provider"`
	APIKey         string `json:"apiKey"`
	BaseURL        string `json:"baseUrl"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// UISettings holds front-end preferences.
type UISettings struct {
	RecentLimit int  `json:"recentLimit"`
	AutoBrowser bool `json:"autoBrowser"`
}

// Setting keys
const (
	keyReportTemplate       = "report.template"
	keyAIEnabledWeekly      = "ai.enabled_weekly"
	keyAIEnabledBiweekly    = "ai.enabled_biweekly"
	keyAIEnabledMonthly     = "ai.enabled_monthly"
	keyAISummaryPoints      = "ai.summary_points"
	keyAISummaryThreshold   = "ai.summary_threshold"
	keyAICustomInstructions = "ai.custom_instructions"
	keyAIProvider           = "ai.provider"
	keyAIAPIKey             = "ai.api_key"
	keyAIBaseURL            = "ai.base_url"
	keyAIModel              = "ai.model"
	keyAITimeoutSeconds     = "ai.timeout_seconds"
	keyAILegacyPerProject   = "ai.legacy_per_project"
	keyUIRecentLimit        = "ui.recent_limit"
	keyUIAutoBrowser        = "ui.auto_browser"
)

// Defaults
const (
	DefaultSummaryPoints    = "3-5"
	DefaultSummaryThreshold = 5
	DefaultTimeoutSeconds   = 120
	DefaultRecentLimit      = 50
)

// SettingsService provides settings management.
type SettingsService interface {
	GetReportSettings(ctx context.Context) (*ReportSettings, error)
	SetReportSettings(ctx context.Context, settings *ReportSettings) error
	// GetAISettings returns the AI configuration with a masked API key.
	GetAISettings(ctx context.Context) (*AISettings, error)
	// SetAISettings updates the AI configuration. An empty or masked
	// apiKey keeps the existing key.
	SetAISettings(ctx context.Context, settings *AISettings) error
	// TestAI tests the AI connection with the given configuration.
	TestAI(ctx context.Context, provider, apiKey, baseURL, model string) (string, error)
	GetUISettings(ctx context.Context) (*UISettings, error)
	SetUISettings(ctx context.Context, settings *UISettings) error
}

type settingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetReportSettings(ctx context.Context) (*ReportSettings, error) {
	settings := &ReportSettings{
		Template:         model.TemplateClassic,
		SummaryPoints:    DefaultSummaryPoints,
		SummaryThreshold: DefaultSummaryThreshold,
	}

	if val, err := s.getString(ctx, keyReportTemplate); err == nil && val != "" {
		settings.Template = model.TemplateByName(val).Name
	}
	if val, err := s.getString(ctx, keyAIEnabledWeekly); err == nil && val == "true" {
		settings.EnabledWeekly = true
	}
	if val, err := s.getString(ctx, keyAIEnabledBiweekly); err == nil && val == "true" {
		settings.EnabledBiweekly = true
	}
	if val, err := s.getString(ctx, keyAIEnabledMonthly); err == nil && val == "true" {
		settings.EnabledMonthly = true
	}
	if val, err := s.getString(ctx, keyAISummaryPoints); err == nil && val != "" {
		settings.SummaryPoints = val
	}
	if val, err := s.getInt(ctx, keyAISummaryThreshold); err == nil && val > 0 {
		settings.SummaryThreshold = val
	}
	if val, err := s.getString(ctx, keyAICustomInstructions); err == nil {
		settings.CustomInstructions = val
	}

	return settings, nil
}

func (s *settingsService) SetReportSettings(ctx context.Context, settings *ReportSettings) error {
	template := model.TemplateByName(settings.Template).Name
	if err := s.repo.Set(ctx, keyReportTemplate, template); err != nil {
		return fmt.Errorf("set template: %w", err)
	}
	if err := s.setBool(ctx, keyAIEnabledWeekly, settings.EnabledWeekly); err != nil {
		return fmt.Errorf("set weekly flag: %w", err)
	}
	if err := s.setBool(ctx, keyAIEnabledBiweekly, settings.EnabledBiweekly); err != nil {
		return fmt.Errorf("set biweekly flag: %w", err)
	}
	if err := s.setBool(ctx, keyAIEnabledMonthly, settings.EnabledMonthly); err != nil {
		return fmt.Errorf("set monthly flag: %w", err)
	}
	if err := s.repo.Set(ctx, keyAISummaryPoints, settings.SummaryPoints); err != nil {
		return fmt.Errorf("set summary points: %w", err)
	}
	if err := s.repo.Set(ctx, keyAISummaryThreshold, strconv.Itoa(settings.SummaryThreshold)); err != nil {
		return fmt.Errorf("set summary threshold: %w", err)
	}
	if err := s.repo.Set(ctx, keyAICustomInstructions, settings.CustomInstructions); err != nil {
		return fmt.Errorf("set custom instructions: %w", err)
	}
	return nil
}

func (s *settingsService) GetAISettings(ctx context.Context) (*AISettings, error) {
	settings := &AISettings{
		Provider:       ai.ProviderOpenAI, // default
		TimeoutSeconds: DefaultTimeoutSeconds,
	}

	if val, err := s.getString(ctx, keyAIProvider); err == nil && val != "" {
		settings.Provider = val
	}
	if val, err := s.getString(ctx, keyAIAPIKey); err == nil && val != "" {
		settings.APIKey = maskAPIKey(val)
	}
	if val, err := s.getString(ctx, keyAIBaseURL); err == nil {
		settings.BaseURL = val
	}
	if val, err := s.getString(ctx, keyAIModel); err == nil {
		settings.Model = val
	}
	if val, err := s.getInt(ctx, keyAITimeoutSeconds); err == nil && val > 0 {
		settings.TimeoutSeconds = val
	}

	return settings, nil
}

func (s *settingsService) SetAISettings(ctx context.Context, settings *AISettings) error {
	if settings.Provider != "" {
		if err := s.repo.Set(ctx, keyAIProvider, settings.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if err := s.setAPIKey(ctx, keyAIAPIKey, settings.APIKey); err != nil {
		return fmt.Errorf("set api key: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("set base url: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIModel, settings.Model); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	if settings.TimeoutSeconds > 0 {
		if err := s.repo.Set(ctx, keyAITimeoutSeconds, strconv.Itoa(settings.TimeoutSeconds)); err != nil {
			return fmt.Errorf("set timeout: %w", err)
		}
	}
	return nil
}

// TestAI tests the AI connection with the given configuration.
func (s *settingsService) TestAI(ctx context.Context, provider, apiKey, baseURL, model string) (string, error) {
	// If apiKey looks like a masked key, use the stored key instead
	if isMaskedKey(apiKey) {
		storedKey, err := s.getString(ctx, keyAIAPIKey)
		if err != nil {
			return "", fmt.Errorf("get stored api key: %w", err)
		}
		apiKey = storedKey
	}

	p, err := ai.NewProvider(ai.Config{
		Provider: provider,
		APIKey:   apiKey,
		BaseURL:  baseURL,
		Model:    model,
	})
	if err != nil {
		return "", err
	}

	return p.Test(ctx)
}

func (s *settingsService) GetUISettings(ctx context.Context) (*UISettings, error) {
	settings := &UISettings{
		RecentLimit: DefaultRecentLimit,
	}

	if val, err := s.getInt(ctx, keyUIRecentLimit); err == nil && val > 0 {
		settings.RecentLimit = val
	}
	if val, err := s.getString(ctx, keyUIAutoBrowser); err == nil && val == "true" {
		settings.AutoBrowser = true
	}

	return settings, nil
}

func (s *settingsService) SetUISettings(ctx context.Context, settings *UISettings) error {
	if settings.RecentLimit > 0 {
		if err := s.repo.Set(ctx, keyUIRecentLimit, strconv.Itoa(settings.RecentLimit)); err != nil {
			return fmt.Errorf("set recent limit: %w", err)
		}
	}
	if err := s.setBool(ctx, keyUIAutoBrowser, settings.AutoBrowser); err != nil {
		return fmt.Errorf("set auto browser: %w", err)
	}
	return nil
}

// maskAPIKey returns a masked version of the API key for display.
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	// Find prefix (e.g., "sk-" for OpenAI)
	prefixEnd := 0
	for i, c := range apiKey {
		if c == '-' {
			prefixEnd = i + 1
			break
		}
		if i >= 4 {
			break
		}
	}
	prefix := apiKey[:prefixEnd]
	suffix := apiKey[len(apiKey)-3:]
	return prefix + "***" + suffix
}

// isMaskedKey checks if a string looks like a masked API key.
func isMaskedKey(key string) bool {
	if len(key) == 0 || len(key) >= 20 {
		return false
	}
	for i := 0; i <= len(key)-3; i++ {
		if key[i:i+3] == "***" {
			return true
		}
	}
	return false
}

func (s *settingsService) getString(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", nil
	}
	return setting.Value, nil
}

func (s *settingsService) getInt(ctx context.Context, key string) (int, error) {
	val, err := s.getString(ctx, key)
	if err != nil || val == "" {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (s *settingsService) setBool(ctx context.Context, key string, value bool) error {
	val := "false"
	if value {
		val = "true"
	}
	return s.repo.Set(ctx, key, val)
}

// setAPIKey stores an API key. Empty or masked values keep the existing key.
func (s *settingsService) setAPIKey(ctx context.Context, key, value string) error {
	if value == "" || isMaskedKey(value) {
		return nil
	}
	return s.repo.Set(ctx, key, value)
}
