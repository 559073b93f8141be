package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hissain/fastrep/internal/logger"
	"github.com/hissain/fastrep/internal/model"
	"github.com/hissain/fastrep/internal/repository"
	"github.com/hissain/fastrep/internal/service/ai"
)

// completer is the minimal call surface the enricher needs from a backend.
// Direct providers and the local tool both satisfy it.
type completer interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, content string) (string, error)
}

// LocalTool is a completer that may or may not be installed.
type LocalTool interface {
	completer
	Available() bool
}

// EnrichService produces AI replacements for a report's grouped lines.
// It is best-effort: every failure degrades to a nil result so the report
// assembler falls back to verbatim formatted entries. Nothing escapes its
// boundary as an error.
type EnrichService interface {
	Enrich(ctx context.Context, mode string, grouped model.GroupedLogs, tmpl model.ReportTemplate) model.SummaryResult
}

// EnrichOptions overrides production wiring, mainly for tests.
// Zero values select the defaults.
type EnrichOptions struct {
	// ProviderFactory builds the direct provider from settings.
	ProviderFactory func(ai.Config) (ai.Provider, error)
	// Tool is the local command-line fallback.
	Tool LocalTool
	// CourtesyDelay spaces legacy per-project calls.
	CourtesyDelay time.Duration
}

type enrichService struct {
	settings    repository.SettingsRepository
	newProvider func(ai.Config) (ai.Provider, error)
	tool        LocalTool
	limiter     *ai.CourtesyLimiter
}

// NewEnrichService creates a new enrichment service.
func NewEnrichService(settings repository.SettingsRepository, opts EnrichOptions) EnrichService {
	factory := opts.ProviderFactory
	if factory == nil {
		factory = ai.NewProvider
	}
	var tool LocalTool = opts.Tool
	if tool == nil {
		tool = ai.NewLocalTool("")
	}
	return &enrichService{
		settings:    settings,
		newProvider: factory,
		tool:        tool,
		limiter:     ai.NewCourtesyLimiter(opts.CourtesyDelay),
	}
}

// enrichConfig is the settings snapshot for one enrichment attempt.
type enrichConfig struct {
	enabled          map[string]bool
	provider         ai.Config
	threshold        int
	points           string
	custom           string
	timeout          time.Duration
	legacyPerProject bool
}

func (s *enrichService) Enrich(ctx context.Context, mode string, grouped model.GroupedLogs, tmpl model.ReportTemplate) model.SummaryResult {
	if len(grouped) == 0 || mode == "" {
		return nil
	}

	cfg, err := s.loadConfig(ctx)
	if err != nil {
		logger.Warn("enrichment settings load failed", "module", "service", "action", "fetch", "resource", "enrich", "result", "failed", "error", err)
		return nil
	}

	if !cfg.enabled[mode] {
		logger.Debug("enrichment disabled for mode", "module", "service", "action", "fetch", "resource", "enrich", "result", "skipped", "mode", mode)
		return nil
	}

	directOK := cfg.provider.APIKey != "" && cfg.provider.Model != ""
	localOK := s.tool.Available()
	if !directOK && !localOK {
		logger.Debug("no enrichment backend available", "module", "service", "action", "fetch", "resource", "enrich", "result", "skipped", "mode", mode)
		return nil
	}

	systemPrompt := ai.GetEnrichPrompt(tmpl.DateFormatDesc, cfg.points, cfg.custom)

	if cfg.legacyPerProject {
		return s.enrichPerProject(ctx, grouped, tmpl, cfg, systemPrompt, directOK, localOK)
	}

	// One batched call for all projects bounds external-call volume.
	content := ai.BuildEnrichContent(grouped, tmpl.DateFormat, cfg.threshold)
	timeout := batchTimeout(cfg.timeout)

	if directOK {
		if result := s.tryDirect(ctx, cfg.provider, systemPrompt, content, timeout); result != nil {
			return result
		}
	}
	if localOK {
		if result := s.tryComplete(ctx, s.tool, systemPrompt, content, timeout); result != nil {
			return result
		}
	}
	return nil
}

// enrichPerProject is the legacy compatibility path: one call per project,
// spaced by the courtesy limiter. A failed project is skipped; the others
// still contribute their lines.
func (s *enrichService) enrichPerProject(ctx context.Context, grouped model.GroupedLogs, tmpl model.ReportTemplate, cfg enrichConfig, systemPrompt string, directOK, localOK bool) model.SummaryResult {
	result := model.SummaryResult{}

	for _, project := range grouped.Projects() {
		if err := s.limiter.Wait(ctx); err != nil {
			logger.Warn("enrichment courtesy wait cancelled", "module", "service", "action", "fetch", "resource", "enrich", "result", "failed", "error", err)
			break
		}

		content := ai.BuildProjectContent(project, grouped[project], tmpl.DateFormat, cfg.threshold)

		var partial model.SummaryResult
		if directOK {
			partial = s.tryDirect(ctx, cfg.provider, systemPrompt, content, cfg.timeout)
		}
		if partial == nil && localOK {
			partial = s.tryComplete(ctx, s.tool, systemPrompt, content, cfg.timeout)
		}
		if lines, ok := partial[project]; ok {
			result[project] = lines
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

func (s *enrichService) tryDirect(ctx context.Context, cfg ai.Config, systemPrompt, content string, timeout time.Duration) model.SummaryResult {
	provider, err := s.newProvider(cfg)
	if err != nil {
		logger.Warn("enrichment provider create failed", "module", "service", "action", "fetch", "resource", "enrich", "result", "failed", "provider", cfg.Provider, "error", err)
		return nil
	}
	return s.tryComplete(ctx, provider, systemPrompt, content, timeout)
}

// tryComplete runs one bounded call against a backend and parses the
// response. Any failure yields nil; a partial or malformed response is
// never applied.
func (s *enrichService) tryComplete(ctx context.Context, backend completer, systemPrompt, content string, timeout time.Duration) model.SummaryResult {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := backend.Complete(callCtx, systemPrompt, content)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("enrichment call timed out", "module", "service", "action", "fetch", "resource", "enrich", "result", "failed", "backend", backend.Name(), "timeout_ms", timeout.Milliseconds())
		} else {
			logger.Warn("enrichment call failed", "module", "service", "action", "fetch", "resource", "enrich", "result", "failed", "backend", backend.Name(), "error", err)
		}
		return nil
	}

	result, err := ai.ParseSummaryResult(raw)
	if err != nil {
		logger.Warn("enrichment response unparseable", "module", "service", "action", "fetch", "resource", "enrich", "result", "failed", "backend", backend.Name(), "error", err, "raw", truncate(raw, 500))
		return nil
	}
	if len(result) == 0 {
		return nil
	}

	logger.Info("enrichment applied", "module", "service", "action", "fetch", "resource", "enrich", "result", "ok", "backend", backend.Name(), "projects", len(result))
	return result
}

// loadConfig batch fetches all ai.* settings in a single query.
func (s *enrichService) loadConfig(ctx context.Context) (enrichConfig, error) {
	settings, err := s.settings.GetByPrefix(ctx, "ai.")
	if err != nil {
		return enrichConfig{}, err
	}

	values := make(map[string]string, len(settings))
	for _, st := range settings {
		values[st.Key] = st.Value
	}

	cfg := enrichConfig{
		enabled: map[string]bool{
			model.ModeWeekly:   values[keyAIEnabledWeekly] == "true",
			model.ModeBiweekly: values[keyAIEnabledBiweekly] == "true",
			model.ModeMonthly:  values[keyAIEnabledMonthly] == "true",
		},
		provider: ai.Config{
			Provider: values[keyAIProvider],
			APIKey:   values[keyAIAPIKey],
			BaseURL:  values[keyAIBaseURL],
			Model:    values[keyAIModel],
		},
		threshold:        DefaultSummaryThreshold,
		points:           DefaultSummaryPoints,
		custom:           values[keyAICustomInstructions],
		timeout:          DefaultTimeoutSeconds * time.Second,
		legacyPerProject: values[keyAILegacyPerProject] == "true",
	}

	if cfg.provider.Provider == "" {
		cfg.provider.Provider = ai.ProviderOpenAI
	}
	if val := values[keyAISummaryThreshold]; val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.threshold = n
		}
	}
	if val := values[keyAISummaryPoints]; val != "" {
		cfg.points = val
	}
	if val := values[keyAITimeoutSeconds]; val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.timeout = time.Duration(n) * time.Second
		}
	}

	return cfg, nil
}

// batchTimeout doubles the base timeout for the all-projects call, with a
// floor of five minutes.
func batchTimeout(base time.Duration) time.Duration {
	d := 2 * base
	if d < 5*time.Minute {
		d = 5 * time.Minute
	}
	return d
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
