package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hissain/fastrep/internal/model"
	"github.com/hissain/fastrep/internal/repository"
	"github.com/hissain/fastrep/internal/repository/testutil"
	"github.com/hissain/fastrep/internal/service"
	"github.com/hissain/fastrep/internal/service/ai"
)

// stubCompleter satisfies ai.Provider and records its calls.
type stubCompleter struct {
	name      string
	responses []string
	err       error
	calls     int
	contents  []string
}

func (s *stubCompleter) Name() string { return s.name }

func (s *stubCompleter) Test(ctx context.Context) (string, error) { return "ok", nil }

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	s.calls++
	s.contents = append(s.contents, content)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", fmt.Errorf("no canned response")
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

// stubTool adds availability on top of stubCompleter.
type stubTool struct {
	stubCompleter
	available bool
}

func (s *stubTool) Available() bool { return s.available }

type enrichFixture struct {
	settings repository.SettingsRepository
	provider *stubCompleter
	factory  func(ai.Config) (ai.Provider, error)
	tool     *stubTool
}

func newEnrichFixture(t *testing.T) *enrichFixture {
	t.Helper()
	conn := testutil.NewTestDB(t)
	provider := &stubCompleter{name: "openai"}
	return &enrichFixture{
		settings: repository.NewSettingsRepository(conn),
		provider: provider,
		factory:  func(ai.Config) (ai.Provider, error) { return provider, nil },
		tool:     &stubTool{stubCompleter: stubCompleter{name: "cline"}},
	}
}

func (f *enrichFixture) service() service.EnrichService {
	return service.NewEnrichService(f.settings, service.EnrichOptions{
		ProviderFactory: f.factory,
		Tool:            f.tool,
		CourtesyDelay:   time.Millisecond,
	})
}

func (f *enrichFixture) set(t *testing.T, key, value string) {
	t.Helper()
	require.NoError(t, f.settings.Set(context.Background(), key, value))
}

func (f *enrichFixture) enableDirect(t *testing.T, mode string) {
	t.Helper()
	f.set(t, "ai.enabled_"+mode, "true")
	f.set(t, "ai.provider", "openai")
	f.set(t, "ai.api_key", "sk-test-123")
	f.set(t, "ai.model", "gpt-4o-mini")
}

func sampleGrouped(t *testing.T) model.GroupedLogs {
	t.Helper()
	return model.GroupedLogs{
		"Apollo": {
			{Project: "Apollo", Description: "did a thing", Date: mustDay(t, "2024-03-14")},
			{Project: "Apollo", Description: "did another", Date: mustDay(t, "2024-03-13")},
		},
		"Zephyr": {
			{Project: "Zephyr", Description: "triaged bugs", Date: mustDay(t, "2024-03-12")},
		},
	}
}

const sampleResponse = `{"Apollo":[{"date":"03/13-03/14","description":"Apollo work"}],"Zephyr":[{"date":"03/12","description":"Bug triage"}]}`

func TestEnrichService_DisabledMode(t *testing.T) {
	f := newEnrichFixture(t)
	// Direct backend configured but the weekly flag is off
	f.set(t, "ai.api_key", "sk-test-123")
	f.set(t, "ai.model", "gpt-4o-mini")

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.Nil(t, result)
	require.Zero(t, f.provider.calls)
	require.Zero(t, f.tool.calls)
}

func TestEnrichService_NoBackend(t *testing.T) {
	f := newEnrichFixture(t)
	f.set(t, "ai.enabled_weekly", "true")
	// No API key, no model, tool not installed

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.Nil(t, result)
	require.Zero(t, f.provider.calls)
	require.Zero(t, f.tool.calls)
}

func TestEnrichService_DirectSuccess(t *testing.T) {
	f := newEnrichFixture(t)
	f.enableDirect(t, "weekly")
	f.provider.responses = []string{sampleResponse}

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.NotNil(t, result)
	require.Equal(t, 1, f.provider.calls)
	require.Zero(t, f.tool.calls)

	require.Len(t, result["Apollo"], 1)
	require.Equal(t, "03/13-03/14", result["Apollo"][0].Date)
	require.Equal(t, "Apollo work", result["Apollo"][0].Description)
	require.Len(t, result["Zephyr"], 1)

	// One batched call covers every project
	require.Contains(t, f.provider.contents[0], "Project: Apollo")
	require.Contains(t, f.provider.contents[0], "Project: Zephyr")
}

func TestEnrichService_FencedResponse(t *testing.T) {
	f := newEnrichFixture(t)
	f.enableDirect(t, "weekly")
	f.provider.responses = []string{"```json\n" + sampleResponse + "\n```"}

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.NotNil(t, result)
	require.Equal(t, "Apollo work", result["Apollo"][0].Description)
}

func TestEnrichService_DirectFailureFallsBackToLocal(t *testing.T) {
	f := newEnrichFixture(t)
	f.enableDirect(t, "weekly")
	f.provider.err = fmt.Errorf("rate limited")
	f.tool.available = true
	f.tool.responses = []string{sampleResponse}

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.NotNil(t, result)
	require.Equal(t, 1, f.provider.calls)
	require.Equal(t, 1, f.tool.calls)
	require.Equal(t, "Bug triage", result["Zephyr"][0].Description)
}

func TestEnrichService_MalformedResponseFallsBackToLocal(t *testing.T) {
	f := newEnrichFixture(t)
	f.enableDirect(t, "weekly")
	f.provider.responses = []string{"Sure! Here is your report: not json"}
	f.tool.available = true
	f.tool.responses = []string{sampleResponse}

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.NotNil(t, result)
	require.Equal(t, 1, f.tool.calls)
}

func TestEnrichService_AllBackendsFail(t *testing.T) {
	f := newEnrichFixture(t)
	f.enableDirect(t, "weekly")
	f.provider.err = fmt.Errorf("boom")
	f.tool.available = true
	f.tool.err = fmt.Errorf("tool crashed")

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.Nil(t, result)
}

func TestEnrichService_Timeout(t *testing.T) {
	f := newEnrichFixture(t)
	f.enableDirect(t, "weekly")
	f.provider.err = context.DeadlineExceeded

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.Nil(t, result)
}

func TestEnrichService_LocalOnly(t *testing.T) {
	f := newEnrichFixture(t)
	f.set(t, "ai.enabled_monthly", "true")
	f.tool.available = true
	f.tool.responses = []string{sampleResponse}

	result := f.service().Enrich(context.Background(), model.ModeMonthly, sampleGrouped(t), model.TemplateByName(""))
	require.NotNil(t, result)
	require.Zero(t, f.provider.calls)
	require.Equal(t, 1, f.tool.calls)
}

func TestEnrichService_LegacyPerProject(t *testing.T) {
	f := newEnrichFixture(t)
	f.enableDirect(t, "weekly")
	f.set(t, "ai.legacy_per_project", "true")

	// One call per project, alphabetical: Apollo then Zephyr
	f.provider.responses = []string{
		`{"Apollo":[{"date":"03/14","description":"Apollo summary"}]}`,
		`{"Zephyr":[{"date":"03/12","description":"Zephyr summary"}]}`,
	}

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.NotNil(t, result)
	require.Equal(t, 2, f.provider.calls)
	require.Equal(t, "Apollo summary", result["Apollo"][0].Description)
	require.Equal(t, "Zephyr summary", result["Zephyr"][0].Description)

	// Each call carries only its own project
	require.NotContains(t, f.provider.contents[0], "Project: Zephyr")
	require.NotContains(t, f.provider.contents[1], "Project: Apollo")
}

func TestEnrichService_LegacyPartialFailure(t *testing.T) {
	f := newEnrichFixture(t)
	f.enableDirect(t, "weekly")
	f.set(t, "ai.legacy_per_project", "true")

	// First project's response is garbage; the second still applies
	f.provider.responses = []string{
		"not json at all",
		`{"Zephyr":[{"date":"03/12","description":"Zephyr summary"}]}`,
	}

	result := f.service().Enrich(context.Background(), model.ModeWeekly, sampleGrouped(t), model.TemplateByName(""))
	require.NotNil(t, result)
	require.NotContains(t, result, "Apollo")
	require.Equal(t, "Zephyr summary", result["Zephyr"][0].Description)
}
