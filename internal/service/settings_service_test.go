package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hissain/fastrep/internal/repository"
	"github.com/hissain/fastrep/internal/repository/testutil"
	"github.com/hissain/fastrep/internal/service"
)

func newSettingsService(t *testing.T) (service.SettingsService, repository.SettingsRepository) {
	t.Helper()
	conn := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(conn)
	return service.NewSettingsService(repo), repo
}

func TestSettingsService_ReportDefaults(t *testing.T) {
	svc, _ := newSettingsService(t)

	settings, err := svc.GetReportSettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "classic", settings.Template)
	require.False(t, settings.EnabledWeekly)
	require.False(t, settings.EnabledBiweekly)
	require.False(t, settings.EnabledMonthly)
	require.Equal(t, "3-5", settings.SummaryPoints)
	require.Equal(t, 5, settings.SummaryThreshold)
	require.Empty(t, settings.CustomInstructions)
}

func TestSettingsService_ReportRoundTrip(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()

	err := svc.SetReportSettings(ctx, &service.ReportSettings{
		Template:           "iso",
		EnabledWeekly:      true,
		EnabledMonthly:     true,
		SummaryPoints:      "2-3",
		SummaryThreshold:   8,
		CustomInstructions: "Write in past tense.",
	})
	require.NoError(t, err)

	settings, err := svc.GetReportSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "iso", settings.Template)
	require.True(t, settings.EnabledWeekly)
	require.False(t, settings.EnabledBiweekly)
	require.True(t, settings.EnabledMonthly)
	require.Equal(t, "2-3", settings.SummaryPoints)
	require.Equal(t, 8, settings.SummaryThreshold)
	require.Equal(t, "Write in past tense.", settings.CustomInstructions)
}

func TestSettingsService_ReportUnknownTemplate(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()

	// Unknown names normalize to classic on write
	err := svc.SetReportSettings(ctx, &service.ReportSettings{Template: "fancy"})
	require.NoError(t, err)

	settings, err := svc.GetReportSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "classic", settings.Template)
}

func TestSettingsService_AIDefaults(t *testing.T) {
	svc, _ := newSettingsService(t)

	settings, err := svc.GetAISettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "openai", settings.Provider)
	require.Empty(t, settings.APIKey)
	require.Equal(t, 120, settings.TimeoutSeconds)
}

func TestSettingsService_AIKeyMasking(t *testing.T) {
	svc, repo := newSettingsService(t)
	ctx := context.Background()

	err := svc.SetAISettings(ctx, &service.AISettings{
		Provider: "openai",
		APIKey:   "sk-proj-abcdefghijklmnop",
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)

	// Reads never expose the full key
	settings, err := svc.GetAISettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "sk-***nop", settings.APIKey)

	// Writing the masked value back keeps the stored key
	settings.Model = "gpt-4o"
	err = svc.SetAISettings(ctx, settings)
	require.NoError(t, err)

	stored, err := repo.Get(ctx, "ai.api_key")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "sk-proj-abcdefghijklmnop", stored.Value)

	// An empty key also keeps the stored key
	err = svc.SetAISettings(ctx, &service.AISettings{Provider: "openai", Model: "gpt-4o"})
	require.NoError(t, err)
	stored, err = repo.Get(ctx, "ai.api_key")
	require.NoError(t, err)
	require.Equal(t, "sk-proj-abcdefghijklmnop", stored.Value)

	// A genuinely new key replaces it
	err = svc.SetAISettings(ctx, &service.AISettings{Provider: "openai", APIKey: "sk-proj-replacement-key", Model: "gpt-4o"})
	require.NoError(t, err)
	stored, err = repo.Get(ctx, "ai.api_key")
	require.NoError(t, err)
	require.Equal(t, "sk-proj-replacement-key", stored.Value)
}

func TestSettingsService_UIRoundTrip(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()

	settings, err := svc.GetUISettings(ctx)
	require.NoError(t, err)
	require.Equal(t, 50, settings.RecentLimit)
	require.False(t, settings.AutoBrowser)

	err = svc.SetUISettings(ctx, &service.UISettings{RecentLimit: 25, AutoBrowser: true})
	require.NoError(t, err)

	settings, err = svc.GetUISettings(ctx)
	require.NoError(t, err)
	require.Equal(t, 25, settings.RecentLimit)
	require.True(t, settings.AutoBrowser)
}
