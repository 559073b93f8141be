package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hissain/fastrep/internal/repository"
	"github.com/hissain/fastrep/internal/repository/testutil"
)

func TestSettingsRepository_GetMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	setting, err := repo.Get(ctx, "does.not.exist")
	require.NoError(t, err)
	require.Nil(t, setting)
}

func TestSettingsRepository_SetAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	err := repo.Set(ctx, "report.template", "iso")
	require.NoError(t, err)

	setting, err := repo.Get(ctx, "report.template")
	require.NoError(t, err)
	require.NotNil(t, setting)
	require.Equal(t, "report.template", setting.Key)
	require.Equal(t, "iso", setting.Value)
	require.False(t, setting.UpdatedAt.IsZero())
}

func TestSettingsRepository_Upsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "ai.model", "gpt-4o"))
	require.NoError(t, repo.Set(ctx, "ai.model", "gpt-4o-mini"))

	setting, err := repo.Get(ctx, "ai.model")
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", setting.Value)
}

func TestSettingsRepository_GetByPrefix(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "ai.provider", "openai"))
	require.NoError(t, repo.Set(ctx, "ai.model", "gpt-4o"))
	require.NoError(t, repo.Set(ctx, "ui.recent_limit", "25"))

	settings, err := repo.GetByPrefix(ctx, "ai.")
	require.NoError(t, err)
	require.Len(t, settings, 2)

	keys := map[string]string{}
	for _, s := range settings {
		keys[s.Key] = s.Value
	}
	require.Equal(t, "openai", keys["ai.provider"])
	require.Equal(t, "gpt-4o", keys["ai.model"])
}

func TestSettingsRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "ai.api_key", "sk-secret"))
	require.NoError(t, repo.Delete(ctx, "ai.api_key"))

	setting, err := repo.Get(ctx, "ai.api_key")
	require.NoError(t, err)
	require.Nil(t, setting)

	// Deleting an absent key is not an error
	require.NoError(t, repo.Delete(ctx, "ai.api_key"))
}
