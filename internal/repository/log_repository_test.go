package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hissain/fastrep/internal/model"
	"github.com/hissain/fastrep/internal/repository"
	"github.com/hissain/fastrep/internal/repository/testutil"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestLogRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewLogRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, model.LogEntry{
		Project:     "Apollo",
		Description: "Fixed the deploy pipeline",
		Date:        day(t, "2024-03-12"),
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	fetched, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, fetched.ID)
	require.Equal(t, "Apollo", fetched.Project)
	require.Equal(t, "Fixed the deploy pipeline", fetched.Description)
	require.Equal(t, "2024-03-12", fetched.Date.Format("2006-01-02"))
	require.False(t, fetched.CreatedAt.IsZero())
}

func TestLogRepository_List_RangeFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewLogRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testutil.SeedLog(t, db, "A", "before range", day(t, "2024-03-01"), base)
	testutil.SeedLog(t, db, "A", "in range 1", day(t, "2024-03-05"), base)
	testutil.SeedLog(t, db, "B", "in range 2", day(t, "2024-03-08"), base)
	testutil.SeedLog(t, db, "B", "after range", day(t, "2024-03-20"), base)

	start := day(t, "2024-03-05")
	end := day(t, "2024-03-10")

	entries, err := repo.List(ctx, &start, &end)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Bounds are inclusive on both sides
	require.Equal(t, "in range 2", entries[0].Description)
	require.Equal(t, "in range 1", entries[1].Description)

	// Open start
	entries, err = repo.List(ctx, nil, &end)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Open end
	entries, err = repo.List(ctx, &start, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Fully open
	entries, err = repo.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 4)
}

func TestLogRepository_List_Ordering(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewLogRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	testutil.SeedLog(t, db, "A", "older day", day(t, "2024-03-08"), base)
	testutil.SeedLog(t, db, "A", "same day, first", day(t, "2024-03-10"), base)
	testutil.SeedLog(t, db, "A", "same day, second", day(t, "2024-03-10"), base.Add(time.Hour))

	entries, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest date first; ties broken by creation time descending
	require.Equal(t, "same day, second", entries[0].Description)
	require.Equal(t, "same day, first", entries[1].Description)
	require.Equal(t, "older day", entries[2].Description)
}

func TestLogRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewLogRepository(db)
	ctx := context.Background()

	id := testutil.SeedLog(t, db, "Old", "old desc", day(t, "2024-03-01"), time.Now())

	updated, err := repo.Update(ctx, id, "New", "new desc", day(t, "2024-03-02"))
	require.NoError(t, err)
	require.True(t, updated)

	fetched, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "New", fetched.Project)
	require.Equal(t, "new desc", fetched.Description)
	require.Equal(t, "2024-03-02", fetched.Date.Format("2006-01-02"))

	// Unknown ID reports false, not an error
	updated, err = repo.Update(ctx, 999999, "X", "y", day(t, "2024-03-02"))
	require.NoError(t, err)
	require.False(t, updated)
}

func TestLogRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewLogRepository(db)
	ctx := context.Background()

	id := testutil.SeedLog(t, db, "A", "to delete", day(t, "2024-03-01"), time.Now())

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestLogRepository_DeleteAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewLogRepository(db)
	ctx := context.Background()

	testutil.SeedLog(t, db, "A", "one", day(t, "2024-03-01"), time.Now())
	testutil.SeedLog(t, db, "B", "two", day(t, "2024-03-02"), time.Now())

	count, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	entries, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Empty(t, entries)

	// Empty table clears zero rows
	count, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func TestLogRepository_ListProjects(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewLogRepository(db)
	ctx := context.Background()

	testutil.SeedLog(t, db, "Zeta", "z", day(t, "2024-03-01"), time.Now())
	testutil.SeedLog(t, db, "Alpha", "a1", day(t, "2024-03-02"), time.Now())
	testutil.SeedLog(t, db, "Alpha", "a2", day(t, "2024-03-03"), time.Now())

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Alpha", "Zeta"}, projects)
}
