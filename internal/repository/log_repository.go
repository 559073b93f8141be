package repository

import (
	"context"
	"time"

	"github.com/hissain/fastrep/internal/model"
	"github.com/hissain/fastrep/internal/snowflake"
)

// LogRepository defines the interface for work-log storage.
type LogRepository interface {
	// Create persists a new entry and returns its assigned ID.
	Create(ctx context.Context, entry model.LogEntry) (int64, error)
	GetByID(ctx context.Context, id int64) (model.LogEntry, error)
	// List returns entries within the inclusive date range, ordered by
	// date descending then creation time descending. Either bound may be
	// nil to leave that side open.
	List(ctx context.Context, start, end *time.Time) ([]model.LogEntry, error)
	// Update replaces project, description and date in one row write.
	// Returns false if no entry has the given ID.
	Update(ctx context.Context, id int64, project, description string, date time.Time) (bool, error)
	// Delete removes an entry. Returns false if no entry has the given ID.
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteAll wipes every entry and returns the number removed.
	DeleteAll(ctx context.Context) (int64, error)
	// ListProjects returns distinct project names in ascending order.
	ListProjects(ctx context.Context) ([]string, error)
}

type logRepository struct {
	db dbtx
}

// NewLogRepository creates a new log repository.
func NewLogRepository(db dbtx) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(ctx context.Context, entry model.LogEntry) (int64, error) {
	id := snowflake.NextID()
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO logs (id, project, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id,
		entry.Project,
		entry.Description,
		formatDate(entry.Date),
		formatTimestamp(createdAt),
	)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *logRepository) GetByID(ctx context.Context, id int64) (model.LogEntry, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, project, description, date, created_at FROM logs WHERE id = ?`,
		id,
	)
	return scanLog(row)
}

func (r *logRepository) List(ctx context.Context, start, end *time.Time) ([]model.LogEntry, error) {
	query := `SELECT id, project, description, date, created_at FROM logs`
	var args []interface{}

	switch {
	case start != nil && end != nil:
		query += ` WHERE date >= ? AND date <= ?`
		args = append(args, formatDate(*start), formatDate(*end))
	case start != nil:
		query += ` WHERE date >= ?`
		args = append(args, formatDate(*start))
	case end != nil:
		query += ` WHERE date <= ?`
		args = append(args, formatDate(*end))
	}

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LogEntry
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *logRepository) Update(ctx context.Context, id int64, project, description string, date time.Time) (bool, error) {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE logs SET project = ?, description = ?, date = ? WHERE id = ?`,
		project,
		description,
		formatDate(date),
		id,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *logRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM logs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *logRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM logs`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *logRepository) ListProjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT project FROM logs ORDER BY project`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLog(s scanner) (model.LogEntry, error) {
	var e model.LogEntry
	var date, createdAt string

	if err := s.Scan(&e.ID, &e.Project, &e.Description, &date, &createdAt); err != nil {
		return model.LogEntry{}, err
	}

	e.Date, _ = parseDate(date)
	e.CreatedAt, _ = parseTimestamp(createdAt)
	return e, nil
}
