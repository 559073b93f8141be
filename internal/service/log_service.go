package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hissain/fastrep/internal/logger"
	"github.com/hissain/fastrep/internal/model"
	"github.com/hissain/fastrep/internal/repository"
)

const dateLayout = "2006-01-02"

// LogService provides work-log entry management. Validation happens here so
// invalid input never reaches the repository or the report assembler.
type LogService interface {
	// Create validates and persists a new entry. An empty project becomes
	// model.DefaultProject; an empty date becomes today.
	Create(ctx context.Context, project, description, date string) (model.LogEntry, error)
	GetByID(ctx context.Context, id int64) (model.LogEntry, error)
	// List returns the most recent entries, capped at limit when limit > 0.
	List(ctx context.Context, limit int) ([]model.LogEntry, error)
	// ListRange returns entries within the inclusive date range.
	ListRange(ctx context.Context, start, end *time.Time) ([]model.LogEntry, error)
	// Update replaces project, description and date together.
	Update(ctx context.Context, id int64, project, description, date string) error
	Delete(ctx context.Context, id int64) error
	// Clear wipes all entries and returns the number removed.
	Clear(ctx context.Context) (int64, error)
	// Projects returns distinct project names in ascending order.
	Projects(ctx context.Context) ([]string, error)
}

type logService struct {
	logs repository.LogRepository
}

// NewLogService creates a new log service.
func NewLogService(logs repository.LogRepository) LogService {
	return &logService{logs: logs}
}

func (s *logService) Create(ctx context.Context, project, description, date string) (model.LogEntry, error) {
	project, description, day, err := validateEntry(project, description, date)
	if err != nil {
		return model.LogEntry{}, err
	}

	entry := model.LogEntry{
		Project:     project,
		Description: description,
		Date:        day,
		CreatedAt:   time.Now(),
	}

	id, err := s.logs.Create(ctx, entry)
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("create log: %w", err)
	}
	entry.ID = id

	logger.Info("log entry created", "module", "service", "action", "create", "resource", "log", "result", "ok", "id", id, "project", project)
	return entry, nil
}

func (s *logService) GetByID(ctx context.Context, id int64) (model.LogEntry, error) {
	entry, err := s.logs.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return model.LogEntry{}, ErrNotFound
		}
		return model.LogEntry{}, err
	}
	return entry, nil
}

func (s *logService) List(ctx context.Context, limit int) ([]model.LogEntry, error) {
	entries, err := s.logs.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *logService) ListRange(ctx context.Context, start, end *time.Time) ([]model.LogEntry, error) {
	return s.logs.List(ctx, start, end)
}

func (s *logService) Update(ctx context.Context, id int64, project, description, date string) error {
	project, description, day, err := validateEntry(project, description, date)
	if err != nil {
		return err
	}

	updated, err := s.logs.Update(ctx, id, project, description, day)
	if err != nil {
		return fmt.Errorf("update log: %w", err)
	}
	if !updated {
		return ErrNotFound
	}

	logger.Info("log entry updated", "module", "service", "action", "update", "resource", "log", "result", "ok", "id", id)
	return nil
}

func (s *logService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.logs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	logger.Info("log entry deleted", "module", "service", "action", "delete", "resource", "log", "result", "ok", "id", id)
	return nil
}

func (s *logService) Clear(ctx context.Context) (int64, error) {
	deleted, err := s.logs.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear logs: %w", err)
	}
	logger.Info("log entries cleared", "module", "service", "action", "delete", "resource", "log", "result", "ok", "deleted", deleted)
	return deleted, nil
}

func (s *logService) Projects(ctx context.Context) ([]string, error) {
	return s.logs.ListProjects(ctx)
}

// validateEntry applies the entry boundary rules shared by create and update.
func validateEntry(project, description, date string) (string, string, time.Time, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", "", time.Time{}, fmt.Errorf("%w: description is required", ErrInvalid)
	}

	project = strings.TrimSpace(project)
	if project == "" {
		project = model.DefaultProject
	}

	var day time.Time
	if date == "" {
		day = truncateToDay(time.Now())
	} else {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return "", "", time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalid)
		}
		day = parsed
	}

	return project, description, day, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
