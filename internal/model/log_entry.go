package model

import "time"

// DefaultProject is assigned when an entry is logged without a project.
const DefaultProject = "Misc"

// LogEntry represents a single dated, project-tagged work note.
// Entries are immutable once persisted except through an explicit update
// that replaces project, description and date together.
type LogEntry struct {
	ID          int64
	Project     string
	Description string
	Date        time.Time // day granularity, no time-of-day semantics
	CreatedAt   time.Time // set once; tie-breaker for entries on the same day
}
