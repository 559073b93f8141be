package model

import (
	"sort"
	"time"
)

// Report mode constants
const (
	ModeWeekly   = "weekly"
	ModeBiweekly = "biweekly"
	ModeMonthly  = "monthly"
)

// Report holds both renderings of one report request. Text and HTML are
// derived from the same grouped (and optionally enriched) data.
type Report struct {
	Mode  string
	Start *time.Time
	End   *time.Time
	Text  string
	HTML  string
}

// GroupedLogs maps a project name to its entries within the requested range,
// sorted by date descending then creation time descending. Never persisted;
// recomputed per report request.
type GroupedLogs map[string][]LogEntry

// Projects returns the group keys in ascending lexicographic order.
func (g GroupedLogs) Projects() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SummaryLine is one AI-produced output line. Date is a pre-formatted label
// (a single date or a range) and is rendered verbatim, never re-formatted.
type SummaryLine struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// SummaryResult maps a project name to its replacement lines for one report
// render. A nil result means enrichment was skipped or failed; the assembler
// then falls back to verbatim formatted entries.
type SummaryResult map[string][]SummaryLine
