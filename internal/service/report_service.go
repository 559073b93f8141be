package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hissain/fastrep/internal/logger"
	"github.com/hissain/fastrep/internal/model"
	"github.com/hissain/fastrep/internal/repository"
)

const (
	separatorWidth   = 60
	emptyReportText  = "No logs found for this period."
	emptyReportHTML  = "<p>No logs found for this period.</p>"
	headerPrefixText = "Report Period: "
	headerFormatHTML = "<p><strong>Report Period:</strong> %s - %s</p>"
)

// GenerateParams selects the report window. An explicit Start or End
// bypasses Mode entirely; either bound is optional.
type GenerateParams struct {
	Mode  string
	Start *time.Time
	End   *time.Time
}

// ReportService assembles periodic reports: it fetches entries for the
// window, groups them by project, optionally enriches the groups once, and
// renders text and HTML from the same grouped data.
type ReportService interface {
	Generate(ctx context.Context, params GenerateParams) (model.Report, error)
}

type reportService struct {
	logs     repository.LogRepository
	settings repository.SettingsRepository
	enricher EnrichService
	sanitize *bluemonday.Policy
	now      func() time.Time
}

// NewReportService creates a new report service. enricher may be nil to
// disable AI enrichment entirely; now may be nil for the wall clock.
func NewReportService(logs repository.LogRepository, settings repository.SettingsRepository, enricher EnrichService, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{
		logs:     logs,
		settings: settings,
		enricher: enricher,
		sanitize: bluemonday.UGCPolicy(),
		now:      now,
	}
}

// ResolveRange computes the inclusive [start, end] window for a named mode,
// anchored to today truncated to midnight. All modes are rolling windows;
// monthly is the last 30 days, not the calendar month.
func ResolveRange(mode string, today time.Time) (time.Time, time.Time, error) {
	today = truncateToDay(today)

	switch mode {
	case model.ModeWeekly:
		return today.AddDate(0, 0, -6), today, nil
	case model.ModeBiweekly:
		return today.AddDate(0, 0, -13), today, nil
	case model.ModeMonthly:
		return today.AddDate(0, 0, -30), today, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown report mode %q", ErrInvalid, mode)
	}
}

// GroupLogs partitions entries by exact project name and orders each group
// by date descending, creation time descending.
func GroupLogs(entries []model.LogEntry) model.GroupedLogs {
	grouped := model.GroupedLogs{}
	for _, e := range entries {
		grouped[e.Project] = append(grouped[e.Project], e)
	}

	for _, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].Date.Equal(group[j].Date) {
				return group[i].Date.After(group[j].Date)
			}
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
	}
	return grouped
}

func (s *reportService) Generate(ctx context.Context, params GenerateParams) (model.Report, error) {
	mode := params.Mode
	var start, end *time.Time

	if params.Start != nil || params.End != nil {
		// Explicit range wins over mode
		mode = ""
		if params.Start != nil {
			t := truncateToDay(*params.Start)
			start = &t
		}
		if params.End != nil {
			t := truncateToDay(*params.End)
			end = &t
		}
	} else {
		st, en, err := ResolveRange(mode, s.now())
		if err != nil {
			return model.Report{}, err
		}
		start, end = &st, &en
	}

	entries, err := s.logs.List(ctx, start, end)
	if err != nil {
		return model.Report{}, fmt.Errorf("list logs: %w", err)
	}

	tmpl := s.template(ctx)
	grouped := GroupLogs(entries)

	// Enrichment runs at most once per request; both renderings share it.
	var summary model.SummaryResult
	if s.enricher != nil && mode != "" && len(grouped) > 0 {
		summary = s.enricher.Enrich(ctx, mode, grouped, tmpl)
	}

	report := model.Report{
		Mode:  mode,
		Start: start,
		End:   end,
		Text:  s.renderText(grouped, summary, tmpl, start, end),
		HTML:  s.renderHTML(grouped, summary, tmpl, start, end),
	}

	logger.Info("report generated", "module", "service", "action", "fetch", "resource", "report", "result", "ok", "mode", mode, "entries", len(entries), "projects", len(grouped), "enriched", summary != nil)
	return report, nil
}

// template resolves the configured presentation template, defaulting to
// classic for missing or unknown names.
func (s *reportService) template(ctx context.Context) model.ReportTemplate {
	name := ""
	if setting, err := s.settings.Get(ctx, keyReportTemplate); err == nil && setting != nil {
		name = setting.Value
	}
	return model.TemplateByName(name)
}

func (s *reportService) renderText(grouped model.GroupedLogs, summary model.SummaryResult, tmpl model.ReportTemplate, start, end *time.Time) string {
	if len(grouped) == 0 {
		return emptyReportText
	}

	var lines []string

	if tmpl.ShowHeader && start != nil && end != nil {
		lines = append(lines,
			headerPrefixText+start.Format(tmpl.DateFormat)+" - "+end.Format(tmpl.DateFormat),
			strings.Repeat("=", separatorWidth),
			"",
		)
	}

	for _, project := range grouped.Projects() {
		lines = append(lines, "Project: "+project, strings.Repeat("-", separatorWidth))

		if replacement, ok := summary[project]; ok {
			for _, line := range replacement {
				lines = append(lines, fmt.Sprintf(tmpl.TextLine, line.Date, line.Description))
			}
		} else {
			for _, e := range grouped[project] {
				lines = append(lines, fmt.Sprintf(tmpl.TextLine, e.Date.Format(tmpl.DateFormat), e.Description))
			}
		}

		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (s *reportService) renderHTML(grouped model.GroupedLogs, summary model.SummaryResult, tmpl model.ReportTemplate, start, end *time.Time) string {
	if len(grouped) == 0 {
		return emptyReportHTML
	}

	var parts []string

	if tmpl.ShowHeader && start != nil && end != nil {
		parts = append(parts, fmt.Sprintf(headerFormatHTML, start.Format(tmpl.DateFormat), end.Format(tmpl.DateFormat)))
	}

	for _, project := range grouped.Projects() {
		parts = append(parts, "<h4>"+html.EscapeString(project)+"</h4>", "<ul>")

		if replacement, ok := summary[project]; ok {
			for _, line := range replacement {
				parts = append(parts, fmt.Sprintf(tmpl.HTMLLine, html.EscapeString(line.Date), s.sanitize.Sanitize(line.Description)))
			}
		} else {
			for _, e := range grouped[project] {
				parts = append(parts, fmt.Sprintf(tmpl.HTMLLine, e.Date.Format(tmpl.DateFormat), s.sanitize.Sanitize(e.Description)))
			}
		}

		parts = append(parts, "</ul>")
	}

	return strings.Join(parts, "")
}
