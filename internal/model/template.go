package model

// ReportTemplate is a named, immutable presentation rule set. The set is
// fixed at compile time; unknown names resolve to the classic template at
// the boundary via TemplateByName.
type ReportTemplate struct {
	Name string
	// DateFormat is the Go reference layout used for entry dates.
	DateFormat string
	// DateFormatDesc is the human-readable description of DateFormat,
	// embedded in enrichment instructions (e.g. "MM/DD").
	DateFormatDesc string
	// ShowHeader controls the period header line.
	ShowHeader bool
	// TextLine and HTMLLine are fmt layouts taking (date, description).
	TextLine string
	HTMLLine string
}

// Template name constants
const (
	TemplateClassic = "classic"
	TemplateISO     = "iso"
	TemplateCompact = "compact"
)

var templates = map[string]ReportTemplate{
	TemplateClassic: {
		Name:           TemplateClassic,
		DateFormat:     "01/02",
		DateFormatDesc: "MM/DD",
		ShowHeader:     true,
		TextLine:       "  * %s - %s",
		HTMLLine:       "<li><strong>%s</strong> - %s</li>",
	},
	TemplateISO: {
		Name:           TemplateISO,
		DateFormat:     "2006-01-02",
		DateFormatDesc: "YYYY-MM-DD",
		ShowHeader:     true,
		TextLine:       "  - %s  %s",
		HTMLLine:       "<li><code>%s</code> %s</li>",
	},
	TemplateCompact: {
		Name:           TemplateCompact,
		DateFormat:     "01/02",
		DateFormatDesc: "MM/DD",
		ShowHeader:     false,
		TextLine:       "%s %s",
		HTMLLine:       "<li>%s %s</li>",
	},
}

// TemplateByName resolves a template name. Unknown or empty names fall back
// to the classic template so rendering never has to special-case.
func TemplateByName(name string) ReportTemplate {
	if t, ok := templates[name]; ok {
		return t
	}
	return templates[TemplateClassic]
}

// TemplateNames returns the fixed template set for settings validation.
func TemplateNames() []string {
	return []string{TemplateClassic, TemplateISO, TemplateCompact}
}
