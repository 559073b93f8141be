package ai

import (
	"fmt"
	"strings"

	"github.com/hissain/fastrep/internal/model"
)

// Per-project task markers used in the batched instruction.
const (
	taskCondense = "condense"
	taskPolish   = "polish"
)

// GetEnrichPrompt returns the system prompt for the batched enrichment call.
// dateFormatDesc is the human-readable date pattern description (e.g. "MM/DD"),
// points the target bullet count (e.g. "3-5"). Custom instructions are
// appended verbatim when present.
func GetEnrichPrompt(dateFormatDesc, points, customInstructions string) string {
	prompt := fmt.Sprintf(`You are an expert editor of work-status reports. Rewrite each project's log entries as instructed.

<context>
<date_format>%s</date_format>
</context>

<instructions>
1. Respond with strict JSON ONLY: an object mapping each project name to an ordered array of {"date", "description"} objects
2. Every output line MUST have a "date" value: a single date or a date range formatted as %s
3. For projects marked "%s": reduce the entries to %s bullet points covering all significant work
4. For projects marked "%s": keep every entry's information content; only improve grammar and tone
5. Keep project names exactly as given, character for character
6. NEVER wrap the response in markdown code fences
7. NEVER add commentary before or after the JSON
</instructions>`, dateFormatDesc, dateFormatDesc, taskCondense, points, taskPolish)

	if customInstructions != "" {
		prompt += "\n\n" + customInstructions
	}
	return prompt
}

// BuildEnrichContent renders the grouped entries into the user prompt for a
// single batched call covering all projects. Projects whose entry count
// exceeds threshold are marked for condensation, the rest for polishing.
func BuildEnrichContent(grouped model.GroupedLogs, dateFormat string, threshold int) string {
	var b strings.Builder

	for _, project := range grouped.Projects() {
		entries := grouped[project]

		task := taskPolish
		if len(entries) > threshold {
			task = taskCondense
		}

		fmt.Fprintf(&b, "Project: %s\n", project)
		fmt.Fprintf(&b, "Task: %s\n", task)
		fmt.Fprintf(&b, "Entries (%d):\n", len(entries))
		for _, e := range entries {
			fmt.Fprintf(&b, "- %s: %s\n", e.Date.Format(dateFormat), e.Description)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// BuildProjectContent renders one project's entries for the legacy
// one-call-per-project path.
func BuildProjectContent(project string, entries []model.LogEntry, dateFormat string, threshold int) string {
	grouped := model.GroupedLogs{project: entries}
	return BuildEnrichContent(grouped, dateFormat, threshold)
}
