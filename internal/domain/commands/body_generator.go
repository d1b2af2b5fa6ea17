package commands

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

const (
	// summaryMaxLen caps the Summary section when it falls back to the raw
	// task description.
	summaryMaxLen = 500

	// minSentenceCutRatio: a sentence boundary is only preferred when it sits
	// beyond this share of the truncation window, otherwise too much text
	// would be lost.
	minSentenceCutRatio = 0.3
)

// taskIDPattern matches a task identifier at the start of a bookmark name or
// immediately after a "/" separator. Anchoring prevents false positives like
// extracting "add-123" from "feature-add-123-items".
var taskIDPattern = regexp.MustCompile(`(?i)(?:^|/)([a-z]{1,5}-\d+)`)

// checkboxPattern matches markdown checkbox lines, checked or not.
var checkboxPattern = regexp.MustCompile(`(?m)^\s*(?:-\s*)?\[(?: |x|X)\]\s*(.+)$`)

// markdownHeaderPattern splits a description into header-delimited sections.
var markdownHeaderPattern = regexp.MustCompile(`(?m)^#{1,6}\s`)

// PRContent is the generated title and body for a pull request.
type PRContent struct {
	Title              string
	Body               string
	AcceptanceCriteria []string
}

// ExtractTaskID pulls a task identifier out of a bookmark name. The identifier
// must appear at the start of the name or right after a "/", have a 1-5 letter
// prefix, and end in digits. Matches are uppercased; "" means no match.
func ExtractTaskID(bookmark string) string {
	match := taskIDPattern.FindStringSubmatch(bookmark)
	if match == nil {
		return ""
	}
	return strings.ToUpper(match[1])
}

// SmartTruncate shortens text to at most maxLen characters plus an ellipsis.
// It prefers cutting at a sentence boundary when one sits beyond 30% of the
// window, then at a word boundary, and hard-cuts as a last resort.
func SmartTruncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}

	window := text[:maxLen]

	if idx := strings.LastIndex(window, ". "); idx >= 0 {
		if float64(idx) >= float64(maxLen)*minSentenceCutRatio {
			return window[:idx+1] + "..."
		}
	}

	if idx := strings.LastIndex(window, " "); idx > 0 {
		return window[:idx] + "..."
	}

	return window + "..."
}

// GeneratePRContent derives a PR title and body from a tracker task, the
// effective change, and the surrounding stack. Sections are emitted only when
// non-empty, in fixed order: Summary, Task, Changes, Acceptance Criteria.
func GeneratePRContent(
	task entities.Task,
	summaryOverride string,
	stack entities.Stack,
) PRContent {
	title := fmt.Sprintf("%s: %s", task.Identifier, task.Title)

	var sections []string

	summary := resolveSummary(task, summaryOverride)
	if summary != "" {
		sections = append(sections, "## Summary\n\n"+summary)
	}

	if task.Identifier != "" {
		sections = append(sections, "## Task\n\n"+taskLink(task))
	}

	if changes := renderChangesSection(stack); changes != "" {
		sections = append(sections, changes)
	}

	criteria := extractAcceptanceCriteria(task.Description)
	switch {
	case len(criteria) > 0:
		items := make([]string, 0, len(criteria))
		for _, criterion := range criteria {
			items = append(items, "- [ ] "+criterion)
		}
		sections = append(sections, "## Acceptance Criteria\n\n"+strings.Join(items, "\n"))
	case mentionsAcceptanceCriteria(task.Description):
		// The task talks about acceptance criteria in prose we could not
		// extract. Point back at the task instead of emitting nothing.
		sections = append(sections,
			"## Acceptance Criteria\n\nSee "+taskLink(task)+" for acceptance criteria.")
	}

	return PRContent{
		Title:              title,
		Body:               strings.Join(sections, "\n\n"),
		AcceptanceCriteria: criteria,
	}
}

// GenerateMinimalPRContent derives a PR body from the change alone, for
// submissions with no associated tracker task.
func GenerateMinimalPRContent(change entities.Change, stack entities.Stack) PRContent {
	title := change.Title()
	if title == "" {
		title = change.Bookmark()
	}

	summary := strings.TrimSpace(change.Description)
	if summary == "" {
		summary = "(No description)"
	}

	sections := []string{"## Summary\n\n" + summary}
	if changes := renderChangesSection(stack); changes != "" {
		sections = append(sections, changes)
	}

	return PRContent{
		Title: title,
		Body:  strings.Join(sections, "\n\n"),
	}
}

func resolveSummary(task entities.Task, override string) string {
	if override != "" {
		return override
	}

	description := strings.TrimSpace(task.Description)
	if description == "" {
		return task.Title
	}

	if paragraph := firstParagraph(description); paragraph != "" {
		return paragraph
	}

	return SmartTruncate(description, summaryMaxLen)
}

// firstParagraph returns the text before the first markdown header, or "" when
// the description starts with a header.
func firstParagraph(description string) string {
	loc := markdownHeaderPattern.FindStringIndex(description)
	if loc == nil {
		return SmartTruncate(description, summaryMaxLen)
	}
	return strings.TrimSpace(description[:loc[0]])
}

// renderChangesSection lists the stack's real changes, oldest first, skipping
// empty or undescribed entries.
func renderChangesSection(stack entities.Stack) string {
	var items []string
	for i := len(stack) - 1; i >= 0; i-- {
		change := stack[i]
		if change.IsEmpty || !change.HasDescription() {
			continue
		}
		items = append(items, fmt.Sprintf("- %s (`%s`)", change.Title(), change.ShortID()))
	}
	if len(items) == 0 {
		return ""
	}
	return "## Changes\n\n" + strings.Join(items, "\n")
}

func extractAcceptanceCriteria(description string) []string {
	matches := checkboxPattern.FindAllStringSubmatch(description, -1)
	criteria := make([]string, 0, len(matches))
	for _, match := range matches {
		criteria = append(criteria, strings.TrimSpace(match[1]))
	}
	return criteria
}

func mentionsAcceptanceCriteria(description string) bool {
	return strings.Contains(strings.ToLower(description), "acceptance criteria")
}

func taskLink(task entities.Task) string {
	if task.URL == "" {
		return task.Identifier
	}
	return fmt.Sprintf("[%s](%s)", task.Identifier, task.URL)
}
