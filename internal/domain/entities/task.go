package entities

// Task is a read-only projection of an issue-tracker task. Ship consumes it
// only as input to PR body generation; all task mutation is delegated to the
// tracker itself.
type Task struct {
	ID          string
	Identifier  string // human-facing key, e.g. "BRI-123"
	Title       string
	Description string
	URL         string
	BlockedBy   []string
	Blocks      []string
}
