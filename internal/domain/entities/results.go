package entities

// PR outcome statuses reported by submit.
const (
	PROutcomeCreated = "created"
	PROutcomeUpdated = "updated"
	PROutcomeExists  = "exists"
)

// PullRequestOutcome describes what the submit flow did about the PR.
type PullRequestOutcome struct {
	Status string `json:"status"` // created, updated, or exists
	Number int    `json:"number,omitempty"`
	URL    string `json:"url,omitempty"`
}

// SubmitResult reports a submission. A result with Pushed=true and a non-empty
// Error is a partial success: the push happened, a downstream step failed, and
// re-running the command is safe because every downstream step is idempotent
// by bookmark lookup.
type SubmitResult struct {
	Pushed    bool                `json:"pushed"`
	Bookmark  string              `json:"bookmark,omitempty"`
	Base      string              `json:"base,omitempty"`
	Abandoned []string            `json:"abandoned,omitempty"` // change ids removed by the auto-abandon pass
	PR        *PullRequestOutcome `json:"pr,omitempty"`
	// Subscribed holds the PR numbers the agent session was subscribed to.
	Subscribed []int `json:"subscribed,omitempty"`
	// Error is set on partial success only; fatal failures are returned as errors.
	Error string `json:"error,omitempty"`
}

// PartialSuccess reports whether the push landed but a downstream step failed.
func (r SubmitResult) PartialSuccess() bool {
	return r.Pushed && r.Error != ""
}

// RestackResult reports a restack run.
type RestackResult struct {
	Fetched      bool     `json:"fetched"`
	RebasedCount int      `json:"rebasedCount"`
	Target       string   `json:"target"`
	NewConflicts []string `json:"newConflicts,omitempty"` // short change ids
}

// CleanupResult reports a bookmark-triggered workspace cleanup.
type CleanupResult struct {
	Removed bool   `json:"removed"`
	Name    string `json:"name,omitempty"`
}

// RemoveWorkspaceResult reports an explicit workspace removal. The logical
// removal and the on-disk deletion succeed or fail independently.
type RemoveWorkspaceResult struct {
	Name             string            `json:"name"`
	Presence         WorkspacePresence `json:"-"`
	PresenceLabel    string            `json:"presence"`
	ForgottenInVCS   bool              `json:"forgottenInVcs"`
	RemovedFromStore bool              `json:"removedFromStore"`
	FilesDeleted     bool              `json:"filesDeleted"`
	FileDeleteError  string            `json:"fileDeleteError,omitempty"`
}
