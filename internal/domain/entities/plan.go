package entities

// PlanActionKind says what the reconciler decided for one change in the stack.
type PlanActionKind string

const (
	// ActionCreate means no PR exists for the bookmark yet.
	ActionCreate PlanActionKind = "create"
	// ActionRetarget means a PR exists but its base branch is wrong.
	ActionRetarget PlanActionKind = "retarget"
	// ActionNoop means the existing PR already matches the plan.
	ActionNoop PlanActionKind = "noop"
)

// PlanAction is one entry of an ordered action plan. Actions are emitted
// base-first and must be executed in order: the base of each entry is the
// bookmark of the previous one.
type PlanAction struct {
	Kind     PlanActionKind `json:"kind"`
	ChangeID string         `json:"changeId"`
	Bookmark string         `json:"bookmark"`
	Base     string         `json:"base"`
	Title    string         `json:"title,omitempty"`
	Body     string         `json:"body,omitempty"`
	// PRNumber is set for retarget and noop actions.
	PRNumber int `json:"prNumber,omitempty"`
	// URL is set for noop and retarget actions when known.
	URL string `json:"url,omitempty"`
}

// Plan is the ordered action plan for an entire stack.
type Plan struct {
	Actions []PlanAction `json:"actions"`
}

// ActionResult reports the execution outcome of a single plan action.
type ActionResult struct {
	Action PlanAction   `json:"action"`
	PR     *PullRequest `json:"pr,omitempty"`
	Err    string       `json:"error,omitempty"`
}
