package repositories

import "context"

// AgentGateway lets a running agent session follow a set of PRs. All calls go
// to a local daemon; IsRunning gates every other call.
type AgentGateway interface {
	// IsRunning reports whether the local agent daemon answers health checks.
	IsRunning(ctx context.Context) bool

	// Subscribe registers the session for events on the given PR numbers.
	Subscribe(ctx context.Context, sessionID string, prNumbers []int) error

	// Unsubscribe removes the session's registration for the given PR numbers.
	// serverURL overrides the configured daemon URL when non-empty.
	Unsubscribe(ctx context.Context, sessionID string, prNumbers []int, serverURL string) error
}
