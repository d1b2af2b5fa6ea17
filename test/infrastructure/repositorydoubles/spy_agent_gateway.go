//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// SubscribeCall records a single invocation of Subscribe or Unsubscribe.
type SubscribeCall struct {
	SessionID string
	PRNumbers []int
	ServerURL string
}

// SpyAgentGateway implements repositories.AgentGateway as a configurable spy.
type SpyAgentGateway struct {
	Running        bool
	SubscribeErr   error
	Subscriptions  []SubscribeCall
	UnsubscribeErr error
	Removals       []SubscribeCall
}

var _ repositories.AgentGateway = (*SpyAgentGateway)(nil)

func (a *SpyAgentGateway) IsRunning(_ context.Context) bool { return a.Running }

func (a *SpyAgentGateway) Subscribe(_ context.Context, sessionID string, prNumbers []int) error {
	a.Subscriptions = append(a.Subscriptions, SubscribeCall{
		SessionID: sessionID,
		PRNumbers: prNumbers,
	})
	return a.SubscribeErr
}

func (a *SpyAgentGateway) Unsubscribe(
	_ context.Context,
	sessionID string,
	prNumbers []int,
	serverURL string,
) error {
	a.Removals = append(a.Removals, SubscribeCall{
		SessionID: sessionID,
		PRNumbers: prNumbers,
		ServerURL: serverURL,
	})
	return a.UnsubscribeErr
}
