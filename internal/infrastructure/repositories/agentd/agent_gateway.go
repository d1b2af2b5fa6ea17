package agentd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rios0rios0/ship/internal/domain/entities"
	domainRepos "github.com/rios0rios0/ship/internal/domain/repositories"
)

const (
	// daemonTimeout is short: the daemon is local, either it answers fast or
	// it is not there.
	daemonTimeout = 10 * time.Second
	maxRetries    = 3
)

// AgentGateway implements the agent-notification port against the local agent
// daemon's HTTP API.
type AgentGateway struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewAgentGateway creates a gateway for the configured daemon URL.
func NewAgentGateway(settings *entities.Settings) domainRepos.AgentGateway {
	client := retryablehttp.NewClient()
	client.RetryMax = maxRetries
	client.HTTPClient.Timeout = daemonTimeout
	client.Logger = nil // logrus handles our logging

	return &AgentGateway{
		baseURL: settings.Agent.URL,
		client:  client,
	}
}

// IsRunning reports whether the daemon answers its health endpoint.
func (it *AgentGateway) IsRunning(ctx context.Context) bool {
	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodGet, it.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Subscribe registers the session for events on the given PR numbers.
func (it *AgentGateway) Subscribe(ctx context.Context, sessionID string, prNumbers []int) error {
	return it.post(ctx, it.baseURL+"/subscriptions", sessionID, prNumbers)
}

// Unsubscribe removes the session's registration for the given PR numbers.
func (it *AgentGateway) Unsubscribe(
	ctx context.Context,
	sessionID string,
	prNumbers []int,
	serverURL string,
) error {
	baseURL := it.baseURL
	if serverURL != "" {
		baseURL = serverURL
	}
	return it.post(ctx, baseURL+"/subscriptions/remove", sessionID, prNumbers)
}

func (it *AgentGateway) post(ctx context.Context, url, sessionID string, prNumbers []int) error {
	body, err := json.Marshal(map[string]interface{}{
		"sessionId": sessionID,
		"prNumbers": prNumbers,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := it.client.Do(req)
	if err != nil {
		return fmt.Errorf("agent daemon request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("agent daemon returned %d", resp.StatusCode)
	}
	return nil
}
