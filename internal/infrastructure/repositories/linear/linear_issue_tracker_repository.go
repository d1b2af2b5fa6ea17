package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rios0rios0/ship/internal/domain/entities"
	domainRepos "github.com/rios0rios0/ship/internal/domain/repositories"
)

const (
	defaultAPIURL = "https://api.linear.app/graphql"

	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// IssueTrackerRepository implements the issue-tracker port against Linear's
// GraphQL API.
type IssueTrackerRepository struct {
	apiURL string
	token  string
	client *retryablehttp.Client
}

// NewIssueTrackerRepository creates a Linear-backed tracker repository.
func NewIssueTrackerRepository(settings *entities.Settings) domainRepos.IssueTrackerRepository {
	apiURL := settings.Tracker.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	client := retryablehttp.NewClient()
	client.RetryMax = maxRetries
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = nil // logrus handles our logging

	return &IssueTrackerRepository{
		apiURL: apiURL,
		token:  settings.Tracker.Token,
		client: client,
	}
}

const issueQuery = `query Issue($id: String!) {
  issue(id: $id) {
    id identifier title description url
    relations { nodes { type relatedIssue { id } } }
    inverseRelations { nodes { type issue { id } } }
  }
}`

// GetTask fetches a task by its opaque id.
func (it *IssueTrackerRepository) GetTask(ctx context.Context, id string) (entities.Task, error) {
	return it.fetchIssue(ctx, id)
}

// GetTaskByIdentifier fetches a task by its human-facing key, e.g. "BRI-123".
// Linear accepts identifiers wherever issue ids are accepted.
func (it *IssueTrackerRepository) GetTaskByIdentifier(
	ctx context.Context,
	identifier string,
) (entities.Task, error) {
	return it.fetchIssue(ctx, identifier)
}

type issuePayload struct {
	Data struct {
		Issue *struct {
			ID          string `json:"id"`
			Identifier  string `json:"identifier"`
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Relations   struct {
				Nodes []relationNode `json:"nodes"`
			} `json:"relations"`
			InverseRelations struct {
				Nodes []inverseRelationNode `json:"nodes"`
			} `json:"inverseRelations"`
		} `json:"issue"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type relationNode struct {
	Type         string `json:"type"`
	RelatedIssue struct {
		ID string `json:"id"`
	} `json:"relatedIssue"`
}

type inverseRelationNode struct {
	Type  string `json:"type"`
	Issue struct {
		ID string `json:"id"`
	} `json:"issue"`
}

func (it *IssueTrackerRepository) fetchIssue(
	ctx context.Context,
	id string,
) (entities.Task, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query":     issueQuery,
		"variables": map[string]string{"id": id},
	})
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, it.apiURL, bytes.NewReader(body))
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", it.token)

	resp, err := it.client.Do(req)
	if err != nil {
		return entities.Task{}, fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return entities.Task{}, &entities.CollaboratorError{
			Kind:  entities.KindNotAuthenticated,
			Tool:  "linear",
			Cause: fmt.Errorf("tracker returned %d", resp.StatusCode),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return entities.Task{}, fmt.Errorf("tracker returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to read tracker response: %w", err)
	}

	var payload issuePayload
	if unmarshalErr := json.Unmarshal(data, &payload); unmarshalErr != nil {
		return entities.Task{}, fmt.Errorf("failed to parse tracker response: %w", unmarshalErr)
	}
	if len(payload.Errors) > 0 {
		return entities.Task{}, fmt.Errorf("tracker error: %s", payload.Errors[0].Message)
	}
	if payload.Data.Issue == nil {
		return entities.Task{}, fmt.Errorf("task %q not found", id)
	}

	issue := payload.Data.Issue
	task := entities.Task{
		ID:          issue.ID,
		Identifier:  issue.Identifier,
		Title:       issue.Title,
		Description: issue.Description,
		URL:         issue.URL,
	}

	for _, node := range issue.Relations.Nodes {
		if node.Type == "blocks" {
			task.Blocks = append(task.Blocks, node.RelatedIssue.ID)
		}
	}
	for _, node := range issue.InverseRelations.Nodes {
		if node.Type == "blocks" {
			task.BlockedBy = append(task.BlockedBy, node.Issue.ID)
		}
	}

	return task, nil
}
