//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// RebaseCall records a single invocation of Rebase.
type RebaseCall struct {
	SourceID     string
	DestBookmark string
}

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
type SpyVCSRepository struct {
	// --- availability ---
	Available bool
	InRepo    bool

	// --- change reads ---
	Current        entities.Change
	CurrentErr     error
	Parent         entities.Change
	ParentErr      error
	Grandparent    entities.Change
	GrandparentErr error

	// --- GetStack / GetLog ---
	Stack    entities.Stack
	StackErr error
	// RestackedStack, when non-nil, is returned by GetStack after a Rebase.
	RestackedStack entities.Stack
	LogChanges     []entities.Change
	LogErr         error
	LogRevsets     []string

	// --- Push ---
	PushErr error
	// PushErrFor fails the push of specific bookmarks only.
	PushErrFor      map[string]error
	PushedBookmarks []string

	// --- Fetch ---
	FetchErr error
	Fetched  bool

	// --- Rebase ---
	RebaseErr   error
	RebaseCalls []RebaseCall

	// --- Abandon ---
	AbandonResult entities.Change
	AbandonErr    error
	// AbandonErrFor fails abandoning specific change ids only.
	AbandonErrFor map[string]error
	AbandonedIDs  []string

	// --- bookmarks / workspaces ---
	CreateBookmarkErr  error
	CreatedBookmarks   []string
	CreateWorkspaceErr error
	CreatedWorkspaces  []string
	Workspaces         []entities.Workspace
	ListWorkspacesErr  error
	ForgetErr          error
	ForgottenNames     []string
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (v *SpyVCSRepository) IsAvailable(_ context.Context) bool { return v.Available }
func (v *SpyVCSRepository) IsRepo(_ context.Context) bool      { return v.InRepo }

func (v *SpyVCSRepository) GetCurrentChange(_ context.Context) (entities.Change, error) {
	return v.Current, v.CurrentErr
}

func (v *SpyVCSRepository) GetParentChange(_ context.Context) (entities.Change, error) {
	return v.Parent, v.ParentErr
}

func (v *SpyVCSRepository) GetGrandparentChange(_ context.Context) (entities.Change, error) {
	return v.Grandparent, v.GrandparentErr
}

func (v *SpyVCSRepository) GetStack(_ context.Context) (entities.Stack, error) {
	if v.RestackedStack != nil && len(v.RebaseCalls) > 0 {
		return v.RestackedStack, nil
	}
	return v.Stack, v.StackErr
}

func (v *SpyVCSRepository) GetLog(_ context.Context, revset string) ([]entities.Change, error) {
	v.LogRevsets = append(v.LogRevsets, revset)
	return v.LogChanges, v.LogErr
}

func (v *SpyVCSRepository) Push(_ context.Context, bookmark string) (entities.PushResult, error) {
	v.PushedBookmarks = append(v.PushedBookmarks, bookmark)
	if err, ok := v.PushErrFor[bookmark]; ok {
		return entities.PushResult{}, err
	}
	if v.PushErr != nil {
		return entities.PushResult{}, v.PushErr
	}
	return entities.PushResult{Bookmark: bookmark, Remote: "origin"}, nil
}

func (v *SpyVCSRepository) Fetch(_ context.Context) error {
	v.Fetched = true
	return v.FetchErr
}

func (v *SpyVCSRepository) Rebase(_ context.Context, sourceID, destBookmark string) error {
	v.RebaseCalls = append(v.RebaseCalls, RebaseCall{SourceID: sourceID, DestBookmark: destBookmark})
	return v.RebaseErr
}

func (v *SpyVCSRepository) Abandon(_ context.Context, changeID string) (entities.Change, error) {
	if err, ok := v.AbandonErrFor[changeID]; ok {
		return entities.Change{}, err
	}
	if v.AbandonErr != nil {
		return entities.Change{}, v.AbandonErr
	}
	v.AbandonedIDs = append(v.AbandonedIDs, changeID)
	return v.AbandonResult, nil
}

func (v *SpyVCSRepository) CreateBookmark(_ context.Context, name, _ string) error {
	v.CreatedBookmarks = append(v.CreatedBookmarks, name)
	return v.CreateBookmarkErr
}

func (v *SpyVCSRepository) CreateWorkspace(_ context.Context, name, _ string) error {
	v.CreatedWorkspaces = append(v.CreatedWorkspaces, name)
	return v.CreateWorkspaceErr
}

func (v *SpyVCSRepository) ListWorkspaces(_ context.Context) ([]entities.Workspace, error) {
	return v.Workspaces, v.ListWorkspacesErr
}

func (v *SpyVCSRepository) ForgetWorkspace(_ context.Context, name string) error {
	if v.ForgetErr != nil {
		return v.ForgetErr
	}
	v.ForgottenNames = append(v.ForgottenNames, name)
	return nil
}
