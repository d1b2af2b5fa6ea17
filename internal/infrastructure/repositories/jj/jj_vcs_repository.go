package jj

import (
	"context"
	"fmt"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/ship/internal/domain/entities"
	domainRepos "github.com/rios0rios0/ship/internal/domain/repositories"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/shell"
)

const (
	toolName = "jj"

	// minVersion is the oldest jj release whose template and workspace
	// surface this adapter relies on.
	minVersion = "v0.20.0"

	// localTimeout bounds purely local jj invocations.
	localTimeout = 10 * time.Second
	// networkTimeout bounds push and fetch, which talk to the remote.
	networkTimeout = 60 * time.Second

	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// changeTemplate renders one change per record, fields separated by the ASCII
// unit separator so multi-line descriptions survive parsing. The separators
// are embedded as raw bytes because jj's template strings have no \x escapes.
var changeTemplate = strings.Join([]string{
	"commit_id",
	"change_id",
	"description",
	"author.email()",
	`committer.timestamp().format("%Y-%m-%dT%H:%M:%S%z")`,
	`bookmarks.join(",")`,
	`if(current_working_copy, "1", "0")`,
	`if(empty, "1", "0")`,
	`if(conflict, "1", "0")`,
}, ` ++ "`+fieldSep+`" ++ `) + ` ++ "` + recordSep + `"`

const changeFieldCount = 9

// VCSRepository implements the VCS port by shelling out to the jj CLI.
type VCSRepository struct {
	runner   shell.CommandRunner
	settings *entities.Settings
}

// NewVCSRepository creates a jj-backed VCS repository.
func NewVCSRepository(
	runner shell.CommandRunner,
	settings *entities.Settings,
) domainRepos.VCSRepository {
	return &VCSRepository{runner: runner, settings: settings}
}

// IsAvailable checks that jj is installed and at least minVersion.
func (it *VCSRepository) IsAvailable(ctx context.Context) bool {
	stdout, _, err := it.run(ctx, localTimeout, "--version")
	if err != nil {
		return false
	}

	// Output shape: "jj 0.23.0" (possibly with a build suffix).
	fields := strings.Fields(stdout)
	if len(fields) < 2 {
		return false
	}
	version := "v" + strings.TrimPrefix(fields[1], "v")
	if !semver.IsValid(version) {
		return false
	}
	if semver.Compare(version, minVersion) < 0 {
		logger.Warnf("jj %s is older than the minimum supported %s", fields[1], minVersion)
		return false
	}
	return true
}

// IsRepo reports whether the working directory is inside a jj repository.
func (it *VCSRepository) IsRepo(ctx context.Context) bool {
	_, err := shell.FindRepoRoot(".")
	if err != nil {
		return false
	}
	_, _, rootErr := it.run(ctx, localTimeout, "root")
	return rootErr == nil
}

// GetCurrentChange returns the working-copy change (@).
func (it *VCSRepository) GetCurrentChange(ctx context.Context) (entities.Change, error) {
	return it.getSingleChange(ctx, "@")
}

// GetParentChange returns the parent of the working copy (@-).
func (it *VCSRepository) GetParentChange(ctx context.Context) (entities.Change, error) {
	return it.getSingleChange(ctx, "@-")
}

// GetGrandparentChange returns the grandparent of the working copy (@--).
func (it *VCSRepository) GetGrandparentChange(ctx context.Context) (entities.Change, error) {
	return it.getSingleChange(ctx, "@--")
}

// GetStack returns trunk()..@ newest first.
func (it *VCSRepository) GetStack(ctx context.Context) (entities.Stack, error) {
	changes, err := it.GetLog(ctx, "trunk()..@")
	if err != nil {
		return nil, err
	}
	return entities.Stack(changes), nil
}

// GetLog returns the changes matching the given revset, newest first.
func (it *VCSRepository) GetLog(ctx context.Context, revset string) ([]entities.Change, error) {
	var stdout string
	err := shell.RetryIdempotent(ctx, func() error {
		var runErr error
		stdout, _, runErr = it.run(ctx, localTimeout,
			"log", "--no-graph", "-r", revset, "-T", changeTemplate)
		return runErr
	})
	if err != nil {
		return nil, err
	}
	return parseChanges(stdout)
}

// Push pushes a single bookmark. Safe to retry: pushing an unchanged bookmark
// is a no-op on the remote.
func (it *VCSRepository) Push(ctx context.Context, bookmark string) (entities.PushResult, error) {
	err := shell.RetryIdempotent(ctx, func() error {
		_, _, runErr := it.run(ctx, networkTimeout,
			"git", "push", "--bookmark", bookmark, "--remote", it.settings.Remote, "--allow-new")
		return runErr
	})
	if err != nil {
		return entities.PushResult{}, err
	}

	return entities.PushResult{Bookmark: bookmark, Remote: it.settings.Remote}, nil
}

// Fetch updates remote-tracking state.
func (it *VCSRepository) Fetch(ctx context.Context) error {
	return shell.RetryIdempotent(ctx, func() error {
		_, _, runErr := it.run(ctx, networkTimeout, "git", "fetch", "--remote", it.settings.Remote)
		return runErr
	})
}

// Rebase moves sourceID and its descendants onto the given bookmark.
// Not retried: a partially applied rebase must surface, not repeat.
func (it *VCSRepository) Rebase(ctx context.Context, sourceID, destBookmark string) error {
	_, _, err := it.run(ctx, localTimeout, "rebase", "-s", sourceID, "-d", destBookmark)
	return err
}

// Abandon abandons the given change and returns the new working copy.
func (it *VCSRepository) Abandon(ctx context.Context, changeID string) (entities.Change, error) {
	args := []string{"abandon"}
	if changeID != "" {
		args = append(args, changeID)
	}
	if _, _, err := it.run(ctx, localTimeout, args...); err != nil {
		return entities.Change{}, err
	}
	return it.GetCurrentChange(ctx)
}

// CreateBookmark creates a bookmark at ref, or at the working copy.
func (it *VCSRepository) CreateBookmark(ctx context.Context, name, ref string) error {
	args := []string{"bookmark", "create", name}
	if ref != "" {
		args = append(args, "-r", ref)
	}
	_, _, err := it.run(ctx, localTimeout, args...)
	return err
}

// CreateWorkspace adds a workspace rooted at path.
func (it *VCSRepository) CreateWorkspace(ctx context.Context, name, path string) error {
	_, _, err := it.run(ctx, localTimeout, "workspace", "add", "--name", name, path)
	return err
}

// ListWorkspaces returns the live workspace listing.
func (it *VCSRepository) ListWorkspaces(ctx context.Context) ([]entities.Workspace, error) {
	var stdout string
	err := shell.RetryIdempotent(ctx, func() error {
		var runErr error
		stdout, _, runErr = it.run(ctx, localTimeout, "workspace", "list")
		return runErr
	})
	if err != nil {
		return nil, err
	}
	return parseWorkspaces(stdout), nil
}

// ForgetWorkspace removes a workspace from jj without touching its files.
func (it *VCSRepository) ForgetWorkspace(ctx context.Context, name string) error {
	_, _, err := it.run(ctx, localTimeout, "workspace", "forget", name)
	return err
}

func (it *VCSRepository) getSingleChange(
	ctx context.Context,
	revset string,
) (entities.Change, error) {
	changes, err := it.GetLog(ctx, revset)
	if err != nil {
		return entities.Change{}, err
	}
	if len(changes) == 0 {
		return entities.Change{}, fmt.Errorf("revset %q matched no change", revset)
	}
	return changes[0], nil
}

// run executes jj with a bounded timeout and classifies failures at this
// boundary so the core never sees raw tool errors.
func (it *VCSRepository) run(
	ctx context.Context,
	timeout time.Duration,
	args ...string,
) (string, string, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := it.runner.Run(runCtx, toolName, args...)
	if err != nil {
		return stdout, stderr, shell.ClassifyError(toolName, stderr, err)
	}
	return stdout, stderr, nil
}

func parseChanges(output string) ([]entities.Change, error) {
	var changes []entities.Change

	for _, record := range strings.Split(output, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}

		fields := strings.Split(record, fieldSep)
		if len(fields) != changeFieldCount {
			return nil, fmt.Errorf("malformed change record: %d fields, want %d",
				len(fields), changeFieldCount)
		}

		timestamp, err := time.Parse("2006-01-02T15:04:05-0700", fields[4])
		if err != nil {
			// The timestamp is informational; a parse failure must not hide
			// the change itself.
			logger.Debugf("Failed to parse change timestamp %q: %v", fields[4], err)
		}

		var bookmarks []string
		if fields[5] != "" {
			bookmarks = strings.Split(fields[5], ",")
		}

		changes = append(changes, entities.Change{
			ID:            fields[0],
			ChangeID:      fields[1],
			Description:   fields[2],
			Author:        fields[3],
			Timestamp:     timestamp,
			Bookmarks:     bookmarks,
			IsWorkingCopy: fields[6] == "1",
			IsEmpty:       fields[7] == "1",
			HasConflict:   fields[8] == "1",
		})
	}

	return changes, nil
}

// parseWorkspaces parses "name: changeid ..." lines from jj workspace list.
func parseWorkspaces(output string) []entities.Workspace {
	var workspaces []entities.Workspace

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		changeID := ""
		if fields := strings.Fields(rest); len(fields) > 0 {
			changeID = fields[0]
		}

		workspaces = append(workspaces, entities.Workspace{
			Name:     strings.TrimSpace(name),
			ChangeID: changeID,
		})
	}

	return workspaces
}
