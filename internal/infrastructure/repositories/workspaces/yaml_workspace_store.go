package workspaces

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/ship/internal/domain/entities"
	domainRepos "github.com/rios0rios0/ship/internal/domain/repositories"
)

const (
	// lockPollInterval is how often a blocked invocation retries the lock.
	lockPollInterval = 50 * time.Millisecond
	// lockTimeout bounds the wait for the lock across processes.
	lockTimeout = 30 * time.Second

	fileMode = 0o644
	dirMode  = 0o755
)

// YAMLWorkspaceStore persists workspace metadata as a single YAML file guarded
// by a companion advisory lock file. The lock is an OS-level flock, not an
// in-process mutex: the contention is between concurrent CLI invocations and
// agent sessions, not goroutines.
type YAMLWorkspaceStore struct {
	path string
	lock *flock.Flock
}

// workspacesFile is the on-disk document shape.
type workspacesFile struct {
	Workspaces []entities.WorkspaceMetadata `yaml:"workspaces"`
}

// NewYAMLWorkspaceStore creates a store for the given metadata file path.
func NewYAMLWorkspaceStore(path string) domainRepos.WorkspaceStore {
	return &YAMLWorkspaceStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// List returns a fresh read of all entries. Reads share the lock so a writer
// mid-rename cannot be observed.
func (it *YAMLWorkspaceStore) List(ctx context.Context) ([]entities.WorkspaceMetadata, error) {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	acquired, err := it.lock.TryRLockContext(lockCtx, lockPollInterval)
	if err != nil {
		// No data dir yet means nothing was ever stored.
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to acquire workspace lock: %w", err)
	}
	if !acquired {
		return nil, errors.New("workspace metadata is locked by another process")
	}
	defer it.lock.Unlock()

	return it.read()
}

// Mutate runs fn inside the exclusive lock against a fresh read and persists
// whatever fn returns before releasing the lock.
func (it *YAMLWorkspaceStore) Mutate(
	ctx context.Context,
	fn func([]entities.WorkspaceMetadata) ([]entities.WorkspaceMetadata, error),
) error {
	if mkdirErr := os.MkdirAll(filepath.Dir(it.path), dirMode); mkdirErr != nil {
		return fmt.Errorf("failed to create data dir: %w", mkdirErr)
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	acquired, err := it.lock.TryLockContext(lockCtx, lockPollInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire workspace lock: %w", err)
	}
	if !acquired {
		return errors.New("workspace metadata is locked by another process")
	}
	defer it.lock.Unlock()

	entries, err := it.read()
	if err != nil {
		return err
	}

	updated, err := fn(entries)
	if err != nil {
		return err
	}

	return it.write(updated)
}

func (it *YAMLWorkspaceStore) read() ([]entities.WorkspaceMetadata, error) {
	data, err := os.ReadFile(it.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read workspace metadata: %w", err)
	}

	var doc workspacesFile
	if unmarshalErr := yaml.Unmarshal(data, &doc); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse workspace metadata: %w", unmarshalErr)
	}
	return doc.Workspaces, nil
}

// write persists atomically: marshal to a temp file, then rename over the
// real one, so a crashed writer never leaves a half-written document.
func (it *YAMLWorkspaceStore) write(entries []entities.WorkspaceMetadata) error {
	data, err := yaml.Marshal(workspacesFile{Workspaces: entries})
	if err != nil {
		return fmt.Errorf("failed to encode workspace metadata: %w", err)
	}

	tmp := it.path + ".tmp"
	if writeErr := os.WriteFile(tmp, data, fileMode); writeErr != nil {
		return fmt.Errorf("failed to write workspace metadata: %w", writeErr)
	}
	if renameErr := os.Rename(tmp, it.path); renameErr != nil {
		return fmt.Errorf("failed to replace workspace metadata: %w", renameErr)
	}
	return nil
}
