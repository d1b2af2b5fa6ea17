package shell

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// FindRepoRoot locates the root of the enclosing repository. The VCS keeps
// its state in a .jj directory; colocated repositories also carry .git, which
// go-git can resolve even from deep subdirectories.
func FindRepoRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for current := dir; ; current = filepath.Dir(current) {
		if info, statErr := os.Stat(filepath.Join(current, ".jj")); statErr == nil && info.IsDir() {
			return current, nil
		}
		if filepath.Dir(current) == current {
			break
		}
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errors.New("not inside a repository")
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return worktree.Filesystem.Root(), nil
}
