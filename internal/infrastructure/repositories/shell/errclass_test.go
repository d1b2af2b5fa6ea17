//go:build unit

package shell_test

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/shell"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	t.Run("should classify a missing binary", func(t *testing.T) {
		t.Parallel()

		// given
		cause := fmt.Errorf("jj --version: %w", exec.ErrNotFound)

		// when
		classified := shell.ClassifyError("jj", "", cause)

		// then
		assert.Equal(t, entities.KindNotInstalled, classified.Kind)
		assert.Equal(t, "jj", classified.Tool)
		require.ErrorIs(t, classified, cause)
	})

	t.Run("should classify authentication failures from stderr", func(t *testing.T) {
		t.Parallel()

		// given
		stderr := "To get started with GitHub CLI, please run:  gh auth login"

		// when
		classified := shell.ClassifyError("gh", stderr, errors.New("exit status 4"))

		// then
		assert.Equal(t, entities.KindNotAuthenticated, classified.Kind)
	})

	t.Run("should classify rate limiting", func(t *testing.T) {
		t.Parallel()

		// when
		classified := shell.ClassifyError("gh", "API rate limit exceeded", errors.New("exit status 1"))

		// then
		assert.Equal(t, entities.KindRateLimited, classified.Kind)
	})

	t.Run("should match case-insensitively", func(t *testing.T) {
		t.Parallel()

		// when
		classified := shell.ClassifyError("gh", "Bad Credentials", errors.New("exit status 1"))

		// then
		assert.Equal(t, entities.KindNotAuthenticated, classified.Kind)
	})

	t.Run("should fall back to unrecognized", func(t *testing.T) {
		t.Parallel()

		// when
		classified := shell.ClassifyError("jj", "something exploded", errors.New("exit status 255"))

		// then
		assert.Equal(t, entities.KindUnrecognized, classified.Kind)
		assert.Contains(t, classified.Error(), "jj")
	})
}
