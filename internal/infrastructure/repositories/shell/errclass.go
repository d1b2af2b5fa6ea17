package shell

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

// errorPattern maps a lowercase substring of collaborator error text to its
// classified kind. Matching raw CLI output is inherently fragile, so the whole
// table lives here, in one place, and anything unmatched falls back to
// KindUnrecognized instead of crashing.
type errorPattern struct {
	substring string
	kind      entities.CollaboratorErrorKind
}

var errorPatterns = []errorPattern{
	{"executable file not found", entities.KindNotInstalled},
	{"command not found", entities.KindNotInstalled},
	{"no such file or directory", entities.KindNotInstalled},
	{"not logged in", entities.KindNotAuthenticated},
	{"authentication failed", entities.KindNotAuthenticated},
	{"bad credentials", entities.KindNotAuthenticated},
	{"must authenticate", entities.KindNotAuthenticated},
	{"gh auth login", entities.KindNotAuthenticated},
	{"401", entities.KindNotAuthenticated},
	{"rate limit", entities.KindRateLimited},
	{"too many requests", entities.KindRateLimited},
	{"429", entities.KindRateLimited},
}

// ClassifyError wraps a raw collaborator failure with its classified kind,
// matching the stderr text (and the error itself) against the pattern table.
func ClassifyError(tool, stderr string, err error) *entities.CollaboratorError {
	kind := entities.KindUnrecognized

	if errors.Is(err, exec.ErrNotFound) {
		kind = entities.KindNotInstalled
	} else {
		haystack := strings.ToLower(stderr + " " + err.Error())
		for _, pattern := range errorPatterns {
			if strings.Contains(haystack, pattern.substring) {
				kind = pattern.kind
				break
			}
		}
	}

	return &entities.CollaboratorError{Kind: kind, Tool: tool, Cause: err}
}
