package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// PRCreate is the interface for the single-change PR command.
type PRCreate interface {
	Execute(ctx context.Context, opts PRCreateOptions) (entities.SubmitResult, error)
}

// PRCreateOptions holds runtime options for pr create.
type PRCreateOptions struct {
	Draft bool
	Open  bool // open the PR in the browser afterwards
}

// PRCreateCommand opens a PR for the current change. It is the submit flow
// without agent subscription, plus an optional browser open.
type PRCreateCommand struct {
	submit Submit
	prHost repositories.PRHostRepository
}

// NewPRCreateCommand creates a new PRCreateCommand.
func NewPRCreateCommand(submit Submit, prHost repositories.PRHostRepository) *PRCreateCommand {
	return &PRCreateCommand{submit: submit, prHost: prHost}
}

// Execute submits the current change and optionally opens the resulting PR.
func (it *PRCreateCommand) Execute(
	ctx context.Context,
	opts PRCreateOptions,
) (entities.SubmitResult, error) {
	result, err := it.submit.Execute(ctx, SubmitOptions{Draft: opts.Draft})
	if err != nil {
		return result, err
	}

	if opts.Open && result.PR != nil && result.PR.URL != "" {
		if openErr := it.prHost.OpenInBrowser(ctx, result.PR.URL); openErr != nil {
			logger.Warnf("Failed to open %s in browser: %v", result.PR.URL, openErr)
		}
	}

	return result, nil
}
