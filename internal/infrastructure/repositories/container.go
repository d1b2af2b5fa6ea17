package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/ship/internal/domain/entities"
	domainRepos "github.com/rios0rios0/ship/internal/domain/repositories"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/agentd"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/gh"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/jj"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/linear"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/shell"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/workspaces"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() shell.CommandRunner {
		return shell.NewExecRunner()
	}); err != nil {
		return err
	}

	if err := container.Provide(jj.NewVCSRepository); err != nil {
		return err
	}
	if err := container.Provide(gh.NewPRHostRepository); err != nil {
		return err
	}
	if err := container.Provide(linear.NewIssueTrackerRepository); err != nil {
		return err
	}
	if err := container.Provide(agentd.NewAgentGateway); err != nil {
		return err
	}

	// The workspace store lives under the repository's data dir; when no
	// repository encloses the working directory the store still resolves,
	// commands needing the VCS fail their own precondition checks first.
	return container.Provide(func(settings *entities.Settings) domainRepos.WorkspaceStore {
		root, err := shell.FindRepoRoot(".")
		if err != nil {
			root = "."
		}
		return workspaces.NewYAMLWorkspaceStore(settings.WorkspacesFilePath(root))
	})
}
