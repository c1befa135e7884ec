package cli

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/meesha7/mrmonitor/internal/api/gitlab"
	"github.com/meesha7/mrmonitor/internal/config"
)

// Dependencies are the process-level collaborators of the command tree.
// Tests replace them; main uses DefaultDependencies.
type Dependencies struct {
	Stdout     io.Writer
	LoadConfig func() (*config.Config, error)
	HTTPClient gitlab.HTTPClient

	// Colour and hyperlink support of Stdout
	ColorEnabled bool
	IsTerminal   bool
}

// DefaultDependencies wires the real stdout, environment and HTTP transport.
func DefaultDependencies() Dependencies {
	fd := os.Stdout.Fd()
	return Dependencies{
		Stdout:     os.Stdout,
		LoadConfig: config.Load,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		ColorEnabled: !color.NoColor,
		IsTerminal:   isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// NewRootCommand builds the mrmonitor command group.
func NewRootCommand(deps Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:   "mrmonitor",
		Short: "Report open GitLab merge requests",
		Long: `mrmonitor lists open merge requests across GitLab projects with their votes,
approvals, latest pipeline, linked issue and how long they have been waiting.

Configuration is read from the environment (and an optional .env file):
  GITLAB_URI      GitLab base URL (required)
  PRIVATE_TOKEN   GitLab access token (required)
  JIRA_URL        issue tracker base URL for issue links
  JIRA_REGEX      comma-separated patterns, each with one capture group for the issue id
  LOG_LEVEL       debug, info, warn or error (default warn)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.SetOut(deps.Stdout)
	root.AddCommand(newShowCommand(deps))

	return root
}
