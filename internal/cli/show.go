package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meesha7/mrmonitor/internal/api"
	"github.com/meesha7/mrmonitor/internal/api/gitlab"
	"github.com/meesha7/mrmonitor/internal/issueref"
	"github.com/meesha7/mrmonitor/internal/report"
	"github.com/meesha7/mrmonitor/internal/service"
	"github.com/meesha7/mrmonitor/pkg/logger"
)

type showOptions struct {
	user    string
	output  string
	noColor bool
}

func newShowCommand(deps Dependencies) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <project_ids>",
		Short: "List MRs from given projects (IDs separated by comma)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, deps, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", "", "Filter for username")
	cmd.Flags().StringVarP(&opts.output, "output", "o", report.FormatText, "Output format: text or yaml")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colours and hyperlinks")

	return cmd
}

func runShow(cmd *cobra.Command, deps Dependencies, opts *showOptions, projectArg string) error {
	// Configuration is checked before anything touches the network.
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}

	projectIDs := ParseProjectIDs(projectArg)
	if len(projectIDs) == 0 {
		return errors.New("no project IDs given")
	}

	patterns, err := cfg.IssuePatterns()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	defer func() { _ = log.Sync() }()

	renderer, err := report.NewRenderer(opts.output, report.TextOptions{
		Color:      deps.ColorEnabled && !opts.noColor,
		Hyperlinks: deps.IsTerminal && deps.ColorEnabled && !opts.noColor,
	})
	if err != nil {
		return err
	}

	client := gitlab.NewClient(api.ClientConfig{
		BaseURL: cfg.GitLabURI,
		Token:   cfg.PrivateToken,
	}, deps.HTTPClient)

	issueBaseURL := ""
	if cfg.HasIssueTracker() {
		issueBaseURL = cfg.JiraURL
	}
	svc := service.NewReportService(client, issueref.NewExtractor(patterns), issueBaseURL, log)

	log.Debug("generating report",
		zap.Strings("projects", projectIDs),
		zap.String("user", opts.user),
		zap.String("output", opts.output),
	)

	return report.NewReporter(svc, renderer, deps.Stdout).Generate(cmd.Context(), projectIDs, opts.user)
}

// ParseProjectIDs splits a comma-separated project list, dropping blank entries.
func ParseProjectIDs(arg string) []string {
	parts := strings.Split(arg, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
