package service

import (
	"context"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/meesha7/mrmonitor/internal/api"
	"github.com/meesha7/mrmonitor/internal/domain"
	"github.com/meesha7/mrmonitor/internal/issueref"
)

// ReportService gathers merge request data for one project at a time and
// derives the values shown in the report.
type ReportService struct {
	client       api.Client
	issues       *issueref.Extractor
	issueBaseURL string
	logger       *zap.Logger
	now          func() time.Time
}

// NewReportService creates a new report service.
// issueBaseURL may be empty, in which case no issue links are built.
func NewReportService(client api.Client, issues *issueref.Extractor, issueBaseURL string, logger *zap.Logger) *ReportService {
	return &ReportService{
		client:       client,
		issues:       issues,
		issueBaseURL: issueBaseURL,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the wall clock used for age computations.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// BuildProjectReport fetches the project, its open merge requests and, for each
// of them, approvals and pipelines. Any API error aborts the whole project.
func (s *ReportService) BuildProjectReport(ctx context.Context, projectID, author string) (*domain.ProjectReport, error) {
	s.logger.Debug("resolving project", zap.String("project_id", projectID))
	project, err := s.client.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("listing open merge requests",
		zap.String("project", project.PathWithNamespace),
		zap.String("author", author),
	)
	mrs, err := s.client.ListOpenMergeRequests(ctx, projectID, author)
	if err != nil {
		return nil, err
	}

	report := &domain.ProjectReport{
		Project:       *project,
		MergeRequests: make([]domain.MergeRequestReport, 0, len(mrs)),
	}

	now := s.now()
	for _, mr := range mrs {
		mrReport, err := s.buildMergeRequestReport(ctx, projectID, mr, now)
		if err != nil {
			return nil, errors.Wrapf(err, "project %s", project.PathWithNamespace)
		}
		report.MergeRequests = append(report.MergeRequests, *mrReport)
	}

	s.logger.Debug("project report built",
		zap.String("project", project.PathWithNamespace),
		zap.Int("merge_requests", len(report.MergeRequests)),
	)
	return report, nil
}

func (s *ReportService) buildMergeRequestReport(ctx context.Context, projectID string, mr domain.MergeRequest, now time.Time) (*domain.MergeRequestReport, error) {
	approval, err := s.client.GetApprovals(ctx, projectID, mr.IID)
	if err != nil {
		return nil, err
	}

	pipelines, err := s.client.ListMergeRequestPipelines(ctx, projectID, mr.IID)
	if err != nil {
		return nil, err
	}

	report := &domain.MergeRequestReport{
		MergeRequest: mr,
		Approval:     *approval,
		Pipeline:     domain.LatestPipeline(pipelines),
		CreatedHuman: humanize.RelTime(mr.CreatedAt, now, "ago", "from now"),
		AgeDays:      WholeDays(now.Sub(mr.CreatedAt)),
		StaleDays:    WholeDays(now.Sub(mr.UpdatedAt)),
	}

	if id, ok := s.issues.Extract(mr.Title); ok {
		report.IssueID = id
		if s.issueBaseURL != "" {
			report.IssueLink = issueref.Link(s.issueBaseURL, id)
		}
	}

	return report, nil
}

// WholeDays converts a duration to whole days, rounding down.
// Exactly 3.0 days is 3; 2.99 days is 2.
func WholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
