package api

import (
	"context"

	"github.com/meesha7/mrmonitor/internal/domain"
)

// DefaultPageSize is the number of items requested per list call.
// Only the first page is read.
const DefaultPageSize = 100

// Client defines the read-only operations the reporter needs from a code-hosting platform.
// Consumers depend on this interface, not on the GitLab implementation.
type Client interface {
	// GetProject resolves a project ID (numeric or "group/project" path).
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)

	// ListOpenMergeRequests returns open merge requests, optionally filtered by
	// author username. An empty author means all authors.
	ListOpenMergeRequests(ctx context.Context, projectID, author string) ([]domain.MergeRequest, error)

	// GetApprovals returns the approval state of a merge request.
	GetApprovals(ctx context.Context, projectID string, iid int) (*domain.Approval, error)

	// ListMergeRequestPipelines returns the pipelines run for a merge request.
	ListMergeRequestPipelines(ctx context.Context, projectID string, iid int) ([]domain.Pipeline, error)
}

// ClientConfig holds common configuration for API clients.
type ClientConfig struct {
	BaseURL string
	Token   string
}
