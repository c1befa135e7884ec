package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/meesha7/mrmonitor/internal/api"
	"github.com/meesha7/mrmonitor/internal/domain"
)

// Client implements api.Client for GitLab REST API v4.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is returned when GitLab answers with a non-200 status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a new GitLab client.
func NewClient(config api.ClientConfig, httpClient HTTPClient) *Client {
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		token:      config.Token,
		httpClient: httpClient,
	}
}

// GetProject retrieves a single project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	endpoint := c.projectURL(projectID, "")

	var glp gitlabProject
	if err := c.doRequest(ctx, endpoint, &glp); err != nil {
		return nil, errors.Wrapf(err, "failed to get project %s", projectID)
	}

	return &domain.Project{
		ID:                strconv.Itoa(glp.ID),
		Name:              glp.Name,
		PathWithNamespace: glp.PathWithNamespace,
		WebURL:            glp.WebURL,
	}, nil
}

// ListOpenMergeRequests retrieves open merge requests for a project.
func (c *Client) ListOpenMergeRequests(ctx context.Context, projectID, author string) ([]domain.MergeRequest, error) {
	query := url.Values{}
	query.Set("state", domain.StateOpened)
	query.Set("per_page", strconv.Itoa(api.DefaultPageSize))
	if author != "" {
		query.Set("author_username", author)
	}
	endpoint := c.projectURL(projectID, "/merge_requests") + "?" + query.Encode()

	var glMRs []gitlabMergeRequest
	if err := c.doRequest(ctx, endpoint, &glMRs); err != nil {
		return nil, errors.Wrapf(err, "failed to list merge requests for project %s", projectID)
	}

	mrs := make([]domain.MergeRequest, len(glMRs))
	for i, glmr := range glMRs {
		mrs[i] = convertMergeRequest(glmr, projectID)
	}
	return mrs, nil
}

// GetApprovals retrieves the approval state of a merge request.
func (c *Client) GetApprovals(ctx context.Context, projectID string, iid int) (*domain.Approval, error) {
	endpoint := c.projectURL(projectID, fmt.Sprintf("/merge_requests/%d/approvals", iid))

	var gla gitlabApprovals
	if err := c.doRequest(ctx, endpoint, &gla); err != nil {
		return nil, errors.Wrapf(err, "failed to get approvals for !%d", iid)
	}

	approvers := make([]string, 0, len(gla.ApprovedBy))
	for _, a := range gla.ApprovedBy {
		approvers = append(approvers, a.User.Username)
	}

	approval := domain.NewApproval(approvers)
	return &approval, nil
}

// ListMergeRequestPipelines retrieves pipelines for a merge request.
func (c *Client) ListMergeRequestPipelines(ctx context.Context, projectID string, iid int) ([]domain.Pipeline, error) {
	endpoint := c.projectURL(projectID, fmt.Sprintf("/merge_requests/%d/pipelines", iid)) +
		fmt.Sprintf("?per_page=%d", api.DefaultPageSize)

	var glPipelines []gitlabPipeline
	if err := c.doRequest(ctx, endpoint, &glPipelines); err != nil {
		return nil, errors.Wrapf(err, "failed to get pipelines for !%d", iid)
	}

	pipelines := make([]domain.Pipeline, len(glPipelines))
	for i, glp := range glPipelines {
		pipelines[i] = domain.Pipeline{
			ID:     glp.ID,
			Status: convertStatus(glp.Status),
			Ref:    glp.Ref,
			WebURL: glp.WebURL,
		}
	}
	return pipelines, nil
}

// projectURL builds a project-scoped endpoint. The ID is path-escaped so
// "group/project" becomes "group%2Fproject" as GitLab expects.
func (c *Client) projectURL(projectID, suffix string) string {
	return fmt.Sprintf("%s/api/v4/projects/%s%s", c.baseURL, url.PathEscape(projectID), suffix)
}

// doRequest performs an HTTP request to GitLab API.
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}

// convertMergeRequest converts a GitLab merge request to domain model.
func convertMergeRequest(glmr gitlabMergeRequest, projectID string) domain.MergeRequest {
	return domain.MergeRequest{
		IID:       glmr.IID,
		ProjectID: projectID,
		Title:     glmr.Title,
		Author:    glmr.Author.Username,
		Upvotes:   glmr.Upvotes,
		Downvotes: glmr.Downvotes,
		State:     glmr.State,
		CreatedAt: glmr.CreatedAt,
		UpdatedAt: glmr.UpdatedAt,
		WebURL:    glmr.WebURL,
	}
}

// convertStatus converts GitLab status to domain status.
// Unknown values pass through unchanged.
func convertStatus(glStatus string) domain.Status {
	switch glStatus {
	case "created":
		return domain.StatusCreated
	case "pending":
		return domain.StatusPending
	case "running":
		return domain.StatusRunning
	case "success":
		return domain.StatusSuccess
	case "failed":
		return domain.StatusFailed
	case "canceled":
		return domain.StatusCanceled
	case "skipped":
		return domain.StatusSkipped
	case "manual":
		return domain.StatusManual
	default:
		return domain.Status(glStatus)
	}
}

// GitLab API response types
type gitlabProject struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
	WebURL            string `json:"web_url"`
}

type gitlabUser struct {
	Username string `json:"username"`
}

type gitlabMergeRequest struct {
	IID       int        `json:"iid"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	Author    gitlabUser `json:"author"`
	Upvotes   int        `json:"upvotes"`
	Downvotes int        `json:"downvotes"`
	WebURL    string     `json:"web_url"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type gitlabApprovals struct {
	Approved   bool `json:"approved"`
	ApprovedBy []struct {
		User gitlabUser `json:"user"`
	} `json:"approved_by"`
}

type gitlabPipeline struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Ref    string `json:"ref"`
	WebURL string `json:"web_url"`
}
