package report

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/meesha7/mrmonitor/internal/domain"
)

// YAMLRenderer writes each project as its own YAML document.
type YAMLRenderer struct{}

// NewYAMLRenderer creates a new YAML renderer.
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

type yamlProject struct {
	Project       string             `yaml:"project"`
	ID            string             `yaml:"id"`
	WebURL        string             `yaml:"web_url,omitempty"`
	MergeRequests []yamlMergeRequest `yaml:"merge_requests"`
}

type yamlMergeRequest struct {
	IID              int           `yaml:"iid"`
	Title            string        `yaml:"title"`
	Author           string        `yaml:"author"`
	Upvotes          int           `yaml:"upvotes"`
	Downvotes        int           `yaml:"downvotes"`
	Approved         bool          `yaml:"approved"`
	ApprovedBy       []string      `yaml:"approved_by,omitempty"`
	WebURL           string        `yaml:"web_url"`
	Issue            string        `yaml:"issue,omitempty"`
	IssueURL         string        `yaml:"issue_url,omitempty"`
	Pipeline         *yamlPipeline `yaml:"pipeline,omitempty"`
	CreatedAt        string        `yaml:"created_at"`
	Created          string        `yaml:"created"`
	AgeDays          int           `yaml:"age_days"`
	AgeLevel         string        `yaml:"age_level"`
	SinceUpdateDays  int           `yaml:"since_update_days"`
	SinceUpdateLevel string        `yaml:"since_update_level"`
}

type yamlPipeline struct {
	ID     int    `yaml:"id"`
	Status string `yaml:"status"`
	Level  string `yaml:"level"`
}

// RenderProject writes "---" followed by the project document.
func (r *YAMLRenderer) RenderProject(w io.Writer, report *domain.ProjectReport) error {
	doc := yamlProject{
		Project:       report.Project.PathWithNamespace,
		ID:            report.Project.ID,
		WebURL:        report.Project.WebURL,
		MergeRequests: make([]yamlMergeRequest, 0, len(report.MergeRequests)),
	}

	for _, mr := range report.MergeRequests {
		item := yamlMergeRequest{
			IID:              mr.MergeRequest.IID,
			Title:            mr.MergeRequest.Title,
			Author:           mr.MergeRequest.Author,
			Upvotes:          mr.MergeRequest.Upvotes,
			Downvotes:        mr.MergeRequest.Downvotes,
			Approved:         mr.Approval.Approved,
			ApprovedBy:       mr.Approval.ApprovedBy,
			WebURL:           mr.MergeRequest.WebURL,
			Issue:            mr.IssueID,
			IssueURL:         mr.IssueLink,
			CreatedAt:        mr.MergeRequest.CreatedAt.UTC().Format(time.RFC3339),
			Created:          mr.CreatedHuman,
			AgeDays:          mr.AgeDays,
			AgeLevel:         AgeEmphasis(mr.AgeDays).String(),
			SinceUpdateDays:  mr.StaleDays,
			SinceUpdateLevel: StalenessEmphasis(mr.StaleDays).String(),
		}
		if mr.Pipeline != nil {
			item.Pipeline = &yamlPipeline{
				ID:     mr.Pipeline.ID,
				Status: string(mr.Pipeline.Status),
				Level:  PipelineEmphasis(mr.Pipeline.Status).String(),
			}
		}
		doc.MergeRequests = append(doc.MergeRequests, item)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, "failed to encode yaml")
	}

	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
