package report

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/meesha7/mrmonitor/internal/domain"
)

// ReportBuilder produces the data for one project.
type ReportBuilder interface {
	BuildProjectReport(ctx context.Context, projectID, author string) (*domain.ProjectReport, error)
}

// Reporter renders projects one after another to out.
type Reporter struct {
	builder  ReportBuilder
	renderer Renderer
	out      io.Writer
}

// NewReporter creates a new reporter.
func NewReporter(builder ReportBuilder, renderer Renderer, out io.Writer) *Reporter {
	return &Reporter{
		builder:  builder,
		renderer: renderer,
		out:      out,
	}
}

// Generate builds and prints each project in the given order.
// It stops at the first error; projects already printed stay printed.
func (r *Reporter) Generate(ctx context.Context, projectIDs []string, author string) error {
	for _, id := range projectIDs {
		report, err := r.builder.BuildProjectReport(ctx, id, author)
		if err != nil {
			return err
		}

		if err := r.renderer.RenderProject(r.out, report); err != nil {
			return errors.Wrapf(err, "failed to render project %s", id)
		}
	}
	return nil
}
