package report

import (
	"io"

	"github.com/pkg/errors"

	"github.com/meesha7/mrmonitor/internal/domain"
)

// Renderer writes one project section of the report.
type Renderer interface {
	RenderProject(w io.Writer, report *domain.ProjectReport) error
}

// Format names accepted by NewRenderer.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// NewRenderer returns the renderer for format.
func NewRenderer(format string, opts TextOptions) (Renderer, error) {
	switch format {
	case "", FormatText:
		return NewTextRenderer(opts), nil
	case FormatYAML:
		return NewYAMLRenderer(), nil
	default:
		return nil, errors.Errorf("unknown output format %q (want %s or %s)", format, FormatText, FormatYAML)
	}
}
