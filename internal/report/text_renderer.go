package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/meesha7/mrmonitor/internal/domain"
)

// NoMergeRequestsLine is printed for a project without matching merge requests.
const NoMergeRequestsLine = "  No merge requests matching the criteria"

// TextOptions controls terminal features of the text layout.
type TextOptions struct {
	Color      bool // ANSI colours and bold
	Hyperlinks bool // OSC 8 clickable links
}

// TextRenderer renders the fixed human-readable layout.
type TextRenderer struct {
	opts TextOptions
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts TextOptions) *TextRenderer {
	return &TextRenderer{opts: opts}
}

// RenderProject writes the project header and every merge request block.
// The section always ends with exactly one blank line.
func (r *TextRenderer) RenderProject(w io.Writer, report *domain.ProjectReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, r.paint(report.Project.PathWithNamespace, color.FgBlue, color.Bold))

	if len(report.MergeRequests) == 0 {
		fmt.Fprintln(bw, NoMergeRequestsLine)
		fmt.Fprintln(bw)
		return bw.Flush()
	}

	for i := range report.MergeRequests {
		r.renderMergeRequest(bw, &report.MergeRequests[i])
	}

	return bw.Flush()
}

func (r *TextRenderer) renderMergeRequest(w io.Writer, mr *domain.MergeRequestReport) {
	up, down := FormatVotes(mr.MergeRequest.Upvotes, mr.MergeRequest.Downvotes)
	if up != "0" {
		up = r.paint(up, color.FgGreen, color.Bold)
	}
	if down != "0" {
		down = r.paint(down, color.FgRed, color.Bold)
	}

	fmt.Fprintf(w, "  %s %s [%s %s]\n",
		r.paint(fmt.Sprintf("!%d", mr.MergeRequest.IID), color.FgRed, color.Bold),
		r.paint(mr.MergeRequest.Title, color.FgYellow),
		up, down,
	)
	fmt.Fprintf(w, "    Author: %s\n", mr.MergeRequest.Author)
	fmt.Fprintf(w, "    Approved: %s\n", approvalText(mr.Approval))
	fmt.Fprintf(w, "    %s\n", r.link(mr.MergeRequest.WebURL, mr.MergeRequest.WebURL))

	if mr.IssueLink != "" {
		if r.opts.Hyperlinks {
			fmt.Fprintf(w, "    Issue: %s\n", r.link(mr.IssueLink, mr.IssueID))
		} else {
			fmt.Fprintf(w, "    Issue: %s %s\n", mr.IssueID, mr.IssueLink)
		}
	}

	if mr.Pipeline != nil {
		fmt.Fprintf(w, "    Pipeline: %s\n", r.emphasize(string(mr.Pipeline.Status), PipelineEmphasis(mr.Pipeline.Status)))
	}

	fmt.Fprintln(w)

	infos := []string{
		fmt.Sprintf("%s %s", r.paint("Created:", color.FgCyan), mr.CreatedHuman),
		fmt.Sprintf("%s %s", r.paint("Age:", color.FgCyan), r.emphasize(fmt.Sprintf("%d days", mr.AgeDays), AgeEmphasis(mr.AgeDays))),
		fmt.Sprintf("%s %s", r.paint("Since update:", color.FgCyan), r.emphasize(fmt.Sprintf("%d days", mr.StaleDays), StalenessEmphasis(mr.StaleDays))),
	}
	fmt.Fprintf(w, "    %s\n", strings.Join(infos, " | "))
	fmt.Fprintln(w)
}

func approvalText(a domain.Approval) string {
	if !a.Approved {
		return "No"
	}
	return "Yes by " + strings.Join(a.ApprovedBy, ", ")
}

var emphasisAttributes = map[Emphasis][]color.Attribute{
	EmphasisNormal:  {color.FgGreen, color.Bold},
	EmphasisCaution: {color.FgYellow, color.Bold},
	EmphasisAlert:   {color.FgRed, color.Bold},
}

func (r *TextRenderer) emphasize(s string, e Emphasis) string {
	attrs, ok := emphasisAttributes[e]
	if !ok {
		return s
	}
	return r.paint(s, attrs...)
}

func (r *TextRenderer) paint(s string, attrs ...color.Attribute) string {
	if !r.opts.Color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// link renders an OSC 8 terminal hyperlink, or just the text when disabled.
func (r *TextRenderer) link(url, text string) string {
	if !r.opts.Hyperlinks || url == "" {
		return text
	}
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
