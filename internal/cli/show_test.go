package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meesha7/mrmonitor/internal/config"
)

// fakeGitLab answers GitLab API paths from a fixed table.
type fakeGitLab struct {
	responses map[string]string // escaped path -> JSON body
	requests  []string
}

func (f *fakeGitLab) Do(req *http.Request) (*http.Response, error) {
	path := req.URL.EscapedPath()
	f.requests = append(f.requests, path)

	body, ok := f.responses[path]
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
		body = `{"message":"404 Not Found"}`
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func emptyProjectResponses(ids ...string) map[string]string {
	responses := make(map[string]string)
	for _, id := range ids {
		responses["/api/v4/projects/"+id] = fmt.Sprintf(`{"id": %s, "path_with_namespace": "group/p%s"}`, id, id)
		responses["/api/v4/projects/"+id+"/merge_requests"] = `[]`
	}
	return responses
}

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"GITLAB_URI", "PRIVATE_TOKEN", "JIRA_URL", "JIRA_REGEX", "LOG_LEVEL"} {
		t.Setenv(key, vars[key])
		if vars[key] == "" {
			os.Unsetenv(key)
		}
	}
}

func runCommand(t *testing.T, fake *fakeGitLab, args ...string) (string, error) {
	t.Helper()
	return runCommandWith(t, Dependencies{HTTPClient: fake}, args...)
}

func runCommandWith(t *testing.T, deps Dependencies, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	deps.Stdout = out
	deps.LoadConfig = config.Load
	root := NewRootCommand(deps)
	root.SetArgs(args)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func TestShow_ProjectWithoutMergeRequests(t *testing.T) {
	// Arrange
	setEnv(t, map[string]string{"GITLAB_URI": "https://gitlab.example.com", "PRIVATE_TOKEN": "t"})
	fake := &fakeGitLab{responses: emptyProjectResponses("42")}

	// Act
	output, err := runCommand(t, fake, "show", "42")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "group/p42\n  No merge requests matching the criteria\n\n", output)
}

func TestShow_MultipleProjectsInOrder(t *testing.T) {
	// Arrange
	setEnv(t, map[string]string{"GITLAB_URI": "https://gitlab.example.com", "PRIVATE_TOKEN": "t"})
	fake := &fakeGitLab{responses: emptyProjectResponses("42", "43")}

	// Act
	output, err := runCommand(t, fake, "show", "42,43")

	// Assert
	require.NoError(t, err)
	expected := "group/p42\n  No merge requests matching the criteria\n\n" +
		"group/p43\n  No merge requests matching the criteria\n\n"
	assert.Equal(t, expected, output)
}

func TestShow_MissingGitLabURI(t *testing.T) {
	// Arrange
	setEnv(t, map[string]string{"PRIVATE_TOKEN": "t"})
	fake := &fakeGitLab{responses: emptyProjectResponses("42")}

	// Act
	output, err := runCommand(t, fake, "show", "42")

	// Assert
	var cfgErr *config.Error
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "configuration error")
	assert.Empty(t, output)
	assert.Empty(t, fake.requests, "no network call expected")
}

func TestShow_IssueLink(t *testing.T) {
	// Arrange
	setEnv(t, map[string]string{
		"GITLAB_URI":    "https://gitlab.example.com",
		"PRIVATE_TOKEN": "t",
		"JIRA_URL":      "https://jira.example.com/browse/",
		"JIRA_REGEX":    `PROJ-(\d+)`,
	})
	created := time.Now().Add(-50 * time.Hour).UTC().Format(time.RFC3339)
	responses := emptyProjectResponses("42")
	responses["/api/v4/projects/42/merge_requests"] = fmt.Sprintf(`[{
		"iid": 12,
		"title": "Fix login bug PROJ-123",
		"author": {"username": "alice"},
		"upvotes": 0,
		"downvotes": 0,
		"web_url": "https://gitlab.example.com/group/p42/-/merge_requests/12",
		"created_at": %q,
		"updated_at": %q
	}]`, created, created)
	responses["/api/v4/projects/42/merge_requests/12/approvals"] = `{"approved_by": []}`
	responses["/api/v4/projects/42/merge_requests/12/pipelines"] = `[{"id": 7, "status": "failed"}, {"id": 9, "status": "running"}]`
	fake := &fakeGitLab{responses: responses}

	// Act
	output, err := runCommand(t, fake, "show", "42", "--user", "alice")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, output, "  !12 Fix login bug PROJ-123 [0 0]\n")
	assert.Contains(t, output, "    Author: alice\n")
	assert.Contains(t, output, "    Approved: No\n")
	assert.Contains(t, output, "    Issue: 123 https://jira.example.com/browse/123\n")
	assert.Contains(t, output, "    Pipeline: running\n")
	assert.Contains(t, output, "Age: 2 days | Since update: 2 days")
}

// singleMergeRequestResponses serves project 42 with one merge request linked to PROJ-123.
func singleMergeRequestResponses() map[string]string {
	now := time.Now().UTC().Format(time.RFC3339)
	responses := emptyProjectResponses("42")
	responses["/api/v4/projects/42/merge_requests"] = fmt.Sprintf(`[{
		"iid": 12,
		"title": "Fix login bug PROJ-123",
		"author": {"username": "alice"},
		"web_url": "https://gitlab.example.com/group/p42/-/merge_requests/12",
		"created_at": %q,
		"updated_at": %q
	}]`, now, now)
	responses["/api/v4/projects/42/merge_requests/12/approvals"] = `{"approved_by": []}`
	responses["/api/v4/projects/42/merge_requests/12/pipelines"] = `[]`
	return responses
}

func TestShow_HyperlinksFollowColorSupport(t *testing.T) {
	tests := []struct {
		name      string
		color     bool
		args      []string
		wantLinks bool
	}{
		{"terminal with colour", true, nil, true},
		{"NO_COLOR disables links", false, nil, false},
		{"--no-color disables links", true, []string{"--no-color"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			setEnv(t, map[string]string{
				"GITLAB_URI":    "https://gitlab.example.com",
				"PRIVATE_TOKEN": "t",
				"JIRA_URL":      "https://jira.example.com/browse",
				"JIRA_REGEX":    `PROJ-(\d+)`,
			})
			deps := Dependencies{
				HTTPClient:   &fakeGitLab{responses: singleMergeRequestResponses()},
				ColorEnabled: tt.color,
				IsTerminal:   true,
			}

			// Act
			output, err := runCommandWith(t, deps, append([]string{"show", "42"}, tt.args...)...)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantLinks, strings.Contains(output, "\x1b]8;;"))
		})
	}
}

func TestShow_NoIssueLineWithoutJiraURL(t *testing.T) {
	// Arrange
	setEnv(t, map[string]string{
		"GITLAB_URI":    "https://gitlab.example.com",
		"PRIVATE_TOKEN": "t",
		"JIRA_REGEX":    `PROJ-(\d+)`,
	})
	now := time.Now().UTC().Format(time.RFC3339)
	responses := emptyProjectResponses("42")
	responses["/api/v4/projects/42/merge_requests"] = fmt.Sprintf(
		`[{"iid": 1, "title": "PROJ-1", "author": {"username": "a"}, "created_at": %q, "updated_at": %q}]`, now, now)
	responses["/api/v4/projects/42/merge_requests/1/approvals"] = `{"approved_by": [{"user": {"username": "bob"}}]}`
	responses["/api/v4/projects/42/merge_requests/1/pipelines"] = `[]`
	fake := &fakeGitLab{responses: responses}

	// Act
	output, err := runCommand(t, fake, "show", "42")

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, output, "Issue:")
	assert.NotContains(t, output, "Pipeline:")
	assert.Contains(t, output, "    Approved: Yes by bob\n")
}

func TestShow_ProjectNotFoundStopsRun(t *testing.T) {
	// Arrange
	setEnv(t, map[string]string{"GITLAB_URI": "https://gitlab.example.com", "PRIVATE_TOKEN": "t"})
	fake := &fakeGitLab{responses: emptyProjectResponses("42")}

	// Act
	output, err := runCommand(t, fake, "show", "42,999,43")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.True(t, strings.HasPrefix(output, "group/p42\n"))
	assert.NotContains(t, output, "p43")
}

func TestShow_YAMLOutput(t *testing.T) {
	// Arrange
	setEnv(t, map[string]string{"GITLAB_URI": "https://gitlab.example.com", "PRIVATE_TOKEN": "t"})
	fake := &fakeGitLab{responses: emptyProjectResponses("42")}

	// Act
	output, err := runCommand(t, fake, "show", "42", "-o", "yaml")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, output, "project: group/p42")
	assert.Contains(t, output, "merge_requests: []")
}

func TestShow_RequiresProjectArgument(t *testing.T) {
	// Arrange
	setEnv(t, map[string]string{"GITLAB_URI": "https://gitlab.example.com", "PRIVATE_TOKEN": "t"})
	fake := &fakeGitLab{}

	// Act
	_, err := runCommand(t, fake, "show")

	// Assert
	assert.Error(t, err)
	assert.Empty(t, fake.requests)
}

func TestParseProjectIDs(t *testing.T) {
	assert.Equal(t, []string{"42", "43"}, ParseProjectIDs("42,43"))
	assert.Equal(t, []string{"42", "group/project"}, ParseProjectIDs(" 42 , group/project ,"))
	assert.Empty(t, ParseProjectIDs(" , "))
}
