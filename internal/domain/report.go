package domain

// ProjectReport is everything printed for one project.
type ProjectReport struct {
	Project       Project
	MergeRequests []MergeRequestReport
}

// MergeRequestReport combines a merge request with the data fetched for it
// and the values derived for display.
type MergeRequestReport struct {
	MergeRequest MergeRequest
	Approval     Approval
	Pipeline     *Pipeline // nil if the merge request has no pipelines

	IssueID   string // empty when no pattern matched
	IssueLink string // empty when IssueID is empty or no tracker is configured

	CreatedHuman string // e.g. "3 days ago"
	AgeDays      int    // whole days since creation, floored
	StaleDays    int    // whole days since last update, floored
}
