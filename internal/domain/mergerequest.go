package domain

import "time"

// MergeRequest represents an open GitLab merge request.
type MergeRequest struct {
	IID       int // Project-scoped sequence number (the "!12" in the UI)
	ProjectID string
	Title     string
	Author    string // Author username
	Upvotes   int
	Downvotes int
	State     string // "opened", "closed", "merged"
	CreatedAt time.Time
	UpdatedAt time.Time
	WebURL    string
}

// Approval holds the approval state of a merge request.
type Approval struct {
	Approved   bool     // true if at least one user approved
	ApprovedBy []string // Approver usernames in API order
}

// NewApproval builds an Approval from the list of approver usernames.
func NewApproval(approvers []string) Approval {
	return Approval{
		Approved:   len(approvers) > 0,
		ApprovedBy: approvers,
	}
}
