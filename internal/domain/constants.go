package domain

// StateOpened is the GitLab state of merge requests awaiting review.
const StateOpened = "opened"
