package domain

// Pipeline represents a CI pipeline run attached to a merge request.
type Pipeline struct {
	ID     int
	Status Status
	Ref    string
	WebURL string
}

// Status represents the state of a pipeline.
type Status string

const (
	StatusCreated  Status = "created"
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
	StatusSkipped  Status = "skipped"
	StatusManual   Status = "manual"
)

// LatestPipeline returns the pipeline with the highest ID, or nil if there are none.
func LatestPipeline(pipelines []Pipeline) *Pipeline {
	var latest *Pipeline
	for i := range pipelines {
		if latest == nil || pipelines[i].ID > latest.ID {
			latest = &pipelines[i]
		}
	}
	return latest
}

// Project represents a GitLab project.
type Project struct {
	ID                string
	Name              string
	PathWithNamespace string // e.g. "group/subgroup/project"
	WebURL            string
}
