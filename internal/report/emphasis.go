package report

import (
	"strconv"

	"github.com/meesha7/mrmonitor/internal/domain"
)

// Emphasis is the display weight given to a value.
type Emphasis int

const (
	EmphasisNeutral Emphasis = iota
	EmphasisNormal
	EmphasisCaution
	EmphasisAlert
)

func (e Emphasis) String() string {
	switch e {
	case EmphasisNormal:
		return "normal"
	case EmphasisCaution:
		return "caution"
	case EmphasisAlert:
		return "alert"
	default:
		return "neutral"
	}
}

var pipelineEmphasis = map[domain.Status]Emphasis{
	domain.StatusFailed:  EmphasisAlert,
	domain.StatusPending: EmphasisCaution,
	domain.StatusRunning: EmphasisCaution,
	domain.StatusSuccess: EmphasisNormal,
}

// PipelineEmphasis maps a pipeline status to its emphasis.
// Statuses not in the table are neutral.
func PipelineEmphasis(status domain.Status) Emphasis {
	if e, ok := pipelineEmphasis[status]; ok {
		return e
	}
	return EmphasisNeutral
}

// AgeEmphasis buckets the days since a merge request was opened.
func AgeEmphasis(days int) Emphasis {
	switch {
	case days >= 7:
		return EmphasisAlert
	case days >= 3:
		return EmphasisCaution
	default:
		return EmphasisNormal
	}
}

// StalenessEmphasis buckets the days since a merge request was last updated.
func StalenessEmphasis(days int) Emphasis {
	switch {
	case days >= 3:
		return EmphasisAlert
	case days >= 1:
		return EmphasisCaution
	default:
		return EmphasisNormal
	}
}

// FormatVotes renders vote counts as "+N"/"-N", or "0" when there are none.
func FormatVotes(upvotes, downvotes int) (up, down string) {
	up, down = "0", "0"
	if upvotes != 0 {
		up = "+" + strconv.Itoa(upvotes)
	}
	if downvotes != 0 {
		down = "-" + strconv.Itoa(downvotes)
	}
	return up, down
}
