package service

import (
	"fmt"

	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/pkg/apperror"
)

type ReviewDecision int

const (
	DecisionApprove ReviewDecision = iota
	DecisionReject
)

// ParseReviewDecision resolves the action segment of the review route.
func ParseReviewDecision(action string) (ReviewDecision, error) {
	switch action {
	case "approve":
		return DecisionApprove, nil
	case "reject":
		return DecisionReject, nil
	}
	return 0, fmt.Errorf("unknown review action %q: %w", action, apperror.ErrInvalidInput)
}

// ConsensusThresholds are deployment configuration, not constants.
type ConsensusThresholds struct {
	MinApprovals  int
	MinRejections int
}

// ReviewOutcome is the result of applying one decision to a video's tally.
type ReviewOutcome struct {
	Summary      model.ReviewSummary
	Status       model.VideoStatus
	Transitioned bool
}

// ApplyReview is the consensus decision function: it increments the tally
// and decides whether the video reaches a terminal status. The rejection
// threshold is checked before the approval threshold, so a summary
// satisfying both resolves to rejected. Videos already past review are not
// tallied again; that would double-move the gloss counters.
func ApplyReview(summary model.ReviewSummary, status model.VideoStatus, decision ReviewDecision, t ConsensusThresholds) (ReviewOutcome, error) {
	if status != model.StatusPendingApproval {
		return ReviewOutcome{}, apperror.ErrReviewClosed
	}

	switch decision {
	case DecisionApprove:
		summary.Approved++
	case DecisionReject:
		summary.Rejected++
	default:
		return ReviewOutcome{}, fmt.Errorf("unknown review decision %d: %w", decision, apperror.ErrInvalidInput)
	}

	outcome := ReviewOutcome{Summary: summary, Status: status}

	if summary.Rejected >= t.MinRejections {
		outcome.Status = model.StatusRejected
		outcome.Transitioned = true
	} else if summary.Approved >= t.MinApprovals {
		outcome.Status = model.StatusApproved
		outcome.Transitioned = true
	}

	return outcome, nil
}
