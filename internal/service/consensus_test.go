package service

import (
	"testing"

	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReviewStaysPendingBelowThreshold(t *testing.T) {
	thresholds := ConsensusThresholds{MinApprovals: 3, MinRejections: 3}

	outcome, err := ApplyReview(model.ReviewSummary{Approved: 1}, model.StatusPendingApproval, DecisionApprove, thresholds)
	require.NoError(t, err)

	assert.Equal(t, model.ReviewSummary{Approved: 2}, outcome.Summary)
	assert.Equal(t, model.StatusPendingApproval, outcome.Status)
	assert.False(t, outcome.Transitioned)
}

func TestApplyReviewApprovesAtThreshold(t *testing.T) {
	thresholds := ConsensusThresholds{MinApprovals: 3, MinRejections: 3}

	outcome, err := ApplyReview(model.ReviewSummary{Approved: 2, Rejected: 1}, model.StatusPendingApproval, DecisionApprove, thresholds)
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, outcome.Status)
	assert.True(t, outcome.Transitioned)
	assert.Equal(t, model.ReviewSummary{Approved: 3, Rejected: 1}, outcome.Summary)
}

func TestApplyReviewRejectsAtThreshold(t *testing.T) {
	thresholds := ConsensusThresholds{MinApprovals: 3, MinRejections: 2}

	outcome, err := ApplyReview(model.ReviewSummary{Rejected: 1}, model.StatusPendingApproval, DecisionReject, thresholds)
	require.NoError(t, err)

	assert.Equal(t, model.StatusRejected, outcome.Status)
	assert.True(t, outcome.Transitioned)
}

// A summary satisfying both thresholds resolves to rejected: the rejection
// check runs first.
func TestApplyReviewRejectionWinsWhenBothThresholdsMet(t *testing.T) {
	thresholds := ConsensusThresholds{MinApprovals: 3, MinRejections: 3}

	outcome, err := ApplyReview(model.ReviewSummary{Approved: 3, Rejected: 2}, model.StatusPendingApproval, DecisionReject, thresholds)
	require.NoError(t, err)

	assert.Equal(t, model.StatusRejected, outcome.Status)
	assert.True(t, outcome.Transitioned)
}

func TestApplyReviewClosedAfterTerminal(t *testing.T) {
	thresholds := ConsensusThresholds{MinApprovals: 3, MinRejections: 3}

	for _, status := range []model.VideoStatus{
		model.StatusApproved,
		model.StatusRejected,
		model.StatusWaitingUpload,
		model.StatusSample,
	} {
		_, err := ApplyReview(model.ReviewSummary{}, status, DecisionApprove, thresholds)
		assert.ErrorIs(t, err, apperror.ErrReviewClosed, "status %s", status)
	}
}

func TestApplyReviewLowThresholdDeployment(t *testing.T) {
	thresholds := ConsensusThresholds{MinApprovals: 2, MinRejections: 2}

	outcome, err := ApplyReview(model.ReviewSummary{Approved: 1}, model.StatusPendingApproval, DecisionApprove, thresholds)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, outcome.Status)
}

func TestParseReviewDecision(t *testing.T) {
	decision, err := ParseReviewDecision("approve")
	require.NoError(t, err)
	assert.Equal(t, DecisionApprove, decision)

	decision, err = ParseReviewDecision("reject")
	require.NoError(t, err)
	assert.Equal(t, DecisionReject, decision)

	_, err = ParseReviewDecision("maybe")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
