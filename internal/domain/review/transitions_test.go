package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from model.ParticipationStatus
		to   model.ParticipationStatus
		want bool
	}{
		{"pipeline clears to pending review", model.ParticipationStatusSubmitted, model.ParticipationStatusPendingReview, true},
		{"pipeline flags to manual review", model.ParticipationStatusSubmitted, model.ParticipationStatusManualReview, true},
		{"pipeline auto rejects", model.ParticipationStatusSubmitted, model.ParticipationStatusAutoRejected, true},
		{"reviewer approves before routing", model.ParticipationStatusSubmitted, model.ParticipationStatusApproved, true},
		{"reviewer approves pending review", model.ParticipationStatusPendingReview, model.ParticipationStatusApproved, true},
		{"reviewer approves manual review", model.ParticipationStatusManualReview, model.ParticipationStatusApproved, true},
		{"reviewer rejects pending review", model.ParticipationStatusPendingReview, model.ParticipationStatusRejected, true},
		{"payout flips approved to paid", model.ParticipationStatusApproved, model.ParticipationStatusPaid, true},

		{"auto rejected is terminal", model.ParticipationStatusAutoRejected, model.ParticipationStatusApproved, false},
		{"rejected is terminal", model.ParticipationStatusRejected, model.ParticipationStatusApproved, false},
		{"paid is terminal", model.ParticipationStatusPaid, model.ParticipationStatusApproved, false},
		{"approved cannot be rejected", model.ParticipationStatusApproved, model.ParticipationStatusRejected, false},
		{"pipeline cannot reroute pending review", model.ParticipationStatusPendingReview, model.ParticipationStatusManualReview, false},
		{"paid needs approval first", model.ParticipationStatusSubmitted, model.ParticipationStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCheckTransition(t *testing.T) {
	require.NoError(t, CheckTransition(model.ParticipationStatusSubmitted, model.ParticipationStatusPendingReview))

	err := CheckTransition(model.ParticipationStatusPaid, model.ParticipationStatusApproved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move from paid to approved")

	err = CheckTransition("bogus", model.ParticipationStatusApproved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid participation status")
}

func TestReviewableStatuses(t *testing.T) {
	statuses := ReviewableStatuses()
	assert.ElementsMatch(t, []model.ParticipationStatus{
		model.ParticipationStatusSubmitted,
		model.ParticipationStatusPendingReview,
		model.ParticipationStatusManualReview,
	}, statuses)

	// Mutating the returned slice must not affect the transition table.
	statuses[0] = model.ParticipationStatusPaid
	assert.False(t, CanTransition(model.ParticipationStatusPaid, model.ParticipationStatusApproved))
}
