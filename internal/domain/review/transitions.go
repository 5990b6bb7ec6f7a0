// Package review encodes the participation lifecycle rules: which states a
// submission may move between, and which actor drives each transition.
package review

import (
	"fmt"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// allowed maps each target status to the set of source statuses it may be
// reached from. Transitions outside this table are conflicts.
var allowed = map[model.ParticipationStatus][]model.ParticipationStatus{
	// Pipeline-driven routing out of submitted.
	model.ParticipationStatusPendingReview: {model.ParticipationStatusSubmitted},
	model.ParticipationStatusManualReview:  {model.ParticipationStatusSubmitted},
	model.ParticipationStatusAutoRejected:  {model.ParticipationStatusSubmitted},

	// Operator decisions. Submitted is a valid source so a reviewer can act
	// before the pipeline has routed the submission.
	model.ParticipationStatusApproved: {
		model.ParticipationStatusSubmitted,
		model.ParticipationStatusPendingReview,
		model.ParticipationStatusManualReview,
	},
	model.ParticipationStatusRejected: {
		model.ParticipationStatusSubmitted,
		model.ParticipationStatusPendingReview,
		model.ParticipationStatusManualReview,
	},

	// Reward issuance.
	model.ParticipationStatusPaid: {model.ParticipationStatusApproved},
}

// CanTransition reports whether a participation may move from one status to another.
func CanTransition(from, to model.ParticipationStatus) bool {
	for _, src := range allowed[to] {
		if src == from {
			return true
		}
	}
	return false
}

// AllowedSources returns the valid source statuses for a target status, in
// table order. Used by repositories to build conditional-update guards.
func AllowedSources(to model.ParticipationStatus) []model.ParticipationStatus {
	srcs := allowed[to]
	out := make([]model.ParticipationStatus, len(srcs))
	copy(out, srcs)
	return out
}

// ReviewableStatuses are the states an operator may approve or reject from.
func ReviewableStatuses() []model.ParticipationStatus {
	return AllowedSources(model.ParticipationStatusApproved)
}

// CheckTransition returns a descriptive error when the transition is not allowed.
func CheckTransition(from, to model.ParticipationStatus) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("invalid participation status: %q -> %q", from, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("participation cannot move from %s to %s", from, to)
	}
	return nil
}
