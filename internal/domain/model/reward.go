package model

import (
	"errors"
	"strings"
	"time"
)

// RewardStatus represents the issuance state of a reward.
type RewardStatus string

const (
	// RewardStatusRequested is the initial state, created on approval.
	RewardStatusRequested RewardStatus = "requested"
	// RewardStatusSent means the payout was delivered with proof. Terminal.
	RewardStatusSent RewardStatus = "sent"
	// RewardStatusFailed means the payout could not be delivered. Terminal.
	RewardStatusFailed RewardStatus = "failed"
)

// Valid returns true if the RewardStatus is valid.
func (s RewardStatus) Valid() bool {
	return s == RewardStatusRequested || s == RewardStatusSent || s == RewardStatusFailed
}

// Terminal returns true once the reward has left requested.
func (s RewardStatus) Terminal() bool {
	return s == RewardStatusSent || s == RewardStatusFailed
}

// Reward is the payout obligation to a tester created when their
// participation is approved. At most one non-terminal reward exists per
// participation.
type Reward struct {
	ID              string       `json:"id"                    db:"id"`
	ParticipationID string       `json:"participation_id"      db:"participation_id"`
	UserID          string       `json:"user_id"               db:"user_id"`
	Amount          int64        `json:"amount"                db:"amount"`
	Status          RewardStatus `json:"status"                db:"status"`
	Method          string       `json:"method"                db:"method"`
	ProofRef        *string      `json:"proof_ref,omitempty"   db:"proof_ref"`
	FailReason      *string      `json:"fail_reason,omitempty" db:"fail_reason"`
	SentAt          *time.Time   `json:"sent_at,omitempty"     db:"sent_at"`
	CreatedAt       time.Time    `json:"created_at"            db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"            db:"updated_at"`
}

// MarkSentRequest records the out-of-band payout with its proof.
type MarkSentRequest struct {
	ProofRef string `json:"proof_ref"`
	Method   string `json:"method,omitempty"`
}

// Validate validates the MarkSentRequest fields.
func (r *MarkSentRequest) Validate() error {
	if strings.TrimSpace(r.ProofRef) == "" {
		return errors.New("proof_ref is required")
	}
	return nil
}

// MarkFailedRequest records a payout failure.
type MarkFailedRequest struct {
	Reason string `json:"reason"`
}

// Validate validates the MarkFailedRequest fields.
func (r *MarkFailedRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("reason is required")
	}
	return nil
}
