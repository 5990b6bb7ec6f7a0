package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParticipationStatus represents the review lifecycle state of a submission.
type ParticipationStatus string

const (
	// ParticipationStatusSubmitted is the initial state after submission.
	ParticipationStatusSubmitted ParticipationStatus = "submitted"
	// ParticipationStatusPendingReview means the fraud pipeline found no material signals.
	ParticipationStatusPendingReview ParticipationStatus = "pending_review"
	// ParticipationStatusManualReview means signals were present but below the reject threshold.
	ParticipationStatusManualReview ParticipationStatus = "manual_review"
	// ParticipationStatusAutoRejected means the fraud score crossed the reject threshold. Terminal.
	ParticipationStatusAutoRejected ParticipationStatus = "auto_rejected"
	// ParticipationStatusApproved means an operator accepted the submission and the wallet was debited.
	ParticipationStatusApproved ParticipationStatus = "approved"
	// ParticipationStatusRejected means an operator declined the submission. Terminal.
	ParticipationStatusRejected ParticipationStatus = "rejected"
	// ParticipationStatusPaid means the reward was sent. Terminal.
	ParticipationStatusPaid ParticipationStatus = "paid"
)

// Valid returns true if the ParticipationStatus is valid.
func (s ParticipationStatus) Valid() bool {
	switch s {
	case ParticipationStatusSubmitted, ParticipationStatusPendingReview, ParticipationStatusManualReview,
		ParticipationStatusAutoRejected, ParticipationStatusApproved, ParticipationStatusRejected,
		ParticipationStatusPaid:
		return true
	}
	return false
}

// Terminal returns true for states that admit no further transitions.
func (s ParticipationStatus) Terminal() bool {
	return s == ParticipationStatusAutoRejected || s == ParticipationStatusRejected ||
		s == ParticipationStatusPaid
}

// FraudDecision is the routing outcome written by the fraud pipeline.
type FraudDecision string

const (
	// FraudDecisionClear routes to pending_review.
	FraudDecisionClear FraudDecision = "clear"
	// FraudDecisionSuspect routes to manual_review.
	FraudDecisionSuspect FraudDecision = "suspect"
	// FraudDecisionReject routes to auto_rejected.
	FraudDecisionReject FraudDecision = "reject"
)

// Participation is one tester's submission against one campaign.
// At most one participation exists per (campaign, user).
type Participation struct {
	ID            string              `json:"id"                       db:"id"`
	CampaignID    string              `json:"campaign_id"              db:"campaign_id"`
	UserID        string              `json:"user_id"                  db:"user_id"`
	Status        ParticipationStatus `json:"status"                   db:"status"`
	Answers       map[string]string   `json:"answers,omitempty"        db:"answers"`
	Feedback      string              `json:"feedback"                 db:"feedback"`
	FraudScore    *int                `json:"fraud_score,omitempty"    db:"fraud_score"`
	FraudDecision *FraudDecision      `json:"fraud_decision,omitempty" db:"fraud_decision"`
	FraudReasons  []string            `json:"fraud_reasons,omitempty"  db:"fraud_reasons"`
	// TextSimilarity is the highest similarity of this submission's feedback
	// against other feedback in the campaign, nil until computed.
	TextSimilarity *float64   `json:"text_similarity,omitempty" db:"text_similarity"`
	ReviewerID     *string    `json:"reviewer_id,omitempty"     db:"reviewer_id"`
	RejectReason   *string    `json:"reject_reason,omitempty"   db:"reject_reason"`
	SubmittedAt    time.Time  `json:"submitted_at"              db:"submitted_at"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"     db:"reviewed_at"`
	CreatedAt      time.Time  `json:"created_at"                db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"                db:"updated_at"`
}

// SubmitAssetInput describes one uploaded asset slot in a submission.
type SubmitAssetInput struct {
	Slot       int    `json:"slot"`
	StorageKey string `json:"storage_key"`
}

// SubmitParticipationRequest represents a tester's submission.
type SubmitParticipationRequest struct {
	CampaignID string             `json:"campaign_id"`
	UserID     string             `json:"user_id"`
	Answers    map[string]string  `json:"answers,omitempty"`
	Feedback   string             `json:"feedback"`
	Assets     []SubmitAssetInput `json:"assets"`
}

// Validate validates the SubmitParticipationRequest fields.
func (r *SubmitParticipationRequest) Validate() error {
	if _, err := uuid.Parse(r.CampaignID); err != nil {
		return errors.New("campaign_id must be a valid UUID")
	}
	if _, err := uuid.Parse(r.UserID); err != nil {
		return errors.New("user_id must be a valid UUID")
	}
	if strings.TrimSpace(r.Feedback) == "" {
		return errors.New("feedback is required")
	}
	seen := make(map[int]bool, len(r.Assets))
	for i := range r.Assets {
		a := &r.Assets[i]
		if a.Slot < 0 {
			return errors.New("asset slot must be >= 0")
		}
		if seen[a.Slot] {
			return errors.New("duplicate asset slot")
		}
		seen[a.Slot] = true
		if strings.TrimSpace(a.StorageKey) == "" {
			return errors.New("asset storage_key is required")
		}
	}
	return nil
}

// ReviewRequest carries an operator approve/reject action.
type ReviewRequest struct {
	ReviewerID string `json:"reviewer_id"`
	Reason     string `json:"reason,omitempty"`
}
