package model

import "time"

// FraudSignalType identifies one independent abuse signal.
type FraudSignalType string

const (
	// FraudSignalDuplicateImage fires when an asset's perceptual hash is within
	// the Hamming threshold of another submission's asset.
	FraudSignalDuplicateImage FraudSignalType = "duplicate_image"
	// FraudSignalDuplicateText fires when feedback text is too similar to
	// another submission's feedback.
	FraudSignalDuplicateText FraudSignalType = "duplicate_text"
	// FraudSignalVelocity fires when the user's daily submission count
	// approaches the campaign's per-user daily cap.
	FraudSignalVelocity FraudSignalType = "velocity"
	// FraudSignalNewAccount fires for accounts younger than the configured age.
	FraudSignalNewAccount FraudSignalType = "new_account"
)

// Valid returns true if the FraudSignalType is valid.
func (t FraudSignalType) Valid() bool {
	switch t {
	case FraudSignalDuplicateImage, FraudSignalDuplicateText, FraudSignalVelocity, FraudSignalNewAccount:
		return true
	}
	return false
}

// FraudSignal is the immutable audit record of one signal that fed a
// participation's aggregate fraud score.
type FraudSignal struct {
	ID              string          `json:"id"               db:"id"`
	ParticipationID string          `json:"participation_id" db:"participation_id"`
	SignalType      FraudSignalType `json:"signal_type"      db:"signal_type"`
	SignalValue     float64         `json:"signal_value"     db:"signal_value"`
	Score           int             `json:"score"            db:"score"`
	Details         string          `json:"details"          db:"details"`
	CreatedAt       time.Time       `json:"created_at"       db:"created_at"`
}
