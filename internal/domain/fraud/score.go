package fraud

import (
	"fmt"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// Default thresholds and weights. Weights sum to 100 so a submission tripping
// every signal saturates the score.
const (
	// DefaultRejectThreshold is the aggregate score at or above which a
	// participation is auto-rejected without human review.
	DefaultRejectThreshold = 70
	// DefaultHammingThreshold is the maximum bit distance at which two
	// perceptual hashes count as near-duplicates.
	DefaultHammingThreshold = 10
	// DefaultTextSimilarityThreshold is the similarity at or above which
	// feedback counts as copied.
	DefaultTextSimilarityThreshold = 0.82
	// DefaultVelocityRatio is the fraction of the daily cap at which the
	// velocity signal fires.
	DefaultVelocityRatio = 0.8

	DefaultWeightDuplicateImage = 40
	DefaultWeightDuplicateText  = 30
	DefaultWeightVelocity       = 20
	DefaultWeightNewAccount     = 10
)

// Config carries the tunable thresholds and weights of the scorer.
type Config struct {
	RejectThreshold         int
	HammingThreshold        int
	TextSimilarityThreshold float64
	VelocityRatio           float64

	WeightDuplicateImage int
	WeightDuplicateText  int
	WeightVelocity       int
	WeightNewAccount     int
}

// DefaultConfig returns the default scorer configuration.
func DefaultConfig() Config {
	return Config{
		RejectThreshold:         DefaultRejectThreshold,
		HammingThreshold:        DefaultHammingThreshold,
		TextSimilarityThreshold: DefaultTextSimilarityThreshold,
		VelocityRatio:           DefaultVelocityRatio,
		WeightDuplicateImage:    DefaultWeightDuplicateImage,
		WeightDuplicateText:     DefaultWeightDuplicateText,
		WeightVelocity:          DefaultWeightVelocity,
		WeightNewAccount:        DefaultWeightNewAccount,
	}
}

// Sanitize applies guardrails to zero or out-of-range values.
func (c *Config) Sanitize() {
	d := DefaultConfig()
	if c.RejectThreshold <= 0 || c.RejectThreshold > 100 {
		c.RejectThreshold = d.RejectThreshold
	}
	if c.HammingThreshold <= 0 || c.HammingThreshold >= HashBits {
		c.HammingThreshold = d.HammingThreshold
	}
	if c.TextSimilarityThreshold <= 0 || c.TextSimilarityThreshold > 1 {
		c.TextSimilarityThreshold = d.TextSimilarityThreshold
	}
	if c.VelocityRatio <= 0 || c.VelocityRatio > 1 {
		c.VelocityRatio = d.VelocityRatio
	}
	if c.WeightDuplicateImage <= 0 {
		c.WeightDuplicateImage = d.WeightDuplicateImage
	}
	if c.WeightDuplicateText <= 0 {
		c.WeightDuplicateText = d.WeightDuplicateText
	}
	if c.WeightVelocity <= 0 {
		c.WeightVelocity = d.WeightVelocity
	}
	if c.WeightNewAccount <= 0 {
		c.WeightNewAccount = d.WeightNewAccount
	}
}

// Signal is one concrete observation contributing to the aggregate score.
type Signal struct {
	Type    model.FraudSignalType
	Value   float64
	Score   int
	Details string
}

// Result is the aggregate outcome of scoring one participation.
type Result struct {
	Score    int
	Decision model.FraudDecision
	Signals  []Signal
	Reasons  []string
}

// Inputs carries the raw observations gathered by the fraud-check handler.
type Inputs struct {
	// MinImageDistance is the smallest Hamming distance between any of the
	// participation's asset hashes and any other submission's hash. Nil when
	// no comparison was possible (no other hashes exist yet).
	MinImageDistance *int
	// MaxTextSimilarity is the highest similarity between the feedback and any
	// other submission's feedback.
	MaxTextSimilarity float64
	// SubmissionsToday counts the user's submissions in the current day.
	SubmissionsToday int
	// DailyUserCap is the campaign's per-user daily cap (0 disables velocity).
	DailyUserCap int
	// AccountAgeHours is the tester account age at submission time.
	AccountAgeHours float64
}

// Score aggregates the inputs into a [0,100] fraud score with its routing
// decision and one Signal per fired rule.
func Score(cfg Config, in Inputs) Result {
	var res Result

	if in.MinImageDistance != nil && *in.MinImageDistance <= cfg.HammingThreshold {
		res.Signals = append(res.Signals, Signal{
			Type:    model.FraudSignalDuplicateImage,
			Value:   float64(*in.MinImageDistance),
			Score:   cfg.WeightDuplicateImage,
			Details: fmt.Sprintf("asset hash within %d bits of another submission", *in.MinImageDistance),
		})
		res.Reasons = append(res.Reasons, "duplicate_image")
	}

	if in.MaxTextSimilarity >= cfg.TextSimilarityThreshold {
		res.Signals = append(res.Signals, Signal{
			Type:    model.FraudSignalDuplicateText,
			Value:   in.MaxTextSimilarity,
			Score:   cfg.WeightDuplicateText,
			Details: fmt.Sprintf("feedback similarity %.2f against another submission", in.MaxTextSimilarity),
		})
		res.Reasons = append(res.Reasons, "duplicate_text")
	}

	if in.DailyUserCap > 0 {
		ratio := float64(in.SubmissionsToday) / float64(in.DailyUserCap)
		if ratio >= cfg.VelocityRatio {
			res.Signals = append(res.Signals, Signal{
				Type:    model.FraudSignalVelocity,
				Value:   ratio,
				Score:   cfg.WeightVelocity,
				Details: fmt.Sprintf("%d of %d daily submissions used", in.SubmissionsToday, in.DailyUserCap),
			})
			res.Reasons = append(res.Reasons, "velocity")
		}
	}

	if in.AccountAgeHours >= 0 && in.AccountAgeHours < 24 {
		res.Signals = append(res.Signals, Signal{
			Type:    model.FraudSignalNewAccount,
			Value:   in.AccountAgeHours,
			Score:   cfg.WeightNewAccount,
			Details: fmt.Sprintf("account is %.1f hours old", in.AccountAgeHours),
		})
		res.Reasons = append(res.Reasons, "new_account")
	}

	for _, s := range res.Signals {
		res.Score += s.Score
	}
	if res.Score > 100 {
		res.Score = 100
	}

	switch {
	case res.Score >= cfg.RejectThreshold:
		res.Decision = model.FraudDecisionReject
	case len(res.Signals) > 0:
		res.Decision = model.FraudDecisionSuspect
	default:
		res.Decision = model.FraudDecisionClear
	}

	return res
}

// TargetStatus maps a decision to the participation status it routes to.
func TargetStatus(d model.FraudDecision) model.ParticipationStatus {
	switch d {
	case model.FraudDecisionReject:
		return model.ParticipationStatusAutoRejected
	case model.FraudDecisionSuspect:
		return model.ParticipationStatusManualReview
	default:
		return model.ParticipationStatusPendingReview
	}
}
