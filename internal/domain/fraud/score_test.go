package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

func intPtr(v int) *int { return &v }

func TestScore_CleanSubmission(t *testing.T) {
	res := Score(DefaultConfig(), Inputs{
		MinImageDistance:  intPtr(32),
		MaxTextSimilarity: 0.3,
		SubmissionsToday:  1,
		DailyUserCap:      5,
		AccountAgeHours:   400,
	})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, model.FraudDecisionClear, res.Decision)
	assert.Empty(t, res.Signals)
	assert.Empty(t, res.Reasons)
}

func TestScore_NoComparisonPossible(t *testing.T) {
	// First submission in a campaign: no other hashes, no other feedback.
	res := Score(DefaultConfig(), Inputs{
		MinImageDistance: nil,
		AccountAgeHours:  100,
	})

	assert.Equal(t, model.FraudDecisionClear, res.Decision)
	assert.Empty(t, res.Signals)
}

func TestScore_DuplicateImageAndText(t *testing.T) {
	res := Score(DefaultConfig(), Inputs{
		MinImageDistance:  intPtr(4),
		MaxTextSimilarity: 0.91,
		AccountAgeHours:   100,
	})

	// 40 + 30 crosses the default reject threshold of 70.
	assert.Equal(t, 70, res.Score)
	assert.Equal(t, model.FraudDecisionReject, res.Decision)
	assert.Equal(t, []string{"duplicate_image", "duplicate_text"}, res.Reasons)
	require.Len(t, res.Signals, 2)
	assert.Equal(t, model.FraudSignalDuplicateImage, res.Signals[0].Type)
	assert.Equal(t, model.FraudSignalDuplicateText, res.Signals[1].Type)
}

func TestScore_SingleSignalIsSuspect(t *testing.T) {
	res := Score(DefaultConfig(), Inputs{
		MinImageDistance: intPtr(10), // exactly at the threshold
		AccountAgeHours:  100,
	})

	assert.Equal(t, 40, res.Score)
	assert.Equal(t, model.FraudDecisionSuspect, res.Decision)
	assert.Equal(t, []string{"duplicate_image"}, res.Reasons)
}

func TestScore_VelocityRequiresCap(t *testing.T) {
	in := Inputs{
		SubmissionsToday: 4,
		DailyUserCap:     5,
		AccountAgeHours:  100,
	}
	res := Score(DefaultConfig(), in)
	assert.Equal(t, []string{"velocity"}, res.Reasons)

	// An uncapped campaign never fires the velocity signal.
	in.DailyUserCap = 0
	res = Score(DefaultConfig(), in)
	assert.Empty(t, res.Signals)
}

func TestScore_NewAccount(t *testing.T) {
	res := Score(DefaultConfig(), Inputs{
		AccountAgeHours: 2,
	})
	assert.Equal(t, 10, res.Score)
	assert.Equal(t, model.FraudDecisionSuspect, res.Decision)
	assert.Equal(t, []string{"new_account"}, res.Reasons)
}

func TestScore_AllSignalsSaturate(t *testing.T) {
	res := Score(DefaultConfig(), Inputs{
		MinImageDistance:  intPtr(0),
		MaxTextSimilarity: 1.0,
		SubmissionsToday:  5,
		DailyUserCap:      5,
		AccountAgeHours:   0.5,
	})

	assert.Equal(t, 100, res.Score)
	assert.Equal(t, model.FraudDecisionReject, res.Decision)
	assert.Len(t, res.Signals, 4)
}

func TestConfig_Sanitize(t *testing.T) {
	var cfg Config
	cfg.Sanitize()
	assert.Equal(t, DefaultConfig(), cfg)

	cfg = Config{RejectThreshold: 150, HammingThreshold: 64, TextSimilarityThreshold: 2, VelocityRatio: -1}
	cfg.Sanitize()
	assert.Equal(t, DefaultRejectThreshold, cfg.RejectThreshold)
	assert.Equal(t, DefaultHammingThreshold, cfg.HammingThreshold)
	assert.InDelta(t, DefaultTextSimilarityThreshold, cfg.TextSimilarityThreshold, 1e-9)
	assert.InDelta(t, DefaultVelocityRatio, cfg.VelocityRatio, 1e-9)

	cfg = Config{RejectThreshold: 50}
	cfg.Sanitize()
	assert.Equal(t, 50, cfg.RejectThreshold)
}

func TestTargetStatus(t *testing.T) {
	assert.Equal(t, model.ParticipationStatusPendingReview, TargetStatus(model.FraudDecisionClear))
	assert.Equal(t, model.ParticipationStatusManualReview, TargetStatus(model.FraudDecisionSuspect))
	assert.Equal(t, model.ParticipationStatusAutoRejected, TargetStatus(model.FraudDecisionReject))
}
