package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/fraud"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
	"github.com/betabounty/betabounty-api/internal/mocks"
)

type fraudCheckMocks struct {
	participations *mocks.MockParticipationRepository
	assets         *mocks.MockAssetRepository
	campaigns      *mocks.MockCampaignRepository
	users          *mocks.MockUserRepository
	velocity       *mocks.MockVelocityCounter
}

func newFraudCheckMocks(ctrl *gomock.Controller) *fraudCheckMocks {
	return &fraudCheckMocks{
		participations: mocks.NewMockParticipationRepository(ctrl),
		assets:         mocks.NewMockAssetRepository(ctrl),
		campaigns:      mocks.NewMockCampaignRepository(ctrl),
		users:          mocks.NewMockUserRepository(ctrl),
		velocity:       mocks.NewMockVelocityCounter(ctrl),
	}
}

func newTestFraudCheckHandler(t *testing.T, m *fraudCheckMocks) *FraudCheckHandler {
	t.Helper()
	h, err := NewFraudCheckHandler(FraudCheckHandlerOptions{
		Repos: FraudCheckRepos{
			Participations: m.participations,
			Assets:         m.assets,
			Campaigns:      m.campaigns,
			Users:          m.users,
			Velocity:       m.velocity,
		},
		Config: fraud.DefaultConfig(),
	})
	require.NoError(t, err)
	return h
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// submittedParticipation returns a participation still waiting on its fraud
// check, backed by a week-old account.
func submittedParticipation(similarity float64) *model.Participation {
	return &model.Participation{
		ID:             uuid.NewString(),
		CampaignID:     uuid.NewString(),
		UserID:         uuid.NewString(),
		Status:         model.ParticipationStatusSubmitted,
		TextSimilarity: floatPtr(similarity),
		SubmittedAt:    time.Now().UTC(),
	}
}

func expectUserAgedHours(m *fraudCheckMocks, p *model.Participation, hours float64) {
	m.users.EXPECT().GetByID(gomock.Any(), p.UserID).Return(&model.User{
		ID:        p.UserID,
		CreatedAt: p.SubmittedAt.Add(-time.Duration(hours * float64(time.Hour))),
	}, nil)
}

func TestFraudCheckHandler_Handle_CleanSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newFraudCheckMocks(ctrl)
	p := submittedParticipation(0.1)

	m.participations.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	m.assets.EXPECT().ListByParticipation(gomock.Any(), p.ID).Return([]*model.Asset{
		{ID: uuid.NewString(), PerceptualHash: strPtr("0000000000000000")},
	}, nil)
	m.assets.EXPECT().ListOtherHashes(gomock.Any(), p.ID).Return(map[string]string{
		uuid.NewString(): "ffffffffffffffff",
	}, nil)
	m.campaigns.EXPECT().GetByID(gomock.Any(), p.CampaignID).Return(&model.Campaign{
		ID: p.CampaignID, DailyUserCap: 5,
	}, nil)
	expectUserAgedHours(m, p, 24*7)
	m.velocity.EXPECT().Count(gomock.Any(), p.UserID).Return(1, nil)
	m.participations.EXPECT().RecordFraudOutcome(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, params core.RecordFraudOutcomeParams) (*model.Participation, error) {
			assert.Equal(t, 0, params.Score)
			assert.Equal(t, model.FraudDecisionClear, params.Decision)
			assert.Equal(t, model.ParticipationStatusPendingReview, params.Status)
			assert.Empty(t, params.Signals)
			return p, nil
		})

	h := newTestFraudCheckHandler(t, m)
	err := h.Handle(context.Background(), &model.Job{}, &model.FraudCheckPayload{ParticipationID: p.ID})
	require.NoError(t, err)
}

func TestFraudCheckHandler_Handle_DuplicatesAutoReject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newFraudCheckMocks(ctrl)
	p := submittedParticipation(0.95)

	m.participations.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	m.assets.EXPECT().ListByParticipation(gomock.Any(), p.ID).Return([]*model.Asset{
		{ID: uuid.NewString(), PerceptualHash: strPtr("0000000000000000")},
	}, nil)
	// Distance 2, well within the near-duplicate threshold.
	m.assets.EXPECT().ListOtherHashes(gomock.Any(), p.ID).Return(map[string]string{
		uuid.NewString(): "0000000000000003",
	}, nil)
	m.campaigns.EXPECT().GetByID(gomock.Any(), p.CampaignID).Return(&model.Campaign{
		ID: p.CampaignID, DailyUserCap: 5,
	}, nil)
	expectUserAgedHours(m, p, 24*7)
	m.velocity.EXPECT().Count(gomock.Any(), p.UserID).Return(1, nil)
	m.participations.EXPECT().RecordFraudOutcome(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, params core.RecordFraudOutcomeParams) (*model.Participation, error) {
			assert.Equal(t, 70, params.Score)
			assert.Equal(t, model.FraudDecisionReject, params.Decision)
			assert.Equal(t, model.ParticipationStatusAutoRejected, params.Status)
			require.Len(t, params.Signals, 2)
			assert.Equal(t, model.FraudSignalDuplicateImage, params.Signals[0].SignalType)
			assert.Equal(t, model.FraudSignalDuplicateText, params.Signals[1].SignalType)
			return p, nil
		})

	h := newTestFraudCheckHandler(t, m)
	err := h.Handle(context.Background(), &model.Job{}, &model.FraudCheckPayload{ParticipationID: p.ID})
	require.NoError(t, err)
}

func TestFraudCheckHandler_Handle_AlreadyRouted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newFraudCheckMocks(ctrl)
	p := submittedParticipation(0.1)
	p.Status = model.ParticipationStatusPendingReview

	m.participations.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)

	h := newTestFraudCheckHandler(t, m)
	err := h.Handle(context.Background(), &model.Job{}, &model.FraudCheckPayload{ParticipationID: p.ID})
	require.NoError(t, err)
}

func TestFraudCheckHandler_Handle_MissingHashRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newFraudCheckMocks(ctrl)
	p := submittedParticipation(0.1)

	m.participations.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	m.assets.EXPECT().ListByParticipation(gomock.Any(), p.ID).Return([]*model.Asset{
		{ID: uuid.NewString(), PerceptualHash: nil},
	}, nil)

	h := newTestFraudCheckHandler(t, m)
	err := h.Handle(context.Background(), &model.Job{}, &model.FraudCheckPayload{ParticipationID: p.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no perceptual hash yet")
}

func TestFraudCheckHandler_Handle_MissingSimilarityRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newFraudCheckMocks(ctrl)
	p := submittedParticipation(0)
	p.TextSimilarity = nil

	m.participations.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	m.assets.EXPECT().ListByParticipation(gomock.Any(), p.ID).Return([]*model.Asset{
		{ID: uuid.NewString(), PerceptualHash: strPtr("0000000000000000")},
	}, nil)

	h := newTestFraudCheckHandler(t, m)
	err := h.Handle(context.Background(), &model.Job{}, &model.FraudCheckPayload{ParticipationID: p.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not computed yet")
}

func TestFraudCheckHandler_Handle_ConflictMeansAlreadyRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newFraudCheckMocks(ctrl)
	p := submittedParticipation(0.1)

	m.participations.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	m.assets.EXPECT().ListByParticipation(gomock.Any(), p.ID).Return([]*model.Asset{
		{ID: uuid.NewString(), PerceptualHash: strPtr("0000000000000000")},
	}, nil)
	m.assets.EXPECT().ListOtherHashes(gomock.Any(), p.ID).Return(map[string]string{}, nil)
	m.campaigns.EXPECT().GetByID(gomock.Any(), p.CampaignID).Return(&model.Campaign{ID: p.CampaignID}, nil)
	expectUserAgedHours(m, p, 24*7)
	m.velocity.EXPECT().Count(gomock.Any(), p.UserID).Return(0, nil)
	m.participations.EXPECT().RecordFraudOutcome(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("participation review state changed"))

	h := newTestFraudCheckHandler(t, m)
	err := h.Handle(context.Background(), &model.Job{}, &model.FraudCheckPayload{ParticipationID: p.ID})
	require.NoError(t, err)
}

func TestFraudCheckHandler_Handle_VelocityReadFailureIsAdvisory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newFraudCheckMocks(ctrl)
	p := submittedParticipation(0.1)

	m.participations.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	m.assets.EXPECT().ListByParticipation(gomock.Any(), p.ID).Return([]*model.Asset{
		{ID: uuid.NewString(), PerceptualHash: strPtr("0000000000000000")},
	}, nil)
	m.assets.EXPECT().ListOtherHashes(gomock.Any(), p.ID).Return(map[string]string{}, nil)
	m.campaigns.EXPECT().GetByID(gomock.Any(), p.CampaignID).Return(&model.Campaign{
		ID: p.CampaignID, DailyUserCap: 5,
	}, nil)
	expectUserAgedHours(m, p, 24*7)
	m.velocity.EXPECT().Count(gomock.Any(), p.UserID).Return(0, assert.AnError)
	m.participations.EXPECT().RecordFraudOutcome(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, params core.RecordFraudOutcomeParams) (*model.Participation, error) {
			assert.Equal(t, model.FraudDecisionClear, params.Decision)
			return p, nil
		})

	h := newTestFraudCheckHandler(t, m)
	err := h.Handle(context.Background(), &model.Job{}, &model.FraudCheckPayload{ParticipationID: p.ID})
	require.NoError(t, err)
}
