package pipeline

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/betabounty/betabounty-api/internal/domain/model"
	"github.com/betabounty/betabounty-api/internal/mocks"
)

func TestTextSimilarityHandler_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	participationID := uuid.NewString()
	campaignID := uuid.NewString()

	repo := mocks.NewMockParticipationRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), participationID).Return(&model.Participation{
		ID:         participationID,
		CampaignID: campaignID,
		Feedback:   "The checkout button overlaps the footer on small screens.",
	}, nil)
	repo.EXPECT().ListFeedback(gomock.Any(), campaignID, participationID).Return(map[string]string{
		uuid.NewString(): "The checkout button overlaps the footer on small screens.",
		uuid.NewString(): "Push notifications arrive twice after reinstalling.",
	}, nil)
	repo.EXPECT().SetTextSimilarity(gomock.Any(), participationID, gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string, value float64) error {
			// One candidate is a verbatim copy.
			assert.InDelta(t, 1.0, value, 1e-9)
			return nil
		})

	h, err := NewTextSimilarityHandler(TextSimilarityHandlerOptions{Participations: repo})
	require.NoError(t, err)

	err = h.Handle(context.Background(), &model.Job{}, &model.TextSimilarityPayload{ParticipationID: participationID})
	require.NoError(t, err)
}

func TestTextSimilarityHandler_Handle_NoOtherFeedback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	participationID := uuid.NewString()
	campaignID := uuid.NewString()

	repo := mocks.NewMockParticipationRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), participationID).Return(&model.Participation{
		ID:         participationID,
		CampaignID: campaignID,
		Feedback:   "First submission in the campaign.",
	}, nil)
	repo.EXPECT().ListFeedback(gomock.Any(), campaignID, participationID).Return(map[string]string{}, nil)
	repo.EXPECT().SetTextSimilarity(gomock.Any(), participationID, float64(0)).Return(nil)

	h, err := NewTextSimilarityHandler(TextSimilarityHandlerOptions{Participations: repo})
	require.NoError(t, err)

	err = h.Handle(context.Background(), &model.Job{}, &model.TextSimilarityPayload{ParticipationID: participationID})
	require.NoError(t, err)
}

func TestTextSimilarityHandler_Handle_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	participationID := uuid.NewString()

	repo := mocks.NewMockParticipationRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), participationID).Return(nil, assert.AnError)

	h, err := NewTextSimilarityHandler(TextSimilarityHandlerOptions{Participations: repo})
	require.NoError(t, err)

	err = h.Handle(context.Background(), &model.Job{}, &model.TextSimilarityPayload{ParticipationID: participationID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load participation")
}
