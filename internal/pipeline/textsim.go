package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/fraud"
	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// TextSimilarityHandlerOptions groups dependencies for TextSimilarityHandler.
type TextSimilarityHandlerOptions struct {
	Participations core.ParticipationRepository // Required
	Logger         *slog.Logger                 // Optional
}

// TextSimilarityHandler scores a submission's feedback against the other
// feedback in the same campaign and persists the highest similarity, feeding
// the copy/paste signal of the fraud check.
type TextSimilarityHandler struct {
	participations core.ParticipationRepository
	logger         *slog.Logger
}

// NewTextSimilarityHandler constructs a new TextSimilarityHandler.
func NewTextSimilarityHandler(opts TextSimilarityHandlerOptions) (*TextSimilarityHandler, error) {
	if opts.Participations == nil {
		return nil, errors.New("ParticipationRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "text_similarity_handler")
	}
	return &TextSimilarityHandler{participations: opts.Participations, logger: logger}, nil
}

// Handle computes the Sorensen-Dice similarity of the feedback against all
// other feedback in the campaign and stores the maximum. A campaign with no
// other submissions stores 0. Recomputation yields the same or a higher
// value, so redelivery is safe.
func (h *TextSimilarityHandler) Handle(ctx context.Context, _ *model.Job, payload any) error {
	p, ok := payload.(*model.TextSimilarityPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", payload)
	}

	participation, err := h.participations.GetByID(ctx, p.ParticipationID)
	if err != nil {
		return fmt.Errorf("load participation: %w", err)
	}

	others, err := h.participations.ListFeedback(ctx, participation.CampaignID, participation.ID)
	if err != nil {
		return fmt.Errorf("list campaign feedback: %w", err)
	}

	candidates := make([]string, 0, len(others))
	for _, feedback := range others {
		candidates = append(candidates, feedback)
	}
	maxSim, _ := fraud.MaxSimilarity(participation.Feedback, candidates)

	if err := h.participations.SetTextSimilarity(ctx, participation.ID, maxSim); err != nil {
		return fmt.Errorf("store text similarity: %w", err)
	}

	if h.logger != nil {
		h.logger.DebugContext(ctx, "feedback similarity computed",
			"participation_id", participation.ID,
			"max_similarity", maxSim,
			"compared", len(candidates),
		)
	}
	return nil
}
