package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/fraud"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
)

// FraudCheckRepos groups the repositories the aggregation handler reads.
type FraudCheckRepos struct {
	Participations core.ParticipationRepository // Required
	Assets         core.AssetRepository         // Required
	Campaigns      core.CampaignRepository      // Required
	Users          core.UserRepository          // Required
	Velocity       core.VelocityCounter         // Optional: Redis daily counters
}

// FraudCheckHandlerOptions groups dependencies for FraudCheckHandler.
type FraudCheckHandlerOptions struct {
	Repos  FraudCheckRepos
	Config fraud.Config
	Logger *slog.Logger // Optional
}

// FraudCheckHandler aggregates the individual fraud signals into a single
// score and routes the participation out of submitted. It runs on a delay
// after submission; when its prerequisites (asset hashes, text similarity)
// are not yet written it returns an error so backoff retries act as the
// ordering join.
type FraudCheckHandler struct {
	repos  FraudCheckRepos
	cfg    fraud.Config
	logger *slog.Logger
}

// NewFraudCheckHandler constructs a new FraudCheckHandler.
func NewFraudCheckHandler(opts FraudCheckHandlerOptions) (*FraudCheckHandler, error) {
	r := opts.Repos
	if r.Participations == nil {
		return nil, errors.New("ParticipationRepository is required")
	}
	if r.Assets == nil {
		return nil, errors.New("AssetRepository is required")
	}
	if r.Campaigns == nil {
		return nil, errors.New("CampaignRepository is required")
	}
	if r.Users == nil {
		return nil, errors.New("UserRepository is required")
	}

	cfg := opts.Config
	cfg.Sanitize()

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "fraud_check_handler")
	}
	return &FraudCheckHandler{repos: r, cfg: cfg, logger: logger}, nil
}

// Handle gathers the signal inputs, scores them, and writes score, decision,
// reasons and signal rows in the same update that performs the status
// transition. A participation already routed out of submitted makes the
// write a no-op, so redelivery is safe.
func (h *FraudCheckHandler) Handle(ctx context.Context, _ *model.Job, payload any) error {
	p, ok := payload.(*model.FraudCheckPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", payload)
	}

	participation, err := h.repos.Participations.GetByID(ctx, p.ParticipationID)
	if err != nil {
		return fmt.Errorf("load participation: %w", err)
	}
	if participation.Status != model.ParticipationStatusSubmitted {
		// A previous delivery already routed it.
		return nil
	}

	inputs, err := h.gatherInputs(ctx, participation)
	if err != nil {
		return err
	}

	result := fraud.Score(h.cfg, *inputs)

	signals := make([]*model.FraudSignal, 0, len(result.Signals))
	for _, s := range result.Signals {
		signals = append(signals, &model.FraudSignal{
			ParticipationID: participation.ID,
			SignalType:      s.Type,
			SignalValue:     s.Value,
			Score:           s.Score,
			Details:         s.Details,
		})
	}

	_, err = h.repos.Participations.RecordFraudOutcome(ctx, core.RecordFraudOutcomeParams{
		ParticipationID: participation.ID,
		Score:           result.Score,
		Decision:        result.Decision,
		Reasons:         result.Reasons,
		Status:          fraud.TargetStatus(result.Decision),
		Signals:         signals,
	})
	if apperrors.IsConflict(err) {
		// Lost the race to another delivery; the outcome is recorded.
		return nil
	}
	if err != nil {
		return fmt.Errorf("record fraud outcome: %w", err)
	}

	if h.logger != nil {
		h.logger.InfoContext(ctx, "fraud check recorded",
			"participation_id", participation.ID,
			"score", result.Score,
			"decision", result.Decision,
			"reasons", result.Reasons,
		)
	}
	return nil
}

// gatherInputs collects the raw observations the scorer needs. Missing
// prerequisites surface as errors, not zero values, so an early-running
// aggregation cannot under-score a submission.
func (h *FraudCheckHandler) gatherInputs(ctx context.Context, p *model.Participation) (*fraud.Inputs, error) {
	assets, err := h.repos.Assets.ListByParticipation(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	var ownHashes []string
	for _, a := range assets {
		if a.PerceptualHash == nil {
			return nil, fmt.Errorf("asset %s has no perceptual hash yet", a.ID)
		}
		ownHashes = append(ownHashes, *a.PerceptualHash)
	}
	if p.TextSimilarity == nil {
		return nil, fmt.Errorf("text similarity for participation %s not computed yet", p.ID)
	}

	otherHashes, err := h.repos.Assets.ListOtherHashes(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list other hashes: %w", err)
	}

	var minDistance *int
	for _, own := range ownHashes {
		for _, other := range otherHashes {
			d, hammingErr := fraud.HammingDistance(own, other)
			if hammingErr != nil {
				if h.logger != nil {
					h.logger.WarnContext(ctx, "skipping malformed hash", "error", hammingErr)
				}
				continue
			}
			if minDistance == nil || d < *minDistance {
				v := d
				minDistance = &v
			}
		}
	}

	campaign, err := h.repos.Campaigns.GetByID(ctx, p.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("load campaign: %w", err)
	}

	user, err := h.repos.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	submissionsToday := 0
	if h.repos.Velocity != nil {
		count, velErr := h.repos.Velocity.Count(ctx, p.UserID)
		if velErr != nil {
			// The counter is advisory; fall back to an unset signal rather
			// than blocking the whole evaluation on Redis.
			if h.logger != nil {
				h.logger.WarnContext(ctx, "velocity counter read failed",
					"user_id", p.UserID, "error", velErr)
			}
		} else {
			submissionsToday = count
		}
	}

	return &fraud.Inputs{
		MinImageDistance:  minDistance,
		MaxTextSimilarity: *p.TextSimilarity,
		SubmissionsToday:  submissionsToday,
		DailyUserCap:      campaign.DailyUserCap,
		AccountAgeHours:   p.SubmittedAt.Sub(user.CreatedAt).Hours(),
	}, nil
}
