package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/data"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
)

// ParticipationServiceRepos groups the repositories the service orchestrates.
type ParticipationServiceRepos struct {
	Participations core.ParticipationRepository // Required
	Campaigns      core.CampaignRepository      // Required
	Users          core.UserRepository          // Required: recipient lookup for notifications
	Signals        core.FraudSignalRepository   // Required: audit trail reads
	Jobs           core.JobStore                // Required: review notification jobs
	Velocity       core.VelocityCounter         // Optional: feeds the fraud velocity signal
}

// ParticipationConfig carries the submission-time tunables.
type ParticipationConfig struct {
	// FraudCheckDelay is how long after submission the aggregation job runs,
	// giving the hash and similarity jobs a head start. The delay is a
	// heuristic ordering dependency; the fraud-check handler still verifies
	// its prerequisites and retries when they are missing.
	FraudCheckDelay time.Duration
}

// Sanitize applies guardrails to zero or out-of-range values.
func (c *ParticipationConfig) Sanitize() {
	if c.FraudCheckDelay <= 0 {
		c.FraudCheckDelay = 10 * time.Second
	}
}

// ParticipationServiceOptions groups dependencies for ParticipationService.
type ParticipationServiceOptions struct {
	Repos        ParticipationServiceRepos
	Config       ParticipationConfig
	Logger       *slog.Logger      // Optional: structured logger
	TimeProvider data.TimeProvider // Optional: defaults to the system clock
}

// ParticipationService owns the submission entry point and the human review
// actions of the participation lifecycle. The fraud pipeline drives the
// machine between submission and review through its own job handlers.
type ParticipationService struct {
	repos  ParticipationServiceRepos
	cfg    ParticipationConfig
	logger *slog.Logger
	clock  data.TimeProvider
}

// NewParticipationService constructs a new ParticipationService.
func NewParticipationService(opts ParticipationServiceOptions) (*ParticipationService, error) {
	r := opts.Repos
	if r.Participations == nil {
		return nil, errors.New("ParticipationRepository is required")
	}
	if r.Campaigns == nil {
		return nil, errors.New("CampaignRepository is required")
	}
	if r.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if r.Signals == nil {
		return nil, errors.New("FraudSignalRepository is required")
	}
	if r.Jobs == nil {
		return nil, errors.New("JobStore is required")
	}

	cfg := opts.Config
	cfg.Sanitize()

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "participation_service")
	}

	clock := opts.TimeProvider
	if clock == nil {
		clock = &data.RealTimeProvider{}
	}

	return &ParticipationService{repos: r, cfg: cfg, logger: logger, clock: clock}, nil
}

// Submit validates the campaign guards and writes the participation, its
// assets, and the three verification jobs in one transaction. Guards:
// campaign accepting submissions, slot count, capacity, per-user daily cap.
// The (campaign, user) uniqueness guard lives in the database.
func (s *ParticipationService) Submit(ctx context.Context, req *model.SubmitParticipationRequest) (*core.Submission, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	campaign, err := s.repos.Campaigns.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != model.CampaignStatusActive {
		return nil, apperrors.BusinessRule("campaign is not accepting submissions")
	}
	if len(req.Assets) != campaign.AssetSlots {
		return nil, apperrors.Validationf("campaign requires %d assets, got %d", campaign.AssetSlots, len(req.Assets))
	}

	if campaign.MaxParticipants > 0 {
		count, countErr := s.repos.Participations.CountByCampaign(ctx, req.CampaignID)
		if countErr != nil {
			return nil, countErr
		}
		if count >= campaign.MaxParticipants {
			return nil, apperrors.BusinessRule("campaign has reached its participant limit")
		}
	}

	if campaign.DailyUserCap > 0 {
		midnight := s.clock.Now().UTC().Truncate(24 * time.Hour)
		today, countErr := s.repos.Participations.CountByUserSince(ctx, req.UserID, midnight)
		if countErr != nil {
			return nil, countErr
		}
		if today >= campaign.DailyUserCap {
			return nil, apperrors.BusinessRule("daily submission cap reached")
		}
	}

	sub, err := s.repos.Participations.CreateSubmission(ctx, core.CreateSubmissionParams{
		Request:   req,
		BuildJobs: s.buildPipelineJobs,
	})
	if err != nil {
		return nil, err
	}

	// The Redis counter is advisory input to the velocity signal; losing an
	// increment must not fail the submission.
	if s.repos.Velocity != nil {
		if _, incErr := s.repos.Velocity.Incr(ctx, req.UserID); incErr != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "velocity counter increment failed",
				"user_id", req.UserID, "error", incErr)
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "participation submitted",
			"participation_id", sub.Participation.ID,
			"campaign_id", req.CampaignID,
			"assets", len(sub.Assets),
			"jobs", len(sub.Jobs),
		)
	}
	return sub, nil
}

// buildPipelineJobs produces the verification batch for one submission: one
// high-priority hash job per asset, a similarity job, and the delayed
// aggregation job.
func (s *ParticipationService) buildPipelineJobs(sub *core.Submission) ([]*model.EnqueueJobRequest, error) {
	reqs := make([]*model.EnqueueJobRequest, 0, len(sub.Assets)+2)

	for _, asset := range sub.Assets {
		payload, err := model.EncodePayload(&model.ImageHashPayload{
			AssetID:    asset.ID,
			StorageKey: asset.StorageKey,
		})
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, &model.EnqueueJobRequest{
			Type:     model.JobTypeImageHash,
			Payload:  payload,
			Priority: model.JobPriorityHigh,
		})
	}

	simPayload, err := model.EncodePayload(&model.TextSimilarityPayload{
		ParticipationID: sub.Participation.ID,
	})
	if err != nil {
		return nil, err
	}
	reqs = append(reqs, &model.EnqueueJobRequest{
		Type:     model.JobTypeTextSimilarity,
		Payload:  simPayload,
		Priority: model.JobPriorityMedium,
	})

	checkPayload, err := model.EncodePayload(&model.FraudCheckPayload{
		ParticipationID: sub.Participation.ID,
	})
	if err != nil {
		return nil, err
	}
	runAt := s.clock.Now().UTC().Add(s.cfg.FraudCheckDelay)
	reqs = append(reqs, &model.EnqueueJobRequest{
		Type:        model.JobTypeFraudCheck,
		Payload:     checkPayload,
		Priority:    model.JobPriorityMedium,
		ScheduledAt: &runAt,
	})

	return reqs, nil
}

// Get retrieves a participation by id.
func (s *ParticipationService) Get(ctx context.Context, id string) (*model.Participation, error) {
	return s.repos.Participations.GetByID(ctx, id)
}

// Signals returns the fraud signal audit trail of a participation.
func (s *ParticipationService) Signals(ctx context.Context, id string) ([]*model.FraudSignal, error) {
	if _, err := s.repos.Participations.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Signals.ListByParticipation(ctx, id)
}

// Approve performs the atomic approval (status guard, wallet debit, reward
// creation) and enqueues the approval notification.
func (s *ParticipationService) Approve(ctx context.Context, id string, req *model.ReviewRequest) (*core.ApprovalOutcome, error) {
	if req == nil || req.ReviewerID == "" {
		return nil, apperrors.Validation("reviewer_id is required")
	}

	outcome, err := s.repos.Participations.Approve(ctx, core.ApprovalParams{
		ParticipationID: id,
		ReviewerID:      req.ReviewerID,
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "participation approved",
			"participation_id", id,
			"reviewer_id", req.ReviewerID,
			"reward_id", outcome.Reward.ID,
			"balance_after", outcome.Transaction.BalanceAfter,
		)
	}

	s.notifyReview(ctx, outcome.Participation, "participation_approved")
	return outcome, nil
}

// Reject declines a submission with a required reason and enqueues the
// rejection notification. No money moves.
func (s *ParticipationService) Reject(ctx context.Context, id string, req *model.ReviewRequest) (*model.Participation, error) {
	if req == nil || req.ReviewerID == "" {
		return nil, apperrors.Validation("reviewer_id is required")
	}
	if req.Reason == "" {
		return nil, apperrors.Validation("reason is required")
	}

	p, err := s.repos.Participations.Reject(ctx, core.ReviewParams{
		ParticipationID: id,
		ReviewerID:      req.ReviewerID,
		Reason:          req.Reason,
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "participation rejected",
			"participation_id", id, "reviewer_id", req.ReviewerID)
	}

	s.notifyReview(ctx, p, "participation_rejected")
	return p, nil
}

// notifyReview enqueues a notification job for the tester. The review itself
// has already committed; a lost notification is logged, not surfaced.
func (s *ParticipationService) notifyReview(ctx context.Context, p *model.Participation, template string) {
	user, err := s.repos.Users.GetByID(ctx, p.UserID)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "notification recipient lookup failed",
				"participation_id", p.ID, "error", err)
		}
		return
	}

	payload, err := model.EncodePayload(&model.SendNotificationPayload{
		TemplateType:   template,
		RecipientEmail: user.Email,
		RecipientType:  "tester",
		RecipientID:    user.ID,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "notification payload encode failed",
				"participation_id", p.ID, "error", err)
		}
		return
	}

	if _, err := s.repos.Jobs.Enqueue(ctx, &model.EnqueueJobRequest{
		Type:     model.JobTypeSendNotification,
		Payload:  payload,
		Priority: model.JobPriorityLow,
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "notification enqueue failed",
			"participation_id", p.ID, "template", template, "error", err)
	}
}
