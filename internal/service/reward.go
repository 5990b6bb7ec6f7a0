package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// RewardServiceOptions groups dependencies for RewardService.
type RewardServiceOptions struct {
	Repo   core.RewardRepository // Required
	Users  core.UserRepository   // Required: recipient lookup for notifications
	Jobs   core.JobStore         // Required: payout notification jobs
	Logger *slog.Logger          // Optional: structured logger
}

// RewardService tracks the manual, out-of-band act of paying a tester.
// Payouts happen outside this system; operators record the outcome here.
type RewardService struct {
	repo   core.RewardRepository
	users  core.UserRepository
	jobs   core.JobStore
	logger *slog.Logger
}

// NewRewardService constructs a new RewardService.
func NewRewardService(opts RewardServiceOptions) (*RewardService, error) {
	if opts.Repo == nil {
		return nil, errors.New("RewardRepository is required")
	}
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("JobStore is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "reward_service")
	}
	return &RewardService{repo: opts.Repo, users: opts.Users, jobs: opts.Jobs, logger: logger}, nil
}

// Get retrieves a reward by id.
func (s *RewardService) Get(ctx context.Context, id string) (*model.Reward, error) {
	return s.repo.GetByID(ctx, id)
}

// MarkSent records a delivered payout with its proof reference and enqueues
// the payout notification. The participation flips to paid inside the same
// transaction as the status change.
func (s *RewardService) MarkSent(ctx context.Context, id string, req *model.MarkSentRequest) (*model.Reward, error) {
	reward, err := s.repo.MarkSent(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "reward sent",
			"reward_id", reward.ID,
			"participation_id", reward.ParticipationID,
			"amount", reward.Amount,
		)
	}

	s.notify(ctx, reward, "reward_sent")
	return reward, nil
}

// MarkFailed records a payout failure with its reason. The participation
// stays approved so a fresh payout attempt remains possible.
func (s *RewardService) MarkFailed(ctx context.Context, id string, req *model.MarkFailedRequest) (*model.Reward, error) {
	reward, err := s.repo.MarkFailed(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WarnContext(ctx, "reward payout failed",
			"reward_id", reward.ID,
			"participation_id", reward.ParticipationID,
		)
	}
	return reward, nil
}

func (s *RewardService) notify(ctx context.Context, reward *model.Reward, template string) {
	user, err := s.users.GetByID(ctx, reward.UserID)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "notification recipient lookup failed",
				"reward_id", reward.ID, "error", err)
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
				"reward_id", reward.ID, "error", err)
		}
		return
	}

	if _, err := s.jobs.Enqueue(ctx, &model.EnqueueJobRequest{
		Type:     model.JobTypeSendNotification,
		Payload:  payload,
		Priority: model.JobPriorityLow,
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "notification enqueue failed",
			"reward_id", reward.ID, "template", template, "error", err)
	}
}
