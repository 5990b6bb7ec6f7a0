package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// AIReportHandlerOptions groups dependencies for AIReportHandler.
type AIReportHandlerOptions struct {
	Campaigns      core.CampaignRepository      // Required
	Participations core.ParticipationRepository // Required
	Reporter       core.Reporter                // Required
	Logger         *slog.Logger                 // Optional
}

// AIReportHandler collects a campaign's approved participations and asks the
// report collaborator for a narrative summary, storing it on the campaign.
type AIReportHandler struct {
	campaigns      core.CampaignRepository
	participations core.ParticipationRepository
	reporter       core.Reporter
	logger         *slog.Logger
}

// NewAIReportHandler constructs a new AIReportHandler.
func NewAIReportHandler(opts AIReportHandlerOptions) (*AIReportHandler, error) {
	if opts.Campaigns == nil {
		return nil, errors.New("CampaignRepository is required")
	}
	if opts.Participations == nil {
		return nil, errors.New("ParticipationRepository is required")
	}
	if opts.Reporter == nil {
		return nil, errors.New("Reporter is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "ai_report_handler")
	}
	return &AIReportHandler{
		campaigns:      opts.Campaigns,
		participations: opts.Participations,
		reporter:       opts.Reporter,
		logger:         logger,
	}, nil
}

// Handle regenerates the campaign summary. The latest generation wins, so
// redelivery simply overwrites with an equivalent report.
func (h *AIReportHandler) Handle(ctx context.Context, _ *model.Job, payload any) error {
	p, ok := payload.(*model.AIReportPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", payload)
	}

	campaign, err := h.campaigns.GetByID(ctx, p.CampaignID)
	if err != nil {
		return fmt.Errorf("load campaign: %w", err)
	}

	approved, err := h.participations.ListApprovedByCampaign(ctx, campaign.ID)
	if err != nil {
		return fmt.Errorf("list approved participations: %w", err)
	}

	summary, err := h.reporter.GenerateReport(ctx, campaign, approved)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if err := h.campaigns.SetReportSummary(ctx, campaign.ID, summary); err != nil {
		return fmt.Errorf("store report summary: %w", err)
	}

	if h.logger != nil {
		h.logger.InfoContext(ctx, "campaign report stored",
			"campaign_id", campaign.ID, "approved", len(approved))
	}
	return nil
}
