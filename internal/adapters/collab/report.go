package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// ReportClient implements core.Reporter against the report generation service.
type ReportClient struct {
	client *Client
}

// NewReportClient builds a report service client.
func NewReportClient(baseURL, token string, timeout time.Duration) *ReportClient {
	return &ReportClient{client: NewClient(baseURL, token, timeout)}
}

type reportEntry struct {
	ParticipationID string `json:"participation_id"`
	UserID          string `json:"user_id"`
	Feedback        string `json:"feedback"`
}

type reportRequest struct {
	CampaignID   string        `json:"campaign_id"`
	CampaignName string        `json:"campaign_name"`
	Entries      []reportEntry `json:"entries"`
}

type reportResponse struct {
	Summary string `json:"summary"`
}

func (r *ReportClient) GenerateReport(ctx context.Context, campaign *model.Campaign, approved []*model.Participation) (string, error) {
	req := reportRequest{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Entries:      make([]reportEntry, 0, len(approved)),
	}
	for _, p := range approved {
		req.Entries = append(req.Entries, reportEntry{
			ParticipationID: p.ID,
			UserID:          p.UserID,
			Feedback:        p.Feedback,
		})
	}

	var resp reportResponse
	if err := r.client.postJSON(ctx, "/reports", req, &resp); err != nil {
		return "", fmt.Errorf("generate report for campaign %q: %w", campaign.ID, err)
	}
	return resp.Summary, nil
}
