package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// CampaignRepo provides database reads for campaigns plus report storage.
type CampaignRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCampaignRepo creates a new CampaignRepo instance.
func NewCampaignRepo(db *sql.DB, tp TimeProvider) *CampaignRepo {
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &CampaignRepo{DB: db, timeProvider: tp}
}

const campaignColumns = `
  id,
  advertiser_id,
  wallet_id,
  name,
  status,
  reward_amount,
  cost_per_approval,
  max_participants,
  daily_user_cap,
  asset_slots,
  report_summary,
  created_at,
  updated_at
`

func scanCampaign(row interface{ Scan(...any) error }) (*model.Campaign, error) {
	var c model.Campaign
	var summary sql.NullString

	err := row.Scan(
		&c.ID,
		&c.AdvertiserID,
		&c.WalletID,
		&c.Name,
		&c.Status,
		&c.RewardAmount,
		&c.CostPerApproval,
		&c.MaxParticipants,
		&c.DailyUserCap,
		&c.AssetSlots,
		&summary,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ReportSummary = cloneNullableString(summary)
	return &c, nil
}

// GetByID retrieves a campaign by its ID.
func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

// SetReportSummary stores a generated campaign report. Overwrites any
// previous summary so regenerated reports win.
func (r *CampaignRepo) SetReportSummary(ctx context.Context, id, summary string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE campaigns
		SET report_summary = $2, updated_at = $3
		WHERE id = $1
	`, id, summary, r.timeProvider.Now().UTC())
	if err != nil {
		return fmt.Errorf("set report summary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set report summary rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}
