package model

import "time"

// CampaignStatus represents the lifecycle state of a campaign.
type CampaignStatus string

const (
	// CampaignStatusDraft means the campaign is not yet accepting submissions.
	CampaignStatusDraft CampaignStatus = "draft"
	// CampaignStatusActive means the campaign accepts submissions.
	CampaignStatusActive CampaignStatus = "active"
	// CampaignStatusClosed means the campaign no longer accepts submissions.
	CampaignStatusClosed CampaignStatus = "closed"
)

// Valid returns true if the CampaignStatus is valid.
func (s CampaignStatus) Valid() bool {
	return s == CampaignStatusDraft || s == CampaignStatusActive || s == CampaignStatusClosed
}

// Campaign is an advertiser's testing campaign. CostPerApproval is debited
// from the advertiser wallet when a participation is approved; RewardAmount is
// the payout obligation created for the tester.
type Campaign struct {
	ID              string         `json:"id"                       db:"id"`
	AdvertiserID    string         `json:"advertiser_id"            db:"advertiser_id"`
	WalletID        string         `json:"wallet_id"                db:"wallet_id"`
	Name            string         `json:"name"                     db:"name"`
	Status          CampaignStatus `json:"status"                   db:"status"`
	RewardAmount    int64          `json:"reward_amount"            db:"reward_amount"`
	CostPerApproval int64          `json:"cost_per_approval"        db:"cost_per_approval"`
	MaxParticipants int            `json:"max_participants"         db:"max_participants"`
	DailyUserCap    int            `json:"daily_user_cap"           db:"daily_user_cap"`
	AssetSlots      int            `json:"asset_slots"              db:"asset_slots"`
	ReportSummary   *string        `json:"report_summary,omitempty" db:"report_summary"`
	CreatedAt       time.Time      `json:"created_at"               db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"               db:"updated_at"`
}

// User is the minimal tester record the fraud pipeline consults.
type User struct {
	ID        string    `json:"id"         db:"id"`
	Email     string    `json:"email"      db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
