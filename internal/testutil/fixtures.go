package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// Fixture helpers seed the parent rows repository tests depend on (tester,
// wallet, campaign) directly through SQL so the tests exercise only the
// repository under test.

// SeedUser inserts a tester and returns its id.
func SeedUser(t TestingTB, db *sql.DB, email string) string {
	t.Helper()
	if email == "" {
		email = fmt.Sprintf("tester-%s@example.com", uuid.NewString()[:8])
	}
	var id string
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (email) VALUES ($1) RETURNING id`, email).Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// SeedUserCreatedAt inserts a tester with a fixed creation time, for the
// account age fraud signal.
func SeedUserCreatedAt(t TestingTB, db *sql.DB, createdAt time.Time) string {
	t.Helper()
	var id string
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (email, created_at) VALUES ($1, $2) RETURNING id`,
		fmt.Sprintf("tester-%s@example.com", uuid.NewString()[:8]), createdAt).Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// SeedWallet inserts an advertiser wallet with the given opening balance.
func SeedWallet(t TestingTB, db *sql.DB, balance int64) string {
	t.Helper()
	var id string
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO credit_wallets (advertiser_id, balance, total_topup)
		 VALUES ($1, $2, $2) RETURNING id`,
		uuid.NewString(), balance).Scan(&id)
	if err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	return id
}

// CampaignFixture carries the tunables of a seeded campaign.
type CampaignFixture struct {
	WalletID        string
	Status          model.CampaignStatus
	RewardAmount    int64
	CostPerApproval int64
	MaxParticipants int
	DailyUserCap    int
	AssetSlots      int
}

// SeedCampaign inserts a campaign, defaulting to an active one with one
// asset slot and no caps.
func SeedCampaign(t TestingTB, db *sql.DB, f CampaignFixture) string {
	t.Helper()
	if f.WalletID == "" {
		f.WalletID = SeedWallet(t, db, 100_000)
	}
	if f.Status == "" {
		f.Status = model.CampaignStatusActive
	}
	if f.RewardAmount <= 0 {
		f.RewardAmount = 500
	}
	if f.CostPerApproval <= 0 {
		f.CostPerApproval = 1000
	}
	if f.AssetSlots <= 0 {
		f.AssetSlots = 1
	}
	var id string
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO campaigns (
			advertiser_id, wallet_id, name, status, reward_amount,
			cost_per_approval, max_participants, daily_user_cap, asset_slots
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		uuid.NewString(), f.WalletID, "Test Campaign", string(f.Status),
		f.RewardAmount, f.CostPerApproval, f.MaxParticipants, f.DailyUserCap,
		f.AssetSlots).Scan(&id)
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return id
}

// SeedParticipation inserts a participation in the given status with one
// feedback string, bypassing the submission flow.
func SeedParticipation(t TestingTB, db *sql.DB, campaignID, userID string, status model.ParticipationStatus, feedback string) string {
	t.Helper()
	var id string
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO participations (campaign_id, user_id, status, feedback)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		campaignID, userID, string(status), feedback).Scan(&id)
	if err != nil {
		t.Fatalf("seed participation: %v", err)
	}
	return id
}

// SeedAsset inserts an asset, optionally with a precomputed perceptual hash.
func SeedAsset(t TestingTB, db *sql.DB, participationID string, slot int, hash string) string {
	t.Helper()
	var id string
	var err error
	if hash == "" {
		err = db.QueryRowContext(context.Background(),
			`INSERT INTO assets (participation_id, slot, storage_key)
			 VALUES ($1, $2, $3) RETURNING id`,
			participationID, slot, fmt.Sprintf("assets/%s/%d.png", participationID, slot)).Scan(&id)
	} else {
		err = db.QueryRowContext(context.Background(),
			`INSERT INTO assets (participation_id, slot, storage_key, perceptual_hash, hashed_at)
			 VALUES ($1, $2, $3, $4, now()) RETURNING id`,
			participationID, slot, fmt.Sprintf("assets/%s/%d.png", participationID, slot), hash).Scan(&id)
	}
	if err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return id
}

// JobRequestBuilder provides a fluent interface for building EnqueueJobRequest
// objects for testing.
type JobRequestBuilder struct {
	req *model.EnqueueJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.EnqueueJobRequest{
			Type:        model.JobTypeSendNotification,
			Priority:    model.JobPriorityMedium,
			Payload:     json.RawMessage(`{"template_type": "participation_approved", "recipient_email": "tester@example.com", "recipient_type": "tester", "recipient_id": "00000000-0000-0000-0000-000000000000"}`),
			MaxAttempts: 3,
		},
	}
}

// WithType sets the job type.
func (b *JobRequestBuilder) WithType(jobType model.JobType) *JobRequestBuilder {
	b.req.Type = jobType
	return b
}

// WithPriority sets the job priority.
func (b *JobRequestBuilder) WithPriority(priority model.JobPriority) *JobRequestBuilder {
	b.req.Priority = priority
	return b
}

// WithPayload sets the job payload.
func (b *JobRequestBuilder) WithPayload(payload json.RawMessage) *JobRequestBuilder {
	b.req.Payload = payload
	return b
}

// WithPayloadString sets the job payload from a string.
func (b *JobRequestBuilder) WithPayloadString(payload string) *JobRequestBuilder {
	b.req.Payload = json.RawMessage(payload)
	return b
}

// WithScheduledAt sets the scheduled time.
func (b *JobRequestBuilder) WithScheduledAt(scheduledAt time.Time) *JobRequestBuilder {
	b.req.ScheduledAt = &scheduledAt
	return b
}

// WithMaxAttempts sets the attempt ceiling.
func (b *JobRequestBuilder) WithMaxAttempts(maxAttempts int) *JobRequestBuilder {
	b.req.MaxAttempts = maxAttempts
	return b
}

// Build returns the constructed request.
func (b *JobRequestBuilder) Build() *model.EnqueueJobRequest {
	return b.req
}
