package core

import (
	"context"
	"time"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// JobStore defines the interface for job persistence and claiming.
type JobStore interface {
	// Enqueue persists a job in pending with its schedule time (default now).
	Enqueue(ctx context.Context, req *model.EnqueueJobRequest) (*model.Job, error)
	// EnqueueBatch persists a set of jobs atomically.
	EnqueueBatch(ctx context.Context, reqs []*model.EnqueueJobRequest) ([]*model.Job, error)
	// ClaimNext atomically claims the next due pending job (priority, then
	// scheduled time, then creation order) by flipping it to processing.
	// Returns model.ErrNoJobsAvailable when nothing is eligible.
	ClaimNext(ctx context.Context, leaseSeconds int) (*model.Job, error)
	// Complete marks a processing job completed. Returns false when the job
	// was not in processing (lost lease).
	Complete(ctx context.Context, id string) (bool, error)
	// Fail records a handler failure: bumps attempts, reschedules with
	// exponential backoff, or dead-letters at the attempt ceiling. Returns the
	// resulting status (pending or dead), or empty when the job was not in
	// processing.
	Fail(ctx context.Context, id, errMsg string) (model.JobStatus, error)
	// MarkFailed terminally fails a job without the retry path (undecodable payload).
	MarkFailed(ctx context.Context, id, errMsg string) (bool, error)
	// Retry resets a failed or dead job to pending, clearing error state.
	Retry(ctx context.Context, id string, resetAttempts bool) (*model.Job, error)
	// RequeueExpired returns processing jobs with expired leases to pending.
	RequeueExpired(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Stats(ctx context.Context) (*model.JobStats, error)
}

// Submission is the result of a successful submission write.
type Submission struct {
	Participation *model.Participation
	Assets        []*model.Asset
	Jobs          []*model.Job
}

// CreateSubmissionParams groups the rows written atomically at submission time.
// BuildJobs runs inside the transaction, after the participation and asset rows
// exist, so payloads can reference the generated ids.
type CreateSubmissionParams struct {
	Request   *model.SubmitParticipationRequest
	BuildJobs func(sub *Submission) ([]*model.EnqueueJobRequest, error)
}

// RecordFraudOutcomeParams carries the pipeline's aggregate outcome for one participation.
type RecordFraudOutcomeParams struct {
	ParticipationID string
	Score           int
	Decision        model.FraudDecision
	Reasons         []string
	Status          model.ParticipationStatus
	Signals         []*model.FraudSignal
}

// ReviewParams groups an operator review action.
type ReviewParams struct {
	ParticipationID string
	ReviewerID      string
	Reason          string
}

// ApprovalParams groups the atomic approval operation.
type ApprovalParams struct {
	ParticipationID string
	ReviewerID      string
}

// ApprovalOutcome is the result of a successful approval.
type ApprovalOutcome struct {
	Participation *model.Participation
	Transaction   *model.CreditTransaction
	Reward        *model.Reward
}

// ParticipationRepository defines the interface for participation data operations.
type ParticipationRepository interface {
	// CreateSubmission writes the participation, its assets, and the pipeline
	// jobs in one transaction. A (campaign, user) duplicate maps to a conflict.
	CreateSubmission(ctx context.Context, params CreateSubmissionParams) (*Submission, error)
	GetByID(ctx context.Context, id string) (*model.Participation, error)
	// SetTextSimilarity persists the computed feedback similarity. Idempotent.
	SetTextSimilarity(ctx context.Context, id string, value float64) error
	// RecordFraudOutcome writes score, decision and reasons in the same update
	// that transitions the status, and appends the signal audit rows.
	RecordFraudOutcome(ctx context.Context, params RecordFraudOutcomeParams) (*model.Participation, error)
	// Reject transitions to rejected from an allowed source status; a stale
	// status yields a conflict error. No ledger mutation occurs.
	Reject(ctx context.Context, params ReviewParams) (*model.Participation, error)
	// Approve atomically guards the status, debits the campaign wallet,
	// appends the consume transaction, and creates the reward.
	Approve(ctx context.Context, params ApprovalParams) (*ApprovalOutcome, error)
	// ListFeedback returns other participations' feedback in a campaign,
	// excluding the given participation.
	ListFeedback(ctx context.Context, campaignID, excludeID string) (map[string]string, error)
	// CountByUserSince counts a user's submissions at or after the cutoff.
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error)
	// CountByCampaign counts all submissions against a campaign.
	CountByCampaign(ctx context.Context, campaignID string) (int, error)
	// ListApprovedByCampaign returns approved or paid participations for reporting.
	ListApprovedByCampaign(ctx context.Context, campaignID string) ([]*model.Participation, error)
}

// AssetRepository defines the interface for asset data operations.
type AssetRepository interface {
	GetByID(ctx context.Context, id string) (*model.Asset, error)
	ListByParticipation(ctx context.Context, participationID string) ([]*model.Asset, error)
	// SetPerceptualHash persists a computed hash. Idempotent.
	SetPerceptualHash(ctx context.Context, id, hash string) error
	// ListOtherHashes returns the hashes of assets belonging to other
	// participations, keyed by asset id.
	ListOtherHashes(ctx context.Context, excludeParticipationID string) (map[string]string, error)
}

// FraudSignalRepository defines the interface for the fraud signal audit trail.
type FraudSignalRepository interface {
	ListByParticipation(ctx context.Context, participationID string) ([]*model.FraudSignal, error)
}

// WalletRepository defines the interface for the credit ledger.
type WalletRepository interface {
	GetByID(ctx context.Context, id string) (*model.CreditWallet, error)
	// ApplyEntry runs one ledger operation as a single atomic unit: lock the
	// wallet, validate, write the new balance, append exactly one transaction
	// with balance_after. Debits beyond the balance abort with an
	// insufficient-funds error and write nothing.
	ApplyEntry(ctx context.Context, req *model.LedgerEntryRequest) (*model.CreditTransaction, error)
	ListTransactions(ctx context.Context, walletID string, limit int) ([]*model.CreditTransaction, error)
}

// RewardRepository defines the interface for reward issuance.
type RewardRepository interface {
	GetByID(ctx context.Context, id string) (*model.Reward, error)
	GetByParticipation(ctx context.Context, participationID string) (*model.Reward, error)
	// MarkSent flips requested -> sent and the owning participation to paid in
	// one transaction. A non-requested reward yields a conflict.
	MarkSent(ctx context.Context, id string, req *model.MarkSentRequest) (*model.Reward, error)
	// MarkFailed flips requested -> failed with the given reason.
	MarkFailed(ctx context.Context, id string, req *model.MarkFailedRequest) (*model.Reward, error)
}

// CampaignRepository defines the interface for campaign reads and report storage.
type CampaignRepository interface {
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	SetReportSummary(ctx context.Context, id, summary string) error
}

// UserRepository defines the interface for tester account reads.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// VelocityCounter tracks per-user daily submission counts for the velocity signal.
type VelocityCounter interface {
	// Incr increments today's counter for the user and returns the new count.
	Incr(ctx context.Context, userID string) (int, error)
	// Count returns today's counter for the user.
	Count(ctx context.Context, userID string) (int, error)
}
