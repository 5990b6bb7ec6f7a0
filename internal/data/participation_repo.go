package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/data/pgxutil"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	"github.com/betabounty/betabounty-api/internal/domain/review"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
)

// ParticipationRepo provides database operations for submissions and their
// review lifecycle, including the atomic approval that couples the state
// machine with the credit ledger.
type ParticipationRepo struct {
	DB           *sql.DB
	jobs         *JobRepo
	timeProvider TimeProvider
}

// NewParticipationRepo creates a new ParticipationRepo instance. The job repo
// is used to enqueue pipeline jobs inside the submission transaction.
func NewParticipationRepo(db *sql.DB, jobs *JobRepo, tp TimeProvider) *ParticipationRepo {
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &ParticipationRepo{DB: db, jobs: jobs, timeProvider: tp}
}

const participationColumns = `
  id,
  campaign_id,
  user_id,
  status,
  answers,
  feedback,
  fraud_score,
  fraud_decision,
  fraud_reasons,
  text_similarity,
  reviewer_id,
  reject_reason,
  submitted_at,
  reviewed_at,
  created_at,
  updated_at
`

func scanParticipation(row interface{ Scan(...any) error }) (*model.Participation, error) {
	var p model.Participation
	var answers, reasons []byte
	var score sql.NullInt64
	var textSim sql.NullFloat64
	var decision, reviewerID, rejectReason sql.NullString
	var reviewedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.CampaignID,
		&p.UserID,
		&p.Status,
		&answers,
		&p.Feedback,
		&score,
		&decision,
		&reasons,
		&textSim,
		&reviewerID,
		&rejectReason,
		&p.SubmittedAt,
		&reviewedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &p.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
	}
	if len(reasons) > 0 {
		if err := json.Unmarshal(reasons, &p.FraudReasons); err != nil {
			return nil, fmt.Errorf("decode fraud reasons: %w", err)
		}
	}
	if score.Valid {
		v := int(score.Int64)
		p.FraudScore = &v
	}
	if decision.Valid {
		d := model.FraudDecision(decision.String)
		p.FraudDecision = &d
	}
	if textSim.Valid {
		v := textSim.Float64
		p.TextSimilarity = &v
	}
	p.ReviewerID = cloneNullableString(reviewerID)
	p.RejectReason = cloneNullableString(rejectReason)
	p.ReviewedAt = cloneNullableTime(reviewedAt)
	return &p, nil
}

// CreateSubmission writes the participation, its asset rows, and the
// verification pipeline jobs in one transaction. A second submission for the
// same (campaign, user) maps to a conflict via the unique constraint.
func (r *ParticipationRepo) CreateSubmission(
	ctx context.Context,
	params core.CreateSubmissionParams,
) (*core.Submission, error) {
	req := params.Request
	if req == nil {
		return nil, errors.New("submission request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	if req.Answers == nil {
		answers = []byte(`{}`)
	}

	var sub core.Submission
	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			row := tx.QueryRowContext(ctx, `
				INSERT INTO participations(campaign_id, user_id, status, answers, feedback)
				VALUES ($1, $2, 'submitted', $3, $4)
				RETURNING `+participationColumns,
				req.CampaignID, req.UserID, answers, req.Feedback,
			)
			p, scanErr := scanParticipation(row)
			if scanErr != nil {
				return apperrors.MapDBError(fmt.Errorf("insert participation: %w", scanErr))
			}
			sub.Participation = p

			for i := range req.Assets {
				a := &req.Assets[i]
				assetRow := tx.QueryRowContext(ctx, `
					INSERT INTO assets(participation_id, slot, storage_key)
					VALUES ($1, $2, $3)
					RETURNING id, participation_id, slot, storage_key, perceptual_hash, hashed_at, created_at
				`, p.ID, a.Slot, a.StorageKey)

				asset, assetErr := scanAsset(assetRow)
				if assetErr != nil {
					return apperrors.MapDBError(fmt.Errorf("insert asset: %w", assetErr))
				}
				sub.Assets = append(sub.Assets, asset)
			}

			if params.BuildJobs == nil {
				return nil
			}
			jobReqs, jobsErr := params.BuildJobs(&sub)
			if jobsErr != nil {
				return jobsErr
			}
			for _, jobReq := range jobReqs {
				job, enqErr := r.jobs.EnqueueInTx(ctx, tx, jobReq)
				if enqErr != nil {
					return fmt.Errorf("enqueue pipeline job: %w", enqErr)
				}
				sub.Jobs = append(sub.Jobs, job)
			}
			return nil
		},
	})
	if txErr != nil {
		return nil, txErr
	}
	return &sub, nil
}

// GetByID retrieves a participation by its ID.
func (r *ParticipationRepo) GetByID(ctx context.Context, id string) (*model.Participation, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+participationColumns+` FROM participations WHERE id = $1`, id)
	p, err := scanParticipation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParticipationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get participation: %w", err)
	}
	return p, nil
}

// SetTextSimilarity persists the computed feedback similarity. Rewriting the
// same value keeps redelivered similarity jobs idempotent.
func (r *ParticipationRepo) SetTextSimilarity(ctx context.Context, id string, value float64) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE participations
		SET text_similarity = $2, updated_at = $3
		WHERE id = $1
	`, id, value, r.timeProvider.Now().UTC())
	if err != nil {
		return fmt.Errorf("set text similarity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set text similarity rows affected: %w", err)
	}
	if affected == 0 {
		return ErrParticipationNotFound
	}
	return nil
}

// RecordFraudOutcome writes the aggregate score, decision and reasons in the
// same update that routes the participation out of submitted, then appends
// the signal audit rows. A participation no longer in submitted yields a
// conflict, which redelivered fraud-check jobs treat as already-done.
func (r *ParticipationRepo) RecordFraudOutcome(
	ctx context.Context,
	params core.RecordFraudOutcomeParams,
) (*model.Participation, error) {
	if err := review.CheckTransition(model.ParticipationStatusSubmitted, params.Status); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	reasons, err := json.Marshal(params.Reasons)
	if err != nil {
		return nil, fmt.Errorf("encode fraud reasons: %w", err)
	}
	if params.Reasons == nil {
		reasons = []byte(`[]`)
	}

	var p *model.Participation
	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			currentTime := r.timeProvider.Now().UTC()
			row := tx.QueryRowContext(ctx, `
				UPDATE participations
				SET status = $2,
				    fraud_score = $3,
				    fraud_decision = $4,
				    fraud_reasons = $5,
				    updated_at = $6
				WHERE id = $1 AND status = 'submitted'
				RETURNING `+participationColumns,
				params.ParticipationID, params.Status, params.Score, params.Decision, reasons, currentTime,
			)

			scanned, scanErr := scanParticipation(row)
			if errors.Is(scanErr, sql.ErrNoRows) {
				return apperrors.Conflictf(
					"participation %s is no longer awaiting fraud routing", params.ParticipationID)
			}
			if scanErr != nil {
				return fmt.Errorf("record fraud outcome: %w", scanErr)
			}
			p = scanned

			for _, sig := range params.Signals {
				if _, execErr := tx.ExecContext(ctx, `
					INSERT INTO fraud_signals(participation_id, signal_type, signal_value, score, details)
					VALUES ($1, $2, $3, $4, $5)
				`, params.ParticipationID, sig.SignalType, sig.SignalValue, sig.Score, sig.Details); execErr != nil {
					return fmt.Errorf("insert fraud signal: %w", execErr)
				}
			}
			return nil
		},
	})
	if txErr != nil {
		return nil, txErr
	}
	return p, nil
}

// Reject transitions a participation to rejected from an allowed source
// status. The guard is part of the update itself so two concurrent reviews
// produce exactly one success and one conflict. No ledger mutation occurs.
func (r *ParticipationRepo) Reject(ctx context.Context, params core.ReviewParams) (*model.Participation, error) {
	currentTime := r.timeProvider.Now().UTC()

	row := r.DB.QueryRowContext(ctx, `
		UPDATE participations
		SET status = 'rejected',
		    reviewer_id = $2,
		    reject_reason = $3,
		    reviewed_at = $4,
		    updated_at = $4
		WHERE id = $1 AND status IN ('submitted', 'pending_review', 'manual_review')
		RETURNING `+participationColumns,
		params.ParticipationID, params.ReviewerID, params.Reason, currentTime,
	)

	p, err := scanParticipation(row)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reject participation: %w", err)
	}

	current, getErr := r.GetByID(ctx, params.ParticipationID)
	if getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.Conflictf("participation cannot be rejected from status %s", current.Status)
}

// Approve performs the coupled approval operation as one transaction:
// (1) lock the participation and verify it is still reviewable, (2) debit the
// campaign wallet, which fails atomically on insufficient balance, (3) flip
// the participation to approved, (4) create the reward in requested. Any
// precondition failure aborts the whole transaction.
func (r *ParticipationRepo) Approve(ctx context.Context, params core.ApprovalParams) (*core.ApprovalOutcome, error) {
	var out core.ApprovalOutcome

	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			var status model.ParticipationStatus
			var userID, walletID string
			var cost, rewardAmount int64

			err := tx.QueryRowContext(ctx, `
				SELECT p.status, p.user_id, c.wallet_id, c.cost_per_approval, c.reward_amount
				FROM participations p
				JOIN campaigns c ON c.id = p.campaign_id
				WHERE p.id = $1
				FOR UPDATE OF p
			`, params.ParticipationID).Scan(&status, &userID, &walletID, &cost, &rewardAmount)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrParticipationNotFound
			}
			if err != nil {
				return fmt.Errorf("lock participation: %w", err)
			}

			if reviewErr := review.CheckTransition(status, model.ParticipationStatusApproved); reviewErr != nil {
				return apperrors.Conflict(reviewErr.Error())
			}

			txn, ledgerErr := applyLedgerEntryInTx(ctx, tx, r.timeProvider, &model.LedgerEntryRequest{
				WalletID:    walletID,
				Type:        model.TransactionTypeConsume,
				Amount:      -cost,
				RefType:     "participation",
				RefID:       params.ParticipationID,
				Description: "participation approval",
			})
			if ledgerErr != nil {
				return ledgerErr
			}
			out.Transaction = txn

			currentTime := r.timeProvider.Now().UTC()
			row := tx.QueryRowContext(ctx, `
				UPDATE participations
				SET status = 'approved',
				    reviewer_id = $2,
				    reviewed_at = $3,
				    updated_at = $3
				WHERE id = $1
				RETURNING `+participationColumns,
				params.ParticipationID, params.ReviewerID, currentTime,
			)
			p, scanErr := scanParticipation(row)
			if scanErr != nil {
				return fmt.Errorf("approve participation: %w", scanErr)
			}
			out.Participation = p

			rewardRow := tx.QueryRowContext(ctx, `
				INSERT INTO rewards(participation_id, user_id, amount, status)
				VALUES ($1, $2, $3, 'requested')
				RETURNING `+rewardColumns,
				params.ParticipationID, userID, rewardAmount,
			)
			reward, rewardErr := scanReward(rewardRow)
			if rewardErr != nil {
				return apperrors.MapDBError(fmt.Errorf("create reward: %w", rewardErr))
			}
			out.Reward = reward
			return nil
		},
	})
	if txErr != nil {
		return nil, txErr
	}
	return &out, nil
}

// ListFeedback returns other participations' feedback in a campaign keyed by
// participation id, excluding the given participation.
func (r *ParticipationRepo) ListFeedback(ctx context.Context, campaignID, excludeID string) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, feedback
		FROM participations
		WHERE campaign_id = $1 AND id <> $2 AND feedback <> ''
	`, campaignID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, feedback string
		if scanErr := rows.Scan(&id, &feedback); scanErr != nil {
			return nil, fmt.Errorf("scan feedback: %w", scanErr)
		}
		out[id] = feedback
	}
	return out, rows.Err()
}

// CountByUserSince counts a user's submissions at or after the cutoff.
func (r *ParticipationRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT count(*) FROM participations
		WHERE user_id = $1 AND submitted_at >= $2
	`, userID, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by user: %w", err)
	}
	return count, nil
}

// CountByCampaign counts all submissions against a campaign.
func (r *ParticipationRepo) CountByCampaign(ctx context.Context, campaignID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM participations WHERE campaign_id = $1`, campaignID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by campaign: %w", err)
	}
	return count, nil
}

// ListApprovedByCampaign returns approved or paid participations for reporting.
func (r *ParticipationRepo) ListApprovedByCampaign(ctx context.Context, campaignID string) ([]*model.Participation, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+participationColumns+`
		FROM participations
		WHERE campaign_id = $1 AND status IN ('approved', 'paid')
		ORDER BY reviewed_at ASC
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list approved: %w", err)
	}
	defer rows.Close()

	var out []*model.Participation
	for rows.Next() {
		p, scanErr := scanParticipation(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan participation: %w", scanErr)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
