package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/betabounty/betabounty-api/internal/data/pgxutil"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
)

// RewardRepo provides database operations for payout issuance tracking.
// Reward rows are created by the approval transaction; this repo moves them
// through their terminal states.
type RewardRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRewardRepo creates a new RewardRepo instance.
func NewRewardRepo(db *sql.DB, tp TimeProvider) *RewardRepo {
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &RewardRepo{DB: db, timeProvider: tp}
}

const rewardColumns = `
  id,
  participation_id,
  user_id,
  amount,
  status,
  method,
  proof_ref,
  fail_reason,
  sent_at,
  created_at,
  updated_at
`

func scanReward(row interface{ Scan(...any) error }) (*model.Reward, error) {
	var rw model.Reward
	var proofRef, failReason sql.NullString
	var sentAt sql.NullTime

	err := row.Scan(
		&rw.ID,
		&rw.ParticipationID,
		&rw.UserID,
		&rw.Amount,
		&rw.Status,
		&rw.Method,
		&proofRef,
		&failReason,
		&sentAt,
		&rw.CreatedAt,
		&rw.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rw.ProofRef = cloneNullableString(proofRef)
	rw.FailReason = cloneNullableString(failReason)
	rw.SentAt = cloneNullableTime(sentAt)
	return &rw, nil
}

// GetByID retrieves a reward by its ID.
func (r *RewardRepo) GetByID(ctx context.Context, id string) (*model.Reward, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+rewardColumns+` FROM rewards WHERE id = $1`, id)
	rw, err := scanReward(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRewardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return rw, nil
}

// GetByParticipation retrieves the most recent reward for a participation.
func (r *RewardRepo) GetByParticipation(ctx context.Context, participationID string) (*model.Reward, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+rewardColumns+`
		FROM rewards
		WHERE participation_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, participationID)
	rw, err := scanReward(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRewardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reward by participation: %w", err)
	}
	return rw, nil
}

// MarkSent records the out-of-band payout and flips the owning participation
// to paid in the same transaction. Only a requested reward can be sent; a
// second call sees zero affected rows and returns a conflict.
func (r *RewardRepo) MarkSent(ctx context.Context, id string, req *model.MarkSentRequest) (*model.Reward, error) {
	if req == nil {
		return nil, errors.New("mark sent request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var rw *model.Reward
	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			currentTime := r.timeProvider.Now().UTC()
			row := tx.QueryRowContext(ctx, `
				UPDATE rewards
				SET status = 'sent',
				    proof_ref = $2,
				    method = CASE WHEN $3 <> '' THEN $3 ELSE method END,
				    sent_at = $4,
				    updated_at = $4
				WHERE id = $1 AND status = 'requested'
				RETURNING `+rewardColumns,
				id, req.ProofRef, req.Method, currentTime,
			)
			scanned, scanErr := scanReward(row)
			if errors.Is(scanErr, sql.ErrNoRows) {
				return r.staleRewardError(ctx, id)
			}
			if scanErr != nil {
				return fmt.Errorf("mark reward sent: %w", scanErr)
			}
			rw = scanned

			if _, execErr := tx.ExecContext(ctx, `
				UPDATE participations
				SET status = 'paid', updated_at = $2
				WHERE id = $1 AND status = 'approved'
			`, rw.ParticipationID, currentTime); execErr != nil {
				return fmt.Errorf("mark participation paid: %w", execErr)
			}
			return nil
		},
	})
	if txErr != nil {
		return nil, txErr
	}
	return rw, nil
}

// MarkFailed records a payout failure with its reason. Only a requested
// reward can fail; the participation stays approved so the payout can be
// retried through a fresh reward if needed.
func (r *RewardRepo) MarkFailed(ctx context.Context, id string, req *model.MarkFailedRequest) (*model.Reward, error) {
	if req == nil {
		return nil, errors.New("mark failed request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	currentTime := r.timeProvider.Now().UTC()
	row := r.DB.QueryRowContext(ctx, `
		UPDATE rewards
		SET status = 'failed',
		    fail_reason = $2,
		    updated_at = $3
		WHERE id = $1 AND status = 'requested'
		RETURNING `+rewardColumns,
		id, req.Reason, currentTime,
	)
	rw, err := scanReward(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.staleRewardError(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("mark reward failed: %w", err)
	}
	return rw, nil
}

func (r *RewardRepo) staleRewardError(ctx context.Context, id string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return apperrors.Conflictf("reward is already %s", current.Status)
}
