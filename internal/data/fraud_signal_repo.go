package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// FraudSignalRepo reads the per-participation fraud signal audit trail.
// Signal rows are written by ParticipationRepo.RecordFraudOutcome inside the
// routing transaction; this repo only exposes them.
type FraudSignalRepo struct {
	DB *sql.DB
}

// NewFraudSignalRepo creates a new FraudSignalRepo instance.
func NewFraudSignalRepo(db *sql.DB) *FraudSignalRepo {
	return &FraudSignalRepo{DB: db}
}

// ListByParticipation returns a participation's signals in insertion order.
func (r *FraudSignalRepo) ListByParticipation(ctx context.Context, participationID string) ([]*model.FraudSignal, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, participation_id, signal_type, signal_value, score, details, created_at
		FROM fraud_signals
		WHERE participation_id = $1
		ORDER BY created_at ASC, id ASC
	`, participationID)
	if err != nil {
		return nil, fmt.Errorf("list fraud signals: %w", err)
	}
	defer rows.Close()

	var out []*model.FraudSignal
	for rows.Next() {
		var s model.FraudSignal
		if scanErr := rows.Scan(
			&s.ID,
			&s.ParticipationID,
			&s.SignalType,
			&s.SignalValue,
			&s.Score,
			&s.Details,
			&s.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan fraud signal: %w", scanErr)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
