package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// AssetRepo provides database operations for uploaded proof assets.
type AssetRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAssetRepo creates a new AssetRepo instance.
func NewAssetRepo(db *sql.DB, tp TimeProvider) *AssetRepo {
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &AssetRepo{DB: db, timeProvider: tp}
}

const assetColumns = `id, participation_id, slot, storage_key, perceptual_hash, hashed_at, created_at`

func scanAsset(row interface{ Scan(...any) error }) (*model.Asset, error) {
	var a model.Asset
	var hash sql.NullString
	var hashedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ParticipationID,
		&a.Slot,
		&a.StorageKey,
		&hash,
		&hashedAt,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.PerceptualHash = cloneNullableString(hash)
	a.HashedAt = cloneNullableTime(hashedAt)
	return &a, nil
}

// GetByID retrieves an asset by its ID.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// ListByParticipation returns a participation's assets in slot order.
func (r *AssetRepo) ListByParticipation(ctx context.Context, participationID string) ([]*model.Asset, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE participation_id = $1 ORDER BY slot ASC`,
		participationID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []*model.Asset
	for rows.Next() {
		a, scanErr := scanAsset(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan asset: %w", scanErr)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetPerceptualHash persists a computed hash. Writing the same hash again is
// harmless, which keeps redelivered image jobs idempotent.
func (r *AssetRepo) SetPerceptualHash(ctx context.Context, id, hash string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE assets
		SET perceptual_hash = $2, hashed_at = $3
		WHERE id = $1
	`, id, hash, r.timeProvider.Now().UTC())
	if err != nil {
		return fmt.Errorf("set perceptual hash: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set perceptual hash rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// ListOtherHashes returns the hashes of assets belonging to other
// participations, keyed by asset id. Assets not yet hashed are skipped.
func (r *AssetRepo) ListOtherHashes(ctx context.Context, excludeParticipationID string) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, perceptual_hash
		FROM assets
		WHERE participation_id <> $1 AND perceptual_hash IS NOT NULL
	`, excludeParticipationID)
	if err != nil {
		return nil, fmt.Errorf("list other hashes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, hash string
		if scanErr := rows.Scan(&id, &hash); scanErr != nil {
			return nil, fmt.Errorf("scan asset hash: %w", scanErr)
		}
		out[id] = hash
	}
	return out, rows.Err()
}
