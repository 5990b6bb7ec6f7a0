// Package pipeline contains the job handlers the dispatcher invokes. Each
// handler is idempotent: the claim-then-execute window is not transactionally
// joined with handler side effects, so a crash can redeliver a job.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/fraud"
	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// ImageHashHandlerOptions groups dependencies for ImageHashHandler.
type ImageHashHandlerOptions struct {
	Assets  core.AssetRepository // Required
	Storage core.ObjectStorage   // Required
	Logger  *slog.Logger         // Optional
}

// ImageHashHandler computes the perceptual hash of a stored screenshot and
// persists it on the asset, enabling near-duplicate detection downstream.
type ImageHashHandler struct {
	assets  core.AssetRepository
	storage core.ObjectStorage
	logger  *slog.Logger
}

// NewImageHashHandler constructs a new ImageHashHandler.
func NewImageHashHandler(opts ImageHashHandlerOptions) (*ImageHashHandler, error) {
	if opts.Assets == nil {
		return nil, errors.New("AssetRepository is required")
	}
	if opts.Storage == nil {
		return nil, errors.New("ObjectStorage is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "image_hash_handler")
	}
	return &ImageHashHandler{assets: opts.Assets, storage: opts.Storage, logger: logger}, nil
}

// Handle fetches the asset bytes, computes the 64-bit pHash, and writes the
// hex fingerprint back onto the asset. Rehashing an already-hashed asset
// produces the same value, so redelivery is safe.
func (h *ImageHashHandler) Handle(ctx context.Context, _ *model.Job, payload any) error {
	p, ok := payload.(*model.ImageHashPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", payload)
	}

	asset, err := h.assets.GetByID(ctx, p.AssetID)
	if err != nil {
		return fmt.Errorf("load asset: %w", err)
	}

	data, err := h.storage.Fetch(ctx, p.StorageKey)
	if err != nil {
		return fmt.Errorf("fetch asset bytes: %w", err)
	}

	hash, err := fraud.ComputePerceptualHash(data)
	if err != nil {
		return fmt.Errorf("compute perceptual hash: %w", err)
	}

	if err := h.assets.SetPerceptualHash(ctx, asset.ID, hash); err != nil {
		return fmt.Errorf("store perceptual hash: %w", err)
	}

	if h.logger != nil {
		h.logger.DebugContext(ctx, "asset hashed", "asset_id", asset.ID, "hash", hash)
	}
	return nil
}
