package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/betabounty/betabounty-api/internal/domain/model"
	"github.com/betabounty/betabounty-api/internal/mocks"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 8)})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestImageHashHandler(t *testing.T, assets *mocks.MockAssetRepository, storage *mocks.MockObjectStorage) *ImageHashHandler {
	t.Helper()
	h, err := NewImageHashHandler(ImageHashHandlerOptions{Assets: assets, Storage: storage})
	require.NoError(t, err)
	return h
}

func TestNewImageHashHandler_RequiredDependencies(t *testing.T) {
	_, err := NewImageHashHandler(ImageHashHandlerOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AssetRepository is required")
}

func TestImageHashHandler_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetID := uuid.NewString()

	assets := mocks.NewMockAssetRepository(ctrl)
	storage := mocks.NewMockObjectStorage(ctrl)

	assets.EXPECT().GetByID(gomock.Any(), assetID).Return(&model.Asset{
		ID:         assetID,
		StorageKey: "uploads/shot-0.png",
	}, nil)
	storage.EXPECT().Fetch(gomock.Any(), "uploads/shot-0.png").Return(testPNG(t), nil)
	assets.EXPECT().SetPerceptualHash(gomock.Any(), assetID, gomock.Any()).DoAndReturn(
		func(ctx context.Context, id, hash string) error {
			assert.Len(t, hash, 16)
			return nil
		})

	h := newTestImageHashHandler(t, assets, storage)
	err := h.Handle(context.Background(), &model.Job{}, &model.ImageHashPayload{
		AssetID:    assetID,
		StorageKey: "uploads/shot-0.png",
	})
	require.NoError(t, err)
}

func TestImageHashHandler_Handle_UndecodableImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetID := uuid.NewString()

	assets := mocks.NewMockAssetRepository(ctrl)
	storage := mocks.NewMockObjectStorage(ctrl)

	assets.EXPECT().GetByID(gomock.Any(), assetID).Return(&model.Asset{ID: assetID}, nil)
	storage.EXPECT().Fetch(gomock.Any(), "uploads/not-an-image.txt").Return([]byte("plain text"), nil)

	h := newTestImageHashHandler(t, assets, storage)
	err := h.Handle(context.Background(), &model.Job{}, &model.ImageHashPayload{
		AssetID:    assetID,
		StorageKey: "uploads/not-an-image.txt",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compute perceptual hash")
}

func TestImageHashHandler_Handle_WrongPayloadType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newTestImageHashHandler(t, mocks.NewMockAssetRepository(ctrl), mocks.NewMockObjectStorage(ctrl))
	err := h.Handle(context.Background(), &model.Job{}, &model.FraudCheckPayload{ParticipationID: "p1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected payload type")
}
