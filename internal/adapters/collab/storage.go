package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/betabounty/betabounty-api/internal/core"
)

// StorageClient implements core.ObjectStorage against the storage gateway.
type StorageClient struct {
	client *Client
}

// NewStorageClient builds a storage gateway client.
func NewStorageClient(baseURL, token string, timeout time.Duration) *StorageClient {
	return &StorageClient{client: NewClient(baseURL, token, timeout)}
}

type signedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *StorageClient) SignUpload(ctx context.Context, storageKey string) (*core.SignedURL, error) {
	return s.sign(ctx, "upload", storageKey)
}

func (s *StorageClient) SignDownload(ctx context.Context, storageKey string) (*core.SignedURL, error) {
	return s.sign(ctx, "download", storageKey)
}

func (s *StorageClient) sign(ctx context.Context, op, storageKey string) (*core.SignedURL, error) {
	var resp signedURLResponse
	path := fmt.Sprintf("/objects/%s/sign-%s", escape(storageKey), op)
	if err := s.client.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("sign %s url for %q: %w", op, storageKey, err)
	}
	return &core.SignedURL{URL: resp.URL, ExpiresAt: resp.ExpiresAt}, nil
}

func (s *StorageClient) Fetch(ctx context.Context, storageKey string) ([]byte, error) {
	data, err := s.client.getBytes(ctx, "/objects/"+escape(storageKey))
	if err != nil {
		return nil, fmt.Errorf("fetch object %q: %w", storageKey, err)
	}
	return data, nil
}
