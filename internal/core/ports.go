package core

import (
	"context"
	"time"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// Collaborator ports. These services live outside this codebase; the pipeline
// and request handlers talk to them through these narrow interfaces only.

// SignedURL is a pre-signed storage URL with its expiry.
type SignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// ObjectStorage signs upload/download URLs and fetches stored objects by key.
type ObjectStorage interface {
	SignUpload(ctx context.Context, storageKey string) (*SignedURL, error)
	SignDownload(ctx context.Context, storageKey string) (*SignedURL, error)
	Fetch(ctx context.Context, storageKey string) ([]byte, error)
}

// PaymentVerification is the gateway's answer for one payment reference.
type PaymentVerification struct {
	Paid    bool
	Amount  int64
	StoreID string
}

// PaymentVerifier confirms an advertiser payment before credits are granted.
type PaymentVerifier interface {
	Verify(ctx context.Context, paymentRef string) (*PaymentVerification, error)
}

// Notifier delivers a templated notification to a recipient.
type Notifier interface {
	Send(ctx context.Context, payload *model.SendNotificationPayload) error
}

// Reporter generates a narrative summary for a campaign's approved participations.
type Reporter interface {
	GenerateReport(ctx context.Context, campaign *model.Campaign, approved []*model.Participation) (string, error)
}
