package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// NotifyClient implements core.Notifier against the notification service.
type NotifyClient struct {
	client *Client
}

// NewNotifyClient builds a notification service client.
func NewNotifyClient(baseURL, token string, timeout time.Duration) *NotifyClient {
	return &NotifyClient{client: NewClient(baseURL, token, timeout)}
}

func (n *NotifyClient) Send(ctx context.Context, payload *model.SendNotificationPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	if err := n.client.postJSON(ctx, "/notifications", payload, nil); err != nil {
		return fmt.Errorf("send %s notification: %w", payload.TemplateType, err)
	}
	return nil
}
