package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// NotifyHandlerOptions groups dependencies for NotifyHandler.
type NotifyHandlerOptions struct {
	Notifier core.Notifier // Required
	Logger   *slog.Logger  // Optional
}

// NotifyHandler hands a templated notification to the delivery collaborator.
// Rendering and transport live outside this system.
type NotifyHandler struct {
	notifier core.Notifier
	logger   *slog.Logger
}

// NewNotifyHandler constructs a new NotifyHandler.
func NewNotifyHandler(opts NotifyHandlerOptions) (*NotifyHandler, error) {
	if opts.Notifier == nil {
		return nil, errors.New("Notifier is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "notify_handler")
	}
	return &NotifyHandler{notifier: opts.Notifier, logger: logger}, nil
}

// Handle delivers one notification. Delivery failures retry through the job
// store; the template layer is expected to deduplicate on its side.
func (h *NotifyHandler) Handle(ctx context.Context, _ *model.Job, payload any) error {
	p, ok := payload.(*model.SendNotificationPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", payload)
	}

	if err := h.notifier.Send(ctx, p); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	if h.logger != nil {
		h.logger.DebugContext(ctx, "notification sent",
			"template", p.TemplateType, "recipient_type", p.RecipientType)
	}
	return nil
}
