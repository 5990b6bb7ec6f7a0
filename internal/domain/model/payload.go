package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Typed job payloads. Each job type carries exactly one payload shape; payloads
// are opaque to the job store and decoded only at dispatch time. A payload that
// fails to decode marks the job failed without entering the retry path.

// ImageHashPayload is carried by image_hash jobs.
type ImageHashPayload struct {
	AssetID    string `json:"asset_id"`
	StorageKey string `json:"storage_key"`
}

// Validate checks the decoded payload fields.
func (p *ImageHashPayload) Validate() error {
	if strings.TrimSpace(p.AssetID) == "" {
		return errors.New("asset_id is required")
	}
	if strings.TrimSpace(p.StorageKey) == "" {
		return errors.New("storage_key is required")
	}
	return nil
}

// TextSimilarityPayload is carried by text_similarity jobs.
type TextSimilarityPayload struct {
	ParticipationID string `json:"participation_id"`
}

// Validate checks the decoded payload fields.
func (p *TextSimilarityPayload) Validate() error {
	if strings.TrimSpace(p.ParticipationID) == "" {
		return errors.New("participation_id is required")
	}
	return nil
}

// FraudCheckPayload is carried by fraud_check jobs.
type FraudCheckPayload struct {
	ParticipationID string `json:"participation_id"`
}

// Validate checks the decoded payload fields.
func (p *FraudCheckPayload) Validate() error {
	if strings.TrimSpace(p.ParticipationID) == "" {
		return errors.New("participation_id is required")
	}
	return nil
}

// AIReportPayload is carried by ai_report jobs.
type AIReportPayload struct {
	CampaignID string `json:"campaign_id"`
}

// Validate checks the decoded payload fields.
func (p *AIReportPayload) Validate() error {
	if strings.TrimSpace(p.CampaignID) == "" {
		return errors.New("campaign_id is required")
	}
	return nil
}

// SendNotificationPayload is carried by send_notification jobs.
type SendNotificationPayload struct {
	TemplateType   string          `json:"template_type"`
	RecipientEmail string          `json:"recipient_email"`
	RecipientType  string          `json:"recipient_type"`
	RecipientID    string          `json:"recipient_id"`
	Data           json.RawMessage `json:"data,omitempty"`
}

// Validate checks the decoded payload fields.
func (p *SendNotificationPayload) Validate() error {
	if strings.TrimSpace(p.TemplateType) == "" {
		return errors.New("template_type is required")
	}
	if strings.TrimSpace(p.RecipientEmail) == "" {
		return errors.New("recipient_email is required")
	}
	return nil
}

// ErrUnknownPayloadType is returned when no payload shape exists for a job type.
var ErrUnknownPayloadType = errors.New("unknown payload type")

type validatable interface {
	Validate() error
}

// DecodePayload decodes raw payload bytes into the typed payload for the given
// job type and validates it. Unknown fields are rejected so a payload written
// against the wrong shape surfaces at dispatch rather than inside a handler.
func DecodePayload(jobType JobType, raw json.RawMessage) (any, error) {
	var dst validatable
	switch jobType {
	case JobTypeImageHash:
		dst = &ImageHashPayload{}
	case JobTypeTextSimilarity:
		dst = &TextSimilarityPayload{}
	case JobTypeFraudCheck:
		dst = &FraudCheckPayload{}
	case JobTypeAIReport:
		dst = &AIReportPayload{}
	case JobTypeSendNotification:
		dst = &SendNotificationPayload{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPayloadType, jobType)
	}

	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", jobType, err)
	}
	if err := dst.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", jobType, err)
	}
	return dst, nil
}

// EncodePayload marshals a typed payload for enqueueing.
func EncodePayload(p any) (json.RawMessage, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return raw, nil
}
