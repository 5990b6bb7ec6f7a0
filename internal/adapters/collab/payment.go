package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/betabounty/betabounty-api/internal/core"
)

// PaymentClient implements core.PaymentVerifier against the payment gateway.
type PaymentClient struct {
	client *Client
}

// NewPaymentClient builds a payment gateway client.
func NewPaymentClient(baseURL, token string, timeout time.Duration) *PaymentClient {
	return &PaymentClient{client: NewClient(baseURL, token, timeout)}
}

type paymentResponse struct {
	Status  string `json:"status"`
	Amount  int64  `json:"amount"`
	StoreID string `json:"store_id"`
}

func (p *PaymentClient) Verify(ctx context.Context, paymentRef string) (*core.PaymentVerification, error) {
	var resp paymentResponse
	if err := p.client.getJSON(ctx, "/payments/"+escape(paymentRef), &resp); err != nil {
		return nil, fmt.Errorf("verify payment %q: %w", paymentRef, err)
	}
	return &core.PaymentVerification{
		Paid:    resp.Status == "paid",
		Amount:  resp.Amount,
		StoreID: resp.StoreID,
	}, nil
}
