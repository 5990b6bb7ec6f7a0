package collab

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betabounty/betabounty-api/internal/domain/model"
)

func TestStorageClient_SignUpload(t *testing.T) {
	expires := time.Now().UTC().Add(15 * time.Minute).Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/objects/assets%2Fabc.png/sign-upload", r.URL.EscapedPath())
		assert.Equal(t, "Bearer storage-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"url":        "https://cdn.example.com/signed/abc",
			"expires_at": expires,
		})
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, "storage-token", time.Second)

	signed, err := client.SignUpload(context.Background(), "assets/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/signed/abc", signed.URL)
	assert.True(t, signed.ExpiresAt.Equal(expires))
}

func TestStorageClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/objects/assets%2Fabc.png", r.URL.EscapedPath())
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, "", time.Second)

	data, err := client.Fetch(context.Background(), "assets/abc.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestStorageClient_FetchMissingObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such object", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, "", time.Second)

	_, err := client.Fetch(context.Background(), "assets/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPaymentClient_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay_123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   "paid",
			"amount":   int64(5000),
			"store_id": "store-9",
		})
	}))
	defer srv.Close()

	client := NewPaymentClient(srv.URL, "pay-token", time.Second)

	v, err := client.Verify(context.Background(), "pay_123")
	require.NoError(t, err)
	assert.True(t, v.Paid)
	assert.Equal(t, int64(5000), v.Amount)
	assert.Equal(t, "store-9", v.StoreID)
}

func TestPaymentClient_VerifyPendingPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "pending", "amount": int64(5000)})
	}))
	defer srv.Close()

	client := NewPaymentClient(srv.URL, "", time.Second)

	v, err := client.Verify(context.Background(), "pay_456")
	require.NoError(t, err)
	assert.False(t, v.Paid)
}

func TestNotifyClient_Send(t *testing.T) {
	var got model.SendNotificationPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewNotifyClient(srv.URL, "", time.Second)

	payload := &model.SendNotificationPayload{
		TemplateType:   "participation_approved",
		RecipientEmail: "tester@example.com",
		RecipientType:  "user",
		RecipientID:    "u-1",
	}
	require.NoError(t, client.Send(context.Background(), payload))
	assert.Equal(t, "participation_approved", got.TemplateType)
	assert.Equal(t, "tester@example.com", got.RecipientEmail)
}

func TestNotifyClient_SendRejectsInvalidPayload(t *testing.T) {
	client := NewNotifyClient("http://127.0.0.1:1", "", time.Second)

	err := client.Send(context.Background(), &model.SendNotificationPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template_type")
}

func TestReportClient_GenerateReport(t *testing.T) {
	var got reportRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"summary": "Two stability issues dominate."})
	}))
	defer srv.Close()

	client := NewReportClient(srv.URL, "", time.Second)

	campaign := &model.Campaign{ID: "c-1", Name: "Beta round one"}
	approved := []*model.Participation{
		{ID: "p-1", UserID: "u-1", Feedback: "Crashes on login."},
		{ID: "p-2", UserID: "u-2", Feedback: "Settings do not persist."},
	}

	summary, err := client.GenerateReport(context.Background(), campaign, approved)
	require.NoError(t, err)
	assert.Equal(t, "Two stability issues dominate.", summary)
	assert.Equal(t, "c-1", got.CampaignID)
	assert.Equal(t, "Beta round one", got.CampaignName)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "p-1", got.Entries[0].ParticipationID)
	assert.Equal(t, "Crashes on login.", got.Entries[0].Feedback)
}

func TestReportClient_GenerateReportServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewReportClient(srv.URL, "", time.Second)

	_, err := client.GenerateReport(context.Background(), &model.Campaign{ID: "c-1"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
