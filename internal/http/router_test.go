package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
	"github.com/betabounty/betabounty-api/internal/mocks"
	"github.com/betabounty/betabounty-api/internal/service"
)

const testRunToken = "test-run-token"

// routerMocks exposes the repository mocks behind a fully wired router, so
// tests exercise the real service layer under the handlers.
type routerMocks struct {
	jobs           *mocks.MockJobStore
	participations *mocks.MockParticipationRepository
	campaigns      *mocks.MockCampaignRepository
	users          *mocks.MockUserRepository
	signals        *mocks.MockFraudSignalRepository
	velocity       *mocks.MockVelocityCounter
	wallets        *mocks.MockWalletRepository
	payments       *mocks.MockPaymentVerifier
	rewards        *mocks.MockRewardRepository
}

func newTestRouter(t *testing.T, ctrl *gomock.Controller) (http.Handler, *routerMocks) {
	t.Helper()

	m := &routerMocks{
		jobs:           mocks.NewMockJobStore(ctrl),
		participations: mocks.NewMockParticipationRepository(ctrl),
		campaigns:      mocks.NewMockCampaignRepository(ctrl),
		users:          mocks.NewMockUserRepository(ctrl),
		signals:        mocks.NewMockFraudSignalRepository(ctrl),
		velocity:       mocks.NewMockVelocityCounter(ctrl),
		wallets:        mocks.NewMockWalletRepository(ctrl),
		payments:       mocks.NewMockPaymentVerifier(ctrl),
		rewards:        mocks.NewMockRewardRepository(ctrl),
	}

	dispatcher, err := service.NewDispatcherService(service.DispatcherServiceOptions{
		Store: m.jobs,
		Handlers: service.HandlerRegistry{
			model.JobTypeFraudCheck: func(ctx context.Context, job *model.Job, payload any) error {
				return nil
			},
		},
	})
	require.NoError(t, err)

	participations, err := service.NewParticipationService(service.ParticipationServiceOptions{
		Repos: service.ParticipationServiceRepos{
			Participations: m.participations,
			Campaigns:      m.campaigns,
			Users:          m.users,
			Signals:        m.signals,
			Jobs:           m.jobs,
			Velocity:       m.velocity,
		},
	})
	require.NoError(t, err)

	wallets, err := service.NewWalletService(service.WalletServiceOptions{
		Repo:     m.wallets,
		Payments: m.payments,
	})
	require.NoError(t, err)

	rewards, err := service.NewRewardService(service.RewardServiceOptions{
		Repo:  m.rewards,
		Users: m.users,
		Jobs:  m.jobs,
	})
	require.NoError(t, err)

	router := NewRouter(RouterServices{
		Dispatcher:     dispatcher,
		Participations: participations,
		Wallets:        wallets,
		Rewards:        rewards,
		RunToken:       testRunToken,
	})
	return router, m
}

func doRequest(router http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func runTokenHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testRunToken}
}

func TestRouter_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doRequest(router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doRequest(router, http.MethodHead, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_RunBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)

	m.jobs.EXPECT().RequeueExpired(gomock.Any()).Return(int64(0), nil)
	m.jobs.EXPECT().ClaimNext(gomock.Any(), gomock.Any()).Return(nil, model.ErrNoJobsAvailable)
	m.jobs.EXPECT().Stats(gomock.Any()).Return(&model.JobStats{Pending: 2}, nil)

	rec := doRequest(router, http.MethodPost, "/api/jobs/run", "", runTokenHeader())
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 2, result.Stats.Pending)
}

func TestRouter_RunBatch_RequiresToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doRequest(router, http.MethodPost, "/api/jobs/run", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/jobs/run", "", map[string]string{
		"Authorization": "Bearer wrong-token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid bearer token")
}

func TestRouter_JobRetryAndStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	jobID := uuid.NewString()

	m.jobs.EXPECT().Retry(gomock.Any(), jobID, false).Return(&model.Job{
		ID: jobID, Status: model.JobStatusPending,
	}, nil)
	rec := doRequest(router, http.MethodPost, "/api/jobs/"+jobID+"/retry", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending"`)

	m.jobs.EXPECT().Stats(gomock.Any()).Return(&model.JobStats{Dead: 1}, nil)
	rec = doRequest(router, http.MethodGet, "/api/jobs/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dead":1`)
}

func TestRouter_SubmitParticipation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)

	campaignID := uuid.NewString()
	userID := uuid.NewString()

	m.campaigns.EXPECT().GetByID(gomock.Any(), campaignID).Return(&model.Campaign{
		ID:         campaignID,
		Status:     model.CampaignStatusActive,
		AssetSlots: 1,
	}, nil)
	m.participations.EXPECT().CreateSubmission(gomock.Any(), gomock.Any()).Return(&core.Submission{
		Participation: &model.Participation{
			ID:         uuid.NewString(),
			CampaignID: campaignID,
			UserID:     userID,
			Status:     model.ParticipationStatusSubmitted,
		},
	}, nil)
	m.velocity.EXPECT().Incr(gomock.Any(), userID).Return(1, nil)

	body := `{
		"campaign_id": "` + campaignID + `",
		"user_id": "` + userID + `",
		"feedback": "Scrolling stutters on the results page.",
		"assets": [{"slot": 0, "storage_key": "uploads/shot-0.png"}]
	}`
	rec := doRequest(router, http.MethodPost, "/api/participations", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"submitted"`)
}

func TestRouter_SubmitParticipation_ErrorMapping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)

	// Unknown JSON fields are rejected before the service sees the request.
	rec := doRequest(router, http.MethodPost, "/api/participations", `{"bogus": true}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")

	campaignID := uuid.NewString()
	m.campaigns.EXPECT().GetByID(gomock.Any(), campaignID).Return(&model.Campaign{
		ID:         campaignID,
		Status:     model.CampaignStatusClosed,
		AssetSlots: 1,
	}, nil)
	body := `{
		"campaign_id": "` + campaignID + `",
		"user_id": "` + uuid.NewString() + `",
		"feedback": "Late submission.",
		"assets": [{"slot": 0, "storage_key": "uploads/late.png"}]
	}`
	rec = doRequest(router, http.MethodPost, "/api/participations", body, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "business_rule")
}

func TestRouter_ApproveParticipation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)

	participationID := uuid.NewString()
	userID := uuid.NewString()
	reviewerID := uuid.NewString()

	m.participations.EXPECT().Approve(gomock.Any(), gomock.Any()).Return(&core.ApprovalOutcome{
		Participation: &model.Participation{ID: participationID, UserID: userID, Status: model.ParticipationStatusApproved},
		Transaction:   &model.CreditTransaction{Amount: -1000, BalanceAfter: 4000},
		Reward:        &model.Reward{ID: uuid.NewString(), Amount: 500},
	}, nil)
	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(&model.User{ID: userID, Email: "t@example.com"}, nil)
	m.jobs.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(&model.Job{}, nil)

	body := `{"reviewer_id": "` + reviewerID + `"}`
	rec := doRequest(router, http.MethodPost, "/api/participations/"+participationID+"/approve", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance_after":4000`)
}

func TestRouter_WalletTopupAndConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	walletID := uuid.NewString()

	m.payments.EXPECT().Verify(gomock.Any(), "pay_1").Return(&core.PaymentVerification{Paid: true, Amount: 10_000}, nil)
	m.wallets.EXPECT().ApplyEntry(gomock.Any(), gomock.Any()).Return(&model.CreditTransaction{
		Amount: 10_000, BalanceAfter: 10_000,
	}, nil)
	rec := doRequest(router, http.MethodPost, "/api/wallets/"+walletID+"/topup", `{"payment_ref": "pay_1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Replaying the same reference trips the ledger uniqueness guard.
	m.payments.EXPECT().Verify(gomock.Any(), "pay_1").Return(&core.PaymentVerification{Paid: true, Amount: 10_000}, nil)
	m.wallets.EXPECT().ApplyEntry(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("top-up already recorded for this payment"))
	rec = doRequest(router, http.MethodPost, "/api/wallets/"+walletID+"/topup", `{"payment_ref": "pay_1"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_WalletInsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	walletID := uuid.NewString()

	m.wallets.EXPECT().ApplyEntry(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.InsufficientFunds("wallet balance too low"))
	rec := doRequest(router, http.MethodPost, "/api/wallets/"+walletID+"/adjust",
		`{"type": "adjust", "amount": -999999}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_funds")
}

func TestRouter_RewardMarkSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	rewardID := uuid.NewString()
	userID := uuid.NewString()

	m.rewards.EXPECT().MarkSent(gomock.Any(), rewardID, gomock.Any()).Return(&model.Reward{
		ID: rewardID, UserID: userID, Status: model.RewardStatusSent,
	}, nil)
	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(&model.User{ID: userID, Email: "t@example.com"}, nil)
	m.jobs.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(&model.Job{}, nil)

	rec := doRequest(router, http.MethodPost, "/api/rewards/"+rewardID+"/sent", `{"proof_ref": "wise-1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sent"`)
}

func TestRouter_NotFoundMapsTo404(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	id := uuid.NewString()

	m.participations.EXPECT().GetByID(gomock.Any(), id).
		Return(nil, apperrors.NotFound("participation not found"))
	rec := doRequest(router, http.MethodGet, "/api/participations/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
