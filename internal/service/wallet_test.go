package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
	"github.com/betabounty/betabounty-api/internal/mocks"
)

func newTestWalletService(t *testing.T, repo *mocks.MockWalletRepository, payments *mocks.MockPaymentVerifier) *WalletService {
	t.Helper()
	svc, err := NewWalletService(WalletServiceOptions{Repo: repo, Payments: payments})
	require.NoError(t, err)
	return svc
}

func TestNewWalletService_RequiredDependencies(t *testing.T) {
	_, err := NewWalletService(WalletServiceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WalletRepository is required")
}

func TestWalletService_Topup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walletID := uuid.NewString()

	repo := mocks.NewMockWalletRepository(ctrl)
	payments := mocks.NewMockPaymentVerifier(ctrl)
	payments.EXPECT().Verify(gomock.Any(), "pay_123").Return(&core.PaymentVerification{
		Paid:   true,
		Amount: 50_000,
	}, nil)
	repo.EXPECT().ApplyEntry(gomock.Any(), &model.LedgerEntryRequest{
		WalletID:    walletID,
		Type:        model.TransactionTypeTopup,
		Amount:      50_000,
		RefType:     "payment",
		RefID:       "pay_123",
		Description: "verified top-up",
	}).Return(&model.CreditTransaction{Amount: 50_000, BalanceAfter: 50_000}, nil)

	svc := newTestWalletService(t, repo, payments)
	txn, err := svc.Topup(context.Background(), walletID, &model.TopupRequest{PaymentRef: "pay_123"})
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), txn.BalanceAfter)
}

func TestWalletService_Topup_UnconfirmedPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockWalletRepository(ctrl)
	payments := mocks.NewMockPaymentVerifier(ctrl)
	payments.EXPECT().Verify(gomock.Any(), "pay_pending").Return(&core.PaymentVerification{
		Paid:   false,
		Amount: 50_000,
	}, nil)

	svc := newTestWalletService(t, repo, payments)
	_, err := svc.Topup(context.Background(), uuid.NewString(), &model.TopupRequest{PaymentRef: "pay_pending"})
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))
	assert.Contains(t, err.Error(), "payment is not confirmed")
}

func TestWalletService_Topup_NonPositiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockWalletRepository(ctrl)
	payments := mocks.NewMockPaymentVerifier(ctrl)
	payments.EXPECT().Verify(gomock.Any(), "pay_zero").Return(&core.PaymentVerification{
		Paid:   true,
		Amount: 0,
	}, nil)

	svc := newTestWalletService(t, repo, payments)
	_, err := svc.Topup(context.Background(), uuid.NewString(), &model.TopupRequest{PaymentRef: "pay_zero"})
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))
}

func TestWalletService_Topup_VerifierError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockWalletRepository(ctrl)
	payments := mocks.NewMockPaymentVerifier(ctrl)
	payments.EXPECT().Verify(gomock.Any(), "pay_down").Return(nil, assert.AnError)

	svc := newTestWalletService(t, repo, payments)
	_, err := svc.Topup(context.Background(), uuid.NewString(), &model.TopupRequest{PaymentRef: "pay_down"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify payment")
}

func TestWalletService_Topup_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestWalletService(t, mocks.NewMockWalletRepository(ctrl), mocks.NewMockPaymentVerifier(ctrl))

	_, err := svc.Topup(context.Background(), uuid.NewString(), nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Topup(context.Background(), uuid.NewString(), &model.TopupRequest{PaymentRef: "  "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "payment_ref")
}

func TestWalletService_Adjust(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walletID := uuid.NewString()

	repo := mocks.NewMockWalletRepository(ctrl)
	repo.EXPECT().ApplyEntry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req *model.LedgerEntryRequest) (*model.CreditTransaction, error) {
			// The path wallet id wins over whatever the body carried.
			assert.Equal(t, walletID, req.WalletID)
			return &model.CreditTransaction{Amount: req.Amount, BalanceAfter: 2_500}, nil
		})

	svc := newTestWalletService(t, repo, mocks.NewMockPaymentVerifier(ctrl))
	txn, err := svc.Adjust(context.Background(), walletID, &model.LedgerEntryRequest{
		WalletID: "ignored",
		Type:     model.TransactionTypeBonus,
		Amount:   2_500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2_500), txn.Amount)
}

func TestWalletService_Adjust_RejectsReservedTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestWalletService(t, mocks.NewMockWalletRepository(ctrl), mocks.NewMockPaymentVerifier(ctrl))

	for _, typ := range []model.TransactionType{model.TransactionTypeTopup, model.TransactionTypeConsume} {
		_, err := svc.Adjust(context.Background(), uuid.NewString(), &model.LedgerEntryRequest{
			Type:   typ,
			Amount: 100,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "not allowed here")
	}
}
