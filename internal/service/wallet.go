package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
)

// WalletServiceOptions groups dependencies for WalletService.
type WalletServiceOptions struct {
	Repo     core.WalletRepository // Required: ledger repository
	Payments core.PaymentVerifier  // Required: top-up confirmation
	Logger   *slog.Logger          // Optional: structured logger
}

// WalletService provides business logic for the credit ledger. The repository
// owns atomicity; this layer owns the policy around what may enter the ledger.
type WalletService struct {
	repo     core.WalletRepository
	payments core.PaymentVerifier
	logger   *slog.Logger
}

// NewWalletService constructs a new WalletService.
func NewWalletService(opts WalletServiceOptions) (*WalletService, error) {
	if opts.Repo == nil {
		return nil, errors.New("WalletRepository is required")
	}
	if opts.Payments == nil {
		return nil, errors.New("PaymentVerifier is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "wallet_service")
	}
	return &WalletService{repo: opts.Repo, payments: opts.Payments, logger: logger}, nil
}

// Get retrieves a wallet by id.
func (s *WalletService) Get(ctx context.Context, id string) (*model.CreditWallet, error) {
	return s.repo.GetByID(ctx, id)
}

// Transactions lists a wallet's most recent ledger entries.
func (s *WalletService) Transactions(ctx context.Context, walletID string, limit int) ([]*model.CreditTransaction, error) {
	return s.repo.ListTransactions(ctx, walletID, limit)
}

// Topup confirms the payment reference with the gateway and credits the
// verified amount. The payment reference doubles as the ledger ref, so a
// replayed confirmation trips the one-topup-per-reference constraint and maps
// to a conflict instead of double-crediting.
func (s *WalletService) Topup(ctx context.Context, walletID string, req *model.TopupRequest) (*model.CreditTransaction, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	verification, err := s.payments.Verify(ctx, req.PaymentRef)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "verify payment")
	}
	if !verification.Paid {
		return nil, apperrors.BusinessRule("payment is not confirmed")
	}
	if verification.Amount <= 0 {
		return nil, apperrors.BusinessRule("payment amount must be positive")
	}

	txn, err := s.repo.ApplyEntry(ctx, &model.LedgerEntryRequest{
		WalletID:    walletID,
		Type:        model.TransactionTypeTopup,
		Amount:      verification.Amount,
		RefType:     "payment",
		RefID:       req.PaymentRef,
		Description: "verified top-up",
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "wallet topped up",
			"wallet_id", walletID,
			"amount", verification.Amount,
			"payment_ref", req.PaymentRef,
			"balance_after", txn.BalanceAfter,
		)
	}
	return txn, nil
}

// Adjust applies an administrative ledger entry (refund, adjust, bonus).
// Top-ups must go through Topup so every credit from a payment is verified;
// consume entries only exist inside the approval transaction.
func (s *WalletService) Adjust(ctx context.Context, walletID string, req *model.LedgerEntryRequest) (*model.CreditTransaction, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	switch req.Type {
	case model.TransactionTypeRefund, model.TransactionTypeAdjust, model.TransactionTypeBonus:
	default:
		return nil, apperrors.Validationf("transaction type %s is not allowed here", req.Type)
	}
	req.WalletID = walletID

	txn, err := s.repo.ApplyEntry(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "wallet adjusted",
			"wallet_id", walletID,
			"type", req.Type,
			"amount", req.Amount,
			"balance_after", txn.BalanceAfter,
		)
	}
	return txn, nil
}
