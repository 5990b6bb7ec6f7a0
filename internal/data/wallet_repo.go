package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/betabounty/betabounty-api/internal/data/pgxutil"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
)

// WalletRepo provides database operations for the credit ledger. The wallet
// balance is only ever written inside the same transaction that appends a
// credit_transactions row, so the balance always equals the running sum of
// the wallet's transaction amounts.
type WalletRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewWalletRepo creates a new WalletRepo instance.
func NewWalletRepo(db *sql.DB, tp TimeProvider) *WalletRepo {
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &WalletRepo{DB: db, timeProvider: tp}
}

const walletColumns = `
  id,
  advertiser_id,
  balance,
  total_topup,
  total_consumed,
  created_at,
  updated_at
`

const transactionColumns = `
  id,
  wallet_id,
  type,
  amount,
  balance_after,
  ref_type,
  ref_id,
  description,
  created_at
`

func scanWallet(row interface{ Scan(...any) error }) (*model.CreditWallet, error) {
	var w model.CreditWallet
	err := row.Scan(
		&w.ID,
		&w.AdvertiserID,
		&w.Balance,
		&w.TotalTopup,
		&w.TotalConsumed,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanTransaction(row interface{ Scan(...any) error }) (*model.CreditTransaction, error) {
	var t model.CreditTransaction
	var refType, refID sql.NullString
	err := row.Scan(
		&t.ID,
		&t.WalletID,
		&t.Type,
		&t.Amount,
		&t.BalanceAfter,
		&refType,
		&refID,
		&t.Description,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.RefType = cloneNullableString(refType)
	t.RefID = cloneNullableString(refID)
	return &t, nil
}

// GetByID retrieves a wallet by its ID.
func (r *WalletRepo) GetByID(ctx context.Context, id string) (*model.CreditWallet, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+walletColumns+` FROM credit_wallets WHERE id = $1`, id)
	w, err := scanWallet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// ApplyEntry runs one ledger operation as a single atomic unit: lock the
// wallet row, validate the operation, write the new balance, and append
// exactly one transaction carrying balance_after. Nothing is written when any
// step fails.
func (r *WalletRepo) ApplyEntry(ctx context.Context, req *model.LedgerEntryRequest) (*model.CreditTransaction, error) {
	if req == nil {
		return nil, errors.New("ledger entry request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var txn *model.CreditTransaction
	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			var applyErr error
			txn, applyErr = applyLedgerEntryInTx(ctx, tx, r.timeProvider, req)
			return applyErr
		},
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// applyLedgerEntryInTx is the shared ledger write used by ApplyEntry and by
// the participation approval transaction.
func applyLedgerEntryInTx(
	ctx context.Context,
	tx *sql.Tx,
	tp TimeProvider,
	req *model.LedgerEntryRequest,
) (*model.CreditTransaction, error) {
	var balance int64
	err := tx.QueryRowContext(ctx,
		`SELECT balance FROM credit_wallets WHERE id = $1 FOR UPDATE`,
		req.WalletID,
	).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}

	newBalance := balance + req.Amount
	if newBalance < 0 {
		return nil, apperrors.InsufficientFundsf(
			"wallet balance %d is insufficient for debit of %d", balance, -req.Amount)
	}

	currentTime := tp.Now().UTC()
	topup, consumed := creditTotalsDelta(req)
	if _, err = tx.ExecContext(ctx, `
		UPDATE credit_wallets
		SET balance = $2,
		    total_topup = total_topup + $3,
		    total_consumed = total_consumed + $4,
		    updated_at = $5
		WHERE id = $1
	`, req.WalletID, newBalance, topup, consumed, currentTime); err != nil {
		return nil, fmt.Errorf("update wallet balance: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO credit_transactions(wallet_id, type, amount, balance_after, ref_type, ref_id, description)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING `+transactionColumns,
		req.WalletID, req.Type, req.Amount, newBalance, req.RefType, req.RefID, req.Description,
	)
	txn, err := scanTransaction(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("append transaction: %w", err))
	}
	return txn, nil
}

// creditTotalsDelta returns the total_topup and total_consumed increments for
// an entry. Only confirmed payments count toward total_topup and only
// approval debits count toward total_consumed.
func creditTotalsDelta(req *model.LedgerEntryRequest) (topup, consumed int64) {
	switch req.Type {
	case model.TransactionTypeTopup:
		return req.Amount, 0
	case model.TransactionTypeConsume:
		return 0, -req.Amount
	default:
		return 0, 0
	}
}

// ListTransactions returns a wallet's most recent ledger entries.
func (r *WalletRepo) ListTransactions(ctx context.Context, walletID string, limit int) ([]*model.CreditTransaction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM credit_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*model.CreditTransaction
	for rows.Next() {
		t, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan transaction: %w", scanErr)
		}
		out = append(out, t)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, rowsErr
	}
	return out, nil
}
