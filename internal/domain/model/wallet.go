package model

import (
	"errors"
	"strings"
	"time"
)

// TransactionType categorizes a ledger entry.
type TransactionType string

const (
	// TransactionTypeTopup increases the balance from a confirmed advertiser payment.
	TransactionTypeTopup TransactionType = "topup"
	// TransactionTypeConsume decreases the balance on participation approval.
	TransactionTypeConsume TransactionType = "consume"
	// TransactionTypeRefund returns previously consumed credits.
	TransactionTypeRefund TransactionType = "refund"
	// TransactionTypeAdjust is an administrative correction in either direction.
	TransactionTypeAdjust TransactionType = "adjust"
	// TransactionTypeBonus is a promotional credit grant.
	TransactionTypeBonus TransactionType = "bonus"
)

// Valid returns true if the TransactionType is valid.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeTopup, TransactionTypeConsume, TransactionTypeRefund,
		TransactionTypeAdjust, TransactionTypeBonus:
		return true
	}
	return false
}

// CreditWallet holds one advertiser's spendable balance. Balance is mutated
// only inside the same transaction that appends a CreditTransaction, and must
// always equal the running sum of the wallet's transaction amounts.
type CreditWallet struct {
	ID            string    `json:"id"             db:"id"`
	AdvertiserID  string    `json:"advertiser_id"  db:"advertiser_id"`
	Balance       int64     `json:"balance"        db:"balance"`
	TotalTopup    int64     `json:"total_topup"    db:"total_topup"`
	TotalConsumed int64     `json:"total_consumed" db:"total_consumed"`
	CreatedAt     time.Time `json:"created_at"     db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"     db:"updated_at"`
}

// CreditTransaction is one append-only ledger entry. Amount is signed:
// positive credits, negative debits. BalanceAfter snapshots the wallet balance
// immediately after the entry was applied.
type CreditTransaction struct {
	ID           string          `json:"id"                 db:"id"`
	WalletID     string          `json:"wallet_id"          db:"wallet_id"`
	Type         TransactionType `json:"type"               db:"type"`
	Amount       int64           `json:"amount"             db:"amount"`
	BalanceAfter int64           `json:"balance_after"      db:"balance_after"`
	RefType      *string         `json:"ref_type,omitempty" db:"ref_type"`
	RefID        *string         `json:"ref_id,omitempty"   db:"ref_id"`
	Description  string          `json:"description"        db:"description"`
	CreatedAt    time.Time       `json:"created_at"         db:"created_at"`
}

// LedgerEntryRequest describes one balance-changing operation.
type LedgerEntryRequest struct {
	WalletID    string          `json:"wallet_id"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	RefType     string          `json:"ref_type,omitempty"`
	RefID       string          `json:"ref_id,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Validate validates the LedgerEntryRequest fields, including the sign
// conventions per transaction type.
func (r *LedgerEntryRequest) Validate() error {
	if strings.TrimSpace(r.WalletID) == "" {
		return errors.New("wallet_id is required")
	}
	if !r.Type.Valid() {
		return errors.New("invalid transaction type")
	}
	if r.Amount == 0 {
		return errors.New("amount must be non-zero")
	}
	switch r.Type {
	case TransactionTypeTopup, TransactionTypeBonus, TransactionTypeRefund:
		if r.Amount < 0 {
			return errors.New("amount must be positive for credit entries")
		}
	case TransactionTypeConsume:
		if r.Amount > 0 {
			return errors.New("amount must be negative for consume entries")
		}
	case TransactionTypeAdjust:
		// adjustments go either direction
	}
	return nil
}

// TopupRequest confirms an advertiser payment by reference before crediting.
type TopupRequest struct {
	PaymentRef string `json:"payment_ref"`
}

// Validate validates the TopupRequest fields.
func (r *TopupRequest) Validate() error {
	if strings.TrimSpace(r.PaymentRef) == "" {
		return errors.New("payment_ref is required")
	}
	return nil
}
