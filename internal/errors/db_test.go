package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrorsPassThrough(t *testing.T) {
	for _, cause := range []error{context.DeadlineExceeded, context.Canceled} {
		if err := MapDBError(cause); !errors.Is(err, cause) {
			t.Errorf("MapDBError(%v) = %v, want the original error", cause, err)
		}
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(ErrNoRows) code = %v, want %v", GetCode(err), ErrCodeNotFound)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Error("mapped error lost pgx.ErrNoRows as cause")
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "Key (payment_ref)=(pay_123) already exists.",
	}
	err := MapDBError(pgErr)
	if !IsConflict(err) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeConflict)
	}
	if got := GetField(err); got != "payment_ref" {
		t.Errorf("field = %q, want payment_ref", got)
	}
}

func TestMapDBError_UniqueViolationColumnName(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.UniqueViolation,
		ColumnName: "user_id",
	}
	if got := GetField(MapDBError(pgErr)); got != "user_id" {
		t.Errorf("field = %q, want user_id", got)
	}
}

func TestMapDBError_ForeignKeyViolation(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	if !IsForeignKey(err) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeForeignKey)
	}
}

func TestMapDBError_CheckAndNotNullViolations(t *testing.T) {
	for _, code := range []string{pgerrcode.CheckViolation, pgerrcode.NotNullViolation} {
		err := MapDBError(&pgconn.PgError{Code: code, ColumnName: "amount"})
		if !IsValidation(err) {
			t.Errorf("code %s mapped to %v, want %v", code, GetCode(err), ErrCodeValidation)
		}
		if got := GetField(err); got != "amount" {
			t.Errorf("field = %q, want amount", got)
		}
	}
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	if !IsInternal(err) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInternal)
	}
}

func TestMapDBError_PlainErrorPassesThrough(t *testing.T) {
	cause := errors.New("driver: bad connection")
	if err := MapDBError(cause); !errors.Is(err, cause) {
		t.Errorf("MapDBError(plain) = %v, want the original error", err)
	}
}
