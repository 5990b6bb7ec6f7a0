package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "wallet not found",
			},
			want: "wallet not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "apply ledger entry",
				Cause:   errors.New("connection reset"),
			},
			want: "apply ledger entry: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{Code: ErrCodeInternal, Message: "wrapped", Cause: cause}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructorsAndPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  ErrorCode
		check func(error) bool
	}{
		{"not found", NotFoundf("participation %s not found", "p-1"), ErrCodeNotFound, IsNotFound},
		{"conflict", Conflict("participation is already approved"), ErrCodeConflict, IsConflict},
		{"validation", Validation("amount must be positive"), ErrCodeValidation, IsValidation},
		{"insufficient funds", InsufficientFundsf("balance %d is below %d", 200, 1000), ErrCodeInsufficientFunds, IsInsufficientFunds},
		{"business rule", BusinessRule("campaign is not accepting submissions"), ErrCodeBusinessRule, IsBusinessRule},
		{"foreign key", ForeignKey("campaign does not exist"), ErrCodeForeignKey, IsForeignKey},
		{"internal", Internal("database error"), ErrCodeInternal, IsInternal},
		{"unauthorized", Unauthorized("invalid bearer token"), ErrCodeUnauthorized, IsUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if !tt.check(tt.err) {
				t.Errorf("predicate returned false for %v", tt.err)
			}
			// Predicates see through fmt wrapping.
			wrapped := fmt.Errorf("service: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("predicate returned false for wrapped %v", wrapped)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("campaign_id", "must be a valid uuid")
	if err.Field != "campaign_id" {
		t.Errorf("Field = %q, want campaign_id", err.Field)
	}
	if got := GetField(err); got != "campaign_id" {
		t.Errorf("GetField() = %q, want campaign_id", got)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(cause, ErrCodeInternal, "verify payment")
	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if Wrap(nil, ErrCodeInternal, "nothing") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, ErrCodeInternal, "nothing %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(Conflict("dup")); got != ErrCodeConflict {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeConflict)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if IsConflict(errors.New("plain")) {
		t.Error("IsConflict(plain) should be false")
	}
}
