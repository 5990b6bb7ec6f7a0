package httpx

import (
	"errors"
	"net/http"

	"github.com/betabounty/betabounty-api/internal/data"
	apperrors "github.com/betabounty/betabounty-api/internal/errors"
)

// RenderError maps a service or repository error onto an HTTP error response.
// AppError codes carry the mapping; data-layer sentinels are translated so
// handlers can pass errors through unchanged.
func RenderError(w http.ResponseWriter, err error) {
	switch {
	case isNotFoundSentinel(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		return
	case errors.Is(err, data.ErrJobNotRetryable):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
		return
	}

	code := apperrors.GetCode(err)
	switch code {
	case apperrors.ErrCodeValidation:
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeNotFound:
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeConflict, apperrors.ErrCodeInsufficientFunds, apperrors.ErrCodeForeignKey:
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeBusinessRule:
		WriteError(w, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeUnauthorized:
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: string(code), Err: err})
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal",
			Err:     errors.New("internal server error"),
		})
	}
}

func isNotFoundSentinel(err error) bool {
	for _, sentinel := range []error{
		data.ErrJobNotFound,
		data.ErrParticipationNotFound,
		data.ErrAssetNotFound,
		data.ErrWalletNotFound,
		data.ErrRewardNotFound,
		data.ErrCampaignNotFound,
		data.ErrUserNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
