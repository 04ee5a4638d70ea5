package api

import (
	"errors"
	"net/http"

	"nft_market/internal/domain"
)

// ErrorCode represents unified API error codes
type ErrorCode string

const (
	ErrorCodeInvalidArgument     ErrorCode = "INVALID_ARGUMENT"
	ErrorCodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	ErrorCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrorCodeExpired             ErrorCode = "EXPIRED"
	ErrorCodePriceTooLow         ErrorCode = "PRICE_TOO_LOW"
	ErrorCodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

var notFoundErrors = []error{
	domain.ErrOrderNotFound,
	domain.ErrOfferNotFound,
	domain.ErrBritishAuctionNotFound,
	domain.ErrBritishAuctionBidNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrTokenNotFound,
}

var validationErrors = []error{
	domain.ErrInvalidDeposit,
	domain.ErrInvalidDeadline,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidPrice,
	domain.ErrInvalidAmount,
	domain.ErrInvalidMinRaise,
	domain.ErrInvalidHammerPrice,
	domain.ErrTooManyTokenChargedRoyalty,
	domain.ErrTakeOwnOrder,
	domain.ErrCanNotAfford,
}

var insufficientErrors = []error{
	domain.ErrInsufficientFreeBalance,
	domain.ErrInsufficientFreeQuantity,
	domain.ErrInsufficientReserved,
}

// MapErrorToHTTP maps domain errors to HTTP status codes and error responses.
func MapErrorToHTTP(err error) (int, ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusOK, ErrorResponse{}
	case matches(err, notFoundErrors):
		return http.StatusNotFound, ErrorResponse{
			Code:    string(ErrorCodeNotFound),
			Message: err.Error(),
		}
	case matches(err, validationErrors):
		return http.StatusBadRequest, ErrorResponse{
			Code:    string(ErrorCodeInvalidArgument),
			Message: err.Error(),
		}
	case matches(err, insufficientErrors):
		return http.StatusBadRequest, ErrorResponse{
			Code:    string(ErrorCodeInsufficientBalance),
			Message: err.Error(),
		}
	case errors.Is(err, domain.ErrOrderExpired), errors.Is(err, domain.ErrBritishAuctionClosed):
		return http.StatusConflict, ErrorResponse{
			Code:    string(ErrorCodeExpired),
			Message: err.Error(),
		}
	case errors.Is(err, domain.ErrPriceTooLow):
		return http.StatusBadRequest, ErrorResponse{
			Code:    string(ErrorCodePriceTooLow),
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Code:    string(ErrorCodeInternalError),
			Message: err.Error(),
		}
	}
}

func matches(err error, set []error) bool {
	for _, target := range set {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
