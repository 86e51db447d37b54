package http

import (
	"errors"
	"net/http"
	"strings"

	bankDomain "custodian-bank/internal/domain/bank"
	creditDomain "custodian-bank/internal/domain/credit"
	oracleDomain "custodian-bank/internal/domain/oracle"
	walletDomain "custodian-bank/internal/domain/wallet"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// callerID extracts the authenticated account from the Ax-Account-Id header.
// The all-zeros id is the bank's own ledger identity and never a caller.
func callerID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get("Ax-Account-Id"))
	if !reHex32.MatchString(id) || id == creditDomain.BankAccountID {
		return "", false
	}
	return id, true
}

// statusFor maps the engine error taxonomy onto HTTP statuses: validation
// errors 400, state conflicts 409, liquidity/funds/allowance 422, oracle
// trouble 503, unknown 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bankDomain.ErrInvalidAmount),
		errors.Is(err, bankDomain.ErrReservedAccount),
		errors.Is(err, bankDomain.ErrDepositBelowMin),
		errors.Is(err, bankDomain.ErrRateOutOfRange),
		errors.Is(err, bankDomain.ErrRepayMismatch),
		errors.Is(err, bankDomain.ErrAmountOverflow):
		return http.StatusBadRequest
	case errors.Is(err, bankDomain.ErrDepositAlreadyOpen),
		errors.Is(err, bankDomain.ErrLoanAlreadyOpen),
		errors.Is(err, bankDomain.ErrNoOpenDeposit),
		errors.Is(err, bankDomain.ErrNoOpenLoan):
		return http.StatusConflict
	case errors.Is(err, bankDomain.ErrInsufficientLiquidity),
		errors.Is(err, creditDomain.ErrInsufficientCredits),
		errors.Is(err, creditDomain.ErrInsufficientAllowance),
		errors.Is(err, walletDomain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, oracleDomain.ErrStaleRate),
		errors.Is(err, oracleDomain.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// RequireOperator gates administrative routes behind the shared operator token.
func RequireOperator(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" || c.Request().Header.Get("Ax-Operator-Token") != token {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "operator token required"})
			}
			return next(c)
		}
	}
}
