package http

import (
	"net/http"

	adapterOracle "custodian-bank/internal/adapter/oracle"
	"custodian-bank/internal/usecase/bank"
	"custodian-bank/pkg/id"

	"github.com/labstack/echo/v4"
)

// AdminHandler carries the operator-only configuration surface: the yearly
// return rate, the published oracle rate, and wallet top-ups.
type AdminHandler struct {
	uc     *bank.Usecase
	oracle *adapterOracle.RedisOracle
}

func NewAdminHandler(uc *bank.Usecase, o *adapterOracle.RedisOracle) *AdminHandler {
	return &AdminHandler{uc: uc, oracle: o}
}

type rateReq struct {
	Rate int64 `json:"rate" validate:"required,gte=1,lte=100"`
}

type oracleRateReq struct {
	Rate int64 `json:"rate" validate:"required,gt=0"`
}

type createAccountReq struct {
	InitialBalance int64 `json:"initial_balance" validate:"gte=0"`
}

type topUpReq struct {
	AccountID string `json:"account_id" validate:"required,hex32"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

func (h *AdminHandler) SetReturnRate(c echo.Context) error {
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.uc.SetYearlyReturnRate(c.Request().Context(), req.Rate); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"yearly_return_rate": req.Rate})
}

func (h *AdminHandler) SetOracleRate(c echo.Context) error {
	var req oracleRateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.oracle.Publish(c.Request().Context(), req.Rate); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"rate": req.Rate})
}

func (h *AdminHandler) TopUpWallet(c echo.Context) error {
	var req topUpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.uc.TopUpWallet(c.Request().Context(), req.AccountID, req.Amount); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"account_id": req.AccountID, "amount": req.Amount})
}

// CreateAccount issues a fresh account identity and optionally funds its
// wallet in the same call.
func (h *AdminHandler) CreateAccount(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	accountID := id.NewID32()
	if req.InitialBalance > 0 {
		if err := h.uc.TopUpWallet(c.Request().Context(), accountID, req.InitialBalance); err != nil {
			return errJSON(c, err)
		}
	}
	return c.JSON(http.StatusCreated, map[string]any{"account_id": accountID, "initial_balance": req.InitialBalance})
}
