package http

import (
	"net/http"

	"custodian-bank/internal/usecase/credit"

	"github.com/labstack/echo/v4"
)

type CreditHandler struct{ uc *credit.Usecase }

func NewCreditHandler(uc *credit.Usecase) *CreditHandler { return &CreditHandler{uc: uc} }

type approveReq struct {
	Amount int64 `json:"amount" validate:"gte=0"`
}

// Approve authorizes the bank to pull collateral from the caller's credits.
func (h *CreditHandler) Approve(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Account-Id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.ApproveBank(c.Request().Context(), caller, req.Amount)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CreditHandler) Balance(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Account-Id"})
	}
	balance, err := h.uc.BalanceOf(c.Request().Context(), caller)
	if err != nil {
		return errJSON(c, err)
	}
	allowance, err := h.uc.BankAllowance(c.Request().Context(), caller)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"balance": balance, "bank_allowance": allowance})
}
