package http

import (
	"net/http"

	"custodian-bank/internal/usecase/bank"

	"github.com/labstack/echo/v4"
)

type BankHandler struct{ uc *bank.Usecase }

func NewBankHandler(uc *bank.Usecase) *BankHandler { return &BankHandler{uc: uc} }

type amountReq struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func (h *BankHandler) Deposit(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Account-Id"})
	}
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Deposit(c.Request().Context(), caller, req.Amount)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BankHandler) Withdraw(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Account-Id"})
	}
	receipt, err := h.uc.Withdraw(c.Request().Context(), caller)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}

func (h *BankHandler) Borrow(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Account-Id"})
	}
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Borrow(c.Request().Context(), caller, req.Amount)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BankHandler) Repay(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Account-Id"})
	}
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	receipt, err := h.uc.RepayLoan(c.Request().Context(), caller, req.Amount)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}

func (h *BankHandler) Positions(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Account-Id"})
	}
	dto, err := h.uc.Positions(c.Request().Context(), caller)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BankHandler) State(c echo.Context) error {
	dto, err := h.uc.StateSnapshot(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
