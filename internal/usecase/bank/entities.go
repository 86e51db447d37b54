package bank

import (
	borrowerDomain "custodian-bank/internal/domain/borrower"
	investorDomain "custodian-bank/internal/domain/investor"
)

type PositionDTO struct {
	Kind       string `json:"kind"` // "deposit" or "loan"
	Active     bool   `json:"active"`
	Amount     int64  `json:"amount"`
	StartBlock uint64 `json:"start_block,omitempty"`
	Collateral int64  `json:"collateral,omitempty"`
}

type PositionsDTO struct {
	AccountID     string       `json:"account_id"`
	Deposit       *PositionDTO `json:"deposit,omitempty"`
	Loan          *PositionDTO `json:"loan,omitempty"`
	WalletBalance int64        `json:"wallet_balance"`
	CreditBalance int64        `json:"credit_balance"`
}

type WithdrawReceipt struct {
	Principal int64  `json:"principal"`
	Interest  int64  `json:"interest"`
	Blocks    uint64 `json:"blocks"`
}

type RepayReceipt struct {
	Repaid     int64 `json:"repaid"`
	Collateral int64 `json:"collateral"`
	Fee        int64 `json:"fee"`
	Returned   int64 `json:"returned"`
}

type BankStateDTO struct {
	TotalDeposit             int64  `json:"total_deposit"`
	YearlyReturnRate         int64  `json:"yearly_return_rate"`
	InterestPerSecMinDeposit int64  `json:"interest_per_sec_min_deposit"`
	CollateralPool           int64  `json:"collateral_pool"`
	VaultBalance             int64  `json:"vault_balance"`
	CurrentBlock             uint64 `json:"current_block"`
}

func investorPosition(i *investorDomain.Investor) *PositionDTO {
	return &PositionDTO{Kind: "deposit", Active: i.Active, Amount: i.Amount, StartBlock: i.StartBlock}
}

func borrowerPosition(b *borrowerDomain.Borrower) *PositionDTO {
	return &PositionDTO{Kind: "loan", Active: b.Active, Amount: b.Amount, Collateral: b.Collateral}
}
