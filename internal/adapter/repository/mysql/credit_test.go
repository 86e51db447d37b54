package mysql

import (
	"context"
	"errors"
	"testing"

	creditDomain "custodian-bank/internal/domain/credit"
)

const (
	owner   = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	spender = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	other   = "cccccccccccccccccccccccccccccccc"
)

func TestCreditLedger_MintAndBalance(t *testing.T) {
	l := NewCreditLedger(openTestDB(t))
	ctx := context.Background()

	if bal, err := l.BalanceOf(ctx, owner); err != nil || bal != 0 {
		t.Fatalf("fresh balance = %d/%v, want 0/nil", bal, err)
	}
	if err := l.Mint(ctx, owner, 500); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Mint(ctx, owner, 250); err != nil {
		t.Fatalf("second mint: %v", err)
	}
	if bal, _ := l.BalanceOf(ctx, owner); bal != 750 {
		t.Fatalf("balance = %d, want 750", bal)
	}
}

func TestCreditLedger_Transfer(t *testing.T) {
	l := NewCreditLedger(openTestDB(t))
	ctx := context.Background()
	if err := l.Mint(ctx, owner, 100); err != nil {
		t.Fatalf("mint: %v", err)
	}

	if err := l.Transfer(ctx, owner, other, 60); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if bal, _ := l.BalanceOf(ctx, owner); bal != 40 {
		t.Fatalf("sender = %d, want 40", bal)
	}
	if bal, _ := l.BalanceOf(ctx, other); bal != 60 {
		t.Fatalf("recipient = %d, want 60", bal)
	}

	if err := l.Transfer(ctx, owner, other, 41); !errors.Is(err, creditDomain.ErrInsufficientCredits) {
		t.Fatalf("overdraw: got %v", err)
	}
}

func TestCreditLedger_TransferFrom_ConsumesAllowance(t *testing.T) {
	l := NewCreditLedger(openTestDB(t))
	ctx := context.Background()
	if err := l.Mint(ctx, owner, 1_000); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Approve(ctx, owner, spender, 300); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := l.TransferFrom(ctx, spender, owner, spender, 200); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if rem, _ := l.Allowance(ctx, owner, spender); rem != 100 {
		t.Fatalf("remaining allowance = %d, want 100", rem)
	}
	if err := l.TransferFrom(ctx, spender, owner, spender, 101); !errors.Is(err, creditDomain.ErrInsufficientAllowance) {
		t.Fatalf("exceeding allowance: got %v", err)
	}
	// no allowance at all
	if err := l.TransferFrom(ctx, other, owner, other, 1); !errors.Is(err, creditDomain.ErrInsufficientAllowance) {
		t.Fatalf("unapproved spender: got %v", err)
	}
}

func TestCreditLedger_ApproveReplaces(t *testing.T) {
	l := NewCreditLedger(openTestDB(t))
	ctx := context.Background()
	if err := l.Approve(ctx, owner, spender, 300); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := l.Approve(ctx, owner, spender, 50); err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if rem, _ := l.Allowance(ctx, owner, spender); rem != 50 {
		t.Fatalf("allowance = %d, want 50 (replaced, not added)", rem)
	}
}

func TestCreditLedger_SelfTransferMovesNothing(t *testing.T) {
	l := NewCreditLedger(openTestDB(t))
	ctx := context.Background()
	if err := l.Mint(ctx, owner, 1_000); err != nil {
		t.Fatalf("mint: %v", err)
	}

	// from == to must not double-write the row into a net gain
	if err := l.Transfer(ctx, owner, owner, 400); err != nil {
		t.Fatalf("self-transfer: %v", err)
	}
	if bal, _ := l.BalanceOf(ctx, owner); bal != 1_000 {
		t.Fatalf("balance = %d after self-transfer, want 1000", bal)
	}

	// still bounded by the balance
	if err := l.Transfer(ctx, owner, owner, 1_001); !errors.Is(err, creditDomain.ErrInsufficientCredits) {
		t.Fatalf("overdrawn self-transfer: got %v", err)
	}
}
