package mysql

import (
	"testing"

	bankDomain "custodian-bank/internal/domain/bank"
	borrowerDomain "custodian-bank/internal/domain/borrower"
	creditDomain "custodian-bank/internal/domain/credit"
	investorDomain "custodian-bank/internal/domain/investor"
	walletDomain "custodian-bank/internal/domain/wallet"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&bankDomain.State{},
		&investorDomain.Investor{},
		&borrowerDomain.Borrower{},
		&creditDomain.Balance{},
		&creditDomain.Allowance{},
		&walletDomain.Wallet{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
