package mysql

import (
	"context"

	borrowerDomain "custodian-bank/internal/domain/borrower"

	"gorm.io/gorm"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowerRepository) Save(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BorrowerRepository) GetByAccountID(ctx context.Context, accountID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&out)
	return &out, res.Error
}

func (r *BorrowerRepository) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("account_id = ?", accountID).
		First(&out)
	return &out, res.Error
}
