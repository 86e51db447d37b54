package mysql

import (
	"context"

	investorDomain "custodian-bank/internal/domain/investor"

	"gorm.io/gorm"
)

type InvestorRepository struct{ db *gorm.DB }

func NewInvestorRepository(db *gorm.DB) *InvestorRepository { return &InvestorRepository{db: db} }

func (r *InvestorRepository) Create(ctx context.Context, i *investorDomain.Investor) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InvestorRepository) Save(ctx context.Context, i *investorDomain.Investor) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InvestorRepository) GetByAccountID(ctx context.Context, accountID string) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&out)
	return &out, res.Error
}

func (r *InvestorRepository) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("account_id = ?", accountID).
		First(&out)
	return &out, res.Error
}
