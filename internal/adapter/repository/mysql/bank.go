package mysql

import (
	"context"
	"errors"

	bankDomain "custodian-bank/internal/domain/bank"

	"gorm.io/gorm"
)

type BankRepository struct{ db *gorm.DB }

func NewBankRepository(db *gorm.DB) *BankRepository { return &BankRepository{db: db} }

func (r *BankRepository) Get(ctx context.Context) (*bankDomain.State, error) {
	var out bankDomain.State
	res := r.db.WithContext(ctx).First(&out)
	return &out, res.Error
}

func (r *BankRepository) GetForUpdate(ctx context.Context) (*bankDomain.State, error) {
	var out bankDomain.State
	res := lockForUpdate(r.db.WithContext(ctx)).
		First(&out)
	return &out, res.Error
}

func (r *BankRepository) Save(ctx context.Context, s *bankDomain.State) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *BankRepository) Init(ctx context.Context, s *bankDomain.State) error {
	var existing bankDomain.State
	err := r.db.WithContext(ctx).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(s).Error
}
