package mysql

import (
	"context"
	"errors"

	"p2p-lending-ledger/internal/domain/collateral"

	"gorm.io/gorm"
)

type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) Create(ctx context.Context, a *collateral.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *CollateralRepository) Save(ctx context.Context, a *collateral.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *CollateralRepository) GetByUser(ctx context.Context, user string) (*collateral.Account, error) {
	return r.get(r.db.WithContext(ctx), user)
}

func (r *CollateralRepository) GetByUserForUpdate(ctx context.Context, user string) (*collateral.Account, error) {
	return r.get(r.db.WithContext(ctx).Clauses(forUpdate), user)
}

func (r *CollateralRepository) get(q *gorm.DB, user string) (*collateral.Account, error) {
	var out collateral.Account
	err := q.Where("user_id = ?", user).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, collateral.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
