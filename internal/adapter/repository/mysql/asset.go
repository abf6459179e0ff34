package mysql

import (
	"context"
	"errors"
	"sort"

	"p2p-lending-ledger/internal/domain/asset"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetLedger keeps asset balances and allowances in the same database as the
// ledger so transfers commit with the operation that caused them.
type AssetLedger struct{ db *gorm.DB }

func NewAssetLedger(db *gorm.DB) *AssetLedger { return &AssetLedger{db: db} }

// lockAccount returns the locked row for holder, creating it at zero.
func (l *AssetLedger) lockAccount(ctx context.Context, holder string) (*asset.Account, error) {
	q := l.db.WithContext(ctx)
	var a asset.Account
	err := q.Clauses(forUpdate).Where("holder = ?", holder).Take(&a).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return &a, err
	}
	seed := asset.Account{Holder: holder}
	if err := q.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}
	a = asset.Account{}
	if err := q.Clauses(forUpdate).Where("holder = ?", holder).Take(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (l *AssetLedger) Transfer(ctx context.Context, from, to string, amount uint64) error {
	if from == "" || to == "" {
		return asset.ErrInvalidTransfer
	}
	if from == to {
		src, err := l.lockAccount(ctx, from)
		if err != nil {
			return err
		}
		if src.Balance < amount {
			return asset.ErrInsufficientFunds
		}
		return nil
	}

	// lock in a stable order so opposing transfers cannot deadlock
	holders := []string{from, to}
	sort.Strings(holders)
	locked := make(map[string]*asset.Account, 2)
	for _, h := range holders {
		a, err := l.lockAccount(ctx, h)
		if err != nil {
			return err
		}
		locked[h] = a
	}

	src, dst := locked[from], locked[to]
	if err := src.Withdraw(amount); err != nil {
		return err
	}
	if err := dst.Deposit(amount); err != nil {
		return err
	}
	q := l.db.WithContext(ctx)
	if err := q.Save(src).Error; err != nil {
		return err
	}
	return q.Save(dst).Error
}

func (l *AssetLedger) Approve(ctx context.Context, owner, delegate string, amount uint64) error {
	al := asset.Allowance{Owner: owner, Delegate: delegate, Amount: amount}
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "delegate"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&al).Error
}

func (l *AssetLedger) TransferFrom(ctx context.Context, delegate, from, to string, amount uint64) error {
	var al asset.Allowance
	err := l.db.WithContext(ctx).Clauses(forUpdate).
		Where("owner = ? AND delegate = ?", from, delegate).
		Take(&al).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asset.ErrAllowanceExceeded
	}
	if err != nil {
		return err
	}
	if err := al.Consume(amount); err != nil {
		return err
	}
	if err := l.db.WithContext(ctx).Save(&al).Error; err != nil {
		return err
	}
	return l.Transfer(ctx, from, to, amount)
}

func (l *AssetLedger) BalanceOf(ctx context.Context, holder string) (uint64, error) {
	var a asset.Account
	err := l.db.WithContext(ctx).Where("holder = ?", holder).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return a.Balance, err
}

func (l *AssetLedger) Allowance(ctx context.Context, owner, delegate string) (uint64, error) {
	var al asset.Allowance
	err := l.db.WithContext(ctx).Where("owner = ? AND delegate = ?", owner, delegate).Take(&al).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return al.Amount, err
}

func (l *AssetLedger) Mint(ctx context.Context, holder string, amount uint64) error {
	a, err := l.lockAccount(ctx, holder)
	if err != nil {
		return err
	}
	if err := a.Deposit(amount); err != nil {
		return err
	}
	return l.db.WithContext(ctx).Save(a).Error
}
