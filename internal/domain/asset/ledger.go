// Package asset models the fungible asset that loans are paid out and repaid
// in, plus the delegated transfer allowances offers rely on.
package asset

import (
	"context"
	"errors"
	"time"

	"p2p-lending-ledger/pkg/checked"
)

var (
	ErrInsufficientFunds = errors.New("insufficient asset balance")
	ErrAllowanceExceeded = errors.New("transfer exceeds delegated allowance")
	ErrInvalidTransfer   = errors.New("invalid transfer")
)

type Account struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Holder    string    `gorm:"column:holder;size:32;not null;uniqueIndex:ux_asset_accounts_holder"`
	Balance   uint64    `gorm:"column:balance;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Account) TableName() string { return "asset_accounts" }

func (a *Account) Withdraw(amount uint64) error {
	next, err := checked.Sub(a.Balance, amount)
	if err != nil {
		return ErrInsufficientFunds
	}
	a.Balance = next
	return nil
}

func (a *Account) Deposit(amount uint64) error {
	next, err := checked.Add(a.Balance, amount)
	if err != nil {
		return err
	}
	a.Balance = next
	return nil
}

// Allowance lets Delegate move up to Amount units out of Owner's account.
type Allowance struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Owner     string    `gorm:"column:owner;size:32;not null;uniqueIndex:ux_asset_allowances_pair,priority:1"`
	Delegate  string    `gorm:"column:delegate;size:32;not null;uniqueIndex:ux_asset_allowances_pair,priority:2"`
	Amount    uint64    `gorm:"column:amount;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Allowance) TableName() string { return "asset_allowances" }

func (al *Allowance) Consume(amount uint64) error {
	if amount > al.Amount {
		return ErrAllowanceExceeded
	}
	al.Amount -= amount
	return nil
}

// Ledger is the asset transfer service. Implementations bound to a unit of
// work take part in the caller's transaction.
type Ledger interface {
	Transfer(ctx context.Context, from, to string, amount uint64) error
	// Approve replaces any previous allowance for (owner, delegate).
	Approve(ctx context.Context, owner, delegate string, amount uint64) error
	TransferFrom(ctx context.Context, delegate, from, to string, amount uint64) error
	// BalanceOf is zero for unknown holders.
	BalanceOf(ctx context.Context, holder string) (uint64, error)
	Allowance(ctx context.Context, owner, delegate string) (uint64, error)
	Mint(ctx context.Context, holder string, amount uint64) error
}
