package collateral

import (
	"errors"
	"time"

	"p2p-lending-ledger/pkg/checked"
	"p2p-lending-ledger/pkg/id"
)

var (
	ErrInsufficientCollateral = errors.New("insufficient collateral")
	ErrNotFound               = errors.New("collateral account not found")
)

// Account is a user's pooled collateral balance. One per user, created on the
// first deposit and never deleted.
type Account struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	User      string    `gorm:"column:user_id;size:32;not null;uniqueIndex:ux_user_collateral_user" json:"user_id"`
	Balance   uint64    `gorm:"column:balance;not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "user_collateral" }

// Credit adds amount; the balance is unchanged on overflow.
func (a *Account) Credit(amount uint64) error {
	next, err := checked.Add(a.Balance, amount)
	if err != nil {
		return err
	}
	a.Balance = next
	return nil
}

// Debit subtracts amount; the balance is unchanged when it would go negative.
func (a *Account) Debit(amount uint64) error {
	next, err := checked.Sub(a.Balance, amount)
	if err != nil {
		return ErrInsufficientCollateral
	}
	a.Balance = next
	return nil
}

// CustodyHolder is the asset holder that keeps user's deposited collateral.
func CustodyHolder(user string) string {
	return id.Derive([]byte("collateral_token_account"), []byte(user))
}
