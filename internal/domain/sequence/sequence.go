package sequence

import (
	"context"
	"time"

	"p2p-lending-ledger/pkg/checked"
)

type Namespace string

const (
	LoanOffers      Namespace = "loan_offer"
	GuarantorOffers Namespace = "guarantor_offer"
)

// Counter is the singleton row backing one namespace.
type Counter struct {
	Namespace Namespace `gorm:"column:namespace;primaryKey;size:32"`
	Next      uint64    `gorm:"column:next_value;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Counter) TableName() string { return "sequence_counters" }

// Allocate returns the current value and advances the counter.
// On overflow the counter is left unchanged.
func (c *Counter) Allocate() (uint64, error) {
	next, err := checked.Add(c.Next, 1)
	if err != nil {
		return 0, err
	}
	v := c.Next
	c.Next = next
	return v, nil
}

type Repository interface {
	// GetForUpdate locks the namespace row, creating it at zero when absent.
	GetForUpdate(ctx context.Context, ns Namespace) (*Counter, error)
	Save(ctx context.Context, c *Counter) error
}

// Allocator issues IDs for one namespace. Bind it to a transactional
// repository so the allocation commits or rolls back with the caller's writes.
type Allocator struct {
	repo Repository
	ns   Namespace
}

func NewAllocator(repo Repository, ns Namespace) *Allocator {
	return &Allocator{repo: repo, ns: ns}
}

func (a *Allocator) Next(ctx context.Context) (uint64, error) {
	c, err := a.repo.GetForUpdate(ctx, a.ns)
	if err != nil {
		return 0, err
	}
	v, err := c.Allocate()
	if err != nil {
		return 0, err
	}
	if err := a.repo.Save(ctx, c); err != nil {
		return 0, err
	}
	return v, nil
}
