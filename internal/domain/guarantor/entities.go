package guarantor

import (
	"errors"
	"time"
)

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidInterestRate = errors.New("interest rate must be greater than zero")
	ErrInvalidExpiryDate   = errors.New("expiry must be in the future")
	ErrUnauthorized        = errors.New("caller is not the guarantor")
	ErrNotFound            = errors.New("guarantor offer not found")
	ErrExpired             = errors.New("guarantor offer expired")
	ErrMismatch            = errors.New("guarantor offer does not belong to the guarantor")
)

// Offer is a guarantor's advisory pledge. Amount is informational: liability is
// drawn from the guarantor's collateral balance at accept time.
type Offer struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	OfferID      uint64    `gorm:"column:offer_id;not null;uniqueIndex:ux_guarantor_offers_offer_id" json:"offer_id"`
	Guarantor    string    `gorm:"column:guarantor;size:32;not null;index" json:"guarantor"`
	Amount       uint64    `gorm:"column:amount;not null" json:"amount"`
	InterestRate uint64    `gorm:"column:interest_rate;not null" json:"interest_rate"`
	Expiry       int64     `gorm:"column:expiry;not null" json:"expiry"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Offer) TableName() string { return "guarantor_offers" }

func Validate(amount, interestRate uint64, expiry, now int64) error {
	switch {
	case amount == 0:
		return ErrInvalidAmount
	case interestRate == 0:
		return ErrInvalidInterestRate
	case expiry <= now:
		return ErrInvalidExpiryDate
	}
	return nil
}

func (o *Offer) Expired(now int64) bool { return now >= o.Expiry }

// CheckFor validates the offer as backing for guarantor at time now.
func (o *Offer) CheckFor(guarantor string, now int64) error {
	if o.Guarantor != guarantor {
		return ErrMismatch
	}
	if o.Expired(now) {
		return ErrExpired
	}
	return nil
}
