package guarantor

import (
	"time"

	"p2p-lending-ledger/internal/domain/guarantor"
)

type CreateInput struct {
	Guarantor    string `json:"guarantor"`
	Amount       uint64 `json:"amount"`
	InterestRate uint64 `json:"interest_rate"`
	Expiry       int64  `json:"expiry"`
}

type OfferDTO struct {
	OfferID      uint64    `json:"offer_id"`
	Guarantor    string    `json:"guarantor"`
	Amount       uint64    `json:"amount"`
	InterestRate uint64    `json:"interest_rate"`
	Expiry       int64     `json:"expiry"`
	CreatedAt    time.Time `json:"created_at"`
}

func toDTO(o *guarantor.Offer) *OfferDTO {
	return &OfferDTO{
		OfferID:      o.OfferID,
		Guarantor:    o.Guarantor,
		Amount:       o.Amount,
		InterestRate: o.InterestRate,
		Expiry:       o.Expiry,
		CreatedAt:    o.CreatedAt,
	}
}
