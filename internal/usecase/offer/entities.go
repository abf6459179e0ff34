package offer

import (
	"time"

	"p2p-lending-ledger/internal/domain/loan"
)

type CreateOfferInput struct {
	Lender             string `json:"lender"`
	Amount             uint64 `json:"amount"`
	InterestRate       uint64 `json:"interest_rate"`
	Term               int64  `json:"term"`
	RequiredCollateral uint64 `json:"required_collateral"`
}

type ListInput struct {
	Lender string
	Status string
	Limit  int
	Offset int
}

type OfferDTO struct {
	OfferID            uint64    `json:"offer_id"`
	Lender             string    `json:"lender"`
	Amount             uint64    `json:"amount"`
	InterestRate       uint64    `json:"interest_rate"`
	Term               int64     `json:"term"`
	RequiredCollateral uint64    `json:"required_collateral"`
	Status             string    `json:"status"`
	Authority          string    `json:"authority"`
	Guarantor          *string   `json:"guarantor,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func toDTO(o *loan.LoanOffer) *OfferDTO {
	return &OfferDTO{
		OfferID:            o.OfferID,
		Lender:             o.Lender,
		Amount:             o.Amount,
		InterestRate:       o.InterestRate,
		Term:               o.Term,
		RequiredCollateral: o.RequiredCollateral,
		Status:             string(o.Status),
		Authority:          o.Authority,
		Guarantor:          o.Guarantor,
		CreatedAt:          o.CreatedAt,
	}
}
