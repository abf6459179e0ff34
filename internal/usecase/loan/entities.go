package loan

import (
	"time"

	"p2p-lending-ledger/internal/domain/loan"
)

type AcceptInput struct {
	Borrower     string
	OfferID      uint64
	UseGuarantor bool
	// Guarantor and GuarantorOfferID are only read when UseGuarantor is set.
	Guarantor        *string
	GuarantorOfferID *uint64
	// Authority must match the transfer authority bound to the offer.
	Authority string
}

type RepayInput struct {
	Borrower string
	LoanID   uint64
	Amount   uint64
}

type LoanDTO struct {
	LoanID       uint64    `json:"loan_id"`
	Lender       string    `json:"lender"`
	Borrower     string    `json:"borrower"`
	Amount       uint64    `json:"amount"`
	InterestRate uint64    `json:"interest_rate"`
	Term         int64     `json:"term"`
	StartTime    int64     `json:"start_time"`
	Status       string    `json:"status"`
	Collateral   uint64    `json:"collateral"`
	Guarantor    *string   `json:"guarantor,omitempty"`
	// TotalDue is omitted when it does not fit in 64 bits.
	TotalDue     *uint64   `json:"total_due,omitempty"`
	AmountRepaid uint64    `json:"amount_repaid"`
	CreatedAt    time.Time `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:       l.LoanID,
		Lender:       l.Lender,
		Borrower:     l.Borrower,
		Amount:       l.Amount,
		InterestRate: l.InterestRate,
		Term:         l.Term,
		StartTime:    l.StartTime,
		Status:       string(l.Status),
		Collateral:   l.Collateral,
		Guarantor:    l.Guarantor,
		AmountRepaid: l.AmountRepaid,
		CreatedAt:    l.CreatedAt,
	}
	if due, err := loan.TotalDue(l.Amount, l.InterestRate); err == nil {
		dto.TotalDue = &due
	}
	return dto
}
