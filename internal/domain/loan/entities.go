package loan

import (
	"time"
)

type Status string

const (
	StatusProposed  Status = "proposed"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusRepaid    Status = "repaid"
	// Defaulted and Expired are part of the status vocabulary but no operation
	// produces them yet.
	StatusDefaulted Status = "defaulted"
	StatusExpired   Status = "expired"
)

// BasisPoints is the interest-rate denominator.
const BasisPoints uint64 = 10_000

// LoanOffer is a lender's published terms awaiting acceptance.
// Identity: (lender, offer_id); offer_id comes from the loan_offer sequence.
type LoanOffer struct {
	ID                 uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	OfferID            uint64    `gorm:"column:offer_id;not null;uniqueIndex:ux_loan_offers_offer_id" json:"offer_id"`
	Lender             string    `gorm:"column:lender;size:32;not null;index:idx_loan_offers_lender_status" json:"lender"`
	Amount             uint64    `gorm:"column:amount;not null" json:"amount"`
	InterestRate       uint64    `gorm:"column:interest_rate;not null" json:"interest_rate"`
	Term               int64     `gorm:"column:term;not null" json:"term"`
	RequiredCollateral uint64    `gorm:"column:required_collateral;not null" json:"required_collateral"`
	Status             Status    `gorm:"column:status;size:16;not null;index:idx_loan_offers_lender_status" json:"status"`
	Authority          string    `gorm:"column:authority;size:32;not null" json:"authority"`
	Guarantor          *string   `gorm:"column:guarantor;size:32" json:"guarantor,omitempty"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoanOffer) TableName() string { return "loan_offers" }

// Loan is created once per accepted offer, keyed by (loan_id, borrower).
// LoanID is copied from the offer's OfferID.
type Loan struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID       uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_loans_loan_borrower,priority:1" json:"loan_id"`
	Borrower     string    `gorm:"column:borrower;size:32;not null;uniqueIndex:ux_loans_loan_borrower,priority:2" json:"borrower"`
	Lender       string    `gorm:"column:lender;size:32;not null;index" json:"lender"`
	Amount       uint64    `gorm:"column:amount;not null" json:"amount"`
	InterestRate uint64    `gorm:"column:interest_rate;not null" json:"interest_rate"`
	Term         int64     `gorm:"column:term;not null" json:"term"`
	StartTime    int64     `gorm:"column:start_time;not null" json:"start_time"`
	Status       Status    `gorm:"column:status;size:16;not null" json:"status"`
	Collateral   uint64    `gorm:"column:collateral;not null" json:"collateral"`
	Guarantor    *string   `gorm:"column:guarantor;size:32" json:"guarantor,omitempty"`
	AmountRepaid uint64    `gorm:"column:amount_repaid;not null;default:0" json:"amount_repaid"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
