package loan

import "context"

type OfferRepository interface {
	Create(ctx context.Context, o *LoanOffer) error
	GetByOfferID(ctx context.Context, offerID uint64) (*LoanOffer, error)
	// row-locked read, only meaningful inside a unit of work
	GetByOfferIDForUpdate(ctx context.Context, offerID uint64) (*LoanOffer, error)
	List(ctx context.Context, f OfferFilter) ([]LoanOffer, error)
	Save(ctx context.Context, o *LoanOffer) error
}

type OfferFilter struct {
	Lender string
	Status Status
	Limit  int
	Offset int
}

type Repository interface {
	// Create fails with ErrLoanExists when (loan_id, borrower) is taken.
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID uint64) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*Loan, error)
	Exists(ctx context.Context, loanID uint64, borrower string) (bool, error)
	Save(ctx context.Context, l *Loan) error
}
