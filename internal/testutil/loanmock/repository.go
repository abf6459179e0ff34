package loanmock

import (
	"context"

	domain "p2p-lending-ledger/internal/domain/loan"
)

var (
	_ domain.OfferRepository = (*OfferRepo)(nil)
	_ domain.Repository      = (*Repo)(nil)
)

// OfferRepo is a function-backed mock that satisfies domain.OfferRepository.
// Unset getters return context.Canceled so unexpected calls surface in tests.
type OfferRepo struct {
	CreateFn                func(ctx context.Context, o *domain.LoanOffer) error
	GetByOfferIDFn          func(ctx context.Context, offerID uint64) (*domain.LoanOffer, error)
	GetByOfferIDForUpdateFn func(ctx context.Context, offerID uint64) (*domain.LoanOffer, error)
	ListFn                  func(ctx context.Context, f domain.OfferFilter) ([]domain.LoanOffer, error)
	SaveFn                  func(ctx context.Context, o *domain.LoanOffer) error
}

func (m *OfferRepo) Create(ctx context.Context, o *domain.LoanOffer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *OfferRepo) GetByOfferID(ctx context.Context, offerID uint64) (*domain.LoanOffer, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *OfferRepo) GetByOfferIDForUpdate(ctx context.Context, offerID uint64) (*domain.LoanOffer, error) {
	if m.GetByOfferIDForUpdateFn != nil {
		return m.GetByOfferIDForUpdateFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *OfferRepo) List(ctx context.Context, f domain.OfferFilter) ([]domain.LoanOffer, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *OfferRepo) Save(ctx context.Context, o *domain.LoanOffer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID uint64) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID uint64) (*domain.Loan, error)
	ExistsFn               func(ctx context.Context, loanID uint64, borrower string) (bool, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID uint64) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) Exists(ctx context.Context, loanID uint64, borrower string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, loanID, borrower)
	}
	return false, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
