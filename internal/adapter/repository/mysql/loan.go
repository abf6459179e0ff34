package mysql

import (
	"context"
	"errors"

	loanDomain "p2p-lending-ledger/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var forUpdate = clause.Locking{Strength: "UPDATE"}

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *loanDomain.LoanOffer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) Save(ctx context.Context, o *loanDomain.LoanOffer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID uint64) (*loanDomain.LoanOffer, error) {
	return r.get(r.db.WithContext(ctx), offerID)
}

func (r *OfferRepository) GetByOfferIDForUpdate(ctx context.Context, offerID uint64) (*loanDomain.LoanOffer, error) {
	return r.get(r.db.WithContext(ctx).Clauses(forUpdate), offerID)
}

func (r *OfferRepository) get(q *gorm.DB, offerID uint64) (*loanDomain.LoanOffer, error) {
	var out loanDomain.LoanOffer
	err := q.Where("offer_id = ?", offerID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrOfferNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *OfferRepository) List(ctx context.Context, f loanDomain.OfferFilter) ([]loanDomain.LoanOffer, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.LoanOffer{})
	if f.Lender != "" {
		q = q.Where("lender = ?", f.Lender)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []loanDomain.LoanOffer
	err := q.Order("offer_id ASC").Limit(pageLimit(f.Limit)).Offset(f.Offset).Find(&out).Error
	return out, err
}

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	err := r.db.WithContext(ctx).Create(l).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return loanDomain.ErrLoanExists
	}
	return err
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID uint64) (*loanDomain.Loan, error) {
	return r.get(r.db.WithContext(ctx), loanID)
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*loanDomain.Loan, error) {
	return r.get(r.db.WithContext(ctx).Clauses(forUpdate), loanID)
}

func (r *LoanRepository) get(q *gorm.DB, loanID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := q.Where("loan_id = ?", loanID).Order("id ASC").First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) Exists(ctx context.Context, loanID uint64, borrower string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_id = ? AND borrower = ?", loanID, borrower).
		Count(&n).Error
	return n > 0, err
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

func pageLimit(n int) int {
	switch {
	case n <= 0:
		return defaultPageLimit
	case n > maxPageLimit:
		return maxPageLimit
	}
	return n
}
