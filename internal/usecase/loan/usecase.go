package loan

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"p2p-lending-ledger/internal/domain/collateral"
	"p2p-lending-ledger/internal/domain/event"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/pkg/checked"
)

type Usecase struct {
	uow   uow.UnitOfWork
	loans loan.Repository
	now   func() time.Time
}

func NewUsecase(u uow.UnitOfWork, loans loan.Repository) *Usecase {
	return &Usecase{uow: u, loans: loans, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Accept turns a proposed offer into an active loan for in.Borrower. Offer,
// loan, asset and collateral changes commit together or not at all.
func (u *Usecase) Accept(ctx context.Context, in AcceptInput) (*LoanDTO, error) {
	now := u.now().Unix()

	var created *loan.Loan
	var plan loan.CollateralPlan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		offer, err := r.Offers.GetByOfferIDForUpdate(ctx, in.OfferID)
		if err != nil {
			return err
		}
		if offer.Status != loan.StatusProposed {
			return loan.ErrInvalidLoanStatus
		}

		var guarantorID *string
		if in.UseGuarantor {
			if in.Guarantor == nil || *in.Guarantor == "" {
				return loan.ErrGuarantorNotProvided
			}
			if *in.Guarantor == in.Borrower {
				return loan.ErrSelfGuarantee
			}
			guarantorID = in.Guarantor
			if in.GuarantorOfferID != nil {
				g, err := r.Guarantors.GetByOfferID(ctx, *in.GuarantorOfferID)
				if err != nil {
					return err
				}
				if err := g.CheckFor(*guarantorID, now); err != nil {
					return err
				}
			}
		}

		borrowerAcct, guarantorAcct, err := lockCollateral(ctx, r.Collateral, in.Borrower, guarantorID)
		if err != nil {
			return err
		}

		var guarantorBalance *uint64
		if guarantorAcct != nil {
			guarantorBalance = &guarantorAcct.Balance
		}
		plan, err = loan.PlanCollateral(offer.RequiredCollateral, borrowerAcct.Balance, guarantorBalance)
		if err != nil {
			return err
		}

		if in.Authority != offer.Authority || offer.Authority != loan.DeriveAuthority(offer.Lender, offer.OfferID) {
			return loan.ErrInvalidAuthority
		}

		exists, err := r.Loans.Exists(ctx, offer.OfferID, in.Borrower)
		if err != nil {
			return err
		}
		if exists {
			return loan.ErrLoanExists
		}

		l := &loan.Loan{
			LoanID:       offer.OfferID,
			Lender:       offer.Lender,
			Borrower:     in.Borrower,
			Amount:       offer.Amount,
			InterestRate: offer.InterestRate,
			Term:         offer.Term,
			StartTime:    now,
			Status:       loan.StatusActive,
			Collateral:   plan.Total,
			Guarantor:    guarantorID,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		if err := r.Assets.TransferFrom(ctx, offer.Authority, offer.Lender, in.Borrower, offer.Amount); err != nil {
			return err
		}

		offer.Status = loan.StatusActive
		offer.Guarantor = guarantorID
		if err := r.Offers.Save(ctx, offer); err != nil {
			return err
		}

		if err := borrowerAcct.Debit(plan.BorrowerDebit); err != nil {
			return err
		}
		if err := r.Collateral.Save(ctx, borrowerAcct); err != nil {
			return err
		}
		if plan.GuarantorContribution > 0 {
			if err := guarantorAcct.Debit(plan.GuarantorContribution); err != nil {
				return err
			}
			if err := r.Collateral.Save(ctx, guarantorAcct); err != nil {
				return err
			}
		}

		ev, err := event.New(event.LoanActivated, strconv.FormatUint(l.LoanID, 10), event.LoanActivatedPayload{
			LoanID:    l.LoanID,
			Borrower:  l.Borrower,
			Amount:    l.Amount,
			StartTime: l.StartTime,
		})
		if err != nil {
			return err
		}
		if err := r.Events.Append(ctx, ev); err != nil {
			return err
		}
		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "loan activated",
		"loan_id", created.LoanID, "borrower", created.Borrower, "collateral", plan.Total,
		"guarantor_contribution", plan.GuarantorContribution)
	return toDTO(created), nil
}

// lockCollateral locks the borrower's and, when given, the guarantor's
// collateral rows in user order. A guarantor without an account counts as not
// provided.
func lockCollateral(ctx context.Context, repo collateral.Repository, borrower string, guarantorID *string) (*collateral.Account, *collateral.Account, error) {
	if guarantorID == nil {
		b, err := repo.GetByUserForUpdate(ctx, borrower)
		return b, nil, err
	}

	lockGuarantor := func() (*collateral.Account, error) {
		g, err := repo.GetByUserForUpdate(ctx, *guarantorID)
		if errors.Is(err, collateral.ErrNotFound) {
			return nil, loan.ErrGuarantorNotProvided
		}
		return g, err
	}

	var b, g *collateral.Account
	var err error
	if borrower < *guarantorID {
		if b, err = repo.GetByUserForUpdate(ctx, borrower); err != nil {
			return nil, nil, err
		}
		g, err = lockGuarantor()
	} else {
		if g, err = lockGuarantor(); err != nil {
			return nil, nil, err
		}
		b, err = repo.GetByUserForUpdate(ctx, borrower)
	}
	if err != nil {
		return nil, nil, err
	}
	return b, g, nil
}

// Repay applies a repayment from the borrower to the lender. Only an exact
// settlement of the total due closes the loan.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*LoanDTO, error) {
	now := u.now().Unix()

	var out *loan.Loan
	var settled bool
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		var err error
		settled, err = l.ValidateRepayment(in.Borrower, in.Amount, now)
		if err != nil {
			return err
		}
		if in.Amount > 0 {
			if err := r.Assets.Transfer(ctx, l.Borrower, l.Lender, in.Amount); err != nil {
				return err
			}
		}
		repaid, err := checked.Add(l.AmountRepaid, in.Amount)
		if err != nil {
			return err
		}
		l.AmountRepaid = repaid
		if settled {
			l.Status = loan.StatusRepaid
			ev, err := event.New(event.LoanRepaid, strconv.FormatUint(l.LoanID, 10), event.LoanRepaidPayload{
				LoanID:       l.LoanID,
				AmountRepaid: in.Amount,
			})
			if err != nil {
				return err
			}
			if err := r.Events.Append(ctx, ev); err != nil {
				return err
			}
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "loan repayment applied",
		"loan_id", out.LoanID, "amount", in.Amount, "settled", settled, "status", out.Status)
	return toDTO(out), nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}
