package loan

import (
	"p2p-lending-ledger/internal/domain/collateral"
	"p2p-lending-ledger/pkg/checked"
	"p2p-lending-ledger/pkg/id"
)

// ValidateTerms checks offer parameters in order; the first failure wins.
func ValidateTerms(amount, interestRate uint64, term int64, requiredCollateral uint64) error {
	switch {
	case amount == 0:
		return ErrInvalidAmount
	case interestRate == 0:
		return ErrInvalidInterestRate
	case term <= 0:
		return ErrInvalidTerm
	case requiredCollateral == 0:
		return ErrInvalidCollateralAmount
	}
	return nil
}

// DeriveAuthority returns the transfer authority bound to an offer identity.
func DeriveAuthority(lender string, offerID uint64) string {
	return id.Derive([]byte("loan_offer"), []byte(lender), id.Uint64Seed(offerID))
}

// TotalDue is amount + floor(amount * rate / 10000).
func TotalDue(amount, interestRate uint64) (uint64, error) {
	scaled, err := checked.Mul(amount, interestRate)
	if err != nil {
		return 0, err
	}
	interest, err := checked.Div(scaled, BasisPoints)
	if err != nil {
		return 0, err
	}
	return checked.Add(amount, interest)
}

// CollateralPlan is the outcome of the collateral sufficiency check at accept time.
type CollateralPlan struct {
	Total                 uint64
	GuarantorContribution uint64
	BorrowerDebit         uint64
}

// PlanCollateral computes how much each party pledges. guarantorBalance is nil
// when no guarantor takes part. The guarantor only covers the borrower's
// shortfall, capped at the guarantor's balance.
func PlanCollateral(required, borrowerBalance uint64, guarantorBalance *uint64) (CollateralPlan, error) {
	plan := CollateralPlan{Total: borrowerBalance, BorrowerDebit: required}
	if guarantorBalance != nil {
		var shortfall uint64
		if required > borrowerBalance {
			shortfall = required - borrowerBalance
		}
		plan.GuarantorContribution = min(shortfall, *guarantorBalance)
		total, err := checked.Add(plan.Total, plan.GuarantorContribution)
		if err != nil {
			return CollateralPlan{}, err
		}
		plan.Total = total
		plan.BorrowerDebit = required - plan.GuarantorContribution
	}
	if plan.Total < required {
		return CollateralPlan{}, collateral.ErrInsufficientCollateral
	}
	return plan, nil
}

// ValidateCancel reports whether caller may cancel the offer.
func (o *LoanOffer) ValidateCancel(caller string) error {
	if caller != o.Lender {
		return ErrUnauthorizedLender
	}
	if o.Status != StatusProposed {
		return ErrInvalidLoanStatus
	}
	return nil
}

// Expiry is start_time + term.
func (l *Loan) Expiry() (int64, error) {
	return checked.AddInt64(l.StartTime, l.Term)
}

// ValidateRepayment checks a repayment of amount by caller at unix time now and
// reports whether it settles the loan in full.
//
// Before expiry only full settlement is accepted. After expiry any amount up
// to the total due is accepted, zero included.
func (l *Loan) ValidateRepayment(caller string, amount uint64, now int64) (bool, error) {
	if l.Status != StatusActive {
		return false, ErrLoanNotActive
	}
	if caller != l.Borrower {
		return false, ErrUnauthorizedBorrower
	}
	expiry, err := l.Expiry()
	if err != nil {
		return false, err
	}
	due, err := TotalDue(l.Amount, l.InterestRate)
	if err != nil {
		return false, err
	}
	if now >= expiry {
		if amount > due {
			return false, ErrExcessiveRepayment
		}
	} else if amount < due {
		return false, ErrInsufficientRepayment
	}
	return amount == due, nil
}
