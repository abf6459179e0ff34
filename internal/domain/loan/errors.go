package loan

import (
	"errors"

	"p2p-lending-ledger/pkg/checked"
)

var (
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInvalidInterestRate     = errors.New("interest rate must be greater than zero")
	ErrInvalidTerm             = errors.New("term must be greater than zero")
	ErrInvalidCollateralAmount = errors.New("required collateral must be greater than zero")

	ErrInvalidLoanStatus = errors.New("invalid loan status for this operation")
	ErrLoanNotActive     = errors.New("loan is not active")

	ErrUnauthorizedLender   = errors.New("caller is not the lender")
	ErrUnauthorizedBorrower = errors.New("caller is not the borrower")

	ErrGuarantorNotProvided  = errors.New("guarantor collateral not provided")
	ErrSelfGuarantee         = errors.New("borrower cannot guarantee their own loan")
	ErrInsufficientRepayment = errors.New("repayment is less than the total due")
	ErrExcessiveRepayment    = errors.New("repayment exceeds the total due")

	ErrInvalidAuthority = errors.New("transfer authority does not match the offer")

	ErrOfferNotFound = errors.New("loan offer not found")
	ErrNotFound      = errors.New("loan not found")
	ErrLoanExists    = errors.New("loan already exists for this offer and borrower")

	ErrOverflow = checked.ErrOverflow
)
