package http

import (
	"errors"
	"log/slog"
	"net/http"

	"p2p-lending-ledger/internal/domain/asset"
	"p2p-lending-ledger/internal/domain/collateral"
	"p2p-lending-ledger/internal/domain/guarantor"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/pkg/checked"

	"github.com/labstack/echo/v4"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Ordered: the first errors.Is match wins.
var errorTable = []errorMapping{
	// validation
	{loan.ErrInvalidAmount, http.StatusUnprocessableEntity, "invalid_amount"},
	{loan.ErrInvalidInterestRate, http.StatusUnprocessableEntity, "invalid_interest_rate"},
	{loan.ErrInvalidTerm, http.StatusUnprocessableEntity, "invalid_term"},
	{loan.ErrInvalidCollateralAmount, http.StatusUnprocessableEntity, "invalid_collateral_amount"},
	{guarantor.ErrInvalidAmount, http.StatusUnprocessableEntity, "invalid_amount"},
	{guarantor.ErrInvalidInterestRate, http.StatusUnprocessableEntity, "invalid_interest_rate"},
	{guarantor.ErrInvalidExpiryDate, http.StatusUnprocessableEntity, "invalid_expiry_date"},
	{loan.ErrInsufficientRepayment, http.StatusUnprocessableEntity, "insufficient_repayment"},
	{loan.ErrExcessiveRepayment, http.StatusUnprocessableEntity, "excessive_repayment"},
	{loan.ErrGuarantorNotProvided, http.StatusUnprocessableEntity, "guarantor_not_provided"},
	{loan.ErrSelfGuarantee, http.StatusUnprocessableEntity, "self_guarantee"},
	{guarantor.ErrExpired, http.StatusUnprocessableEntity, "guarantor_offer_expired"},
	{guarantor.ErrMismatch, http.StatusUnprocessableEntity, "invalid_guarantor_offer"},
	// state
	{loan.ErrInvalidLoanStatus, http.StatusConflict, "invalid_loan_status"},
	{loan.ErrLoanNotActive, http.StatusConflict, "loan_not_active"},
	{loan.ErrLoanExists, http.StatusConflict, "loan_exists"},
	{collateral.ErrInsufficientCollateral, http.StatusConflict, "insufficient_collateral"},
	{asset.ErrInsufficientFunds, http.StatusConflict, "insufficient_funds"},
	{asset.ErrAllowanceExceeded, http.StatusConflict, "allowance_exceeded"},
	// authorization
	{loan.ErrUnauthorizedLender, http.StatusForbidden, "unauthorized_lender"},
	{loan.ErrUnauthorizedBorrower, http.StatusForbidden, "unauthorized_borrower"},
	{guarantor.ErrUnauthorized, http.StatusForbidden, "unauthorized_guarantor"},
	{loan.ErrInvalidAuthority, http.StatusForbidden, "invalid_authority"},
	// arithmetic
	{checked.ErrOverflow, http.StatusUnprocessableEntity, "overflow"},
	{checked.ErrUnderflow, http.StatusUnprocessableEntity, "underflow"},
	{checked.ErrDivByZero, http.StatusUnprocessableEntity, "division_by_zero"},
	{checked.ErrOutOfRange, http.StatusUnprocessableEntity, "out_of_range"},
	// resources
	{loan.ErrOfferNotFound, http.StatusNotFound, "offer_not_found"},
	{loan.ErrNotFound, http.StatusNotFound, "loan_not_found"},
	{guarantor.ErrNotFound, http.StatusNotFound, "guarantor_offer_not_found"},
	{collateral.ErrNotFound, http.StatusNotFound, "collateral_account_not_found"},
	// integrity
	{asset.ErrInvalidTransfer, http.StatusInternalServerError, "invalid_transfer"},
}

// respondError writes the JSON error body for a usecase failure.
func respondError(c echo.Context, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.JSON(m.status, ErrorResponse{Error: m.err.Error(), Code: m.code})
		}
	}
	slog.ErrorContext(c.Request().Context(), "unhandled usecase error",
		"method", c.Request().Method, "route", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: "bad_request"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    "validation_failed",
		Details: ToFieldErrors(err),
	})
}
