package http

import (
	"net/http"

	"p2p-lending-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type acceptOfferReq struct {
	UseGuarantor     bool    `json:"use_guarantor"`
	Guarantor        *string `json:"guarantor" validate:"omitempty,hex32"`
	GuarantorOfferID *uint64 `json:"guarantor_offer_id"`
	// Authority must echo the authority returned when the offer was created.
	Authority string `json:"authority" validate:"required,hex32"`
}

type repayLoanReq struct {
	Amount uint64 `json:"amount"`
}

// AcceptOffer activates a loan for the calling borrower.
func (h *LoanHandler) AcceptOffer(c echo.Context) error {
	offerID, ok := uintParam(c, "offer_id")
	if !ok {
		return badRequest(c, "invalid offer_id path param")
	}
	var req acceptOfferReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Accept(c.Request().Context(), loan.AcceptInput{
		Borrower:         caller(c),
		OfferID:          offerID,
		UseGuarantor:     req.UseGuarantor,
		Guarantor:        req.Guarantor,
		GuarantorOfferID: req.GuarantorOfferID,
		Authority:        req.Authority,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, ok := uintParam(c, "loan_id")
	if !ok {
		return badRequest(c, "invalid loan_id path param")
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// RepayLoan accepts zero amounts; the loan decides whether they are allowed.
func (h *LoanHandler) RepayLoan(c echo.Context) error {
	loanID, ok := uintParam(c, "loan_id")
	if !ok {
		return badRequest(c, "invalid loan_id path param")
	}
	var req repayLoanReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	dto, err := h.uc.Repay(c.Request().Context(), loan.RepayInput{
		Borrower: caller(c),
		LoanID:   loanID,
		Amount:   req.Amount,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
