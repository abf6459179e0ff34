package http

import (
	"net/http"

	"p2p-lending-ledger/internal/usecase/offer"

	"github.com/labstack/echo/v4"
)

type OfferHandler struct{ uc *offer.Usecase }

func NewOfferHandler(uc *offer.Usecase) *OfferHandler { return &OfferHandler{uc: uc} }

// Positivity is checked by the usecase so each field fails with its own code.
type createOfferReq struct {
	Amount             uint64 `json:"amount"`
	InterestRate       uint64 `json:"interest_rate"`
	Term               int64  `json:"term"`
	RequiredCollateral uint64 `json:"required_collateral"`
}

type listOffersReq struct {
	Lender string `query:"lender" validate:"omitempty,hex32"`
	Status string `query:"status" validate:"omitempty,oneof=proposed active cancelled repaid defaulted expired"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	dto, err := h.uc.Create(c.Request().Context(), offer.CreateOfferInput{
		Lender:             caller(c),
		Amount:             req.Amount,
		InterestRate:       req.InterestRate,
		Term:               req.Term,
		RequiredCollateral: req.RequiredCollateral,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *OfferHandler) GetOffer(c echo.Context) error {
	offerID, ok := uintParam(c, "offer_id")
	if !ok {
		return badRequest(c, "invalid offer_id path param")
	}
	dto, err := h.uc.Get(c.Request().Context(), offerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OfferHandler) ListOffers(c echo.Context) error {
	var req listOffersReq
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	limit, offset, err := page(c)
	if err != nil {
		return badRequest(c, "invalid limit/offset")
	}
	out, err := h.uc.List(c.Request().Context(), offer.ListInput{
		Lender: req.Lender,
		Status: req.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// CancelOffer is lender-only; the caller comes from the bearer token.
func (h *OfferHandler) CancelOffer(c echo.Context) error {
	offerID, ok := uintParam(c, "offer_id")
	if !ok {
		return badRequest(c, "invalid offer_id path param")
	}
	dto, err := h.uc.Cancel(c.Request().Context(), caller(c), offerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
