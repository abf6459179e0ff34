package http

import (
	"net/http"

	"p2p-lending-ledger/internal/usecase/guarantor"

	"github.com/labstack/echo/v4"
)

type GuarantorHandler struct{ uc *guarantor.Usecase }

func NewGuarantorHandler(uc *guarantor.Usecase) *GuarantorHandler {
	return &GuarantorHandler{uc: uc}
}

type createGuarantorOfferReq struct {
	Amount       uint64 `json:"amount"`
	InterestRate uint64 `json:"interest_rate"`
	// Expiry is unix seconds.
	Expiry int64 `json:"expiry"`
}

func (h *GuarantorHandler) CreateOffer(c echo.Context) error {
	var req createGuarantorOfferReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	dto, err := h.uc.Create(c.Request().Context(), guarantor.CreateInput{
		Guarantor:    caller(c),
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Expiry:       req.Expiry,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *GuarantorHandler) GetOffer(c echo.Context) error {
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

// ListOffers lists by ?guarantor=, defaulting to the caller's own offers.
func (h *GuarantorHandler) ListOffers(c echo.Context) error {
	g := c.QueryParam("guarantor")
	if g == "" {
		g = caller(c)
	}
	if !reHex32.MatchString(g) {
		return badRequest(c, "invalid guarantor query param")
	}
	limit, offset, err := page(c)
	if err != nil {
		return badRequest(c, "invalid limit/offset")
	}
	out, err := h.uc.List(c.Request().Context(), g, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GuarantorHandler) CancelOffer(c echo.Context) error {
	offerID, ok := uintParam(c, "offer_id")
	if !ok {
		return badRequest(c, "invalid offer_id path param")
	}
	if err := h.uc.Cancel(c.Request().Context(), caller(c), offerID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
