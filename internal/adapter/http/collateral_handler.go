package http

import (
	"context"
	"net/http"

	"p2p-lending-ledger/internal/usecase/collateral"

	"github.com/labstack/echo/v4"
)

type CollateralHandler struct{ uc *collateral.Usecase }

func NewCollateralHandler(uc *collateral.Usecase) *CollateralHandler {
	return &CollateralHandler{uc: uc}
}

// Zero is a valid amount; a zero deposit opens the account.
type collateralAmountReq struct {
	Amount *uint64 `json:"amount" validate:"required"`
}

func (h *CollateralHandler) Deposit(c echo.Context) error {
	return h.move(c, h.uc.Deposit)
}

func (h *CollateralHandler) Withdraw(c echo.Context) error {
	return h.move(c, h.uc.Withdraw)
}

func (h *CollateralHandler) move(c echo.Context, op func(ctx context.Context, user string, amount uint64) (*collateral.AccountDTO, error)) error {
	var req collateralAmountReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := op(c.Request().Context(), caller(c), *req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CollateralHandler) GetAccount(c echo.Context) error {
	user := c.Param("user_id")
	if !reHex32.MatchString(user) {
		return badRequest(c, "invalid user_id path param")
	}
	dto, err := h.uc.Get(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
