package http

import "github.com/labstack/echo/v4"

type Router struct {
	Health     *Handler
	Offers     *OfferHandler
	Guarantors *GuarantorHandler
	Collateral *CollateralHandler
	Loans      *LoanHandler
}

// Register mounts /health and the /v1 API; mw wraps every /v1 route.
func (r Router) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)

	v1 := e.Group("/v1", mw...)

	v1.POST("/offers", r.Offers.CreateOffer)
	v1.GET("/offers", r.Offers.ListOffers)
	v1.GET("/offers/:offer_id", r.Offers.GetOffer)
	v1.POST("/offers/:offer_id/cancel", r.Offers.CancelOffer)
	v1.POST("/offers/:offer_id/accept", r.Loans.AcceptOffer)

	v1.POST("/guarantor-offers", r.Guarantors.CreateOffer)
	v1.GET("/guarantor-offers", r.Guarantors.ListOffers)
	v1.GET("/guarantor-offers/:offer_id", r.Guarantors.GetOffer)
	v1.DELETE("/guarantor-offers/:offer_id", r.Guarantors.CancelOffer)

	v1.POST("/collateral/deposit", r.Collateral.Deposit)
	v1.POST("/collateral/withdraw", r.Collateral.Withdraw)
	v1.GET("/collateral/:user_id", r.Collateral.GetAccount)

	v1.GET("/loans/:loan_id", r.Loans.GetLoan)
	v1.POST("/loans/:loan_id/repay", r.Loans.RepayLoan)
}
