package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"p2p-lending-ledger/internal/adapter/middleware"
	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/testutil/dbtest"
	ucCollateral "p2p-lending-ledger/internal/usecase/collateral"
	ucGuarantor "p2p-lending-ledger/internal/usecase/guarantor"
	ucLoan "p2p-lending-ledger/internal/usecase/loan"
	ucOffer "p2p-lending-ledger/internal/usecase/offer"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	lenderID    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	borrowerID  = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	guarantorID = "cccccccccccccccccccccccccccccccc"
)

var testAuth = middleware.AuthConfig{Secret: []byte("handler-test-secret-0123")}

type testAPI struct {
	t     *testing.T
	e     *echo.Echo
	db    *gorm.DB
	clock time.Time
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := dbtest.Open(t)
	api := &testAPI{t: t, db: db, clock: time.Unix(1_700_000_000, 0).UTC()}
	now := func() time.Time { return api.clock }

	u := mysql.NewGormUoW(db)
	assets := mysql.NewAssetLedger(db)
	router := Router{
		Health:     NewHandler(),
		Offers:     NewOfferHandler(ucOffer.NewUsecase(u, mysql.NewOfferRepository(db))),
		Guarantors: NewGuarantorHandler(ucGuarantor.NewUsecase(u, mysql.NewGuarantorRepository(db)).WithClock(now)),
		Collateral: NewCollateralHandler(ucCollateral.NewUsecase(u, mysql.NewCollateralRepository(db), assets)),
		Loans:      NewLoanHandler(ucLoan.NewUsecase(u, mysql.NewLoanRepository(db)).WithClock(now)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	router.Register(e, middleware.Auth(testAuth))
	api.e = e
	return api
}

func (a *testAPI) mint(holder string, amount uint64) {
	a.t.Helper()
	if err := mysql.NewAssetLedger(a.db).Mint(context.Background(), holder, amount); err != nil {
		a.t.Fatalf("mint: %v", err)
	}
}

// do sends body as JSON on behalf of as; an empty as sends no token.
func (a *testAPI) do(method, path, as string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			a.t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if as != "" {
		tok, err := middleware.NewToken(testAuth, as, time.Minute)
		if err != nil {
			a.t.Fatalf("token: %v", err)
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, want, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	if er := decode[ErrorResponse](t, rec); er.Code != code {
		t.Fatalf("code = %q, want %q (error=%q)", er.Code, code, er.Error)
	}
}

// createOffer posts the standard 1000 @ 5% offer from lenderID.
func (a *testAPI) createOffer(required uint64) ucOffer.OfferDTO {
	a.t.Helper()
	rec := a.do(stdhttp.MethodPost, "/v1/offers", lenderID, map[string]any{
		"amount": 1000, "interest_rate": 500, "term": 3600, "required_collateral": required,
	})
	expectStatus(a.t, rec, stdhttp.StatusCreated)
	return decode[ucOffer.OfferDTO](a.t, rec)
}
