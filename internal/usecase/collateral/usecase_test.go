package collateral

import (
	"context"
	"errors"
	"testing"

	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/domain/asset"
	"p2p-lending-ledger/internal/domain/collateral"
	"p2p-lending-ledger/internal/testutil/dbtest"
)

const user = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func newUsecase(t *testing.T, minted uint64) *Usecase {
	t.Helper()
	db := dbtest.Open(t)
	assets := mysql.NewAssetLedger(db)
	if minted > 0 {
		if err := assets.Mint(context.Background(), user, minted); err != nil {
			t.Fatalf("mint: %v", err)
		}
	}
	return NewUsecase(mysql.NewGormUoW(db), mysql.NewCollateralRepository(db), assets)
}

func TestDepositThenWithdraw(t *testing.T) {
	uc := newUsecase(t, 100)
	ctx := context.Background()

	out, err := uc.Deposit(ctx, user, 60)
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if *out != (AccountDTO{User: user, Balance: 60, Custody: 60, External: 40}) {
		t.Fatalf("after first deposit: %+v", out)
	}

	out, err = uc.Deposit(ctx, user, 40)
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if out.Balance != 100 || out.External != 0 {
		t.Fatalf("after second deposit: %+v", out)
	}

	out, err = uc.Withdraw(ctx, user, 30)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if *out != (AccountDTO{User: user, Balance: 70, Custody: 70, External: 30}) {
		t.Fatalf("after withdraw: %+v", out)
	}

	got, err := uc.Get(ctx, user)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *got != *out {
		t.Fatalf("Get = %+v, want %+v", got, out)
	}
}

func TestDeposit_ZeroOpensAccount(t *testing.T) {
	uc := newUsecase(t, 0)
	ctx := context.Background()

	out, err := uc.Deposit(ctx, user, 0)
	if err != nil {
		t.Fatalf("Deposit(0): %v", err)
	}
	if *out != (AccountDTO{User: user}) {
		t.Fatalf("zero deposit account: %+v", out)
	}
	if _, err := uc.Withdraw(ctx, user, 0); err != nil {
		t.Fatalf("Withdraw(0): %v", err)
	}
}

func TestWithdraw_Overdraw(t *testing.T) {
	uc := newUsecase(t, 100)
	ctx := context.Background()
	if _, err := uc.Deposit(ctx, user, 50); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	if _, err := uc.Withdraw(ctx, user, 51); !errors.Is(err, collateral.ErrInsufficientCollateral) {
		t.Fatalf("overdraw err = %v, want ErrInsufficientCollateral", err)
	}

	got, err := uc.Get(ctx, user)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Balance != 50 || got.Custody != 50 {
		t.Fatalf("balances changed after failed withdraw: %+v", got)
	}
}

func TestWithdraw_UnknownUser(t *testing.T) {
	_, err := newUsecase(t, 0).Withdraw(context.Background(), user, 1)
	if !errors.Is(err, collateral.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeposit_WithoutAssetsRollsBack(t *testing.T) {
	uc := newUsecase(t, 10)
	ctx := context.Background()

	if _, err := uc.Deposit(ctx, user, 11); !errors.Is(err, asset.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if _, err := uc.Get(ctx, user); !errors.Is(err, collateral.ErrNotFound) {
		t.Fatalf("account creation must roll back, Get err = %v", err)
	}
}
