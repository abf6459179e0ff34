package collateral

import (
	"context"
	"errors"
	"log/slog"

	"p2p-lending-ledger/internal/domain/asset"
	"p2p-lending-ledger/internal/domain/collateral"
	"p2p-lending-ledger/internal/domain/uow"
)

type Usecase struct {
	uow      uow.UnitOfWork
	accounts collateral.Repository
	assets   asset.Ledger
}

func NewUsecase(u uow.UnitOfWork, accounts collateral.Repository, assets asset.Ledger) *Usecase {
	return &Usecase{uow: u, accounts: accounts, assets: assets}
}

// Deposit credits user's collateral and moves the asset into custody.
// The account is created on first deposit.
func (u *Usecase) Deposit(ctx context.Context, user string, amount uint64) (*AccountDTO, error) {
	var out *collateral.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acct, err := r.Collateral.GetByUserForUpdate(ctx, user)
		if errors.Is(err, collateral.ErrNotFound) {
			acct = &collateral.Account{User: user}
			err = r.Collateral.Create(ctx, acct)
		}
		if err != nil {
			return err
		}
		if err := acct.Credit(amount); err != nil {
			return err
		}
		if err := r.Assets.Transfer(ctx, user, collateral.CustodyHolder(user), amount); err != nil {
			return err
		}
		if err := r.Collateral.Save(ctx, acct); err != nil {
			return err
		}
		out = acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "collateral deposited", "user", user, "amount", amount, "balance", out.Balance)
	return u.view(ctx, out)
}

// Withdraw returns collateral to the user. Collateral backing an active loan
// is not distinguished from free collateral.
func (u *Usecase) Withdraw(ctx context.Context, user string, amount uint64) (*AccountDTO, error) {
	var out *collateral.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acct, err := r.Collateral.GetByUserForUpdate(ctx, user)
		if err != nil {
			return err
		}
		if err := acct.Debit(amount); err != nil {
			return err
		}
		if err := r.Assets.Transfer(ctx, collateral.CustodyHolder(user), user, amount); err != nil {
			return err
		}
		if err := r.Collateral.Save(ctx, acct); err != nil {
			return err
		}
		out = acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "collateral withdrawn", "user", user, "amount", amount, "balance", out.Balance)
	return u.view(ctx, out)
}

func (u *Usecase) Get(ctx context.Context, user string) (*AccountDTO, error) {
	acct, err := u.accounts.GetByUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return u.view(ctx, acct)
}

func (u *Usecase) view(ctx context.Context, acct *collateral.Account) (*AccountDTO, error) {
	custody, err := u.assets.BalanceOf(ctx, collateral.CustodyHolder(acct.User))
	if err != nil {
		return nil, err
	}
	external, err := u.assets.BalanceOf(ctx, acct.User)
	if err != nil {
		return nil, err
	}
	return &AccountDTO{User: acct.User, Balance: acct.Balance, Custody: custody, External: external}, nil
}
