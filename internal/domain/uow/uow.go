package uow

import (
	"context"

	"p2p-lending-ledger/internal/domain/asset"
	"p2p-lending-ledger/internal/domain/collateral"
	"p2p-lending-ledger/internal/domain/event"
	"p2p-lending-ledger/internal/domain/guarantor"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/sequence"
)

// Repos are bound to one transaction.
type Repos struct {
	Offers     loan.OfferRepository
	Loans      loan.Repository
	Collateral collateral.Repository
	Guarantors guarantor.Repository
	Sequences  sequence.Repository
	Assets     asset.Ledger
	Events     event.Sink
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
