package guarantor

import (
	"context"
	"log/slog"
	"time"

	"p2p-lending-ledger/internal/domain/guarantor"
	"p2p-lending-ledger/internal/domain/sequence"
	"p2p-lending-ledger/internal/domain/uow"
)

type Usecase struct {
	uow    uow.UnitOfWork
	offers guarantor.Repository
	now    func() time.Time
}

func NewUsecase(u uow.UnitOfWork, offers guarantor.Repository) *Usecase {
	return &Usecase{uow: u, offers: offers, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Create records a pledge. Nothing is reserved from the guarantor's collateral.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*OfferDTO, error) {
	if err := guarantor.Validate(in.Amount, in.InterestRate, in.Expiry, u.now().Unix()); err != nil {
		return nil, err
	}
	var created *guarantor.Offer
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		offerID, err := sequence.NewAllocator(r.Sequences, sequence.GuarantorOffers).Next(ctx)
		if err != nil {
			return err
		}
		o := &guarantor.Offer{
			OfferID:      offerID,
			Guarantor:    in.Guarantor,
			Amount:       in.Amount,
			InterestRate: in.InterestRate,
			Expiry:       in.Expiry,
		}
		if err := r.Guarantors.Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "guarantor offer created", "offer_id", created.OfferID, "guarantor", created.Guarantor)
	return toDTO(created), nil
}

// Cancel removes the pledge; only its guarantor may do so.
func (u *Usecase) Cancel(ctx context.Context, caller string, offerID uint64) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Guarantors.GetByOfferIDForUpdate(ctx, offerID)
		if err != nil {
			return err
		}
		if o.Guarantor != caller {
			return guarantor.ErrUnauthorized
		}
		return r.Guarantors.Delete(ctx, o)
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "guarantor offer cancelled", "offer_id", offerID, "guarantor", caller)
	return nil
}

func (u *Usecase) Get(ctx context.Context, offerID uint64) (*OfferDTO, error) {
	o, err := u.offers.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return toDTO(o), nil
}

func (u *Usecase) List(ctx context.Context, guarantorID string, limit, offset int) ([]*OfferDTO, error) {
	rows, err := u.offers.ListByGuarantor(ctx, guarantorID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*OfferDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}
