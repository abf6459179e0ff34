package offer

import (
	"context"
	"log/slog"
	"strconv"

	"p2p-lending-ledger/internal/domain/event"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/sequence"
	"p2p-lending-ledger/internal/domain/uow"
)

type Usecase struct {
	uow    uow.UnitOfWork
	offers loan.OfferRepository
}

func NewUsecase(u uow.UnitOfWork, offers loan.OfferRepository) *Usecase {
	return &Usecase{uow: u, offers: offers}
}

// Create publishes a lender offer and delegates `amount` of the lender's
// asset balance to the offer's derived authority.
func (u *Usecase) Create(ctx context.Context, in CreateOfferInput) (*OfferDTO, error) {
	if err := loan.ValidateTerms(in.Amount, in.InterestRate, in.Term, in.RequiredCollateral); err != nil {
		return nil, err
	}

	var created *loan.LoanOffer
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		offerID, err := sequence.NewAllocator(r.Sequences, sequence.LoanOffers).Next(ctx)
		if err != nil {
			return err
		}
		o := &loan.LoanOffer{
			OfferID:            offerID,
			Lender:             in.Lender,
			Amount:             in.Amount,
			InterestRate:       in.InterestRate,
			Term:               in.Term,
			RequiredCollateral: in.RequiredCollateral,
			Status:             loan.StatusProposed,
			Authority:          loan.DeriveAuthority(in.Lender, offerID),
		}
		if err := r.Offers.Create(ctx, o); err != nil {
			return err
		}
		if err := r.Assets.Approve(ctx, o.Lender, o.Authority, o.Amount); err != nil {
			return err
		}
		ev, err := event.New(event.OfferCreated, strconv.FormatUint(offerID, 10), event.OfferCreatedPayload{
			Lender:             o.Lender,
			Amount:             o.Amount,
			InterestRate:       o.InterestRate,
			Term:               o.Term,
			RequiredCollateral: o.RequiredCollateral,
			OfferID:            o.OfferID,
		})
		if err != nil {
			return err
		}
		if err := r.Events.Append(ctx, ev); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "loan offer created",
		"offer_id", created.OfferID, "lender", created.Lender, "amount", created.Amount)
	return toDTO(created), nil
}

// Cancel moves a proposed offer to cancelled. The delegated allowance is left
// in place.
func (u *Usecase) Cancel(ctx context.Context, caller string, offerID uint64) (*OfferDTO, error) {
	var out *loan.LoanOffer
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Offers.GetByOfferIDForUpdate(ctx, offerID)
		if err != nil {
			return err
		}
		if err := o.ValidateCancel(caller); err != nil {
			return err
		}
		o.Status = loan.StatusCancelled
		if err := r.Offers.Save(ctx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "loan offer cancelled", "offer_id", offerID, "lender", caller)
	return toDTO(out), nil
}

func (u *Usecase) Get(ctx context.Context, offerID uint64) (*OfferDTO, error) {
	o, err := u.offers.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return toDTO(o), nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]*OfferDTO, error) {
	rows, err := u.offers.List(ctx, loan.OfferFilter{
		Lender: in.Lender,
		Status: loan.Status(in.Status),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*OfferDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}
