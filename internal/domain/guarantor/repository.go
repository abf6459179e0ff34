package guarantor

import "context"

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByOfferID(ctx context.Context, offerID uint64) (*Offer, error)
	GetByOfferIDForUpdate(ctx context.Context, offerID uint64) (*Offer, error)
	// ListByGuarantor lists all offers when guarantor is empty.
	ListByGuarantor(ctx context.Context, guarantor string, limit, offset int) ([]Offer, error)
	Delete(ctx context.Context, o *Offer) error
}
