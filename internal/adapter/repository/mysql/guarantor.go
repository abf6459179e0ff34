package mysql

import (
	"context"
	"errors"

	"p2p-lending-ledger/internal/domain/guarantor"

	"gorm.io/gorm"
)

type GuarantorRepository struct{ db *gorm.DB }

func NewGuarantorRepository(db *gorm.DB) *GuarantorRepository {
	return &GuarantorRepository{db: db}
}

func (r *GuarantorRepository) Create(ctx context.Context, o *guarantor.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *GuarantorRepository) GetByOfferID(ctx context.Context, offerID uint64) (*guarantor.Offer, error) {
	return r.get(r.db.WithContext(ctx), offerID)
}

func (r *GuarantorRepository) GetByOfferIDForUpdate(ctx context.Context, offerID uint64) (*guarantor.Offer, error) {
	return r.get(r.db.WithContext(ctx).Clauses(forUpdate), offerID)
}

func (r *GuarantorRepository) get(q *gorm.DB, offerID uint64) (*guarantor.Offer, error) {
	var out guarantor.Offer
	err := q.Where("offer_id = ?", offerID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, guarantor.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GuarantorRepository) ListByGuarantor(ctx context.Context, g string, limit, offset int) ([]guarantor.Offer, error) {
	q := r.db.WithContext(ctx).Model(&guarantor.Offer{})
	if g != "" {
		q = q.Where("guarantor = ?", g)
	}
	var out []guarantor.Offer
	err := q.Order("offer_id ASC").Limit(pageLimit(limit)).Offset(offset).Find(&out).Error
	return out, err
}

// Delete hard-deletes the record; a cancelled pledge leaves nothing behind.
func (r *GuarantorRepository) Delete(ctx context.Context, o *guarantor.Offer) error {
	res := r.db.WithContext(ctx).Where("offer_id = ?", o.OfferID).Delete(&guarantor.Offer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return guarantor.ErrNotFound
	}
	return nil
}
