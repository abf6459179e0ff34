package mysql

import (
	"context"
	"errors"

	"p2p-lending-ledger/internal/domain/sequence"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository { return &SequenceRepository{db: db} }

func (r *SequenceRepository) GetForUpdate(ctx context.Context, ns sequence.Namespace) (*sequence.Counter, error) {
	q := r.db.WithContext(ctx)
	var c sequence.Counter
	err := q.Clauses(forUpdate).Where("namespace = ?", ns).Take(&c).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return &c, err
	}
	// first use of the namespace; a concurrent creator may win the insert
	seed := sequence.Counter{Namespace: ns}
	if err := q.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}
	c = sequence.Counter{}
	if err := q.Clauses(forUpdate).Where("namespace = ?", ns).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SequenceRepository) Save(ctx context.Context, c *sequence.Counter) error {
	return r.db.WithContext(ctx).Save(c).Error
}
