package mysql

import (
	"context"
	"time"

	"p2p-lending-ledger/internal/domain/event"

	"gorm.io/gorm"
)

type OutboxRepository struct{ db *gorm.DB }

func NewOutboxRepository(db *gorm.DB) *OutboxRepository { return &OutboxRepository{db: db} }

func (r *OutboxRepository) Append(ctx context.Context, e *event.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *OutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]event.Event, error) {
	var out []event.Event
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("id ASC").
		Limit(pageLimit(limit)).
		Find(&out).Error
	return out, err
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uint64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&event.Event{}).
		Where("id IN ?", ids).
		Update("published_at", at).Error
}
