package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"p2p-lending-ledger/pkg/id"

	"gorm.io/datatypes"
)

type Type string

const (
	OfferCreated  Type = "offer.created"
	LoanActivated Type = "loan.activated"
	LoanRepaid    Type = "loan.repaid"
	// LoanDefaulted is declared for consumers; nothing emits it yet.
	LoanDefaulted Type = "loan.defaulted"
)

// Event is one row of the transactional outbox.
type Event struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID     string         `gorm:"column:event_id;size:32;not null;uniqueIndex:ux_ledger_events_event_id" json:"event_id"`
	Type        Type           `gorm:"column:type;size:32;not null;index" json:"type"`
	AggregateID string         `gorm:"column:aggregate_id;size:64;not null" json:"aggregate_id"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	PublishedAt *time.Time     `gorm:"column:published_at;index" json:"published_at,omitempty"`
}

func (Event) TableName() string { return "ledger_events" }

type OfferCreatedPayload struct {
	Lender             string `json:"lender"`
	Amount             uint64 `json:"amount"`
	InterestRate       uint64 `json:"interest_rate"`
	Term               int64  `json:"term"`
	RequiredCollateral uint64 `json:"required_collateral"`
	OfferID            uint64 `json:"loan_offer_id"`
}

type LoanActivatedPayload struct {
	LoanID    uint64 `json:"loan_id"`
	Borrower  string `json:"borrower"`
	Amount    uint64 `json:"amount"`
	StartTime int64  `json:"start_time"`
}

type LoanRepaidPayload struct {
	LoanID       uint64 `json:"loan_id"`
	AmountRepaid uint64 `json:"amount_repaid"`
}

type LoanDefaultedPayload struct {
	LoanID          uint64 `json:"loan_id"`
	DefaultedAmount uint64 `json:"defaulted_amount"`
}

func New(t Type, aggregateID string, payload any) (*Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return &Event{
		EventID:     id.NewID32(),
		Type:        t,
		AggregateID: aggregateID,
		Payload:     datatypes.JSON(b),
	}, nil
}

// Sink appends events inside the caller's transaction.
type Sink interface {
	Append(ctx context.Context, e *Event) error
}

// Outbox is the relay-side view of the event table.
type Outbox interface {
	Sink
	ListUnpublished(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, ids []uint64, at time.Time) error
}
