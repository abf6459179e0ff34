package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"p2p-lending-ledger/internal/domain/event"
	"p2p-lending-ledger/internal/infrastructure/metrics"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter builds a writer that waits for all in-sync replicas.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		MaxAttempts:            5,
		WriteBackoffMin:        100 * time.Millisecond,
		WriteBackoffMax:        time.Second,
	}
}

// envelope is the message value published for every outbox row.
type envelope struct {
	EventID     string          `json:"event_id"`
	Type        event.Type      `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Relay moves committed outbox events to Kafka. Delivery is at least once:
// a crash between write and mark republishes the batch.
type Relay struct {
	outbox  event.Outbox
	writer  MessageWriter
	metrics *metrics.Metrics
	batch   int
	poll    time.Duration
	now     func() time.Time
}

func NewRelay(outbox event.Outbox, w MessageWriter, m *metrics.Metrics, batch int, poll time.Duration) *Relay {
	return &Relay{outbox: outbox, writer: w, metrics: m, batch: batch, poll: poll, now: time.Now}
}

// Run polls until ctx is cancelled. Publish failures are logged and retried
// on the next tick.
func (r *Relay) Run(ctx context.Context) {
	t := time.NewTicker(r.poll)
	defer t.Stop()
	slog.Info("outbox relay started", "poll", r.poll, "batch", r.batch)
	for {
		for {
			n, err := r.PublishOnce(ctx)
			if err != nil {
				if ctx.Err() == nil {
					slog.Error("outbox publish failed", "error", err)
				}
				break
			}
			// drain backlog without waiting for the ticker
			if n < r.batch {
				break
			}
		}
		select {
		case <-ctx.Done():
			slog.Info("outbox relay stopped")
			return
		case <-t.C:
		}
	}
}

// PublishOnce publishes at most one batch and returns how many events were
// marked published.
func (r *Relay) PublishOnce(ctx context.Context) (int, error) {
	events, err := r.outbox.ListUnpublished(ctx, r.batch)
	if err != nil {
		return 0, err
	}
	r.metrics.OutboxPending.Set(float64(len(events)))
	if len(events) == 0 {
		return 0, nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	ids := make([]uint64, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(envelope{
			EventID:     e.EventID,
			Type:        e.Type,
			AggregateID: e.AggregateID,
			Payload:     json.RawMessage(e.Payload),
			CreatedAt:   e.CreatedAt,
		})
		if err != nil {
			return 0, err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.AggregateID),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(e.Type)},
				{Key: "event_id", Value: []byte(e.EventID)},
			},
			Time: e.CreatedAt,
		})
		ids = append(ids, e.ID)
	}

	if err := r.writer.WriteMessages(ctx, msgs...); err != nil {
		r.metrics.OutboxFailures.Inc()
		return 0, err
	}
	if err := r.outbox.MarkPublished(ctx, ids, r.now().UTC()); err != nil {
		r.metrics.OutboxFailures.Inc()
		return 0, err
	}
	for _, e := range events {
		r.metrics.LedgerEvents.WithLabelValues(string(e.Type)).Inc()
	}
	slog.Debug("outbox batch published", "count", len(events), "last_event_id", events[len(events)-1].EventID)
	return len(events), nil
}
