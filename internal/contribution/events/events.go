// Package events publishes contribution change events for downstream
// collaborators (notification delivery, reporting). Publishing is best effort:
// the write path logs failures and carries on.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"nestegg/internal/contribution/models"
)

// Kind names a contribution lifecycle change.
type Kind string

const (
	KindCreated Kind = "contribution.created"
	KindUpdated Kind = "contribution.updated"
	KindDeleted Kind = "contribution.deleted"
)

// Event is the wire payload. Amount is a decimal string so consumers never
// round-trip money through float64.
type Event struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	ContributionID string    `json:"contribution_id"`
	UserID         string    `json:"user_id"`
	InstitutionID  string    `json:"institution_id,omitempty"`
	Period         string    `json:"period"`
	Amount         string    `json:"amount,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
	RequestID      string    `json:"request_id,omitempty"`
}

// NewEvent builds the event for a change to c.
func NewEvent(kind Kind, c *models.Contribution, occurredAt time.Time, requestID string) Event {
	ev := Event{
		ID:             uuid.NewString(),
		Kind:           kind,
		ContributionID: c.ID.String(),
		UserID:         c.UserID.String(),
		Period:         c.Period.String(),
		OccurredAt:     occurredAt.UTC(),
		RequestID:      requestID,
	}
	if c.Institution != nil {
		ev.InstitutionID = c.Institution.ID.String()
	}
	if c.Amount.Valid {
		ev.Amount = c.Amount.Decimal.StringFixed(2)
	}
	return ev
}

// Record encodes ev for topic. Records are keyed by user so one user's events
// land on one partition in order.
func Record(topic string, ev Event) (*kgo.Record, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal contribution event: %w", err)
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(ev.UserID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_id", Value: []byte(ev.ID)},
			{Key: "kind", Value: []byte(ev.Kind)},
		},
	}, nil
}

// KafkaPublisher produces events synchronously to a single topic.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects to brokers. The client is lazy: broker
// availability is only checked on the first produce.
func NewKafkaPublisher(brokers []string, topic string, opts ...kgo.Opt) (*KafkaPublisher, error) {
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RecordRetries(3),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	rec, err := Record(p.topic, ev)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce contribution event: %w", err)
	}
	return nil
}

// EnsureTopic creates the event topic when it does not exist yet. An existing
// topic is left untouched, whatever its partition count.
func (p *KafkaPublisher) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	resp, err := kadm.NewClient(p.client).CreateTopic(ctx, partitions, replication, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", p.topic, resp.Err)
	}
	return nil
}

// Ping checks broker connectivity.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
