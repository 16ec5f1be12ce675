package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/internal/orders"
	"github.com/aurenecom/storefront-backend/internal/push"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	"github.com/aurenecom/storefront-backend/pkg/logger"
	"github.com/aurenecom/storefront-backend/pkg/outbox"
	"github.com/aurenecom/storefront-backend/pkg/outbox/idempotency"
)

type stubPusher struct {
	broadcasts []push.Message
	notified   []uuid.UUID
	err        error
}

func (s *stubPusher) Broadcast(_ context.Context, msg push.Message) (*push.BroadcastResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.broadcasts = append(s.broadcasts, msg)
	return &push.BroadcastResult{Sent: 1}, nil
}

func (s *stubPusher) NotifyUser(_ context.Context, userID uuid.UUID, msg push.Message) (*push.BroadcastResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.notified = append(s.notified, userID)
	return &push.BroadcastResult{Sent: 1}, nil
}

type memoryStore struct {
	keys    map[string]string
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{keys: map[string]string{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	return m.keys[key], nil
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = "1"
	return true, nil
}

func (m *memoryStore) IdempotencyKey(scope, id string) string {
	return "auren:idempotency:" + scope + ":" + id
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.keys, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

func newTestConsumer(t *testing.T, pushes *stubPusher, store *memoryStore) *Consumer {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "consumer-test", Output: io.Discard})
	manager, err := idempotency.NewManager(store, time.Hour)
	if err != nil {
		t.Fatalf("failed to build idempotency manager: %v", err)
	}
	return &Consumer{
		pushes:      pushes,
		idempotency: manager,
		logg:        logg,
	}
}

func envelopeMessage(t *testing.T, eventType enums.OutboxEventType, data any) *pubsub.Message {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	env := outbox.PayloadEnvelope{
		Version:    1,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now(),
		Data:       raw,
	}
	body, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return &pubsub.Message{
		ID:         "msg-1",
		Data:       body,
		Attributes: map[string]string{"event_type": string(eventType)},
	}
}

func TestConsumerBroadcastsOrderCreated(t *testing.T) {
	pushes := &stubPusher{}
	consumer := newTestConsumer(t, pushes, newMemoryStore())

	msg := envelopeMessage(t, enums.EventOrderCreated, orders.OrderCreatedEvent{
		OrderID:      uuid.New(),
		OrderNumber:  "ORD-1756737600000-ABC123",
		CustomerName: "Bar Manolo",
		TotalAmount:  "41.90",
		Currency:     enums.CurrencyEUR,
		ItemCount:    3,
	})

	result := consumer.process(context.Background(), msg)
	if !result.ack || result.nack {
		t.Fatalf("expected ack, got %+v", result)
	}
	if len(pushes.broadcasts) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(pushes.broadcasts))
	}
	if pushes.broadcasts[0].Data["order_number"] != "ORD-1756737600000-ABC123" {
		t.Fatalf("unexpected broadcast data: %v", pushes.broadcasts[0].Data)
	}
}

func TestConsumerNotifiesCustomerOnStatusChange(t *testing.T) {
	pushes := &stubPusher{}
	consumer := newTestConsumer(t, pushes, newMemoryStore())
	userID := uuid.New()

	msg := envelopeMessage(t, enums.EventCustomerStatusChanged, customers.StatusChangedEvent{
		CustomerID: uuid.New(),
		UserID:     userID,
		OldStatus:  enums.CustomerStatusPending,
		NewStatus:  enums.CustomerStatusApproved,
	})

	result := consumer.process(context.Background(), msg)
	if !result.ack {
		t.Fatalf("expected ack, got %+v", result)
	}
	if len(pushes.notified) != 1 || pushes.notified[0] != userID {
		t.Fatalf("expected notify for %s, got %v", userID, pushes.notified)
	}
}

func TestConsumerAcksUnhandledEvents(t *testing.T) {
	pushes := &stubPusher{}
	consumer := newTestConsumer(t, pushes, newMemoryStore())

	msg := envelopeMessage(t, enums.EventCustomerRegistered, map[string]string{"email": "bar@example.com"})

	result := consumer.process(context.Background(), msg)
	if !result.ack {
		t.Fatalf("expected unhandled event to ack, got %+v", result)
	}
	if len(pushes.broadcasts) != 0 || len(pushes.notified) != 0 {
		t.Fatalf("expected no pushes for unhandled event")
	}
}

func TestConsumerSkipsDuplicateEvents(t *testing.T) {
	pushes := &stubPusher{}
	consumer := newTestConsumer(t, pushes, newMemoryStore())

	msg := envelopeMessage(t, enums.EventOrderCreated, orders.OrderCreatedEvent{
		OrderID:     uuid.New(),
		OrderNumber: "ORD-1756737600000-DUP001",
		TotalAmount: "10.00",
		Currency:    enums.CurrencyEUR,
	})

	first := consumer.process(context.Background(), msg)
	second := consumer.process(context.Background(), msg)
	if !first.ack || !second.ack {
		t.Fatalf("expected both deliveries to ack")
	}
	if len(pushes.broadcasts) != 1 {
		t.Fatalf("expected a single broadcast, got %d", len(pushes.broadcasts))
	}
}

func TestConsumerNacksAndUnmarksOnPushFailure(t *testing.T) {
	pushes := &stubPusher{err: errors.New("fcm unavailable")}
	store := newMemoryStore()
	consumer := newTestConsumer(t, pushes, store)

	msg := envelopeMessage(t, enums.EventOrderCreated, orders.OrderCreatedEvent{
		OrderID:     uuid.New(),
		OrderNumber: "ORD-1756737600000-FAIL01",
		TotalAmount: "10.00",
		Currency:    enums.CurrencyEUR,
	})

	result := consumer.process(context.Background(), msg)
	if !result.nack {
		t.Fatalf("expected nack on push failure, got %+v", result)
	}
	if len(store.deleted) != 1 {
		t.Fatalf("expected processed marker removed for retry, got %v", store.deleted)
	}

	pushes.err = nil
	retry := consumer.process(context.Background(), msg)
	if !retry.ack {
		t.Fatalf("expected retry to ack, got %+v", retry)
	}
	if len(pushes.broadcasts) != 1 {
		t.Fatalf("expected broadcast on retry, got %d", len(pushes.broadcasts))
	}
}
