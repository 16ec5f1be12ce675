package notifications

import (
	"context"
	"encoding/json"
	"fmt"

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

const pushConsumerName = "push-notifications"

type pusher interface {
	Broadcast(ctx context.Context, msg push.Message) (*push.BroadcastResult, error)
	NotifyUser(ctx context.Context, userID uuid.UUID, msg push.Message) (*push.BroadcastResult, error)
}

// Consumer watches domain events and fans them out as push notifications:
// new orders go to every registered device, customer status changes go to
// that customer's devices.
type Consumer struct {
	pushes       pusher
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds the push notification consumer.
func NewConsumer(pushes pusher, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if pushes == nil {
		return nil, fmt.Errorf("push service required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("domain subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		pushes:       pushes,
		subscription: subscription,
		idempotency:  manager,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if eventType != string(enums.EventOrderCreated) && eventType != string(enums.EventCustomerStatusChanged) {
		c.logg.Info(logCtx, "skipping unhandled event")
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, pushConsumerName, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	if err := c.handleEvent(ctx, eventType, envelope.Data, logCtx); err != nil {
		c.logg.Error(logCtx, "push handling failed", err)
		_ = c.idempotency.Delete(ctx, pushConsumerName, eventID)
		return processResult{nack: true}
	}

	return processResult{ack: true}
}

func (c *Consumer) handleEvent(ctx context.Context, eventType string, data json.RawMessage, logCtx context.Context) error {
	switch eventType {
	case string(enums.EventOrderCreated):
		return c.handleOrderCreated(ctx, data, logCtx)
	case string(enums.EventCustomerStatusChanged):
		return c.handleCustomerStatusChanged(ctx, data, logCtx)
	default:
		return nil
	}
}

func (c *Consumer) handleOrderCreated(ctx context.Context, data json.RawMessage, logCtx context.Context) error {
	var payload orders.OrderCreatedEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse order payload: %w", err)
	}

	msg := push.Message{
		Title: "New order " + payload.OrderNumber,
		Body:  fmt.Sprintf("%s placed an order for %s %s", payload.CustomerName, payload.TotalAmount, payload.Currency),
		Data: map[string]string{
			"type":         "order_created",
			"order_id":     payload.OrderID.String(),
			"order_number": payload.OrderNumber,
		},
	}

	result, err := c.pushes.Broadcast(ctx, msg)
	if err != nil {
		return err
	}
	c.logg.Info(c.logg.WithFields(logCtx, map[string]any{
		"order_number": payload.OrderNumber,
		"sent":         result.Sent,
		"failed":       result.Failed,
	}), "order broadcast delivered")
	return nil
}

func (c *Consumer) handleCustomerStatusChanged(ctx context.Context, data json.RawMessage, logCtx context.Context) error {
	var payload customers.StatusChangedEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse customer payload: %w", err)
	}
	if payload.UserID == uuid.Nil {
		return fmt.Errorf("user id missing")
	}

	msg := push.Message{
		Title: "Account update",
		Body:  statusMessage(payload.NewStatus),
		Data: map[string]string{
			"type":   "customer_status_changed",
			"status": string(payload.NewStatus),
		},
	}

	result, err := c.pushes.NotifyUser(ctx, payload.UserID, msg)
	if err != nil {
		return err
	}
	c.logg.Info(c.logg.WithFields(logCtx, map[string]any{
		"status": payload.NewStatus,
		"sent":   result.Sent,
		"failed": result.Failed,
	}), "customer status push delivered")
	return nil
}

func statusMessage(status enums.CustomerStatus) string {
	switch status {
	case enums.CustomerStatusApproved:
		return "Your account has been approved. You can now place orders."
	case enums.CustomerStatusBlocked:
		return "Your account has been blocked. Contact support for details."
	case enums.CustomerStatusInactive:
		return "Your account has been deactivated."
	default:
		return fmt.Sprintf("Your account status changed to %s.", status)
	}
}
