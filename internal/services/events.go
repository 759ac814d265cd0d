package services

import (
	"log"
	"time"

	"littlelemon/internal/models"

	"github.com/shopspring/decimal"
)

// Order event types.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// OrderEvent is the message published after an order changes.
type OrderEvent struct {
	Type           string          `json:"type"`
	OrderID        string          `json:"order_id"`
	UserID         string          `json:"user_id"`
	DeliveryCrewID *string         `json:"delivery_crew_id"`
	Status         bool            `json:"status"`
	Total          decimal.Decimal `json:"total"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// EventPublisher sends an event to the broker. *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(event interface{}) error
}

// publishOrderEvent is best effort: the order is already committed, so a
// broker failure is only logged.
func publishOrderEvent(p EventPublisher, eventType string, order *models.Order, at time.Time) {
	if p == nil {
		return
	}
	event := OrderEvent{
		Type:           eventType,
		OrderID:        order.ID,
		UserID:         order.UserID,
		DeliveryCrewID: order.DeliveryCrewID,
		Status:         order.Status,
		Total:          order.Total,
		OccurredAt:     at,
	}
	if err := p.Publish(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", eventType, order.ID, err)
		return
	}
	log.Printf("Successfully published %s event for order %s", eventType, order.ID)
}
