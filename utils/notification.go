package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"gopkg.in/gomail.v2"
)

// Order event types published on state transitions.
const (
	EventOrderConfirmed  = "order.confirmed"
	EventOrderCancelled  = "order.cancelled"
	EventOrderDelivered  = "order.delivered"
	EventReturnRequested = "return.requested"
	EventReturnApproved  = "return.approved"
	EventRefundCompleted = "refund.completed"
)

const orderEventsTopic = "order-events"

// OrderEvent is the payload published to the order-events topic and mirrored
// to the customer by email. Consumers (notification service, analytics) own
// what happens next; this subsystem never reads a reply.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	Amount    float64   `json:"amount,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

var eventWriter *kafka.Writer

// InitNotifier wires the Kafka writer for order events. Brokers come from
// KAFKA_BROKERS (comma separated); when unset, events are logged and dropped.
func InitNotifier() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		LogInfo("KAFKA_BROKERS not set, order events will be logged only")
		return
	}
	eventWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        orderEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

// CloseNotifier flushes and closes the event writer.
func CloseNotifier() {
	if eventWriter != nil {
		_ = eventWriter.Close()
	}
}

// PublishOrderEvent sends an order event, fire and forget: the goroutine
// logs failures and nothing upstream waits on the result.
func PublishOrderEvent(eventType string, orderID, userID uint, amount float64) {
	event := OrderEvent{
		Type:      eventType,
		OrderID:   orderID,
		UserID:    userID,
		Amount:    amount,
		Timestamp: time.Now(),
	}

	go func() {
		if eventWriter == nil {
			LogDebug("Order event (no broker): %s order=%d", eventType, orderID)
			return
		}
		data, err := json.Marshal(event)
		if err != nil {
			LogError("Failed to marshal order event: %v", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := eventWriter.WriteMessages(ctx, kafka.Message{
			Key:   []byte(strconv.FormatUint(uint64(orderID), 10)),
			Value: data,
		}); err != nil {
			LogError("Failed to publish order event %s for order %d: %v", eventType, orderID, err)
		}
	}()
}

// SendOrderEmail sends a transactional email, fire and forget. SMTP settings
// come from the environment; when unset, the mail is logged and dropped.
func SendOrderEmail(to, subject, body string) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		if host == "" {
			LogDebug("SMTP_HOST not set, skipping email to %s: %s", to, subject)
			return
		}
		port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if err != nil {
			port = 587
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", body)

		d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			LogError("Failed to send email to %s: %v", to, err)
		}
	}()
}

// NotifyOrderConfirmed emails the customer and publishes the confirmed event.
func NotifyOrderConfirmed(email string, orderID, userID uint, total float64) {
	PublishOrderEvent(EventOrderConfirmed, orderID, userID, total)
	SendOrderEmail(email, fmt.Sprintf("Your %s order #%d is confirmed", AppName, orderID),
		fmt.Sprintf("<p>Thanks for shopping with us! Your order #%d for ₹%.2f has been confirmed.</p>", orderID, total))
}

// NotifyReturnApproved emails the customer and publishes the approval event.
func NotifyReturnApproved(email string, orderID, userID uint) {
	PublishOrderEvent(EventReturnApproved, orderID, userID, 0)
	SendOrderEmail(email, fmt.Sprintf("Return approved for order #%d", orderID),
		fmt.Sprintf("<p>Your return request for order #%d has been approved. We will schedule a pickup shortly.</p>", orderID))
}

// NotifyRefundCompleted emails the customer and publishes the refund event.
func NotifyRefundCompleted(email string, orderID, userID uint, amount float64) {
	PublishOrderEvent(EventRefundCompleted, orderID, userID, amount)
	SendOrderEmail(email, fmt.Sprintf("Refund completed for order #%d", orderID),
		fmt.Sprintf("<p>Your refund of ₹%.2f for order #%d has been completed.</p>", amount, orderID))
}
