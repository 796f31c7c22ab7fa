// Package events publishes reservation lifecycle events to a message broker.
// Publishing is best-effort: failures are logged and returned so callers can
// ignore them without interrupting the request flow.
package events

import (
	"context"
	"time"

	"github.com/festarent/rental_mgmt_app/internal/core/domain"
)

// Queue names. Durable; shared with downstream consumers (notifications,
// analytics).
const (
	QueueStatusChanged   = "reservation.status_changed"
	QueuePaymentRecorded = "reservation.payment_recorded"
)

// StatusChangedEvent is published after a successful fulfillment transition.
type StatusChangedEvent struct {
	ReservationID string                   `json:"reservation_id"`
	TenantID      string                   `json:"tenant_id"`
	Code          string                   `json:"code"`
	From          domain.ReservationStatus `json:"from"`
	To            domain.ReservationStatus `json:"to"`
	PaymentStatus domain.PaymentStatus     `json:"payment_status"`
	ChangedBy     string                   `json:"changed_by"`
	ChangedAt     time.Time                `json:"changed_at"`
}

// PaymentRecordedEvent is published after a ledger entry is appended.
type PaymentRecordedEvent struct {
	ReservationID    string                 `json:"reservation_id"`
	TenantID         string                 `json:"tenant_id"`
	TransactionID    string                 `json:"transaction_id"`
	Kind             domain.TransactionKind `json:"kind"`
	AmountMinor      int64                  `json:"amount_minor"`
	Currency         string                 `json:"currency"`
	Method           string                 `json:"method"`
	OutstandingMinor int64                  `json:"outstanding_minor"`
	PaymentStatus    domain.PaymentStatus   `json:"payment_status"`
	RecordedBy       string                 `json:"recorded_by"`
	RecordedAt       time.Time              `json:"recorded_at"`
}

// Publisher is the event sink used by the service layer.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
	PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, StatusChangedEvent) error { return nil }
func (NoopPublisher) PublishPaymentRecorded(context.Context, PaymentRecordedEvent) error {
	return nil
}
