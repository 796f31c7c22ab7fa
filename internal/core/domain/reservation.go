package domain

import (
	"fmt"
	"time"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
)

// ReservationStatus tracks fulfillment progress of a reservation.
type ReservationStatus string

const (
	StatusRequested ReservationStatus = "REQUESTED"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusDelivered ReservationStatus = "DELIVERED"
	StatusReturned  ReservationStatus = "RETURNED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// IsTerminal reports whether a reservation in this status accepts no further
// fulfillment transitions. Terminal reservations still accept some ledger
// entries (e.g. a deposit refund after return).
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusReturned || s == StatusCancelled
}

// PaymentStatus is the cached projection of the reservation's ledger state.
// It is recomputed from the ledger on every mutation, never written directly.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPartial   PaymentStatus = "PARTIAL"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// Reservation is a rental booking: an order total, an optional security
// deposit and a pair of status axes (fulfillment and payment).
type Reservation struct {
	ReservationID       string            `json:"reservationID"` // Primary Key (UUID)
	Code                string            `json:"code"`          // Unique, immutable after creation
	TenantID            string            `json:"tenantID"`
	ClientID            string            `json:"clientID"`
	EventDate           time.Time         `json:"eventDate"`
	DeliveryDate        *time.Time        `json:"deliveryDate,omitempty"`
	ScheduledReturnDate *time.Time        `json:"scheduledReturnDate,omitempty"`
	Subtotal            Money             `json:"subtotal"`
	Discount            Money             `json:"discount"`
	Total               Money             `json:"total"` // Always subtotal - discount
	Deposit             Money             `json:"deposit"`
	DepositReturned     bool              `json:"depositReturned"`
	Status              ReservationStatus `json:"status"`
	PaymentStatus       PaymentStatus     `json:"paymentStatus"`
	Notes               string            `json:"notes"`
	Version             int64             `json:"version"` // Optimistic-concurrency marker
	AuditFields
}

// DeriveTotal recomputes Total from Subtotal and Discount, enforcing the
// discount <= subtotal and same-currency invariants. Total must never be set
// by any other path.
func (r *Reservation) DeriveTotal() error {
	if !r.Subtotal.SameCurrency(r.Discount) {
		return fmt.Errorf("%w: subtotal %s vs discount %s", apperrors.ErrCurrencyMismatch, r.Subtotal.Currency, r.Discount.Currency)
	}
	if r.Subtotal.IsNegative() || r.Discount.IsNegative() {
		return fmt.Errorf("%w: subtotal and discount must not be negative", apperrors.ErrValidation)
	}
	if r.Discount.Cmp(r.Subtotal) > 0 {
		return fmt.Errorf("%w: discount %s exceeds subtotal %s", apperrors.ErrValidation, r.Discount, r.Subtotal)
	}
	total, err := r.Subtotal.Sub(r.Discount)
	if err != nil {
		return err
	}
	r.Total = total
	return nil
}
