package models

import "time"

// ReservationStatus mirrors the domain fulfillment status enum at the
// database boundary.
type ReservationStatus string

// PaymentStatus mirrors the domain payment status enum.
type PaymentStatus string

// Reservation is the database row shape of a reservation. All monetary
// columns are integer minor units sharing the reservation's currency column.
type Reservation struct {
	ReservationID       string            `db:"reservation_id"`
	Code                string            `db:"code"`
	TenantID            string            `db:"tenant_id"`
	ClientID            string            `db:"client_id"`
	EventDate           time.Time         `db:"event_date"`
	DeliveryDate        *time.Time        `db:"delivery_date"`
	ScheduledReturnDate *time.Time        `db:"scheduled_return_date"`
	CurrencyCode        string            `db:"currency_code"`
	SubtotalMinor       int64             `db:"subtotal_minor"`
	DiscountMinor       int64             `db:"discount_minor"`
	TotalMinor          int64             `db:"total_minor"`
	DepositMinor        int64             `db:"deposit_minor"`
	DepositReturned     bool              `db:"deposit_returned"`
	Status              ReservationStatus `db:"status"`
	PaymentStatus       PaymentStatus     `db:"payment_status"`
	Notes               string            `db:"notes"`
	Version             int64             `db:"version"`
	AuditFields
}

// RentalTransaction is the database row shape of a ledger entry. The table
// is append-only: no code path updates or deletes rows.
type RentalTransaction struct {
	TransactionID     string    `db:"transaction_id"`
	ReservationID     string    `db:"reservation_id"`
	Kind              string    `db:"kind"`
	AmountMinor       int64     `db:"amount_minor"`
	CurrencyCode      string    `db:"currency_code"`
	Method            string    `db:"method"`
	ExternalReference *string   `db:"external_reference"`
	ReceiptURL        *string   `db:"receipt_url"`
	RecordedAt        time.Time `db:"recorded_at"`
	RecordedBy        string    `db:"recorded_by"`
}
