package domain

import "time"

// TransactionKind indicates the direction and purpose of a ledger entry.
// Amounts are always positive; the kind carries the direction.
type TransactionKind string

const (
	KindPayment       TransactionKind = "PAYMENT"
	KindRefund        TransactionKind = "REFUND"
	KindDepositReturn TransactionKind = "DEPOSIT_RETURN"
)

// RentalTransaction is a single immutable ledger entry against one
// reservation. Entries are append-only: corrections are recorded as
// compensating refunds, never as edits or deletions.
type RentalTransaction struct {
	TransactionID     string          `json:"transactionID"` // Primary Key (UUID)
	ReservationID     string          `json:"reservationID"` // FK -> reservations (Not Null)
	Kind              TransactionKind `json:"kind"`
	Amount            Money           `json:"amount"` // Positive; direction is in Kind
	Method            string          `json:"method"` // Cash, Card, Transfer, wallet ids; opaque here
	ExternalReference string          `json:"externalReference,omitempty"`
	ReceiptURL        string          `json:"receiptURL,omitempty"`
	RecordedAt        time.Time       `json:"recordedAt"`
	RecordedBy        string          `json:"recordedBy"` // Actor reference
}
