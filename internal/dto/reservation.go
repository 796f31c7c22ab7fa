package dto

import (
	"time"

	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// Money is the wire form of a monetary value: minor units plus currency code.
// Formatting for display is entirely the client's concern.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency" binding:"required,len=3"`
}

func (m Money) ToDomain() domain.Money {
	return domain.NewMoney(m.Amount, m.Currency)
}

func FromDomainMoney(m domain.Money) Money {
	return Money{Amount: m.Amount, Currency: m.Currency}
}

// CreateReservationRequest creates a reservation in REQUESTED/PENDING state.
// Total is always derived server-side from subtotal - discount.
type CreateReservationRequest struct {
	Code                string     `json:"code" binding:"required,max=32"`
	ClientID            string     `json:"clientID" binding:"required,uuid"`
	EventDate           time.Time  `json:"eventDate" binding:"required"`
	DeliveryDate        *time.Time `json:"deliveryDate,omitempty"`
	ScheduledReturnDate *time.Time `json:"scheduledReturnDate,omitempty"`
	Subtotal            Money      `json:"subtotal" binding:"required"`
	Discount            *Money     `json:"discount,omitempty"`
	Deposit             *Money     `json:"deposit,omitempty"`
	Notes               string     `json:"notes" binding:"max=2000"`
}

// RecordTransactionRequest appends a ledger entry to a reservation.
type RecordTransactionRequest struct {
	Kind              domain.TransactionKind `json:"kind" binding:"required,oneof=PAYMENT REFUND DEPOSIT_RETURN"`
	Amount            Money                  `json:"amount" binding:"required"`
	Method            string                 `json:"method" binding:"required,max=64"`
	ExternalReference string                 `json:"externalReference" binding:"max=128"`
	ReceiptURL        string                 `json:"receiptURL" binding:"omitempty,url"`
}

// ChangeStatusRequest asks for a fulfillment transition. The override flags
// are explicit; they are never implied by the caller's identity.
type ChangeStatusRequest struct {
	Target domain.ReservationStatus `json:"target" binding:"required,oneof=REQUESTED CONFIRMED DELIVERED RETURNED CANCELLED"`
	// AllowUnpaidDelivery releases goods on a reservation that is not fully paid.
	AllowUnpaidDelivery bool `json:"allowUnpaidDelivery"`
	// Force permits cancelling an already delivered reservation.
	Force bool `json:"force"`
}

// ListReservationsParams carries pagination for reservation listings.
type ListReservationsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ReservationResponse is the API shape of a reservation, optionally with its
// derived payment summary embedded.
type ReservationResponse struct {
	ReservationID       string                  `json:"reservationID"`
	Code                string                  `json:"code"`
	ClientID            string                  `json:"clientID"`
	EventDate           time.Time               `json:"eventDate"`
	DeliveryDate        *time.Time              `json:"deliveryDate,omitempty"`
	ScheduledReturnDate *time.Time              `json:"scheduledReturnDate,omitempty"`
	Subtotal            Money                   `json:"subtotal"`
	Discount            Money                   `json:"discount"`
	Total               Money                   `json:"total"`
	Deposit             Money                   `json:"deposit"`
	DepositReturned     bool                    `json:"depositReturned"`
	Status              domain.ReservationStatus `json:"status"`
	PaymentStatus       domain.PaymentStatus    `json:"paymentStatus"`
	Notes               string                  `json:"notes,omitempty"`
	Version             int64                   `json:"version"`
	CreatedAt           time.Time               `json:"createdAt"`
	Summary             *PaymentSummaryResponse `json:"summary,omitempty"`
}

// PaymentSummaryResponse is the API shape of a ledger summary.
type PaymentSummaryResponse struct {
	ReservationID   string          `json:"reservationID"`
	TotalPaid       Money           `json:"totalPaid"`
	DepositReturned Money           `json:"depositReturned"`
	Outstanding     Money           `json:"outstanding"`
	Overpayment     Money           `json:"overpayment"`
	PercentPaid     decimal.Decimal `json:"percentPaid"`
}

// TransactionResponse is the API shape of one ledger entry.
type TransactionResponse struct {
	TransactionID     string                 `json:"transactionID"`
	ReservationID     string                 `json:"reservationID"`
	Kind              domain.TransactionKind `json:"kind"`
	Amount            Money                  `json:"amount"`
	Method            string                 `json:"method"`
	ExternalReference string                 `json:"externalReference,omitempty"`
	ReceiptURL        string                 `json:"receiptURL,omitempty"`
	RecordedAt        time.Time              `json:"recordedAt"`
	RecordedBy        string                 `json:"recordedBy"`
}

// ListReservationsResponse is a page of reservations plus the next token.
type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToReservationResponse maps a domain reservation to its API shape.
func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID:       r.ReservationID,
		Code:                r.Code,
		ClientID:            r.ClientID,
		EventDate:           r.EventDate,
		DeliveryDate:        r.DeliveryDate,
		ScheduledReturnDate: r.ScheduledReturnDate,
		Subtotal:            FromDomainMoney(r.Subtotal),
		Discount:            FromDomainMoney(r.Discount),
		Total:               FromDomainMoney(r.Total),
		Deposit:             FromDomainMoney(r.Deposit),
		DepositReturned:     r.DepositReturned,
		Status:              r.Status,
		PaymentStatus:       r.PaymentStatus,
		Notes:               r.Notes,
		Version:             r.Version,
		CreatedAt:           r.CreatedAt,
	}
}

// ToPaymentSummaryResponse maps a ledger summary to its API shape. The raw
// unclamped ratio stays internal.
func ToPaymentSummaryResponse(s ledger.PaymentSummary) PaymentSummaryResponse {
	return PaymentSummaryResponse{
		ReservationID:   s.ReservationID,
		TotalPaid:       FromDomainMoney(s.TotalPaid),
		DepositReturned: FromDomainMoney(s.DepositReturned),
		Outstanding:     FromDomainMoney(s.Outstanding),
		Overpayment:     FromDomainMoney(s.Overpayment),
		PercentPaid:     s.PercentPaid,
	}
}

// ToTransactionResponses maps ledger entries to their API shapes.
func ToTransactionResponses(txns []domain.RentalTransaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = TransactionResponse{
			TransactionID:     t.TransactionID,
			ReservationID:     t.ReservationID,
			Kind:              t.Kind,
			Amount:            FromDomainMoney(t.Amount),
			Method:            t.Method,
			ExternalReference: t.ExternalReference,
			ReceiptURL:        t.ReceiptURL,
			RecordedAt:        t.RecordedAt,
			RecordedBy:        t.RecordedBy,
		}
	}
	return out
}
