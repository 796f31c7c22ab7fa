package mapping

import (
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/models"
)

// ToModelReservation converts a domain Reservation to a model Reservation.
func ToModelReservation(d domain.Reservation) models.Reservation {
	return models.Reservation{
		ReservationID:       d.ReservationID,
		Code:                d.Code,
		TenantID:            d.TenantID,
		ClientID:            d.ClientID,
		EventDate:           d.EventDate,
		DeliveryDate:        d.DeliveryDate,
		ScheduledReturnDate: d.ScheduledReturnDate,
		CurrencyCode:        d.Total.Currency,
		SubtotalMinor:       d.Subtotal.Amount,
		DiscountMinor:       d.Discount.Amount,
		TotalMinor:          d.Total.Amount,
		DepositMinor:        d.Deposit.Amount,
		DepositReturned:     d.DepositReturned,
		Status:              models.ReservationStatus(d.Status),
		PaymentStatus:       models.PaymentStatus(d.PaymentStatus),
		Notes:               d.Notes,
		Version:             d.Version,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReservation converts a model Reservation to a domain Reservation.
func ToDomainReservation(m models.Reservation) domain.Reservation {
	return domain.Reservation{
		ReservationID:       m.ReservationID,
		Code:                m.Code,
		TenantID:            m.TenantID,
		ClientID:            m.ClientID,
		EventDate:           m.EventDate,
		DeliveryDate:        m.DeliveryDate,
		ScheduledReturnDate: m.ScheduledReturnDate,
		Subtotal:            domain.NewMoney(m.SubtotalMinor, m.CurrencyCode),
		Discount:            domain.NewMoney(m.DiscountMinor, m.CurrencyCode),
		Total:               domain.NewMoney(m.TotalMinor, m.CurrencyCode),
		Deposit:             domain.NewMoney(m.DepositMinor, m.CurrencyCode),
		DepositReturned:     m.DepositReturned,
		Status:              domain.ReservationStatus(m.Status),
		PaymentStatus:       domain.PaymentStatus(m.PaymentStatus),
		Notes:               m.Notes,
		Version:             m.Version,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain RentalTransaction to its model form.
func ToModelTransaction(d domain.RentalTransaction) models.RentalTransaction {
	m := models.RentalTransaction{
		TransactionID: d.TransactionID,
		ReservationID: d.ReservationID,
		Kind:          string(d.Kind),
		AmountMinor:   d.Amount.Amount,
		CurrencyCode:  d.Amount.Currency,
		Method:        d.Method,
		RecordedAt:    d.RecordedAt,
		RecordedBy:    d.RecordedBy,
	}
	if d.ExternalReference != "" {
		m.ExternalReference = &d.ExternalReference
	}
	if d.ReceiptURL != "" {
		m.ReceiptURL = &d.ReceiptURL
	}
	return m
}

// ToDomainTransaction converts a model RentalTransaction to its domain form.
func ToDomainTransaction(m models.RentalTransaction) domain.RentalTransaction {
	d := domain.RentalTransaction{
		TransactionID: m.TransactionID,
		ReservationID: m.ReservationID,
		Kind:          domain.TransactionKind(m.Kind),
		Amount:        domain.NewMoney(m.AmountMinor, m.CurrencyCode),
		Method:        m.Method,
		RecordedAt:    m.RecordedAt,
		RecordedBy:    m.RecordedBy,
	}
	if m.ExternalReference != nil {
		d.ExternalReference = *m.ExternalReference
	}
	if m.ReceiptURL != nil {
		d.ReceiptURL = *m.ReceiptURL
	}
	return d
}
