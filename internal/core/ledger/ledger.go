// Package ledger computes the authoritative payment state of a reservation
// from its append-only transaction list. Everything here is a pure function
// over already-loaded data: no I/O, no mutation of inputs.
package ledger

import (
	"fmt"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PaymentSummary is the derived monetary state of one reservation.
type PaymentSummary struct {
	ReservationID string `json:"reservationID"`

	// TotalPaid is payments minus refunds. It can go negative when refunds
	// exceed payments (e.g. compensating entries after a cancellation).
	TotalPaid domain.Money `json:"totalPaid"`

	// DepositReturned is the cumulative amount of deposit handed back.
	DepositReturned domain.Money `json:"depositReturned"`

	// Outstanding is the unpaid part of the total, clamped at zero.
	Outstanding domain.Money `json:"outstanding"`

	// Overpayment is any excess over the total. It is reported explicitly
	// rather than being folded into a negative outstanding balance.
	Overpayment domain.Money `json:"overpayment"`

	// PercentPaid is totalPaid/total as a percentage, one decimal place,
	// clamped to [0,100] for display.
	PercentPaid decimal.Decimal `json:"percentPaid"`

	// RawPercentPaid is the same ratio without clamping or rounding.
	RawPercentPaid decimal.Decimal `json:"rawPercentPaid"`
}

// Summarize folds a reservation's transactions into a PaymentSummary.
// A currency mismatch between the reservation total and any transaction
// amount fails with ErrCurrencyMismatch; it is never silently coerced.
func Summarize(reservation domain.Reservation, transactions []domain.RentalTransaction) (PaymentSummary, error) {
	currency := reservation.Total.Currency
	totalPaid := domain.Zero(currency)
	depositReturned := domain.Zero(currency)

	for _, txn := range transactions {
		if !txn.Amount.SameCurrency(reservation.Total) {
			return PaymentSummary{}, fmt.Errorf("%w: transaction %s is %s, reservation total is %s",
				apperrors.ErrCurrencyMismatch, txn.TransactionID, txn.Amount.Currency, currency)
		}
		var err error
		switch txn.Kind {
		case domain.KindPayment:
			totalPaid, err = totalPaid.Add(txn.Amount)
		case domain.KindRefund:
			totalPaid, err = totalPaid.Sub(txn.Amount)
		case domain.KindDepositReturn:
			depositReturned, err = depositReturned.Add(txn.Amount)
		default:
			return PaymentSummary{}, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, txn.Kind)
		}
		if err != nil {
			return PaymentSummary{}, err
		}
	}

	outstanding := domain.Zero(currency)
	overpayment := domain.Zero(currency)
	if diff := reservation.Total.Amount - totalPaid.Amount; diff > 0 {
		outstanding.Amount = diff
	} else {
		overpayment.Amount = -diff
	}

	raw := hundred
	if !reservation.Total.IsZero() {
		raw = totalPaid.RatioOf(reservation.Total).Mul(hundred)
	}

	return PaymentSummary{
		ReservationID:   reservation.ReservationID,
		TotalPaid:       totalPaid,
		DepositReturned: depositReturned,
		Outstanding:     outstanding,
		Overpayment:     overpayment,
		PercentPaid:     clampPercent(raw),
		RawPercentPaid:  raw,
	}, nil
}

// clampPercent rounds half-up to one decimal and clamps into [0,100].
func clampPercent(raw decimal.Decimal) decimal.Decimal {
	p := raw.Round(1)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
