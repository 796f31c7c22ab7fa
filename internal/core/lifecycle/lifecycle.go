// Package lifecycle enforces the reservation state machine: which fulfillment
// transitions are legal, how the cached payment status is derived from the
// ledger, and which ledger entries a reservation in a given state accepts.
// All functions are pure; persistence and retries live with the caller.
package lifecycle

import (
	"fmt"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/core/ledger"
)

// allowedTransitions is the fulfillment transition table. Cancelling after
// delivery is absent on purpose: it is only reachable with the explicit
// administrative override (Options.ForceCancel).
var allowedTransitions = map[domain.ReservationStatus][]domain.ReservationStatus{
	domain.StatusRequested: {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed: {domain.StatusDelivered, domain.StatusCancelled},
	domain.StatusDelivered: {domain.StatusReturned},
	domain.StatusReturned:  {},
	domain.StatusCancelled: {},
}

// Options carries the explicit override flags for a transition. Both default
// to false and must never be implied by the caller's role or context.
type Options struct {
	// AllowUnpaidDelivery releases goods on a reservation that is not fully
	// paid. Normally delivery requires the ledger to show full payment.
	AllowUnpaidDelivery bool

	// ForceCancel permits cancelling an already-delivered reservation as an
	// administrative correction.
	ForceCancel bool
}

// TransitionError reports an illegal fulfillment transition with enough
// context for the caller to build a message. It unwraps to ErrInvalidTransition.
type TransitionError struct {
	From domain.ReservationStatus
	To   domain.ReservationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition reservation from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return apperrors.ErrInvalidTransition }

// CanTransition reports whether from -> to is in the allowed table.
func CanTransition(from, to domain.ReservationStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DerivePaymentStatus projects a ledger summary onto the cached payment
// status. Cancellation overrides everything: a cancelled reservation keeps
// its historical figures but always reports PaymentCancelled.
func DerivePaymentStatus(reservation domain.Reservation, summary ledger.PaymentSummary) domain.PaymentStatus {
	if reservation.Status == domain.StatusCancelled {
		return domain.PaymentCancelled
	}
	switch {
	case reservation.Total.IsZero():
		return domain.PaymentPaid
	case summary.Outstanding.IsZero() && summary.TotalPaid.IsPositive():
		return domain.PaymentPaid
	case summary.TotalPaid.IsPositive():
		return domain.PaymentPartial
	default:
		return domain.PaymentPending
	}
}

// Transition validates and applies a fulfillment status change. On success it
// returns an updated copy of the reservation with the new status and a
// freshly derived payment status; the input is never mutated. The status pair
// and payment status always change together, so callers can persist them as
// one atomic write.
func Transition(reservation domain.Reservation, target domain.ReservationStatus, summary ledger.PaymentSummary, opts Options) (domain.Reservation, error) {
	forcedCancel := target == domain.StatusCancelled &&
		reservation.Status == domain.StatusDelivered && opts.ForceCancel

	if !CanTransition(reservation.Status, target) && !forcedCancel {
		return domain.Reservation{}, &TransitionError{From: reservation.Status, To: target}
	}

	if target == domain.StatusDelivered && !opts.AllowUnpaidDelivery {
		if derived := DerivePaymentStatus(reservation, summary); derived != domain.PaymentPaid {
			return domain.Reservation{}, fmt.Errorf("%w: reservation %s is %s, outstanding %s",
				apperrors.ErrPaymentRequired, reservation.ReservationID, derived, summary.Outstanding)
		}
	}

	updated := reservation
	updated.Status = target
	updated.PaymentStatus = DerivePaymentStatus(updated, summary)
	return updated, nil
}

// ValidateEntry checks whether a ledger entry may be recorded against the
// reservation in its current state. Cancelled reservations accept refunds
// only; returned reservations still accept refunds and deposit returns.
func ValidateEntry(reservation domain.Reservation, txn domain.RentalTransaction) error {
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, txn.Amount)
	}
	if reservation.Status == domain.StatusCancelled && txn.Kind != domain.KindRefund {
		return fmt.Errorf("%w: cancelled reservation %s only accepts refunds, got %s",
			apperrors.ErrTerminalReservation, reservation.ReservationID, txn.Kind)
	}
	return nil
}

// ApplyEntry validates a ledger entry, recomputes the summary with the entry
// appended and returns the updated reservation plus the new summary. The
// reservation's cached payment status and deposit flag are refreshed in the
// same step; callers persist both together with the appended transaction.
func ApplyEntry(reservation domain.Reservation, existing []domain.RentalTransaction, txn domain.RentalTransaction) (domain.Reservation, ledger.PaymentSummary, error) {
	if err := ValidateEntry(reservation, txn); err != nil {
		return domain.Reservation{}, ledger.PaymentSummary{}, err
	}

	all := make([]domain.RentalTransaction, 0, len(existing)+1)
	all = append(all, existing...)
	all = append(all, txn)

	summary, err := ledger.Summarize(reservation, all)
	if err != nil {
		return domain.Reservation{}, ledger.PaymentSummary{}, err
	}

	updated := reservation
	updated.PaymentStatus = DerivePaymentStatus(updated, summary)
	if updated.Deposit.IsPositive() && summary.DepositReturned.Cmp(updated.Deposit) >= 0 {
		updated.DepositReturned = true
	}
	return updated, summary, nil
}
