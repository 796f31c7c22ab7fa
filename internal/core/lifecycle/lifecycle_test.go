package lifecycle_test

import (
	"testing"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/core/ledger"
	"github.com/festarent/rental_mgmt_app/internal/core/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationIn(status domain.ReservationStatus, totalMinor int64) domain.Reservation {
	return domain.Reservation{
		ReservationID: "res-1",
		Subtotal:      domain.NewMoney(totalMinor, "COP"),
		Discount:      domain.Zero("COP"),
		Total:         domain.NewMoney(totalMinor, "COP"),
		Status:        status,
		PaymentStatus: domain.PaymentPending,
	}
}

func summaryFor(t *testing.T, res domain.Reservation, txns ...domain.RentalTransaction) ledger.PaymentSummary {
	t.Helper()
	summary, err := ledger.Summarize(res, txns)
	require.NoError(t, err)
	return summary
}

func TestCanTransition_Table(t *testing.T) {
	statuses := []domain.ReservationStatus{
		domain.StatusRequested, domain.StatusConfirmed, domain.StatusDelivered,
		domain.StatusReturned, domain.StatusCancelled,
	}

	allowed := map[domain.ReservationStatus]map[domain.ReservationStatus]bool{
		domain.StatusRequested: {domain.StatusConfirmed: true, domain.StatusCancelled: true},
		domain.StatusConfirmed: {domain.StatusDelivered: true, domain.StatusCancelled: true},
		domain.StatusDelivered: {domain.StatusReturned: true},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			got := lifecycle.CanTransition(from, to)
			assert.Equal(t, allowed[from][to], got, "%s -> %s", from, to)
		}
	}
}

func TestTransition_InvalidPairReturnsTransitionError(t *testing.T) {
	res := reservationIn(domain.StatusRequested, 100_000)
	summary := summaryFor(t, res)

	_, err := lifecycle.Transition(res, domain.StatusDelivered, summary, lifecycle.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	var terr *lifecycle.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, domain.StatusRequested, terr.From)
	assert.Equal(t, domain.StatusDelivered, terr.To)
}

func TestTransition_TerminalStatesRejectEverything(t *testing.T) {
	targets := []domain.ReservationStatus{
		domain.StatusRequested, domain.StatusConfirmed, domain.StatusDelivered,
		domain.StatusReturned, domain.StatusCancelled,
	}
	for _, from := range []domain.ReservationStatus{domain.StatusReturned, domain.StatusCancelled} {
		res := reservationIn(from, 100_000)
		summary := summaryFor(t, res)
		for _, to := range targets {
			_, err := lifecycle.Transition(res, to, summary, lifecycle.Options{})
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s -> %s", from, to)
		}
	}
}

func TestTransition_DeliveryRequiresPayment(t *testing.T) {
	res := reservationIn(domain.StatusConfirmed, 500_000)
	summary := summaryFor(t, res)

	_, err := lifecycle.Transition(res, domain.StatusDelivered, summary, lifecycle.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentRequired)
}

func TestTransition_PartialPaymentBlocksDelivery(t *testing.T) {
	res := reservationIn(domain.StatusConfirmed, 500_000)
	summary := summaryFor(t, res, domain.RentalTransaction{
		Kind:   domain.KindPayment,
		Amount: domain.NewMoney(200_000, "COP"),
	})

	_, err := lifecycle.Transition(res, domain.StatusDelivered, summary, lifecycle.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentRequired)

	updated, err := lifecycle.Transition(res, domain.StatusDelivered, summary, lifecycle.Options{AllowUnpaidDelivery: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	assert.Equal(t, domain.PaymentPartial, updated.PaymentStatus)
}

func TestTransition_FullPaymentAllowsDelivery(t *testing.T) {
	res := reservationIn(domain.StatusConfirmed, 500_000)
	summary := summaryFor(t, res, domain.RentalTransaction{
		Kind:   domain.KindPayment,
		Amount: domain.NewMoney(500_000, "COP"),
	})

	updated, err := lifecycle.Transition(res, domain.StatusDelivered, summary, lifecycle.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
}

func TestTransition_UnpaidDeliveryWithOverride(t *testing.T) {
	res := reservationIn(domain.StatusConfirmed, 500_000)
	summary := summaryFor(t, res)

	updated, err := lifecycle.Transition(res, domain.StatusDelivered, summary, lifecycle.Options{AllowUnpaidDelivery: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	assert.Equal(t, domain.PaymentPending, updated.PaymentStatus)
}

func TestTransition_CancelAfterDeliveredNeedsForce(t *testing.T) {
	res := reservationIn(domain.StatusDelivered, 500_000)
	summary := summaryFor(t, res)

	_, err := lifecycle.Transition(res, domain.StatusCancelled, summary, lifecycle.Options{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	updated, err := lifecycle.Transition(res, domain.StatusCancelled, summary, lifecycle.Options{ForceCancel: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, domain.PaymentCancelled, updated.PaymentStatus)
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	res := reservationIn(domain.StatusRequested, 100_000)
	summary := summaryFor(t, res)

	_, err := lifecycle.Transition(res, domain.StatusConfirmed, summary, lifecycle.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRequested, res.Status)
}

func TestDerivePaymentStatus(t *testing.T) {
	pay := func(amount int64) domain.RentalTransaction {
		return domain.RentalTransaction{Kind: domain.KindPayment, Amount: domain.NewMoney(amount, "COP")}
	}

	t.Run("no payments is pending", func(t *testing.T) {
		res := reservationIn(domain.StatusRequested, 500_000)
		assert.Equal(t, domain.PaymentPending, lifecycle.DerivePaymentStatus(res, summaryFor(t, res)))
	})

	t.Run("partial payment", func(t *testing.T) {
		res := reservationIn(domain.StatusRequested, 500_000)
		assert.Equal(t, domain.PaymentPartial, lifecycle.DerivePaymentStatus(res, summaryFor(t, res, pay(200_000))))
	})

	t.Run("fully paid", func(t *testing.T) {
		res := reservationIn(domain.StatusRequested, 500_000)
		assert.Equal(t, domain.PaymentPaid, lifecycle.DerivePaymentStatus(res, summaryFor(t, res, pay(500_000))))
	})

	t.Run("zero total is paid", func(t *testing.T) {
		res := reservationIn(domain.StatusRequested, 0)
		assert.Equal(t, domain.PaymentPaid, lifecycle.DerivePaymentStatus(res, summaryFor(t, res)))
	})

	t.Run("cancelled overrides ledger", func(t *testing.T) {
		res := reservationIn(domain.StatusCancelled, 500_000)
		assert.Equal(t, domain.PaymentCancelled, lifecycle.DerivePaymentStatus(res, summaryFor(t, res, pay(500_000))))
	})
}

func TestValidateEntry(t *testing.T) {
	payment := domain.RentalTransaction{Kind: domain.KindPayment, Amount: domain.NewMoney(100, "COP")}
	refund := domain.RentalTransaction{Kind: domain.KindRefund, Amount: domain.NewMoney(100, "COP")}
	depositReturn := domain.RentalTransaction{Kind: domain.KindDepositReturn, Amount: domain.NewMoney(100, "COP")}

	t.Run("non-positive amount rejected", func(t *testing.T) {
		res := reservationIn(domain.StatusRequested, 100_000)
		zero := domain.RentalTransaction{Kind: domain.KindPayment, Amount: domain.Zero("COP")}
		assert.ErrorIs(t, lifecycle.ValidateEntry(res, zero), apperrors.ErrInvalidAmount)

		negative := domain.RentalTransaction{Kind: domain.KindPayment, Amount: domain.NewMoney(-100, "COP")}
		assert.ErrorIs(t, lifecycle.ValidateEntry(res, negative), apperrors.ErrInvalidAmount)
	})

	t.Run("cancelled accepts refunds only", func(t *testing.T) {
		res := reservationIn(domain.StatusCancelled, 100_000)
		assert.NoError(t, lifecycle.ValidateEntry(res, refund))
		assert.ErrorIs(t, lifecycle.ValidateEntry(res, payment), apperrors.ErrTerminalReservation)
		assert.ErrorIs(t, lifecycle.ValidateEntry(res, depositReturn), apperrors.ErrTerminalReservation)
	})

	t.Run("returned still accepts all kinds", func(t *testing.T) {
		res := reservationIn(domain.StatusReturned, 100_000)
		assert.NoError(t, lifecycle.ValidateEntry(res, payment))
		assert.NoError(t, lifecycle.ValidateEntry(res, refund))
		assert.NoError(t, lifecycle.ValidateEntry(res, depositReturn))
	})
}

func TestApplyEntry_RefreshesPaymentStatus(t *testing.T) {
	res := reservationIn(domain.StatusConfirmed, 500_000)

	txn := domain.RentalTransaction{Kind: domain.KindPayment, Amount: domain.NewMoney(500_000, "COP")}
	updated, summary, err := lifecycle.ApplyEntry(res, nil, txn)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, int64(0), summary.Outstanding.Amount)
	assert.Equal(t, domain.PaymentPending, res.PaymentStatus, "input must not be mutated")
}

func TestApplyEntry_DepositReturnedFlag(t *testing.T) {
	res := reservationIn(domain.StatusReturned, 500_000)
	res.Deposit = domain.NewMoney(100_000, "COP")

	partial := domain.RentalTransaction{Kind: domain.KindDepositReturn, Amount: domain.NewMoney(60_000, "COP")}
	updated, _, err := lifecycle.ApplyEntry(res, nil, partial)
	require.NoError(t, err)
	assert.False(t, updated.DepositReturned, "partial deposit return must not flip the flag")

	rest := domain.RentalTransaction{Kind: domain.KindDepositReturn, Amount: domain.NewMoney(40_000, "COP")}
	updated, _, err = lifecycle.ApplyEntry(updated, []domain.RentalTransaction{partial}, rest)
	require.NoError(t, err)
	assert.True(t, updated.DepositReturned)
}
