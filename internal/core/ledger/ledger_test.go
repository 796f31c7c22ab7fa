package ledger_test

import (
	"testing"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copReservation(totalMinor int64) domain.Reservation {
	return domain.Reservation{
		ReservationID: "res-1",
		Subtotal:      domain.NewMoney(totalMinor, "COP"),
		Discount:      domain.Zero("COP"),
		Total:         domain.NewMoney(totalMinor, "COP"),
		Status:        domain.StatusRequested,
	}
}

func payment(amountMinor int64, currency string) domain.RentalTransaction {
	return domain.RentalTransaction{
		TransactionID: "txn",
		ReservationID: "res-1",
		Kind:          domain.KindPayment,
		Amount:        domain.NewMoney(amountMinor, currency),
		Method:        "Cash",
	}
}

func TestSummarize_NoTransactions(t *testing.T) {
	res := copReservation(500_000)

	summary, err := ledger.Summarize(res, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.TotalPaid.Amount)
	assert.Equal(t, int64(500_000), summary.Outstanding.Amount)
	assert.Equal(t, int64(0), summary.Overpayment.Amount)
	assert.True(t, summary.PercentPaid.IsZero(), "expected 0%%, got %s", summary.PercentPaid)
}

func TestSummarize_PartialPayment(t *testing.T) {
	res := copReservation(500_000)
	txns := []domain.RentalTransaction{payment(200_000, "COP")}

	summary, err := ledger.Summarize(res, txns)
	require.NoError(t, err)

	assert.Equal(t, int64(200_000), summary.TotalPaid.Amount)
	assert.Equal(t, int64(300_000), summary.Outstanding.Amount)
	assert.True(t, decimal.NewFromFloat(40.0).Equal(summary.PercentPaid), "expected 40.0, got %s", summary.PercentPaid)
}

func TestSummarize_FullyPaid(t *testing.T) {
	res := copReservation(500_000)
	txns := []domain.RentalTransaction{
		payment(200_000, "COP"),
		payment(300_000, "COP"),
	}

	summary, err := ledger.Summarize(res, txns)
	require.NoError(t, err)

	assert.Equal(t, int64(500_000), summary.TotalPaid.Amount)
	assert.Equal(t, int64(0), summary.Outstanding.Amount)
	assert.Equal(t, int64(0), summary.Overpayment.Amount)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.PercentPaid))
}

func TestSummarize_RefundReducesTotalPaid(t *testing.T) {
	res := copReservation(500_000)
	txns := []domain.RentalTransaction{
		payment(200_000, "COP"),
		{Kind: domain.KindRefund, Amount: domain.NewMoney(50_000, "COP")},
	}

	summary, err := ledger.Summarize(res, txns)
	require.NoError(t, err)

	assert.Equal(t, int64(150_000), summary.TotalPaid.Amount)
	assert.Equal(t, int64(350_000), summary.Outstanding.Amount)
	assert.True(t, decimal.NewFromFloat(30.0).Equal(summary.PercentPaid))
}

func TestSummarize_OverpaymentNeverNegativeOutstanding(t *testing.T) {
	res := copReservation(500_000)
	txns := []domain.RentalTransaction{payment(600_000, "COP")}

	summary, err := ledger.Summarize(res, txns)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.Outstanding.Amount, "outstanding must be clamped at zero")
	assert.Equal(t, int64(100_000), summary.Overpayment.Amount)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.PercentPaid), "displayed percent is clamped")
	assert.True(t, decimal.NewFromInt(120).Equal(summary.RawPercentPaid), "raw percent is not")
}

func TestSummarize_DepositReturnIsNotAPayment(t *testing.T) {
	res := copReservation(500_000)
	txns := []domain.RentalTransaction{
		payment(500_000, "COP"),
		{Kind: domain.KindDepositReturn, Amount: domain.NewMoney(100_000, "COP")},
	}

	summary, err := ledger.Summarize(res, txns)
	require.NoError(t, err)

	assert.Equal(t, int64(500_000), summary.TotalPaid.Amount)
	assert.Equal(t, int64(100_000), summary.DepositReturned.Amount)
	assert.Equal(t, int64(0), summary.Overpayment.Amount)
}

func TestSummarize_CurrencyMismatch(t *testing.T) {
	res := copReservation(500_000)
	txns := []domain.RentalTransaction{payment(100, "USD")}

	_, err := ledger.Summarize(res, txns)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
}

func TestSummarize_UnknownKindRejected(t *testing.T) {
	res := copReservation(500_000)
	txns := []domain.RentalTransaction{
		{Kind: domain.TransactionKind("CHARGEBACK"), Amount: domain.NewMoney(100, "COP")},
	}

	_, err := ledger.Summarize(res, txns)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSummarize_ZeroTotalIsFullyPaid(t *testing.T) {
	res := copReservation(0)

	summary, err := ledger.Summarize(res, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.Outstanding.Amount)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.PercentPaid))
}

func TestSummarize_IsPure(t *testing.T) {
	res := copReservation(500_000)
	txns := []domain.RentalTransaction{payment(200_000, "COP"), payment(100_000, "COP")}

	first, err := ledger.Summarize(res, txns)
	require.NoError(t, err)
	second, err := ledger.Summarize(res, txns)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummarize_PercentRoundsHalfUp(t *testing.T) {
	// 1/3 paid: 33.333...% rounds to 33.3; 2/3 paid: 66.666...% rounds to 66.7.
	res := copReservation(300)

	summary, err := ledger.Summarize(res, []domain.RentalTransaction{payment(100, "COP")})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(33.3).Equal(summary.PercentPaid), "got %s", summary.PercentPaid)

	summary, err = ledger.Summarize(res, []domain.RentalTransaction{payment(200, "COP")})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(66.7).Equal(summary.PercentPaid), "got %s", summary.PercentPaid)
}
