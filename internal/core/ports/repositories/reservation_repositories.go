package repositories

import (
	"context"

	"github.com/festarent/rental_mgmt_app/internal/core/domain"
)

// ReservationReader defines read operations for reservation data.
type ReservationReader interface {
	// FindReservationByID retrieves a reservation by its unique identifier.
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// FindReservationByCode retrieves a reservation by its business code.
	FindReservationByCode(ctx context.Context, tenantID, code string) (*domain.Reservation, error)

	// ListReservationsByTenant retrieves a page of reservations using
	// token-based pagination. It returns the page, the next token, and an error.
	ListReservationsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Reservation, *string, error)
}

// ReservationWriter defines write operations for reservation data.
type ReservationWriter interface {
	// SaveReservation persists a newly created reservation.
	SaveReservation(ctx context.Context, reservation domain.Reservation) error

	// UpdateReservationState applies new status, payment status and deposit
	// flag with compare-and-swap on the version column. A stale expected
	// version fails with apperrors.ErrConflict and must be retried by the
	// caller against reloaded state.
	UpdateReservationState(ctx context.Context, reservation domain.Reservation, expectedVersion int64) error
}

// TransactionReader defines read operations for the reservation ledger.
type TransactionReader interface {
	// FindTransactionsByReservationID returns all ledger entries for a
	// reservation in recorded order.
	FindTransactionsByReservationID(ctx context.Context, reservationID string) ([]domain.RentalTransaction, error)
}

// TransactionAppender defines the single write operation on the ledger.
// There is deliberately no update or delete: corrections are recorded as
// compensating refund entries.
type TransactionAppender interface {
	// AppendTransaction atomically appends a ledger entry and applies the
	// reservation state update (CAS on expectedVersion) in one database
	// transaction. A version mismatch fails with apperrors.ErrConflict and
	// nothing is written.
	AppendTransaction(ctx context.Context, txn domain.RentalTransaction, reservation domain.Reservation, expectedVersion int64) error
}

// ReservationRepositoryFacade combines all reservation repository interfaces.
type ReservationRepositoryFacade interface {
	ReservationReader
	ReservationWriter
	TransactionReader
	TransactionAppender
}
