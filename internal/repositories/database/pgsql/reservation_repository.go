package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	portsrepo "github.com/festarent/rental_mgmt_app/internal/core/ports/repositories"
	"github.com/festarent/rental_mgmt_app/internal/models"
	"github.com/festarent/rental_mgmt_app/internal/utils/mapping"
	"github.com/festarent/rental_mgmt_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReservationRepository persists reservations and their append-only
// transaction ledger. Reservation state updates are guarded by a version
// column: a stale expected version fails with apperrors.ErrConflict.
type PgxReservationRepository struct {
	BaseRepository
}

// newPgxReservationRepository creates a repository for reservation and ledger data.
func newPgxReservationRepository(pool *pgxpool.Pool) portsrepo.ReservationRepositoryFacade {
	return &PgxReservationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReservationRepositoryFacade = (*PgxReservationRepository)(nil)

const reservationColumns = `
	reservation_id, code, tenant_id, client_id, event_date, delivery_date,
	scheduled_return_date, currency_code, subtotal_minor, discount_minor,
	total_minor, deposit_minor, deposit_returned, status, payment_status,
	notes, version, created_at, created_by, last_updated_at, last_updated_by`

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var m models.Reservation
	err := row.Scan(
		&m.ReservationID, &m.Code, &m.TenantID, &m.ClientID, &m.EventDate,
		&m.DeliveryDate, &m.ScheduledReturnDate, &m.CurrencyCode,
		&m.SubtotalMinor, &m.DiscountMinor, &m.TotalMinor, &m.DepositMinor,
		&m.DepositReturned, &m.Status, &m.PaymentStatus, &m.Notes, &m.Version,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	return &m, nil
}

// FindReservationByID retrieves a reservation by its unique identifier.
func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	query := `SELECT` + reservationColumns + ` FROM reservations WHERE reservation_id = $1;`
	m, err := scanReservation(r.Pool.QueryRow(ctx, query, reservationID))
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainReservation(*m)
	return &d, nil
}

// FindReservationByCode retrieves a reservation by its tenant-unique code.
func (r *PgxReservationRepository) FindReservationByCode(ctx context.Context, tenantID, code string) (*domain.Reservation, error) {
	query := `SELECT` + reservationColumns + ` FROM reservations WHERE tenant_id = $1 AND code = $2;`
	m, err := scanReservation(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainReservation(*m)
	return &d, nil
}

// ListReservationsByTenant retrieves a page of reservations ordered by
// creation time descending, using keyset pagination.
func (r *PgxReservationRepository) ListReservationsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Reservation, *string, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, reservation_id) < ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, reservation_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0, limit)
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, nil, err
		}
		reservations = append(reservations, mapping.ToDomainReservation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}

	var token *string
	if len(reservations) > limit {
		reservations = reservations[:limit]
		last := reservations[len(reservations)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.ReservationID)
		token = &t
	}
	return reservations, token, nil
}

// SaveReservation inserts a newly created reservation.
func (r *PgxReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	m := mapping.ToModelReservation(reservation)
	query := `
		INSERT INTO reservations (
			reservation_id, code, tenant_id, client_id, event_date, delivery_date,
			scheduled_return_date, currency_code, subtotal_minor, discount_minor,
			total_minor, deposit_minor, deposit_returned, status, payment_status,
			notes, version, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReservationID, m.Code, m.TenantID, m.ClientID, m.EventDate,
		m.DeliveryDate, m.ScheduledReturnDate, m.CurrencyCode,
		m.SubtotalMinor, m.DiscountMinor, m.TotalMinor, m.DepositMinor,
		m.DepositReturned, m.Status, m.PaymentStatus, m.Notes, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reservation code %s", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to insert reservation %s: %w", m.ReservationID, err)
	}
	return nil
}

// stateUpdateQuery bumps the version and rewrites only the columns the engine
// derives: status, payment status and the deposit flag. Monetary columns and
// the code are immutable after creation.
const stateUpdateQuery = `
	UPDATE reservations
	SET status = $1, payment_status = $2, deposit_returned = $3,
	    last_updated_at = $4, last_updated_by = $5, version = version + 1
	WHERE reservation_id = $6 AND version = $7;
`

// UpdateReservationState applies derived state with compare-and-swap on the
// version column.
func (r *PgxReservationRepository) UpdateReservationState(ctx context.Context, reservation domain.Reservation, expectedVersion int64) error {
	result, err := r.Pool.Exec(ctx, stateUpdateQuery,
		string(reservation.Status), string(reservation.PaymentStatus), reservation.DepositReturned,
		reservation.LastUpdatedAt, reservation.LastUpdatedBy,
		reservation.ReservationID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation %s: %w", reservation.ReservationID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: reservation %s version %d", apperrors.ErrConflict, reservation.ReservationID, expectedVersion)
	}
	return nil
}

// FindTransactionsByReservationID returns the full ledger in recorded order.
func (r *PgxReservationRepository) FindTransactionsByReservationID(ctx context.Context, reservationID string) ([]domain.RentalTransaction, error) {
	query := `
		SELECT transaction_id, reservation_id, kind, amount_minor, currency_code,
		       method, external_reference, receipt_url, recorded_at, recorded_by
		FROM rental_transactions
		WHERE reservation_id = $1
		ORDER BY recorded_at ASC, transaction_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.RentalTransaction, 0)
	for rows.Next() {
		var m models.RentalTransaction
		if err := rows.Scan(
			&m.TransactionID, &m.ReservationID, &m.Kind, &m.AmountMinor, &m.CurrencyCode,
			&m.Method, &m.ExternalReference, &m.ReceiptURL, &m.RecordedAt, &m.RecordedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// AppendTransaction inserts a ledger entry and applies the reservation state
// CAS update in one database transaction, so a conflicting concurrent write
// leaves neither behind.
func (r *PgxReservationRepository) AppendTransaction(ctx context.Context, txn domain.RentalTransaction, reservation domain.Reservation, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO rental_transactions (
			transaction_id, reservation_id, kind, amount_minor, currency_code,
			method, external_reference, receipt_url, recorded_at, recorded_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		m.TransactionID, m.ReservationID, m.Kind, m.AmountMinor, m.CurrencyCode,
		m.Method, m.ExternalReference, m.ReceiptURL, m.RecordedAt, m.RecordedBy,
	); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	result, err := tx.Exec(ctx, stateUpdateQuery,
		string(reservation.Status), string(reservation.PaymentStatus), reservation.DepositReturned,
		reservation.LastUpdatedAt, reservation.LastUpdatedBy,
		reservation.ReservationID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation %s: %w", reservation.ReservationID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: reservation %s version %d", apperrors.ErrConflict, reservation.ReservationID, expectedVersion)
	}

	return r.Commit(ctx, tx)
}
