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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPaymentMethodRepository persists the tenant payment-method catalog.
type PgxPaymentMethodRepository struct {
	BaseRepository
}

func newPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodRepositoryFacade {
	return &PgxPaymentMethodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*PgxPaymentMethodRepository)(nil)

const paymentMethodColumns = `
	method_id, tenant_id, name, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentMethod(row pgx.Row) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.MethodID, &m.TenantID, &m.Name, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan payment method: %w", err)
	}
	return &m, nil
}

func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	query := `SELECT` + paymentMethodColumns + ` FROM payment_methods WHERE method_id = $1;`
	m, err := scanPaymentMethod(r.Pool.QueryRow(ctx, query, methodID))
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainPaymentMethod(*m)
	return &d, nil
}

func (r *PgxPaymentMethodRepository) ListPaymentMethodsByTenant(ctx context.Context, tenantID string, includeInactive bool) ([]domain.PaymentMethod, error) {
	query := `SELECT` + paymentMethodColumns + ` FROM payment_methods WHERE tenant_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	methods := make([]domain.PaymentMethod, 0)
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, mapping.ToDomainPaymentMethod(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment methods: %w", err)
	}
	return methods, nil
}

func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(method)
	query := `
		INSERT INTO payment_methods (
			method_id, tenant_id, name, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MethodID, m.TenantID, m.Name, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert payment method %s: %w", m.MethodID, err)
	}
	return nil
}

func (r *PgxPaymentMethodRepository) DeactivatePaymentMethod(ctx context.Context, methodID string, updatedBy string) error {
	query := `
		UPDATE payment_methods
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $1
		WHERE method_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query, updatedBy, methodID)
	if err != nil {
		return fmt.Errorf("failed to deactivate payment method %s: %w", methodID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
