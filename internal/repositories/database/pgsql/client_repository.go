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

// PgxClientRepository persists rental clients.
type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `
	client_id, tenant_id, name, document_id, phone, email, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (*models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID, &m.TenantID, &m.Name, &m.DocumentID, &m.Phone, &m.Email,
		&m.Notes, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	return &m, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT` + clientColumns + ` FROM clients WHERE client_id = $1;`
	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainClient(*m)
	return &d, nil
}

func (r *PgxClientRepository) ListClientsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Client, *string, error) {
	query := `SELECT` + clientColumns + `
		FROM clients
		WHERE tenant_id = $1 AND is_active = TRUE`
	args := []interface{}{tenantID}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, client_id) < ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, client_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0, limit)
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, nil, err
		}
		clients = append(clients, mapping.ToDomainClient(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	var token *string
	if len(clients) > limit {
		clients = clients[:limit]
		last := clients[len(clients)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.ClientID)
		token = &t
	}
	return clients, token, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (
			client_id, tenant_id, name, document_id, phone, email, notes, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID, m.TenantID, m.Name, m.DocumentID, m.Phone, m.Email, m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert client %s: %w", m.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $1, document_id = $2, phone = $3, email = $4, notes = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE client_id = $8;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.Name, m.DocumentID, m.Phone, m.Email, m.Notes,
		m.LastUpdatedAt, m.LastUpdatedBy, m.ClientID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) DeactivateClient(ctx context.Context, clientID string, updatedBy string) error {
	query := `
		UPDATE clients
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $1
		WHERE client_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query, updatedBy, clientID)
	if err != nil {
		return fmt.Errorf("failed to deactivate client %s: %w", clientID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
