package pgsql

import (
	"context"
	"fmt"

	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	portsrepo "github.com/festarent/rental_mgmt_app/internal/core/ports/repositories"
	"github.com/festarent/rental_mgmt_app/internal/models"
	"github.com/festarent/rental_mgmt_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxInventoryRepository reads lot and maintenance rows. The rows are written
// by the warehouse side of the system, so this repository is read-only.
type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func (r *PgxInventoryRepository) ListLotsByTenant(ctx context.Context, tenantID string) ([]domain.Lot, error) {
	query := `
		SELECT lot_id, tenant_id, product_id, product_name, expiration_date,
		       initial_quantity, current_quantity,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM lots
		WHERE tenant_id = $1
		ORDER BY expiration_date ASC NULLS LAST, lot_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	defer rows.Close()

	lots := make([]domain.Lot, 0)
	for rows.Next() {
		var m models.Lot
		err := rows.Scan(
			&m.LotID, &m.TenantID, &m.ProductID, &m.ProductName, &m.ExpirationDate,
			&m.InitialQuantity, &m.CurrentQuantity,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lot: %w", err)
		}
		lots = append(lots, mapping.ToDomainLot(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lots: %w", err)
	}
	return lots, nil
}

func (r *PgxInventoryRepository) ListMaintenanceTasksByTenant(ctx context.Context, tenantID string) ([]domain.MaintenanceTask, error) {
	query := `
		SELECT task_id, tenant_id, asset_id, asset_name, description,
		       scheduled_date, completed_date, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM maintenance_tasks
		WHERE tenant_id = $1
		ORDER BY scheduled_date ASC NULLS LAST, task_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.MaintenanceTask, 0)
	for rows.Next() {
		var m models.MaintenanceTask
		err := rows.Scan(
			&m.TaskID, &m.TenantID, &m.AssetID, &m.AssetName, &m.Description,
			&m.ScheduledDate, &m.CompletedDate, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance task: %w", err)
		}
		tasks = append(tasks, mapping.ToDomainMaintenanceTask(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maintenance tasks: %w", err)
	}
	return tasks, nil
}
