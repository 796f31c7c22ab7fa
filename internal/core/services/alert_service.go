package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/festarent/rental_mgmt_app/internal/core/alerting"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	portsrepo "github.com/festarent/rental_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/festarent/rental_mgmt_app/internal/core/ports/services"
	"github.com/festarent/rental_mgmt_app/internal/middleware"
)

// alertService builds the expiry/maintenance dashboard for a tenant.
type alertService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	clock         alerting.Clock
}

// NewAlertService creates a new AlertService. A nil clock defaults to the
// system clock; tests inject a fixed one.
func NewAlertService(inventoryRepo portsrepo.InventoryRepositoryFacade, clock alerting.Clock) portssvc.AlertSvcFacade {
	if clock == nil {
		clock = alerting.SystemClock{}
	}
	return &alertService{inventoryRepo: inventoryRepo, clock: clock}
}

var _ portssvc.AlertSvcFacade = (*alertService)(nil)

// GetAlerts classifies all of the tenant's lots and pending maintenance tasks
// as of the clock's current day.
func (s *alertService) GetAlerts(ctx context.Context, tenantID string) (*alerting.AlertSet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lots, err := s.inventoryRepo.ListLotsByTenant(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list lots for alerting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve lots: %w", err)
	}
	tasks, err := s.inventoryRepo.ListMaintenanceTasksByTenant(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list maintenance tasks for alerting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve maintenance tasks: %w", err)
	}

	set := alerting.BuildAlertSet(lots, tasks, s.clock.Today())
	logger.Debug("Alerts computed",
		slog.Int("lot_alerts", len(set.Lots)),
		slog.Int("maintenance_alerts", len(set.Maintenance)),
	)
	return &set, nil
}

// ListLots returns the tenant's inventory lots, soonest expiration first.
func (s *alertService) ListLots(ctx context.Context, tenantID string) ([]domain.Lot, error) {
	lots, err := s.inventoryRepo.ListLotsByTenant(ctx, tenantID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list lots", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve lots: %w", err)
	}
	return lots, nil
}

// ListMaintenanceTasks returns the tenant's maintenance tasks, soonest
// scheduled date first.
func (s *alertService) ListMaintenanceTasks(ctx context.Context, tenantID string) ([]domain.MaintenanceTask, error) {
	tasks, err := s.inventoryRepo.ListMaintenanceTasksByTenant(ctx, tenantID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list maintenance tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve maintenance tasks: %w", err)
	}
	return tasks, nil
}
