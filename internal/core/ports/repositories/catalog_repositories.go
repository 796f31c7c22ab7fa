package repositories

import (
	"context"

	"github.com/festarent/rental_mgmt_app/internal/core/domain"
)

// PaymentMethodRepositoryFacade defines persistence for the payment-method catalog.
type PaymentMethodRepositoryFacade interface {
	FindPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error)
	ListPaymentMethodsByTenant(ctx context.Context, tenantID string, includeInactive bool) ([]domain.PaymentMethod, error)
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error
	DeactivatePaymentMethod(ctx context.Context, methodID string, updatedBy string) error
}

// InventoryRepositoryFacade reads lot and maintenance rows for alerting. The
// rows themselves are owned and mutated by the warehouse/maintenance services.
type InventoryRepositoryFacade interface {
	ListLotsByTenant(ctx context.Context, tenantID string) ([]domain.Lot, error)
	ListMaintenanceTasksByTenant(ctx context.Context, tenantID string) ([]domain.MaintenanceTask, error)
}
