package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/festarent/rental_mgmt_app/internal/core/alerting"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInventoryRepository is a mock type for the InventoryRepositoryFacade interface
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) ListLotsByTenant(ctx context.Context, tenantID string) ([]domain.Lot, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lot), args.Error(1)
}

func (m *MockInventoryRepository) ListMaintenanceTasksByTenant(ctx context.Context, tenantID string) ([]domain.MaintenanceTask, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MaintenanceTask), args.Error(1)
}

func TestAlertService_GetAlerts(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	today := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	urgentExpiry := today.AddDate(0, 0, 3)
	farExpiry := today.AddDate(0, 0, 90)
	overdueDate := today.AddDate(0, 0, -2)

	mockRepo := new(MockInventoryRepository)
	mockRepo.On("ListLotsByTenant", ctx, tenantID).Return([]domain.Lot{
		{LotID: "a", ExpirationDate: &urgentExpiry, CurrentQuantity: 4},
		{LotID: "b", ExpirationDate: &farExpiry, CurrentQuantity: 4},
	}, nil).Once()
	mockRepo.On("ListMaintenanceTasksByTenant", ctx, tenantID).Return([]domain.MaintenanceTask{
		{TaskID: "t1", ScheduledDate: &overdueDate, Status: domain.MaintenancePending},
	}, nil).Once()

	svc := services.NewAlertService(mockRepo, alerting.FixedClock{Day: today})
	set, err := svc.GetAlerts(ctx, tenantID)

	require.NoError(t, err)
	assert.Equal(t, today, set.AsOf)
	require.Len(t, set.Lots, 1)
	assert.Equal(t, alerting.LotUrgent, set.Lots[0].Level)
	require.Len(t, set.Maintenance, 1)
	assert.Equal(t, alerting.MaintenanceOverdue, set.Maintenance[0].Level)
	mockRepo.AssertExpectations(t)
}
