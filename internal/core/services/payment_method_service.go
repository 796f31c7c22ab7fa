package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	portsrepo "github.com/festarent/rental_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/festarent/rental_mgmt_app/internal/core/ports/services"
	"github.com/festarent/rental_mgmt_app/internal/dto"
	"github.com/festarent/rental_mgmt_app/internal/middleware"
	"github.com/google/uuid"
)

// paymentMethodService manages the payment-method catalog.
type paymentMethodService struct {
	methodRepo portsrepo.PaymentMethodRepositoryFacade
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(methodRepo portsrepo.PaymentMethodRepositoryFacade) portssvc.PaymentMethodSvcFacade {
	return &paymentMethodService{methodRepo: methodRepo}
}

var _ portssvc.PaymentMethodSvcFacade = (*paymentMethodService)(nil)

func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, tenantID string, req dto.CreatePaymentMethodRequest, creatorUserID string) (*domain.PaymentMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.methodRepo.ListPaymentMethodsByTenant(ctx, tenantID, true)
	if err != nil {
		logger.Error("Failed to list payment methods", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check payment methods: %w", err)
	}
	for _, m := range existing {
		if m.Name == req.Name {
			return nil, fmt.Errorf("%w: payment method %s", apperrors.ErrDuplicate, req.Name)
		}
	}

	now := time.Now().UTC()
	method := domain.PaymentMethod{
		MethodID: uuid.NewString(),
		TenantID: tenantID,
		Name:     req.Name,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.methodRepo.SavePaymentMethod(ctx, method); err != nil {
		logger.Error("Failed to save payment method", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}
	return &method, nil
}

func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, tenantID string, includeInactive bool) ([]domain.PaymentMethod, error) {
	methods, err := s.methodRepo.ListPaymentMethodsByTenant(ctx, tenantID, includeInactive)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list payment methods", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve payment methods: %w", err)
	}
	return methods, nil
}

func (s *paymentMethodService) DeactivatePaymentMethod(ctx context.Context, tenantID, methodID string, updaterUserID string) error {
	method, err := s.methodRepo.FindPaymentMethodByID(ctx, methodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find payment method", slog.String("error", err.Error()), slog.String("method_id", methodID))
		}
		return fmt.Errorf("failed to find payment method %s: %w", methodID, err)
	}
	if method.TenantID != tenantID {
		return apperrors.ErrNotFound // Obscure existence
	}
	if err := s.methodRepo.DeactivatePaymentMethod(ctx, methodID, updaterUserID); err != nil {
		return fmt.Errorf("failed to deactivate payment method: %w", err)
	}
	return nil
}
