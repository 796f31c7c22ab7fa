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

// reservationService provides reservation creation and retrieval.
type reservationService struct {
	reservationRepo portsrepo.ReservationRepositoryFacade
	clientRepo      portsrepo.ClientRepositoryFacade
}

// NewReservationService creates a new ReservationService.
func NewReservationService(reservationRepo portsrepo.ReservationRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade) portssvc.ReservationSvcFacade {
	return &reservationService{
		reservationRepo: reservationRepo,
		clientRepo:      clientRepo,
	}
}

var _ portssvc.ReservationSvcFacade = (*reservationService)(nil)

// CreateReservation validates and persists a new reservation. It starts in
// REQUESTED/PENDING; total is derived from subtotal - discount, never taken
// from the request.
func (s *reservationService) CreateReservation(ctx context.Context, tenantID string, req dto.CreateReservationRequest, creatorUserID string) (*domain.Reservation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, req.ClientID)
		}
		logger.Error("Failed to fetch client for reservation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	if client.TenantID != tenantID {
		// Obscure existence of other tenants' clients.
		return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, req.ClientID)
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client %s is inactive", apperrors.ErrValidation, req.ClientID)
	}

	if existing, err := s.reservationRepo.FindReservationByCode(ctx, tenantID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: reservation code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check reservation code uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check reservation code: %w", err)
	}

	currency := req.Subtotal.Currency
	discount := domain.Zero(currency)
	if req.Discount != nil {
		discount = req.Discount.ToDomain()
	}
	deposit := domain.Zero(currency)
	if req.Deposit != nil {
		deposit = req.Deposit.ToDomain()
		if deposit.IsNegative() {
			return nil, fmt.Errorf("%w: deposit must not be negative", apperrors.ErrValidation)
		}
		if !deposit.SameCurrency(domain.Zero(currency)) {
			return nil, fmt.Errorf("%w: deposit %s vs subtotal %s", apperrors.ErrCurrencyMismatch, deposit.Currency, currency)
		}
	}

	now := time.Now().UTC()
	reservation := domain.Reservation{
		ReservationID:       uuid.NewString(),
		Code:                req.Code,
		TenantID:            tenantID,
		ClientID:            req.ClientID,
		EventDate:           req.EventDate,
		DeliveryDate:        req.DeliveryDate,
		ScheduledReturnDate: req.ScheduledReturnDate,
		Subtotal:            req.Subtotal.ToDomain(),
		Discount:            discount,
		Deposit:             deposit,
		Status:              domain.StatusRequested,
		PaymentStatus:       domain.PaymentPending,
		Notes:               req.Notes,
		Version:             1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := reservation.DeriveTotal(); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.SaveReservation(ctx, reservation); err != nil {
		logger.Error("Failed to save reservation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	logger.Info("Reservation created", slog.String("reservation_id", reservation.ReservationID), slog.String("code", reservation.Code))
	return &reservation, nil
}

// GetReservationByID retrieves a reservation, scoped to the tenant.
func (s *reservationService) GetReservationByID(ctx context.Context, tenantID, reservationID string) (*domain.Reservation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find reservation", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		}
		return nil, fmt.Errorf("failed to find reservation %s: %w", reservationID, err)
	}
	if reservation.TenantID != tenantID {
		return nil, apperrors.ErrNotFound // Obscure existence
	}
	return reservation, nil
}

// ListReservations retrieves a paginated list of reservations for a tenant.
func (s *reservationService) ListReservations(ctx context.Context, tenantID string, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	reservations, nextToken, err := s.reservationRepo.ListReservationsByTenant(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list reservations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}

	responses := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		responses[i] = dto.ToReservationResponse(&reservations[i])
	}

	return &dto.ListReservationsResponse{
		Reservations: responses,
		NextToken:    nextToken,
	}, nil
}

// ListTransactions returns the full ledger for one reservation in recorded order.
func (s *reservationService) ListTransactions(ctx context.Context, tenantID, reservationID string) ([]domain.RentalTransaction, error) {
	if _, err := s.GetReservationByID(ctx, tenantID, reservationID); err != nil {
		return nil, err
	}
	transactions, err := s.reservationRepo.FindTransactionsByReservationID(ctx, reservationID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch transactions", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		return nil, fmt.Errorf("failed to retrieve transactions for reservation %s: %w", reservationID, err)
	}
	return transactions, nil
}
