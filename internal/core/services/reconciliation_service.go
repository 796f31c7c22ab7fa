package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/core/ledger"
	"github.com/festarent/rental_mgmt_app/internal/core/lifecycle"
	portsrepo "github.com/festarent/rental_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/festarent/rental_mgmt_app/internal/core/ports/services"
	"github.com/festarent/rental_mgmt_app/internal/dto"
	"github.com/festarent/rental_mgmt_app/internal/middleware"
	"github.com/festarent/rental_mgmt_app/internal/platform/events"
	"github.com/google/uuid"
)

// reconciliationService is the engine facade: it loads a consistent snapshot
// through the repository, runs the pure ledger/lifecycle computations on it,
// and persists the result with optimistic concurrency. It holds no state
// beyond the current operation, so it is safe across concurrent requests.
type reconciliationService struct {
	reservationRepo portsrepo.ReservationRepositoryFacade
	publisher       events.Publisher
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(reservationRepo portsrepo.ReservationRepositoryFacade, publisher events.Publisher) portssvc.ReconciliationSvcFacade {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &reconciliationService{
		reservationRepo: reservationRepo,
		publisher:       publisher,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// loadSnapshot fetches the reservation (tenant-scoped) and its full ledger.
func (s *reconciliationService) loadSnapshot(ctx context.Context, tenantID, reservationID string) (*domain.Reservation, []domain.RentalTransaction, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find reservation %s: %w", reservationID, err)
	}
	if reservation.TenantID != tenantID {
		return nil, nil, apperrors.ErrNotFound // Obscure existence
	}
	transactions, err := s.reservationRepo.FindTransactionsByReservationID(ctx, reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve ledger for reservation %s: %w", reservationID, err)
	}
	return reservation, transactions, nil
}

// GetSummary computes the authoritative payment summary from the ledger.
func (s *reconciliationService) GetSummary(ctx context.Context, tenantID, reservationID string) (*ledger.PaymentSummary, error) {
	reservation, transactions, err := s.loadSnapshot(ctx, tenantID, reservationID)
	if err != nil {
		return nil, err
	}
	summary, err := ledger.Summarize(*reservation, transactions)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// RecordTransaction appends a ledger entry and refreshes the reservation's
// cached payment state in one atomic repository call. A concurrent writer
// makes the call fail with ErrConflict; the caller reloads and retries.
func (s *reconciliationService) RecordTransaction(ctx context.Context, tenantID, reservationID string, req dto.RecordTransactionRequest, actorUserID string) (*domain.Reservation, *ledger.PaymentSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, transactions, err := s.loadSnapshot(ctx, tenantID, reservationID)
	if err != nil {
		return nil, nil, err
	}

	txn := domain.RentalTransaction{
		TransactionID:     uuid.NewString(),
		ReservationID:     reservation.ReservationID,
		Kind:              req.Kind,
		Amount:            req.Amount.ToDomain(),
		Method:            req.Method,
		ExternalReference: req.ExternalReference,
		ReceiptURL:        req.ReceiptURL,
		RecordedAt:        time.Now().UTC(),
		RecordedBy:        actorUserID,
	}

	updated, summary, err := lifecycle.ApplyEntry(*reservation, transactions, txn)
	if err != nil {
		return nil, nil, err
	}
	updated.LastUpdatedAt = txn.RecordedAt
	updated.LastUpdatedBy = actorUserID

	if err := s.reservationRepo.AppendTransaction(ctx, txn, updated, reservation.Version); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent ledger write detected", slog.String("reservation_id", reservationID), slog.Int64("expected_version", reservation.Version))
			return nil, nil, err
		}
		logger.Error("Failed to append transaction", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		return nil, nil, fmt.Errorf("failed to append transaction: %w", err)
	}
	updated.Version = reservation.Version + 1

	// Best effort; a broker outage never fails the request.
	_ = s.publisher.PublishPaymentRecorded(ctx, events.PaymentRecordedEvent{
		ReservationID:    updated.ReservationID,
		TenantID:         updated.TenantID,
		TransactionID:    txn.TransactionID,
		Kind:             txn.Kind,
		AmountMinor:      txn.Amount.Amount,
		Currency:         txn.Amount.Currency,
		Method:           txn.Method,
		OutstandingMinor: summary.Outstanding.Amount,
		PaymentStatus:    updated.PaymentStatus,
		RecordedBy:       actorUserID,
		RecordedAt:       txn.RecordedAt,
	})

	logger.Info("Transaction recorded",
		slog.String("reservation_id", updated.ReservationID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.String("payment_status", string(updated.PaymentStatus)),
	)
	return &updated, &summary, nil
}

// ChangeStatus validates and applies a fulfillment transition together with a
// freshly derived payment status, persisted as one CAS write.
func (s *reconciliationService) ChangeStatus(ctx context.Context, tenantID, reservationID string, req dto.ChangeStatusRequest, actorUserID string) (*domain.Reservation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, transactions, err := s.loadSnapshot(ctx, tenantID, reservationID)
	if err != nil {
		return nil, err
	}

	summary, err := ledger.Summarize(*reservation, transactions)
	if err != nil {
		return nil, err
	}

	updated, err := lifecycle.Transition(*reservation, req.Target, summary, lifecycle.Options{
		AllowUnpaidDelivery: req.AllowUnpaidDelivery,
		ForceCancel:         req.Force,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorUserID

	if err := s.reservationRepo.UpdateReservationState(ctx, updated, reservation.Version); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent status change detected", slog.String("reservation_id", reservationID), slog.Int64("expected_version", reservation.Version))
			return nil, err
		}
		logger.Error("Failed to update reservation state", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		return nil, fmt.Errorf("failed to update reservation state: %w", err)
	}
	updated.Version = reservation.Version + 1

	_ = s.publisher.PublishStatusChanged(ctx, events.StatusChangedEvent{
		ReservationID: updated.ReservationID,
		TenantID:      updated.TenantID,
		Code:          updated.Code,
		From:          reservation.Status,
		To:            updated.Status,
		PaymentStatus: updated.PaymentStatus,
		ChangedBy:     actorUserID,
		ChangedAt:     now,
	})

	logger.Info("Reservation status changed",
		slog.String("reservation_id", updated.ReservationID),
		slog.String("from", string(reservation.Status)),
		slog.String("to", string(updated.Status)),
	)
	return &updated, nil
}
