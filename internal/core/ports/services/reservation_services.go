package services

import (
	"context"

	"github.com/festarent/rental_mgmt_app/internal/core/alerting"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/core/ledger"
	"github.com/festarent/rental_mgmt_app/internal/dto"
)

// ReservationSvcFacade covers reservation creation and retrieval.
type ReservationSvcFacade interface {
	CreateReservation(ctx context.Context, tenantID string, req dto.CreateReservationRequest, creatorUserID string) (*domain.Reservation, error)
	GetReservationByID(ctx context.Context, tenantID, reservationID string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, tenantID string, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error)
	ListTransactions(ctx context.Context, tenantID, reservationID string) ([]domain.RentalTransaction, error)
}

// ReconciliationSvcFacade is the engine facade: ledger summaries, payment
// recording and status transitions, all against a consistent snapshot loaded
// through the repository. Conflict errors are returned to the caller to retry.
type ReconciliationSvcFacade interface {
	GetSummary(ctx context.Context, tenantID, reservationID string) (*ledger.PaymentSummary, error)
	RecordTransaction(ctx context.Context, tenantID, reservationID string, req dto.RecordTransactionRequest, actorUserID string) (*domain.Reservation, *ledger.PaymentSummary, error)
	ChangeStatus(ctx context.Context, tenantID, reservationID string, req dto.ChangeStatusRequest, actorUserID string) (*domain.Reservation, error)
}

// AlertSvcFacade computes the expiry/maintenance dashboard for a tenant.
type AlertSvcFacade interface {
	GetAlerts(ctx context.Context, tenantID string) (*alerting.AlertSet, error)
	ListLots(ctx context.Context, tenantID string) ([]domain.Lot, error)
	ListMaintenanceTasks(ctx context.Context, tenantID string) ([]domain.MaintenanceTask, error)
}

// ClientSvcFacade covers rental client management.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, tenantID string, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, tenantID, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, tenantID string, params dto.ListClientsParams) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, tenantID, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error)
	DeactivateClient(ctx context.Context, tenantID, clientID string, updaterUserID string) error
}

// PaymentMethodSvcFacade manages the payment-method catalog.
type PaymentMethodSvcFacade interface {
	CreatePaymentMethod(ctx context.Context, tenantID string, req dto.CreatePaymentMethodRequest, creatorUserID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, tenantID string, includeInactive bool) ([]domain.PaymentMethod, error)
	DeactivatePaymentMethod(ctx context.Context, tenantID, methodID string, updaterUserID string) error
}

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Reservation    ReservationSvcFacade
	Reconciliation ReconciliationSvcFacade
	Alerts         AlertSvcFacade
	Client         ClientSvcFacade
	PaymentMethod  PaymentMethodSvcFacade
}
