package services

import (
	"github.com/festarent/rental_mgmt_app/internal/core/alerting"
	portsrepo "github.com/festarent/rental_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/festarent/rental_mgmt_app/internal/core/ports/services"
	"github.com/festarent/rental_mgmt_app/internal/platform/events"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher events.Publisher, clock alerting.Clock) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Reservation = NewReservationService(repos.ReservationRepo, repos.ClientRepo)
	container.Reconciliation = NewReconciliationService(repos.ReservationRepo, publisher)
	container.Alerts = NewAlertService(repos.InventoryRepo, clock)
	container.Client = NewClientService(repos.ClientRepo)
	container.PaymentMethod = NewPaymentMethodService(repos.PaymentMethodRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.ReservationSvcFacade    = (*reservationService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
	_ portssvc.AlertSvcFacade          = (*alertService)(nil)
	_ portssvc.ClientSvcFacade         = (*clientService)(nil)
	_ portssvc.PaymentMethodSvcFacade  = (*paymentMethodService)(nil)
)
