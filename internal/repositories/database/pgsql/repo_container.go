package pgsql

import (
	portsrepo "github.com/festarent/rental_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository onto a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ReservationRepo:   newPgxReservationRepository(pool),
		ClientRepo:        newPgxClientRepository(pool),
		PaymentMethodRepo: newPgxPaymentMethodRepository(pool),
		InventoryRepo:     newPgxInventoryRepository(pool),
	}
}
