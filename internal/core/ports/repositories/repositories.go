package repositories

// RepositoryProvider aggregates every repository the service layer needs.
// Wired once at startup from the pgsql implementations.
type RepositoryProvider struct {
	ReservationRepo   ReservationRepositoryFacade
	ClientRepo        ClientRepositoryFacade
	PaymentMethodRepo PaymentMethodRepositoryFacade
	InventoryRepo     InventoryRepositoryFacade
}
