package repositories

import (
	"context"

	"github.com/festarent/rental_mgmt_app/internal/core/domain"
)

// ClientRepositoryFacade defines persistence operations for rental clients.
type ClientRepositoryFacade interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClientsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Client, *string, error)
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	// DeactivateClient soft-deletes a client; rows are never removed.
	DeactivateClient(ctx context.Context, clientID string, updatedBy string) error
}
