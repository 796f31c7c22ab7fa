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

// clientService manages rental clients.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, tenantID string, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:   uuid.NewString(),
		TenantID:   tenantID,
		Name:       req.Name,
		DocumentID: req.DocumentID,
		Phone:      req.Phone,
		Email:      req.Email,
		Notes:      req.Notes,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}
	logger.Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, tenantID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	if client.TenantID != tenantID {
		return nil, apperrors.ErrNotFound // Obscure existence
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, tenantID string, params dto.ListClientsParams) (*dto.ListClientsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	clients, nextToken, err := s.clientRepo.ListClientsByTenant(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list clients", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve clients: %w", err)
	}

	responses := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = dto.ToClientResponse(&clients[i])
	}
	return &dto.ListClientsResponse{Clients: responses, NextToken: nextToken}, nil
}

func (s *clientService) UpdateClient(ctx context.Context, tenantID, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.GetClientByID(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		client.Name = *req.Name
		updated = true
	}
	if req.DocumentID != nil {
		client.DocumentID = *req.DocumentID
		updated = true
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
		updated = true
	}
	if req.Email != nil {
		client.Email = *req.Email
		updated = true
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
		updated = true
	}
	if !updated {
		return client, nil
	}

	client.LastUpdatedAt = time.Now().UTC()
	client.LastUpdatedBy = updaterUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) DeactivateClient(ctx context.Context, tenantID, clientID string, updaterUserID string) error {
	if _, err := s.GetClientByID(ctx, tenantID, clientID); err != nil {
		return err
	}
	if err := s.clientRepo.DeactivateClient(ctx, clientID, updaterUserID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to deactivate client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return fmt.Errorf("failed to deactivate client: %w", err)
	}
	return nil
}
