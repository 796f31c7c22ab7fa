package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	portssvc "github.com/festarent/rental_mgmt_app/internal/core/ports/services"
	"github.com/festarent/rental_mgmt_app/internal/dto"
	"github.com/festarent/rental_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests for rental clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newClientHandler(services.Client)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deactivateClient)
	}
}

// createClient godoc
// @Summary Register a new client
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create client"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create client in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		}
		return
	}

	logger.Info("Client created successfully", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClient godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to retrieve client"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), tenantID, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to get client", slog.String("client_id", clientID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Lists the tenant's active clients with keyset pagination
// @Tags clients
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListClientsResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list clients"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	page, err := h.clientService.ListClients(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list clients", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// updateClient godoc
// @Summary Update a client
// @Description Patches the provided fields; omitted fields are left unchanged
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   id path string true "Client ID"
// @Param   client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to update client"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), tenantID, clientID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update client", slog.String("client_id", clientID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		}
		return
	}

	logger.Info("Client updated successfully", slog.String("client_id", clientID))
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deactivateClient godoc
// @Summary Deactivate a client
// @Description Soft-deletes the client; existing reservations keep their history
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 204 "Client deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to deactivate client"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deactivateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	err := h.clientService.DeactivateClient(c.Request.Context(), tenantID, clientID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to deactivate client", slog.String("client_id", clientID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate client"})
		}
		return
	}

	logger.Info("Client deactivated", slog.String("client_id", clientID))
	c.Status(http.StatusNoContent)
}
