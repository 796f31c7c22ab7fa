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

// reservationHandler handles HTTP requests for reservations and their ledger.
type reservationHandler struct {
	reservationService    portssvc.ReservationSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReservationHandler(rs portssvc.ReservationSvcFacade, cs portssvc.ReconciliationSvcFacade) *reservationHandler {
	return &reservationHandler{
		reservationService:    rs,
		reconciliationService: cs,
	}
}

// registerReservationRoutes registers routes related to reservations.
func registerReservationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReservationHandler(services.Reservation, services.Reconciliation)

	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.createReservation)
		reservations.GET("", h.listReservations)
		reservations.GET("/:id", h.getReservation)
		reservations.GET("/:id/summary", h.getSummary)
		reservations.POST("/:id/status", h.changeStatus)
		reservations.POST("/:id/transactions", h.recordTransaction)
		reservations.GET("/:id/transactions", h.listTransactions)
	}
}

// identity pulls the tenant and user set by the auth middleware; it writes the
// 401 response itself when either is missing.
func identity(c *gin.Context) (tenantID, userID string, ok bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok = middleware.GetTenantIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	userID, ok = middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return tenantID, userID, true
}

// createReservation godoc
// @Summary Create a new reservation
// @Description Creates a reservation in REQUESTED state; the total is derived server-side
// @Tags reservations
// @Accept  json
// @Produce  json
// @Param   reservation body dto.CreateReservationRequest true "Reservation details"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Reservation code already exists"
// @Failure 500 {object} map[string]string "Failed to create reservation"
// @Security BearerAuth
// @Router /reservations [post]
func (h *reservationHandler) createReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReservation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	logger.Info("Received request to create reservation", slog.String("code", req.Code))

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate reservation code", slog.String("code", req.Code))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidAmount) || errors.Is(err, apperrors.ErrCurrencyMismatch) {
			logger.Warn("Validation error creating reservation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found creating reservation", slog.String("client_id", req.ClientID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create reservation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		}
		return
	}

	logger.Info("Reservation created successfully", slog.String("reservation_id", reservation.ReservationID))
	c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

// getReservation godoc
// @Summary Get a reservation by ID
// @Description Retrieves a reservation together with its derived payment summary
// @Tags reservations
// @Produce  json
// @Param   id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve reservation"
// @Security BearerAuth
// @Router /reservations/{id} [get]
func (h *reservationHandler) getReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("id")

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservationByID(c.Request.Context(), tenantID, reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		} else {
			logger.Error("Failed to get reservation", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservation"})
		}
		return
	}

	resp := dto.ToReservationResponse(reservation)
	if summary, err := h.reconciliationService.GetSummary(c.Request.Context(), tenantID, reservationID); err == nil {
		s := dto.ToPaymentSummaryResponse(*summary)
		resp.Summary = &s
	} else {
		logger.Warn("Failed to compute payment summary", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, resp)
}

// listReservations godoc
// @Summary List reservations
// @Description Lists the tenant's reservations, newest first, with keyset pagination
// @Tags reservations
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListReservationsResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list reservations"
// @Security BearerAuth
// @Router /reservations [get]
func (h *reservationHandler) listReservations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListReservationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	page, err := h.reservationService.ListReservations(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list reservations", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reservations"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// getSummary godoc
// @Summary Get the payment summary for a reservation
// @Description Folds the reservation's ledger into totals, outstanding balance and percent paid
// @Tags reservations
// @Produce  json
// @Param   id path string true "Reservation ID"
// @Success 200 {object} dto.PaymentSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /reservations/{id}/summary [get]
func (h *reservationHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("id")

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	summary, err := h.reconciliationService.GetSummary(c.Request.Context(), tenantID, reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		} else {
			logger.Error("Failed to compute payment summary", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentSummaryResponse(*summary))
}

// changeStatus godoc
// @Summary Change a reservation's fulfillment status
// @Description Applies a lifecycle transition; delivery on an unpaid reservation and cancellation after delivery require explicit override flags
// @Tags reservations
// @Accept  json
// @Produce  json
// @Param   id path string true "Reservation ID"
// @Param   transition body dto.ChangeStatusRequest true "Target status and override flags"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 409 {object} map[string]string "Payment required or concurrent update"
// @Failure 422 {object} map[string]string "Transition not allowed from current status"
// @Failure 500 {object} map[string]string "Failed to change status"
// @Security BearerAuth
// @Router /reservations/{id}/status [post]
func (h *reservationHandler) changeStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("id")

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	logger.Info("Received request to change reservation status",
		slog.String("reservation_id", reservationID),
		slog.String("target", string(req.Target)))

	reservation, err := h.reconciliationService.ChangeStatus(c.Request.Context(), tenantID, reservationID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, apperrors.ErrPaymentRequired):
			logger.Warn("Delivery blocked on unpaid reservation", slog.String("reservation_id", reservationID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "PAYMENT_REQUIRED"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Concurrent update detected", slog.String("reservation_id", reservationID))
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation was modified concurrently, retry", "kind": "CONFLICT"})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			logger.Warn("Invalid status transition", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to change reservation status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change status"})
		}
		return
	}

	logger.Info("Reservation status changed", slog.String("reservation_id", reservationID), slog.String("status", string(reservation.Status)))
	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// recordTransaction godoc
// @Summary Record a payment, refund or deposit return
// @Description Appends an immutable ledger entry and refreshes the derived payment status
// @Tags reservations
// @Accept  json
// @Produce  json
// @Param   id path string true "Reservation ID"
// @Param   transaction body dto.RecordTransactionRequest true "Ledger entry"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} map[string]string "Invalid amount, currency mismatch or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 409 {object} map[string]string "Concurrent update"
// @Failure 422 {object} map[string]string "Reservation no longer accepts this entry"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /reservations/{id}/transactions [post]
func (h *reservationHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("id")

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	logger.Info("Received request to record transaction",
		slog.String("reservation_id", reservationID),
		slog.String("kind", string(req.Kind)),
		slog.Int64("amount", req.Amount.Amount),
		slog.String("currency", req.Amount.Currency))

	reservation, summary, err := h.reconciliationService.RecordTransaction(c.Request.Context(), tenantID, reservationID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, apperrors.ErrTerminalReservation):
			logger.Warn("Entry rejected on terminal reservation", slog.String("reservation_id", reservationID))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Concurrent update detected", slog.String("reservation_id", reservationID))
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation was modified concurrently, retry", "kind": "CONFLICT"})
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrCurrencyMismatch), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Invalid ledger entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		}
		return
	}

	resp := dto.ToReservationResponse(reservation)
	s := dto.ToPaymentSummaryResponse(*summary)
	resp.Summary = &s

	logger.Info("Transaction recorded", slog.String("reservation_id", reservationID), slog.String("payment_status", string(reservation.PaymentStatus)))
	c.JSON(http.StatusCreated, resp)
}

// listTransactions godoc
// @Summary List a reservation's ledger entries
// @Description Returns the append-only transaction history, oldest first
// @Tags reservations
// @Produce  json
// @Param   id path string true "Reservation ID"
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /reservations/{id}/transactions [get]
func (h *reservationHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("id")

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	txns, err := h.reservationService.ListTransactions(c.Request.Context(), tenantID, reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		} else {
			logger.Error("Failed to list transactions", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}
