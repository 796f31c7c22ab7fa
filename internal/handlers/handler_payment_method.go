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

// paymentMethodHandler handles HTTP requests for the payment-method catalog.
type paymentMethodHandler struct {
	methodService portssvc.PaymentMethodSvcFacade
}

func newPaymentMethodHandler(ms portssvc.PaymentMethodSvcFacade) *paymentMethodHandler {
	return &paymentMethodHandler{methodService: ms}
}

// registerPaymentMethodRoutes registers routes related to payment methods.
func registerPaymentMethodRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPaymentMethodHandler(services.PaymentMethod)

	methods := rg.Group("/payment-methods")
	{
		methods.POST("", h.createPaymentMethod)
		methods.GET("", h.listPaymentMethods)
		methods.DELETE("/:id", h.deactivatePaymentMethod)
	}
}

// createPaymentMethod godoc
// @Summary Add a payment method to the catalog
// @Tags payment-methods
// @Accept  json
// @Produce  json
// @Param   method body dto.CreatePaymentMethodRequest true "Method details"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Method name already exists"
// @Failure 500 {object} map[string]string "Failed to create payment method"
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *paymentMethodHandler) createPaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePaymentMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	method, err := h.methodService.CreatePaymentMethod(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create payment method", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment method"})
		}
		return
	}

	logger.Info("Payment method created", slog.String("method_id", method.MethodID), slog.String("name", method.Name))
	c.JSON(http.StatusCreated, dto.PaymentMethodResponse{MethodID: method.MethodID, Name: method.Name, IsActive: method.IsActive})
}

// listPaymentMethods godoc
// @Summary List the payment-method catalog
// @Tags payment-methods
// @Produce  json
// @Param   includeInactive query bool false "Include deactivated methods"
// @Success 200 {array} dto.PaymentMethodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list payment methods"
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *paymentMethodHandler) listPaymentMethods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	includeInactive := c.Query("includeInactive") == "true"
	methods, err := h.methodService.ListPaymentMethods(c.Request.Context(), tenantID, includeInactive)
	if err != nil {
		logger.Error("Failed to list payment methods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payment methods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentMethodResponses(methods))
}

// deactivatePaymentMethod godoc
// @Summary Deactivate a payment method
// @Description Deactivates the catalog entry; historical transactions keep the method string
// @Tags payment-methods
// @Produce  json
// @Param   id path string true "Method ID"
// @Success 204 "Method deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Method not found"
// @Failure 500 {object} map[string]string "Failed to deactivate payment method"
// @Security BearerAuth
// @Router /payment-methods/{id} [delete]
func (h *paymentMethodHandler) deactivatePaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	methodID := c.Param("id")

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	err := h.methodService.DeactivatePaymentMethod(c.Request.Context(), tenantID, methodID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		} else {
			logger.Error("Failed to deactivate payment method", slog.String("method_id", methodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate payment method"})
		}
		return
	}

	logger.Info("Payment method deactivated", slog.String("method_id", methodID))
	c.Status(http.StatusNoContent)
}
