package dto

import "github.com/festarent/rental_mgmt_app/internal/core/domain"

// CreatePaymentMethodRequest adds a method to the tenant's catalog.
type CreatePaymentMethodRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

// PaymentMethodResponse is the API shape of a catalog entry.
type PaymentMethodResponse struct {
	MethodID string `json:"methodID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// ToPaymentMethodResponses maps catalog entries to their API shapes.
func ToPaymentMethodResponses(methods []domain.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = PaymentMethodResponse{MethodID: m.MethodID, Name: m.Name, IsActive: m.IsActive}
	}
	return out
}
