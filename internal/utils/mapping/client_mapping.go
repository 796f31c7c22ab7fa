package mapping

import (
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	"github.com/festarent/rental_mgmt_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client.
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		DocumentID:  d.DocumentID,
		Phone:       d.Phone,
		Email:       d.Email,
		Notes:       d.Notes,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client.
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		DocumentID:  m.DocumentID,
		Phone:       m.Phone,
		Email:       m.Email,
		Notes:       m.Notes,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPaymentMethod converts a domain PaymentMethod to a model PaymentMethod.
func ToModelPaymentMethod(d domain.PaymentMethod) models.PaymentMethod {
	return models.PaymentMethod{
		MethodID:    d.MethodID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentMethod converts a model PaymentMethod to its domain form.
func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		MethodID:    m.MethodID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLot converts a model Lot to its domain form.
func ToDomainLot(m models.Lot) domain.Lot {
	return domain.Lot{
		LotID:           m.LotID,
		TenantID:        m.TenantID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		ExpirationDate:  m.ExpirationDate,
		InitialQuantity: m.InitialQuantity,
		CurrentQuantity: m.CurrentQuantity,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMaintenanceTask converts a model MaintenanceTask to its domain form.
func ToDomainMaintenanceTask(m models.MaintenanceTask) domain.MaintenanceTask {
	return domain.MaintenanceTask{
		TaskID:        m.TaskID,
		TenantID:      m.TenantID,
		AssetID:       m.AssetID,
		AssetName:     m.AssetName,
		Description:   m.Description,
		ScheduledDate: m.ScheduledDate,
		CompletedDate: m.CompletedDate,
		Status:        domain.MaintenanceStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
