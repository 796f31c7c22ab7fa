package domain

// Client represents a rental client within a tenant.
type Client struct {
	ClientID   string `json:"clientID"` // Primary Key (UUID)
	TenantID   string `json:"tenantID"`
	Name       string `json:"name"`
	DocumentID string `json:"documentID"` // National/tax id, free-form
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Notes      string `json:"notes"`
	IsActive   bool   `json:"isActive"` // Soft delete flag
	AuditFields
}
