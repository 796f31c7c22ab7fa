package models

// Client is the database row shape of a rental client.
type Client struct {
	ClientID   string `db:"client_id"`
	TenantID   string `db:"tenant_id"`
	Name       string `db:"name"`
	DocumentID string `db:"document_id"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	Notes      string `db:"notes"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// PaymentMethod is the database row shape of a catalog entry.
type PaymentMethod struct {
	MethodID string `db:"method_id"`
	TenantID string `db:"tenant_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
