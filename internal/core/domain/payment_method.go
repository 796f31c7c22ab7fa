package domain

// PaymentMethod is reference data for the payment-method dropdowns: cash,
// card, bank transfer and named wallet/gateway identifiers. The ledger treats
// the method string as opaque; this catalog only feeds the UI.
type PaymentMethod struct {
	MethodID string `json:"methodID"` // Primary Key (UUID)
	TenantID string `json:"tenantID"`
	Name     string `json:"name"` // e.g. "Cash", "Nequi", "Transfer"
	IsActive bool   `json:"isActive"`
	AuditFields
}
