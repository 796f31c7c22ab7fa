package models

import "time"

// Lot is the database row shape of an inventory batch. Rows here are written
// by the warehouse service; this application only reads them.
type Lot struct {
	LotID           string     `db:"lot_id"`
	TenantID        string     `db:"tenant_id"`
	ProductID       string     `db:"product_id"`
	ProductName     string     `db:"product_name"`
	ExpirationDate  *time.Time `db:"expiration_date"`
	InitialQuantity int        `db:"initial_quantity"`
	CurrentQuantity int        `db:"current_quantity"`
	AuditFields
}

// MaintenanceTask is the database row shape of a scheduled maintenance job.
type MaintenanceTask struct {
	TaskID        string     `db:"task_id"`
	TenantID      string     `db:"tenant_id"`
	AssetID       string     `db:"asset_id"`
	AssetName     string     `db:"asset_name"`
	Description   string     `db:"description"`
	ScheduledDate *time.Time `db:"scheduled_date"`
	CompletedDate *time.Time `db:"completed_date"`
	Status        string     `db:"status"`
	AuditFields
}
