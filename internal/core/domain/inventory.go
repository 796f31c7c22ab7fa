package domain

import "time"

// Lot is a dated batch of stocked product. Lots are owned and mutated by the
// warehouse side of the system; this service only reads them for alerting.
type Lot struct {
	LotID           string     `json:"lotID"` // Primary Key (UUID)
	TenantID        string     `json:"tenantID"`
	ProductID       string     `json:"productID"`
	ProductName     string     `json:"productName"`
	ExpirationDate  *time.Time `json:"expirationDate,omitempty"`
	InitialQuantity int        `json:"initialQuantity"`
	CurrentQuantity int        `json:"currentQuantity"` // 0 <= current <= initial
	AuditFields
}

// MaintenanceStatus tracks a scheduled maintenance task.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "PENDING"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceCancelled  MaintenanceStatus = "CANCELLED"
)

// MaintenanceTask is a scheduled fixed-asset maintenance job. Only Pending
// tasks participate in alerting.
type MaintenanceTask struct {
	TaskID        string            `json:"taskID"` // Primary Key (UUID)
	TenantID      string            `json:"tenantID"`
	AssetID       string            `json:"assetID"`
	AssetName     string            `json:"assetName"`
	Description   string            `json:"description"`
	ScheduledDate *time.Time        `json:"scheduledDate,omitempty"`
	CompletedDate *time.Time        `json:"completedDate,omitempty"`
	Status        MaintenanceStatus `json:"status"`
	AuditFields
}
