// Package alerting classifies time-sensitive inventory and maintenance state:
// expiring stock lots and due maintenance tasks. The reference date is always
// injected (see Clock), so classifications are deterministic and testable.
package alerting

import (
	"time"

	"github.com/festarent/rental_mgmt_app/internal/core/domain"
)

// Business thresholds, in days. Applied uniformly across tenants.
const (
	LotUpcomingDays         = 30
	LotUrgentDays           = 7
	MaintenanceUpcomingDays = 7
)

// LotAlertLevel classifies a stock lot by proximity to its expiration date.
type LotAlertLevel string

const (
	LotNone     LotAlertLevel = "NONE" // no expiration date, or nothing left to expire
	LotOK       LotAlertLevel = "OK"
	LotUpcoming LotAlertLevel = "UPCOMING" // expires within 30 days
	LotUrgent   LotAlertLevel = "URGENT"   // expires within 7 days
	LotExpired  LotAlertLevel = "EXPIRED"
)

// MaintenanceAlertLevel classifies a pending maintenance task by due date.
type MaintenanceAlertLevel string

const (
	MaintenanceNone     MaintenanceAlertLevel = "NONE"
	MaintenanceOK       MaintenanceAlertLevel = "OK"
	MaintenanceUpcoming MaintenanceAlertLevel = "UPCOMING" // due within 7 days
	MaintenanceOverdue  MaintenanceAlertLevel = "OVERDUE"
)

// DaysUntil returns the number of whole days from reference to target,
// rounding partial days up. Negative means target is already past.
func DaysUntil(reference, target time.Time) int {
	ref := truncateToDay(reference)
	tgt := target
	diff := tgt.Sub(ref)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClassifyLot grades a lot's expiry urgency as of today. Fully consumed lots
// never alert regardless of date.
func ClassifyLot(lot domain.Lot, today time.Time) LotAlertLevel {
	if lot.ExpirationDate == nil || lot.CurrentQuantity == 0 {
		return LotNone
	}
	days := DaysUntil(today, *lot.ExpirationDate)
	switch {
	case days < 0:
		return LotExpired
	case days <= LotUrgentDays:
		return LotUrgent
	case days <= LotUpcomingDays:
		return LotUpcoming
	default:
		return LotOK
	}
}

// ClassifyMaintenance grades a task's due-date urgency as of today. Only
// Pending tasks alert; any other status is NONE.
func ClassifyMaintenance(task domain.MaintenanceTask, today time.Time) MaintenanceAlertLevel {
	if task.Status != domain.MaintenancePending || task.ScheduledDate == nil {
		return MaintenanceNone
	}
	days := DaysUntil(today, *task.ScheduledDate)
	switch {
	case days < 0:
		return MaintenanceOverdue
	case days <= MaintenanceUpcomingDays:
		return MaintenanceUpcoming
	default:
		return MaintenanceOK
	}
}

// LotAlert pairs a lot with its classification and day distance.
type LotAlert struct {
	Lot       domain.Lot    `json:"lot"`
	Level     LotAlertLevel `json:"level"`
	DaysUntil int           `json:"daysUntil"`
}

// MaintenanceAlert pairs a task with its classification and day distance.
type MaintenanceAlert struct {
	Task      domain.MaintenanceTask `json:"task"`
	Level     MaintenanceAlertLevel  `json:"level"`
	DaysUntil int                    `json:"daysUntil"`
}

// AlertSet is the dashboard payload: everything that needs attention today.
type AlertSet struct {
	AsOf        time.Time          `json:"asOf"`
	Lots        []LotAlert         `json:"lots"`
	Maintenance []MaintenanceAlert `json:"maintenance"`
}

// BuildAlertSet classifies every lot and task and keeps only the actionable
// ones (anything past OK). Input order is preserved; items are independent,
// so callers may shard large collections if they ever need to.
func BuildAlertSet(lots []domain.Lot, tasks []domain.MaintenanceTask, today time.Time) AlertSet {
	set := AlertSet{AsOf: today}
	for _, lot := range lots {
		level := ClassifyLot(lot, today)
		if level == LotNone || level == LotOK {
			continue
		}
		set.Lots = append(set.Lots, LotAlert{
			Lot:       lot,
			Level:     level,
			DaysUntil: DaysUntil(today, *lot.ExpirationDate),
		})
	}
	for _, task := range tasks {
		level := ClassifyMaintenance(task, today)
		if level == MaintenanceNone || level == MaintenanceOK {
			continue
		}
		set.Maintenance = append(set.Maintenance, MaintenanceAlert{
			Task:      task,
			Level:     level,
			DaysUntil: DaysUntil(today, *task.ScheduledDate),
		})
	}
	return set
}
