package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Task struct {
	Trackable

	Name           string           `gorm:"type:varchar(200);not null" json:"name"`
	Description    string           `gorm:"type:text;not null;default:''" json:"description"`
	ProjectID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"project"`
	StartDate      *datatypes.Date  `json:"start_date"`
	DueDate        *datatypes.Date  `json:"due_date"`
	Priority       Priority         `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status         TaskStatus       `gorm:"type:varchar(15);not null;default:'todo'" json:"status"`
	EstimatedHours *decimal.Decimal `gorm:"type:numeric(5,2)" json:"estimated_hours"`
	ActualHours    *decimal.Decimal `gorm:"type:numeric(5,2)" json:"actual_hours"`
	Progress       int              `gorm:"not null;default:0" json:"progress"`
	IsActive       bool             `gorm:"not null;default:true" json:"is_active"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project_details,omitempty"`
}

func (Task) TableName() string { return "tasks" }

var (
	minEstimatedHours = decimal.RequireFromString("0.01")
	maxHours          = decimal.RequireFromString("999.99")
)

// ApplyStatusProgress forces progress for terminal statuses. It runs on every write.
func (t *Task) ApplyStatusProgress() {
	switch t.Status {
	case TaskCompleted:
		t.Progress = 100
	case TaskCancelled:
		t.Progress = 0
	}
}

func (t *Task) IsOverdue(today datatypes.Date) bool {
	return overdue(t.DueDate, t.Status.Terminal(), today)
}

func (t *Task) DaysUntilDue(today datatypes.Date) *int {
	return daysUntil(t.DueDate, today)
}

// CompletionStatus bands progress into a label.
func (t *Task) CompletionStatus() string {
	switch {
	case t.Progress <= 0:
		return "Not Started"
	case t.Progress <= 25:
		return "Just Started"
	case t.Progress <= 50:
		return "In Progress"
	case t.Progress <= 75:
		return "Almost Done"
	case t.Progress < 100:
		return "Nearly Complete"
	default:
		return "Completed"
	}
}

// ValidEstimatedHours accepts nil or a value in [0.01, 999.99] with at most two decimals.
func ValidEstimatedHours(h *decimal.Decimal) bool {
	if h == nil {
		return true
	}
	return twoPlaces(*h) && h.GreaterThanOrEqual(minEstimatedHours) && h.LessThanOrEqual(maxHours)
}

// ValidActualHours accepts nil or a value in [0, 999.99] with at most two decimals.
func ValidActualHours(h *decimal.Decimal) bool {
	if h == nil {
		return true
	}
	return twoPlaces(*h) && !h.IsNegative() && h.LessThanOrEqual(maxHours)
}

func twoPlaces(h decimal.Decimal) bool {
	return h.Equal(h.Truncate(2))
}
