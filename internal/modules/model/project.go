package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Project struct {
	Trackable

	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category"`
	StartDate   *datatypes.Date `json:"start_date"`
	DueDate     *datatypes.Date `json:"due_date"`
	Priority    Priority        `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status      ProjectStatus   `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`

	// Project <-> Category
	Category *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"category_details,omitempty"`

	// Project <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Project) TableName() string { return "projects" }

// TaskCounts are the active-task aggregates a project's progress is computed from.
type TaskCounts struct {
	Total     int64
	Completed int64
}

// ProgressPercentage is floor(completed/total*100), or 0 without tasks.
func (c TaskCounts) ProgressPercentage() int {
	if c.Total <= 0 {
		return 0
	}
	p := int(c.Completed * 100 / c.Total)
	if p > 100 {
		return 100
	}
	return p
}

func (p *Project) IsOverdue(today datatypes.Date) bool {
	return overdue(p.DueDate, p.Status.Terminal(), today)
}

func (p *Project) DaysUntilDue(today datatypes.Date) *int {
	return daysUntil(p.DueDate, today)
}
