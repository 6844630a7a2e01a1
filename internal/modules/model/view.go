package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Views are the serialized shapes returned to callers. Derived fields are
// computed when a view is built and never stored.

type UserView struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	SystemRole SystemRole `json:"system_role"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewUserView(u *User) *UserView {
	return &UserView{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		SystemRole: u.SystemRole,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type CategoryView struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Color        string     `json:"color"`
	IsActive     bool       `json:"is_active"`
	TaskCount    int64      `json:"task_count"`
	ProjectCount int64      `json:"project_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	UpdatedBy    *uuid.UUID `json:"updated_by"`
}

func NewCategoryView(c *Category, counts CategoryCounts) *CategoryView {
	return &CategoryView{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Color:        c.Color,
		IsActive:     c.IsActive,
		TaskCount:    counts.TaskCount,
		ProjectCount: counts.ProjectCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		CreatedBy:    c.CreatedByID,
		UpdatedBy:    c.UpdatedByID,
	}
}

type CategoryBrief struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

type ProjectView struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Description        *string        `json:"description"`
	Category           *uuid.UUID     `json:"category"`
	CategoryDetails    *CategoryBrief `json:"category_details"`
	StartDate          *string        `json:"start_date"`
	DueDate            *string        `json:"due_date"`
	Priority           Priority       `json:"priority"`
	Status             ProjectStatus  `json:"status"`
	IsActive           bool           `json:"is_active"`
	TaskCount          int64          `json:"task_count"`
	CompletedTaskCount int64          `json:"completed_task_count"`
	ProgressPercentage int            `json:"progress_percentage"`
	IsOverdue          bool           `json:"is_overdue"`
	DaysUntilDue       *int           `json:"days_until_due"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	CreatedBy          uuid.UUID      `json:"created_by"`
	UpdatedBy          *uuid.UUID     `json:"updated_by"`
}

func NewProjectView(p *Project, counts TaskCounts, today datatypes.Date) *ProjectView {
	v := &ProjectView{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Category:           p.CategoryID,
		StartDate:          FormatDate(p.StartDate),
		DueDate:            FormatDate(p.DueDate),
		Priority:           p.Priority,
		Status:             p.Status,
		IsActive:           p.IsActive,
		TaskCount:          counts.Total,
		CompletedTaskCount: counts.Completed,
		ProgressPercentage: counts.ProgressPercentage(),
		IsOverdue:          p.IsOverdue(today),
		DaysUntilDue:       p.DaysUntilDue(today),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		CreatedBy:          p.CreatedByID,
		UpdatedBy:          p.UpdatedByID,
	}
	if p.Category != nil {
		v.CategoryDetails = &CategoryBrief{ID: p.Category.ID, Name: p.Category.Name, Color: p.Category.Color}
	}
	return v
}

type ProjectBrief struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Status   ProjectStatus `json:"status"`
	Priority Priority      `json:"priority"`
}

type TaskView struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Project          uuid.UUID     `json:"project"`
	ProjectDetails   *ProjectBrief `json:"project_details"`
	StartDate        *string       `json:"start_date"`
	DueDate          *string       `json:"due_date"`
	Priority         Priority      `json:"priority"`
	Status           TaskStatus    `json:"status"`
	EstimatedHours   *string       `json:"estimated_hours"`
	ActualHours      *string       `json:"actual_hours"`
	Progress         int           `json:"progress"`
	IsActive         bool          `json:"is_active"`
	IsOverdue        bool          `json:"is_overdue"`
	DaysUntilDue     *int          `json:"days_until_due"`
	CompletionStatus string        `json:"completion_status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	CreatedBy        uuid.UUID     `json:"created_by"`
	UpdatedBy        *uuid.UUID    `json:"updated_by"`
}

func NewTaskView(t *Task, today datatypes.Date) *TaskView {
	v := &TaskView{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		Project:          t.ProjectID,
		StartDate:        FormatDate(t.StartDate),
		DueDate:          FormatDate(t.DueDate),
		Priority:         t.Priority,
		Status:           t.Status,
		EstimatedHours:   formatHours(t.EstimatedHours),
		ActualHours:      formatHours(t.ActualHours),
		Progress:         t.Progress,
		IsActive:         t.IsActive,
		IsOverdue:        t.IsOverdue(today),
		DaysUntilDue:     t.DaysUntilDue(today),
		CompletionStatus: t.CompletionStatus(),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
		CreatedBy:        t.CreatedByID,
		UpdatedBy:        t.UpdatedByID,
	}
	if t.Project != nil {
		v.ProjectDetails = &ProjectBrief{
			ID:       t.Project.ID,
			Name:     t.Project.Name,
			Status:   t.Project.Status,
			Priority: t.Project.Priority,
		}
	}
	return v
}

func formatHours(h *decimal.Decimal) *string {
	if h == nil {
		return nil
	}
	s := h.StringFixed(2)
	return &s
}
