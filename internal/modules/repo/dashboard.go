package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DashboardRepo interface {
	Summarize(ctx context.Context, ownerID uuid.UUID, today datatypes.Date) (*model.Dashboard, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepo(db *gorm.DB) DashboardRepo {
	return &dashboardRepo{db: db}
}

// Summarize reads every count inside one transaction so the figures agree.
func (r *dashboardRepo) Summarize(ctx context.Context, ownerID uuid.UUID, today datatypes.Date) (*model.Dashboard, error) {
	var d model.Dashboard
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).
			Select(`COUNT(*) AS total,
				COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active,
				COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed,
				COALESCE(SUM(CASE WHEN due_date < ? AND status NOT IN (?, ?) THEN 1 ELSE 0 END), 0) AS overdue`,
				model.ProjectActive, model.ProjectCompleted, today, model.ProjectCompleted, model.ProjectCancelled).
			Where("created_by_id = ? AND is_active = ?", ownerID, true).
			Scan(&d.Projects).Error; err != nil {
			return fmt.Errorf("project summary: %w", err)
		}

		if err := owned(tx, ownerID).
			Select(`COUNT(*) AS total,
				COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS completed,
				COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS todo,
				COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS in_progress`,
				model.TaskCompleted, model.TaskTodo, model.TaskInProgress).
			Where("projects.is_active = ?", true).
			Scan(&d.Tasks).Error; err != nil {
			return fmt.Errorf("task summary: %w", err)
		}

		if err := tx.Model(&model.Category{}).
			Select("COUNT(*) AS total").
			Where("created_by_id = ? AND is_active = ?", ownerID, true).
			Scan(&d.Categories).Error; err != nil {
			return fmt.Errorf("category summary: %w", err)
		}
		return nil
	}, snapshotTx(r.db)...)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
