package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"github.com/taskboard/taskboard/internal/pkg/paging"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectFilter struct {
	Status     *model.ProjectStatus
	Priority   *model.Priority
	CategoryID *uuid.UUID
	Search     string
}

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*model.Project, error)
	Find(ctx context.Context, id uuid.UUID) (*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
	ListWithCursor(ctx context.Context, ownerID uuid.UUID, f ProjectFilter, w paging.Window) ([]*model.Project, error)
	TaskCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.TaskCounts, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &model.Project{}, "name = ? AND created_by_id = ?", p.Name, p.CreatedByID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrDuplicateName
		}
		return translate(tx.Omit(clause.Associations).Create(p).Error, errs.ErrDuplicateName)
	})
}

func (r *projectRepo) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND created_by_id = ? AND is_active = ?", id, ownerID, true).
		First(&p).Error
	return &p, translate(err, nil)
}

// Find loads a project regardless of owner and activity. Callers decide what
// an inactive or foreign project means.
func (r *projectRepo) Find(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return &p, translate(err, nil)
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &model.Project{}, "name = ? AND created_by_id = ? AND id <> ?", p.Name, p.CreatedByID, p.ID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrDuplicateName
		}
		return translate(tx.Omit(clause.Associations).Save(p).Error, errs.ErrDuplicateName)
	})
}

func (r *projectRepo) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.Where("id = ? AND created_by_id = ? AND is_active = ?", id, ownerID, true).First(&p).Error; err != nil {
			return translate(err, nil)
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		if err := tx.Omit(clause.Associations).Delete(&p).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
}

func (r *projectRepo) ListWithCursor(ctx context.Context, ownerID uuid.UUID, f ProjectFilter, w paging.Window) ([]*model.Project, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("created_by_id = ? AND is_active = ?", ownerID, true)

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Priority != nil {
		q = q.Where("priority = ?", *f.Priority)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		pat := likePattern(f.Search)
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\\')", pat, pat)
	}

	// (created_at, id) < (afterCreatedAt, afterID)
	if w.HasCursor() {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)", w.AfterCreatedAt, w.AfterCreatedAt, w.AfterID)
	}

	var items []*model.Project
	return items, q.Order("created_at DESC, id DESC").Limit(w.Limit).Find(&items).Error
}

// TaskCounts aggregates active tasks per project.
func (r *projectRepo) TaskCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.TaskCounts, error) {
	out := make(map[uuid.UUID]model.TaskCounts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		ProjectID uuid.UUID
		Total     int64
		Completed int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("project_id, COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed", model.TaskCompleted).
		Where("project_id IN ? AND is_active = ?", ids, true).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProjectID] = model.TaskCounts{Total: row.Total, Completed: row.Completed}
	}
	return out, nil
}
