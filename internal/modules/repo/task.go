package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"github.com/taskboard/taskboard/internal/pkg/paging"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskFilter struct {
	ProjectID *uuid.UUID
	Status    *model.TaskStatus
	Priority  *model.Priority
	Search    string
	// OverdueAsOf keeps tasks due before the date that are not terminal.
	OverdueAsOf *datatypes.Date
	DueOn       *datatypes.Date
}

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
	ListWithCursor(ctx context.Context, ownerID uuid.UUID, f TaskFilter, w paging.Window) ([]*model.Task, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

// owned restricts tasks to those whose project belongs to ownerID.
func owned(tx *gorm.DB, ownerID uuid.UUID) *gorm.DB {
	return tx.Model(&model.Task{}).
		Select("tasks.*").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.created_by_id = ? AND tasks.is_active = ?", ownerID, true)
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &model.Task{}, "name = ? AND project_id = ? AND created_by_id = ?", t.Name, t.ProjectID, t.CreatedByID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrDuplicateName
		}
		return translate(tx.Omit(clause.Associations).Create(t).Error, errs.ErrDuplicateName)
	})
}

func (r *taskRepo) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	err := owned(r.db.WithContext(ctx), ownerID).
		Preload("Project").
		Where("tasks.id = ?", id).
		First(&t).Error
	return &t, translate(err, nil)
}

func (r *taskRepo) Update(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &model.Task{}, "name = ? AND project_id = ? AND created_by_id = ? AND id <> ?", t.Name, t.ProjectID, t.CreatedByID, t.ID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrDuplicateName
		}
		return translate(tx.Omit(clause.Associations).Save(t).Error, errs.ErrDuplicateName)
	})
}

func (r *taskRepo) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.Task
		if err := owned(tx, ownerID).Where("tasks.id = ?", id).First(&t).Error; err != nil {
			return translate(err, nil)
		}
		return tx.Omit(clause.Associations).Delete(&model.Task{}, "id = ?", t.ID).Error
	})
}

func (r *taskRepo) ListWithCursor(ctx context.Context, ownerID uuid.UUID, f TaskFilter, w paging.Window) ([]*model.Task, error) {
	q := owned(r.db.WithContext(ctx), ownerID).Preload("Project")

	if f.ProjectID != nil {
		q = q.Where("tasks.project_id = ?", *f.ProjectID)
	}
	if f.Status != nil {
		q = q.Where("tasks.status = ?", *f.Status)
	}
	if f.Priority != nil {
		q = q.Where("tasks.priority = ?", *f.Priority)
	}
	if f.Search != "" {
		pat := likePattern(f.Search)
		q = q.Where("(LOWER(tasks.name) LIKE ? ESCAPE '\\' OR LOWER(tasks.description) LIKE ? ESCAPE '\\')", pat, pat)
	}
	if f.OverdueAsOf != nil {
		q = q.Where("tasks.due_date < ? AND tasks.status NOT IN ?", *f.OverdueAsOf, []model.TaskStatus{model.TaskCompleted, model.TaskCancelled})
	}
	if f.DueOn != nil {
		q = q.Where("tasks.due_date = ?", *f.DueOn)
	}

	if w.HasCursor() {
		q = q.Where("(tasks.created_at < ?) OR (tasks.created_at = ? AND tasks.id < ?)", w.AfterCreatedAt, w.AfterCreatedAt, w.AfterID)
	}

	var items []*model.Task
	return items, q.Order("tasks.created_at DESC, tasks.id DESC").Limit(w.Limit).Find(&items).Error
}
