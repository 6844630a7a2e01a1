package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *model.Category) error
	Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, search string) ([]*model.Category, error)
	Counts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.CategoryCounts, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &model.Category{}, "name = ? AND created_by_id = ?", c.Name, c.CreatedByID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrDuplicateName
		}
		return translate(tx.Omit(clause.Associations).Create(c).Error, errs.ErrDuplicateName)
	})
}

// Get only sees active categories of ownerID; anything else is ErrNotFound.
func (r *categoryRepo) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND created_by_id = ? AND is_active = ?", id, ownerID, true).
		First(&c).Error
	return &c, translate(err, nil)
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &model.Category{}, "name = ? AND created_by_id = ? AND id <> ?", c.Name, c.CreatedByID, c.ID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrDuplicateName
		}
		return translate(tx.Omit(clause.Associations).Save(c).Error, errs.ErrDuplicateName)
	})
}

// Delete removes the category with its projects and their tasks in one transaction.
func (r *categoryRepo) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Category
		if err := tx.Where("id = ? AND created_by_id = ? AND is_active = ?", id, ownerID, true).First(&c).Error; err != nil {
			return translate(err, nil)
		}

		projectIDs := tx.Model(&model.Project{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("project_id IN (?)", projectIDs).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return fmt.Errorf("delete projects: %w", err)
		}
		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}

func (r *categoryRepo) List(ctx context.Context, ownerID uuid.UUID, search string) ([]*model.Category, error) {
	q := r.db.WithContext(ctx).Where("created_by_id = ? AND is_active = ?", ownerID, true)
	if search != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", likePattern(search))
	}

	var items []*model.Category
	return items, q.Order("name ASC").Find(&items).Error
}

func (r *categoryRepo) Counts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.CategoryCounts, error) {
	out := make(map[uuid.UUID]model.CategoryCounts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	type row struct {
		CategoryID uuid.UUID
		N          int64
	}

	var projects []row
	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("category_id, COUNT(*) AS n").
		Where("category_id IN ? AND is_active = ?", ids, true).
		Group("category_id").
		Scan(&projects).Error; err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	var tasks []row
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("projects.category_id AS category_id, COUNT(*) AS n").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.category_id IN ? AND projects.is_active = ? AND tasks.is_active = ?", ids, true, true).
		Group("projects.category_id").
		Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	for _, p := range projects {
		c := out[p.CategoryID]
		c.ProjectCount = p.N
		out[p.CategoryID] = c
	}
	for _, t := range tasks {
		c := out[t.CategoryID]
		c.TaskCount = t.N
		out[t.CategoryID] = c
	}
	return out, nil
}
