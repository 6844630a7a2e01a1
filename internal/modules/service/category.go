package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/repo"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"go.uber.org/zap"
)

type CategoryService interface {
	Create(ctx context.Context, owner *model.User, in CreateCategoryInput) (*model.CategoryView, error)
	List(ctx context.Context, owner *model.User, in ListCategoriesInput) (*ListCategoriesOutput, error)
	Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.CategoryView, error)
	Update(ctx context.Context, owner *model.User, id uuid.UUID, in UpdateCategoryInput) (*model.CategoryView, error)
	Delete(ctx context.Context, owner *model.User, id uuid.UUID) error
	ListProjects(ctx context.Context, owner *model.User, id uuid.UUID, in ListProjectsInput) (*ListProjectsOutput, error)
}

type categoryService struct {
	r        repo.CategoryRepo
	projects ProjectService
	events   notifier
}

func NewCategoryService(r repo.CategoryRepo, projects ProjectService, pub EventPublisher, log *zap.Logger) CategoryService {
	return &categoryService{r: r, projects: projects, events: notifier{pub: pub, log: log}}
}

type CreateCategoryInput struct {
	Name        string
	Description *string
	Color       string
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Color       *string

	ClearDescription bool
}

type ListCategoriesInput struct {
	Search string
}

type ListCategoriesOutput struct {
	Items []*model.CategoryView `json:"items"`
}

func cleanColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return model.DefaultCategoryColor, nil
	}
	if !colorRe.MatchString(c) {
		return "", errs.Invalid("color must look like #RRGGBB")
	}
	return strings.ToUpper(c), nil
}

func (s *categoryService) Create(ctx context.Context, owner *model.User, in CreateCategoryInput) (*model.CategoryView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	name, err := cleanName(in.Name, 100)
	if err != nil {
		return nil, err
	}
	color, err := cleanColor(in.Color)
	if err != nil {
		return nil, err
	}

	c := &model.Category{Name: name, Description: in.Description, Color: color, IsActive: true}
	c.Touch(owner.ID)
	if err := s.r.Create(ctx, c); err != nil {
		return nil, err
	}

	v := model.NewCategoryView(c, model.CategoryCounts{})
	s.events.emit(ctx, EventCategoryCreated, c.ID, owner.ID, v)
	return v, nil
}

func (s *categoryService) List(ctx context.Context, owner *model.User, in ListCategoriesInput) (*ListCategoriesOutput, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	items, err := s.r.List(ctx, owner.ID, in.Search)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}
	counts, err := s.r.Counts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := &ListCategoriesOutput{Items: make([]*model.CategoryView, 0, len(items))}
	for _, c := range items {
		out.Items = append(out.Items, model.NewCategoryView(c, counts[c.ID]))
	}
	return out, nil
}

func (s *categoryService) Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.CategoryView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	c, err := s.r.Get(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *categoryService) Update(ctx context.Context, owner *model.User, id uuid.UUID, in UpdateCategoryInput) (*model.CategoryView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	c, err := s.r.Get(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if c.Name, err = cleanName(*in.Name, 100); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		c.Description = in.Description
	}
	if in.ClearDescription {
		c.Description = nil
	}
	if in.Color != nil {
		if c.Color, err = cleanColor(*in.Color); err != nil {
			return nil, err
		}
	}

	c.Touch(owner.ID)
	if err := s.r.Update(ctx, c); err != nil {
		return nil, err
	}

	v, err := s.view(ctx, c)
	if err != nil {
		return nil, err
	}
	s.events.emit(ctx, EventCategoryUpdated, c.ID, owner.ID, v)
	return v, nil
}

func (s *categoryService) Delete(ctx context.Context, owner *model.User, id uuid.UUID) error {
	if err := ownerOf(owner); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, owner.ID, id); err != nil {
		return err
	}
	s.events.emit(ctx, EventCategoryDeleted, id, owner.ID, nil)
	return nil
}

func (s *categoryService) ListProjects(ctx context.Context, owner *model.User, id uuid.UUID, in ListProjectsInput) (*ListProjectsOutput, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	if _, err := s.r.Get(ctx, owner.ID, id); err != nil {
		return nil, err
	}
	in.CategoryID = &id
	return s.projects.List(ctx, owner, in)
}

func (s *categoryService) view(ctx context.Context, c *model.Category) (*model.CategoryView, error) {
	counts, err := s.r.Counts(ctx, []uuid.UUID{c.ID})
	if err != nil {
		return nil, err
	}
	return model.NewCategoryView(c, counts[c.ID]), nil
}
