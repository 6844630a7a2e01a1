package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/repo"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ProjectService interface {
	Create(ctx context.Context, owner *model.User, in CreateProjectInput) (*model.ProjectView, error)
	List(ctx context.Context, owner *model.User, in ListProjectsInput) (*ListProjectsOutput, error)
	Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.ProjectView, error)
	Update(ctx context.Context, owner *model.User, id uuid.UUID, in UpdateProjectInput) (*model.ProjectView, error)
	Delete(ctx context.Context, owner *model.User, id uuid.UUID) error
	ListTasks(ctx context.Context, owner *model.User, id uuid.UUID, in ListTasksInput) (*ListTasksOutput, error)
}

type projectService struct {
	r          repo.ProjectRepo
	categories repo.CategoryRepo
	tasks      repo.TaskRepo
	events     notifier
	now        model.Clock
}

func NewProjectService(r repo.ProjectRepo, categories repo.CategoryRepo, tasks repo.TaskRepo, pub EventPublisher, log *zap.Logger, now model.Clock) ProjectService {
	return &projectService{
		r:          r,
		categories: categories,
		tasks:      tasks,
		events:     notifier{pub: pub, log: log},
		now:        now,
	}
}

type CreateProjectInput struct {
	Name        string
	Description *string
	CategoryID  *uuid.UUID
	StartDate   *datatypes.Date
	DueDate     *datatypes.Date
	Priority    string
	Status      string
}

// UpdateProjectInput carries PATCH semantics: nil leaves a field unchanged,
// a Clear flag sets the nullable field to null and wins over a value.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	CategoryID  *uuid.UUID
	StartDate   *datatypes.Date
	DueDate     *datatypes.Date
	Priority    *string
	Status      *string

	ClearDescription bool
	ClearCategory    bool
	ClearStartDate   bool
	ClearDueDate     bool
}

type ListProjectsInput struct {
	Status     string
	Priority   string
	CategoryID *uuid.UUID
	Search     string
	Cursor     string
	Limit      int
}

type ListProjectsOutput struct {
	Items      []*model.ProjectView `json:"items"`
	NextCursor string               `json:"next_cursor,omitempty"`
	HasMore    bool                 `json:"has_more"`
}

func (s *projectService) today() datatypes.Date { return model.Today(s.now()) }

// category resolves an optional category reference; it must be an active
// category of the same owner.
func (s *projectService) category(ctx context.Context, owner uuid.UUID, id *uuid.UUID) (*model.Category, error) {
	if id == nil {
		return nil, nil
	}
	c, err := s.categories.Get(ctx, owner, *id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrInvalidCategory
	}
	return c, err
}

func (s *projectService) Create(ctx context.Context, owner *model.User, in CreateProjectInput) (*model.ProjectView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	name, err := cleanName(in.Name, 100)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	status, err := parseProjectStatus(in.Status)
	if err != nil {
		return nil, err
	}
	cat, err := s.category(ctx, owner.ID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !model.ValidRange(in.StartDate, in.DueDate) {
		return nil, errs.ErrInvalidDateRange
	}

	p := &model.Project{
		Name:        name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		Priority:    priority,
		Status:      status,
		IsActive:    true,
	}
	p.Touch(owner.ID)
	if err := s.r.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Category = cat

	v := model.NewProjectView(p, model.TaskCounts{}, s.today())
	s.events.emit(ctx, EventProjectCreated, p.ID, owner.ID, v)
	return v, nil
}

func (s *projectService) List(ctx context.Context, owner *model.User, in ListProjectsInput) (*ListProjectsOutput, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	f := repo.ProjectFilter{CategoryID: in.CategoryID, Search: strings.TrimSpace(in.Search)}
	if in.Status != "" {
		st, err := parseProjectStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}
	if in.Priority != "" {
		pr, err := parsePriority(in.Priority)
		if err != nil {
			return nil, err
		}
		f.Priority = &pr
	}
	w, err := window(in.Cursor, in.Limit)
	if err != nil {
		return nil, err
	}
	limit := w.Limit
	w.Limit++

	rows, err := s.r.ListWithCursor(ctx, owner.ID, f, w)
	if err != nil {
		return nil, err
	}
	rows, next, more := page(rows, limit, func(p *model.Project) (time.Time, uuid.UUID) { return p.CreatedAt, p.ID })

	views, err := s.views(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &ListProjectsOutput{Items: views, NextCursor: next, HasMore: more}, nil
}

func (s *projectService) Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.ProjectView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	p, err := s.r.Get(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, p)
}

func (s *projectService) Update(ctx context.Context, owner *model.User, id uuid.UUID, in UpdateProjectInput) (*model.ProjectView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	p, err := s.r.Get(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if p.Name, err = cleanName(*in.Name, 100); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.ClearDescription {
		p.Description = nil
	}
	if in.Priority != nil {
		if p.Priority, err = parsePriority(*in.Priority); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if p.Status, err = parseProjectStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	switch {
	case in.ClearCategory:
		p.CategoryID, p.Category = nil, nil
	case in.CategoryID != nil:
		cat, err := s.category(ctx, owner.ID, in.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID, p.Category = in.CategoryID, cat
	}
	p.StartDate = patched(p.StartDate, in.StartDate, in.ClearStartDate)
	p.DueDate = patched(p.DueDate, in.DueDate, in.ClearDueDate)
	if !model.ValidRange(p.StartDate, p.DueDate) {
		return nil, errs.ErrInvalidDateRange
	}

	p.Touch(owner.ID)
	if err := s.r.Update(ctx, p); err != nil {
		return nil, err
	}

	v, err := s.view(ctx, p)
	if err != nil {
		return nil, err
	}
	s.events.emit(ctx, EventProjectUpdated, p.ID, owner.ID, v)
	return v, nil
}

func (s *projectService) Delete(ctx context.Context, owner *model.User, id uuid.UUID) error {
	if err := ownerOf(owner); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, owner.ID, id); err != nil {
		return err
	}
	s.events.emit(ctx, EventProjectDeleted, id, owner.ID, nil)
	return nil
}

func (s *projectService) ListTasks(ctx context.Context, owner *model.User, id uuid.UUID, in ListTasksInput) (*ListTasksOutput, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	if _, err := s.r.Get(ctx, owner.ID, id); err != nil {
		return nil, err
	}
	in.ProjectID = &id
	return listTasks(ctx, s.tasks, owner.ID, in, s.today())
}

func (s *projectService) view(ctx context.Context, p *model.Project) (*model.ProjectView, error) {
	counts, err := s.r.TaskCounts(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return nil, err
	}
	return model.NewProjectView(p, counts[p.ID], s.today()), nil
}

func (s *projectService) views(ctx context.Context, rows []*model.Project) ([]*model.ProjectView, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ID)
	}
	counts, err := s.r.TaskCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	today := s.today()
	out := make([]*model.ProjectView, 0, len(rows))
	for _, p := range rows {
		out = append(out, model.NewProjectView(p, counts[p.ID], today))
	}
	return out, nil
}
