package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/repo"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"github.com/taskboard/taskboard/internal/pkg/paging"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type TaskService interface {
	Create(ctx context.Context, owner *model.User, in CreateTaskInput) (*model.TaskView, error)
	List(ctx context.Context, owner *model.User, in ListTasksInput) (*ListTasksOutput, error)
	Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.TaskView, error)
	Update(ctx context.Context, owner *model.User, id uuid.UUID, in UpdateTaskInput) (*model.TaskView, error)
	Delete(ctx context.Context, owner *model.User, id uuid.UUID) error
	Overdue(ctx context.Context, owner *model.User) (*ListTasksOutput, error)
	DueToday(ctx context.Context, owner *model.User) (*ListTasksOutput, error)
}

type taskService struct {
	r        repo.TaskRepo
	projects repo.ProjectRepo
	events   notifier
	now      model.Clock
}

func NewTaskService(r repo.TaskRepo, projects repo.ProjectRepo, pub EventPublisher, log *zap.Logger, now model.Clock) TaskService {
	return &taskService{
		r:        r,
		projects: projects,
		events:   notifier{pub: pub, log: log},
		now:      now,
	}
}

type CreateTaskInput struct {
	ProjectID      uuid.UUID
	Name           string
	Description    string
	StartDate      *datatypes.Date
	DueDate        *datatypes.Date
	Priority       string
	Status         string
	EstimatedHours *decimal.Decimal
	ActualHours    *decimal.Decimal
	Progress       *int
}

// UpdateTaskInput carries PATCH semantics: nil leaves a field unchanged,
// a Clear flag sets the nullable field to null and wins over a value.
type UpdateTaskInput struct {
	ProjectID      *uuid.UUID
	Name           *string
	Description    *string
	StartDate      *datatypes.Date
	DueDate        *datatypes.Date
	Priority       *string
	Status         *string
	EstimatedHours *decimal.Decimal
	ActualHours    *decimal.Decimal
	Progress       *int

	ClearStartDate      bool
	ClearDueDate        bool
	ClearEstimatedHours bool
	ClearActualHours    bool
}

type ListTasksInput struct {
	ProjectID *uuid.UUID
	Status    string
	Priority  string
	Search    string
	Overdue   bool
	DueToday  bool
	Cursor    string
	Limit     int
}

type ListTasksOutput struct {
	Items      []*model.TaskView `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

func (s *taskService) today() datatypes.Date { return model.Today(s.now()) }

// project checks that the target project exists, is active and belongs to owner.
func (s *taskService) project(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*model.Project, error) {
	p, err := s.projects.Find(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrInvalidProject
	}
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, errs.ErrInvalidProject
	}
	if p.CreatedByID != owner {
		return nil, errs.ErrForbidden
	}
	return p, nil
}

// checkFields runs the field rules in their fixed order: dates, progress,
// estimated hours, actual hours.
func checkFields(t *model.Task) error {
	if !model.ValidRange(t.StartDate, t.DueDate) {
		return errs.ErrInvalidDateRange
	}
	if t.Progress < 0 || t.Progress > 100 {
		return errs.ErrInvalidProgress
	}
	if !model.ValidEstimatedHours(t.EstimatedHours) {
		return errs.Detail(errs.ErrInvalidHours, "estimated_hours must be between 0.01 and 999.99")
	}
	if !model.ValidActualHours(t.ActualHours) {
		return errs.Detail(errs.ErrInvalidHours, "actual_hours must be between 0 and 999.99")
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, owner *model.User, in CreateTaskInput) (*model.TaskView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	p, err := s.project(ctx, owner.ID, in.ProjectID)
	if err != nil {
		return nil, err
	}

	t := &model.Task{
		ProjectID:      in.ProjectID,
		Description:    in.Description,
		StartDate:      in.StartDate,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
		IsActive:       true,
	}
	if in.Progress != nil {
		t.Progress = *in.Progress
	}
	if err := checkFields(t); err != nil {
		return nil, err
	}
	if t.Name, err = cleanName(in.Name, 200); err != nil {
		return nil, err
	}
	if t.Priority, err = parsePriority(in.Priority); err != nil {
		return nil, err
	}
	if t.Status, err = parseTaskStatus(in.Status); err != nil {
		return nil, err
	}
	t.ApplyStatusProgress()

	t.Touch(owner.ID)
	if err := s.r.Create(ctx, t); err != nil {
		return nil, err
	}
	t.Project = p

	v := model.NewTaskView(t, s.today())
	s.events.emit(ctx, EventTaskCreated, t.ID, owner.ID, v)
	if t.Status == model.TaskCompleted {
		s.events.emit(ctx, EventTaskCompleted, t.ID, owner.ID, v)
	}
	return v, nil
}

func (s *taskService) List(ctx context.Context, owner *model.User, in ListTasksInput) (*ListTasksOutput, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	return listTasks(ctx, s.r, owner.ID, in, s.today())
}

func (s *taskService) Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.TaskView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	t, err := s.r.Get(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}
	return model.NewTaskView(t, s.today()), nil
}

func (s *taskService) Update(ctx context.Context, owner *model.User, id uuid.UUID, in UpdateTaskInput) (*model.TaskView, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	t, err := s.r.Get(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}
	wasCompleted := t.Status == model.TaskCompleted

	if in.ProjectID != nil && *in.ProjectID != t.ProjectID {
		p, err := s.project(ctx, owner.ID, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		t.ProjectID, t.Project = p.ID, p
	}
	t.StartDate = patched(t.StartDate, in.StartDate, in.ClearStartDate)
	t.DueDate = patched(t.DueDate, in.DueDate, in.ClearDueDate)
	if in.Progress != nil {
		t.Progress = *in.Progress
	}
	t.EstimatedHours = patched(t.EstimatedHours, in.EstimatedHours, in.ClearEstimatedHours)
	t.ActualHours = patched(t.ActualHours, in.ActualHours, in.ClearActualHours)
	if err := checkFields(t); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if t.Name, err = cleanName(*in.Name, 200); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		if t.Priority, err = parsePriority(*in.Priority); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if t.Status, err = parseTaskStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	t.ApplyStatusProgress()

	t.Touch(owner.ID)
	if err := s.r.Update(ctx, t); err != nil {
		return nil, err
	}

	v := model.NewTaskView(t, s.today())
	s.events.emit(ctx, EventTaskUpdated, t.ID, owner.ID, v)
	if !wasCompleted && t.Status == model.TaskCompleted {
		s.events.emit(ctx, EventTaskCompleted, t.ID, owner.ID, v)
	}
	return v, nil
}

func (s *taskService) Delete(ctx context.Context, owner *model.User, id uuid.UUID) error {
	if err := ownerOf(owner); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, owner.ID, id); err != nil {
		return err
	}
	s.events.emit(ctx, EventTaskDeleted, id, owner.ID, nil)
	return nil
}

func (s *taskService) Overdue(ctx context.Context, owner *model.User) (*ListTasksOutput, error) {
	return s.List(ctx, owner, ListTasksInput{Overdue: true, Limit: paging.MaxLimit})
}

func (s *taskService) DueToday(ctx context.Context, owner *model.User) (*ListTasksOutput, error) {
	return s.List(ctx, owner, ListTasksInput{DueToday: true, Limit: paging.MaxLimit})
}

func listTasks(ctx context.Context, r repo.TaskRepo, owner uuid.UUID, in ListTasksInput, today datatypes.Date) (*ListTasksOutput, error) {
	f := repo.TaskFilter{ProjectID: in.ProjectID, Search: strings.TrimSpace(in.Search)}
	if in.Status != "" {
		st, err := parseTaskStatus(in.Status)
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
	if in.Overdue {
		f.OverdueAsOf = &today
	}
	if in.DueToday {
		f.DueOn = &today
	}

	w, err := window(in.Cursor, in.Limit)
	if err != nil {
		return nil, err
	}
	limit := w.Limit
	w.Limit++

	rows, err := r.ListWithCursor(ctx, owner, f, w)
	if err != nil {
		return nil, err
	}
	rows, next, more := page(rows, limit, func(t *model.Task) (time.Time, uuid.UUID) { return t.CreatedAt, t.ID })

	out := &ListTasksOutput{Items: make([]*model.TaskView, 0, len(rows)), NextCursor: next, HasMore: more}
	for _, t := range rows {
		out.Items = append(out.Items, model.NewTaskView(t, today))
	}
	return out, nil
}
