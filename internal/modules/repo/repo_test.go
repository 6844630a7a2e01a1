package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/infra/db"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"github.com/taskboard/taskboard/internal/pkg/paging"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join(t.TempDir(), "taskboard.db") + "?_foreign_keys=on"

	d, err := db.New(cfg, zaptest.NewLogger(t, zaptest.Level(zapcore.WarnLevel)))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d))
	t.Cleanup(func() {
		if sqlDB, err := d.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return d
}

func newUser(t *testing.T, d *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Email: name + "@example.com", Username: name, PasswordHash: "x", IsActive: true}
	require.NoError(t, NewUserRepo(d).Create(context.Background(), u))
	return u
}

func date(t *testing.T, s string) *datatypes.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestUserRepo_DuplicateIdentity(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	r := NewUserRepo(d)

	u := newUser(t, d, "alice")
	assert.Equal(t, u.ID, u.CreatedByID)

	err := r.Create(ctx, &model.User{Email: "alice@example.com", Username: "other", PasswordHash: "x"})
	assert.ErrorIs(t, err, errs.ErrDuplicateIdentity)

	got, err := r.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCategoryRepo_UniquePerOwner(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	r := NewCategoryRepo(d)
	alice, bob := newUser(t, d, "alice"), newUser(t, d, "bob")

	work := &model.Category{Name: "Work", Color: model.DefaultCategoryColor, IsActive: true}
	work.Touch(alice.ID)
	require.NoError(t, r.Create(ctx, work))

	dup := &model.Category{Name: "Work", Color: model.DefaultCategoryColor, IsActive: true}
	dup.Touch(alice.ID)
	assert.ErrorIs(t, r.Create(ctx, dup), errs.ErrDuplicateName)

	other := &model.Category{Name: "Work", Color: model.DefaultCategoryColor, IsActive: true}
	other.Touch(bob.ID)
	assert.NoError(t, r.Create(ctx, other))

	_, err := r.Get(ctx, bob.ID, work.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCategoryRepo_UniqueIndexIsAuthoritative(t *testing.T) {
	d := newTestDB(t)
	alice := newUser(t, d, "alice")

	a := &model.Category{Name: "Home", Color: model.DefaultCategoryColor, IsActive: true}
	a.Touch(alice.ID)
	require.NoError(t, d.Create(a).Error)

	b := &model.Category{Name: "Home", Color: model.DefaultCategoryColor, IsActive: true}
	b.Touch(alice.ID)
	err := translate(d.Create(b).Error, errs.ErrDuplicateName)
	assert.ErrorIs(t, err, errs.ErrDuplicateName)
}

func TestCategoryRepo_DeleteCascades(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, d, "alice")

	cat := &model.Category{Name: "Work", Color: model.DefaultCategoryColor, IsActive: true}
	cat.Touch(alice.ID)
	require.NoError(t, NewCategoryRepo(d).Create(ctx, cat))

	p := &model.Project{Name: "Launch", CategoryID: &cat.ID, Priority: model.PriorityMedium, Status: model.ProjectPlanning, IsActive: true}
	p.Touch(alice.ID)
	require.NoError(t, NewProjectRepo(d).Create(ctx, p))

	for _, name := range []string{"a", "b"} {
		task := &model.Task{Name: name, ProjectID: p.ID, Priority: model.PriorityLow, Status: model.TaskTodo, IsActive: true}
		task.Touch(alice.ID)
		require.NoError(t, NewTaskRepo(d).Create(ctx, task))
	}

	counts, err := NewCategoryRepo(d).Counts(ctx, []uuid.UUID{cat.ID})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCounts{ProjectCount: 1, TaskCount: 2}, counts[cat.ID])

	require.NoError(t, NewCategoryRepo(d).Delete(ctx, alice.ID, cat.ID))

	var n int64
	require.NoError(t, d.Model(&model.Project{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, d.Model(&model.Task{}).Count(&n).Error)
	assert.Zero(t, n)

	assert.ErrorIs(t, NewCategoryRepo(d).Delete(ctx, alice.ID, cat.ID), errs.ErrNotFound)
}

func TestProjectRepo_ListWithCursor(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	r := NewProjectRepo(d)
	alice, bob := newUser(t, d, "alice"), newUser(t, d, "bob")

	for _, name := range []string{"alpha", "beta", "gamma"} {
		p := &model.Project{Name: name, Priority: model.PriorityMedium, Status: model.ProjectActive, IsActive: true}
		p.Touch(alice.ID)
		require.NoError(t, r.Create(ctx, p))
		time.Sleep(2 * time.Millisecond)
	}
	foreign := &model.Project{Name: "alpha", Priority: model.PriorityMedium, Status: model.ProjectActive, IsActive: true}
	foreign.Touch(bob.ID)
	require.NoError(t, r.Create(ctx, foreign))

	first, err := r.ListWithCursor(ctx, alice.ID, ProjectFilter{}, paging.Window{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "gamma", first[0].Name)
	assert.Equal(t, "beta", first[1].Name)

	last := first[1]
	rest, err := r.ListWithCursor(ctx, alice.ID, ProjectFilter{}, paging.Window{AfterCreatedAt: last.CreatedAt, AfterID: last.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "alpha", rest[0].Name)
	assert.Equal(t, alice.ID, rest[0].CreatedByID)

	found, err := r.ListWithCursor(ctx, alice.ID, ProjectFilter{Search: "ET"}, paging.Window{Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "beta", found[0].Name)
}

func TestProjectRepo_UpdateClearsNullableColumns(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, d, "alice")

	work := &model.Category{Name: "Work", Color: model.DefaultCategoryColor, IsActive: true}
	work.Touch(alice.ID)
	require.NoError(t, NewCategoryRepo(d).Create(ctx, work))

	r := NewProjectRepo(d)
	p := &model.Project{
		Name:       "Launch",
		CategoryID: &work.ID,
		StartDate:  date(t, "2024-01-01"),
		DueDate:    date(t, "2024-03-01"),
		Priority:   model.PriorityMedium,
		Status:     model.ProjectActive,
		IsActive:   true,
	}
	p.Touch(alice.ID)
	require.NoError(t, r.Create(ctx, p))

	got, err := r.Get(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)

	got.CategoryID, got.Category, got.DueDate = nil, nil, nil
	require.NoError(t, r.Update(ctx, got))

	reloaded, err := r.Get(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)
	assert.Nil(t, reloaded.Category)
	assert.Nil(t, reloaded.DueDate)
	require.NotNil(t, reloaded.StartDate)
	assert.False(t, reloaded.IsOverdue(*date(t, "2024-03-10")))
}

func TestTaskRepo_ScopedByProjectOwner(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice, bob := newUser(t, d, "alice"), newUser(t, d, "bob")

	p := &model.Project{Name: "Launch", Priority: model.PriorityMedium, Status: model.ProjectActive, IsActive: true}
	p.Touch(alice.ID)
	require.NoError(t, NewProjectRepo(d).Create(ctx, p))

	r := NewTaskRepo(d)
	task := &model.Task{Name: "Write", ProjectID: p.ID, Priority: model.PriorityHigh, Status: model.TaskTodo, IsActive: true, DueDate: date(t, "2024-01-10")}
	task.Touch(alice.ID)
	require.NoError(t, r.Create(ctx, task))

	dup := &model.Task{Name: "Write", ProjectID: p.ID, Priority: model.PriorityHigh, Status: model.TaskTodo, IsActive: true}
	dup.Touch(alice.ID)
	assert.ErrorIs(t, r.Create(ctx, dup), errs.ErrDuplicateName)

	got, err := r.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Project)
	assert.Equal(t, "Launch", got.Project.Name)

	_, err = r.Get(ctx, bob.ID, task.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, bob.ID, task.ID), errs.ErrNotFound)

	overdue, err := r.ListWithCursor(ctx, alice.ID, TaskFilter{OverdueAsOf: date(t, "2024-01-15")}, paging.Window{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, overdue, 1)

	dueToday, err := r.ListWithCursor(ctx, alice.ID, TaskFilter{DueOn: date(t, "2024-01-10")}, paging.Window{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, dueToday, 1)

	none, err := r.ListWithCursor(ctx, alice.ID, TaskFilter{OverdueAsOf: date(t, "2024-01-10")}, paging.Window{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, r.Delete(ctx, alice.ID, task.ID))
	_, err = r.Get(ctx, alice.ID, task.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDashboardRepo_Summarize(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice, bob := newUser(t, d, "alice"), newUser(t, d, "bob")

	cat := &model.Category{Name: "Work", Color: model.DefaultCategoryColor, IsActive: true}
	cat.Touch(alice.ID)
	require.NoError(t, NewCategoryRepo(d).Create(ctx, cat))

	active := &model.Project{Name: "A", Priority: model.PriorityMedium, Status: model.ProjectActive, IsActive: true, DueDate: date(t, "2024-01-01")}
	active.Touch(alice.ID)
	done := &model.Project{Name: "B", Priority: model.PriorityMedium, Status: model.ProjectCompleted, IsActive: true, DueDate: date(t, "2024-01-01")}
	done.Touch(alice.ID)
	theirs := &model.Project{Name: "C", Priority: model.PriorityMedium, Status: model.ProjectActive, IsActive: true}
	theirs.Touch(bob.ID)
	for _, p := range []*model.Project{active, done, theirs} {
		require.NoError(t, NewProjectRepo(d).Create(ctx, p))
	}

	statuses := []model.TaskStatus{model.TaskTodo, model.TaskInProgress, model.TaskCompleted, model.TaskReview}
	for _, s := range statuses {
		task := &model.Task{Name: string(s), ProjectID: active.ID, Priority: model.PriorityLow, Status: s, IsActive: true}
		task.Touch(alice.ID)
		require.NoError(t, NewTaskRepo(d).Create(ctx, task))
	}
	require.NoError(t, d.Model(&model.Task{}).Where("status = ?", model.TaskReview).Update("is_active", false).Error)

	got, err := NewDashboardRepo(d).Summarize(ctx, alice.ID, *date(t, "2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, model.ProjectSummary{Total: 2, Active: 1, Completed: 1, Overdue: 1}, got.Projects)
	assert.Equal(t, model.TaskSummary{Total: 3, Completed: 1, Todo: 1, InProgress: 1}, got.Tasks)
	assert.Equal(t, int64(1), got.Categories.Total)
}
