package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/service"
)

// MockCategoryService is a mock implementation of CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, owner *model.User, in service.CreateCategoryInput) (*model.CategoryView, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryView), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context, owner *model.User, in service.ListCategoriesInput) (*service.ListCategoriesOutput, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListCategoriesOutput), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.CategoryView, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryView), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, owner *model.User, id uuid.UUID, in service.UpdateCategoryInput) (*model.CategoryView, error) {
	args := m.Called(ctx, owner, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryView), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, owner *model.User, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockCategoryService) ListProjects(ctx context.Context, owner *model.User, id uuid.UUID, in service.ListProjectsInput) (*service.ListProjectsOutput, error) {
	args := m.Called(ctx, owner, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListProjectsOutput), args.Error(1)
}

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, owner *model.User, in service.CreateProjectInput) (*model.ProjectView, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectView), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, owner *model.User, in service.ListProjectsInput) (*service.ListProjectsOutput, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListProjectsOutput), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.ProjectView, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectView), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, owner *model.User, id uuid.UUID, in service.UpdateProjectInput) (*model.ProjectView, error) {
	args := m.Called(ctx, owner, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectView), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, owner *model.User, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockProjectService) ListTasks(ctx context.Context, owner *model.User, id uuid.UUID, in service.ListTasksInput) (*service.ListTasksOutput, error) {
	args := m.Called(ctx, owner, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListTasksOutput), args.Error(1)
}

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summarize(ctx context.Context, owner *model.User) (*model.Dashboard, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dashboard), args.Error(1)
}

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, owner *model.User, in service.CreateTaskInput) (*model.TaskView, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskView), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, owner *model.User, in service.ListTasksInput) (*service.ListTasksOutput, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListTasksOutput), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, owner *model.User, id uuid.UUID) (*model.TaskView, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskView), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, owner *model.User, id uuid.UUID, in service.UpdateTaskInput) (*model.TaskView, error) {
	args := m.Called(ctx, owner, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskView), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, owner *model.User, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockTaskService) Overdue(ctx context.Context, owner *model.User) (*service.ListTasksOutput, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListTasksOutput), args.Error(1)
}

func (m *MockTaskService) DueToday(ctx context.Context, owner *model.User) (*service.ListTasksOutput, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListTasksOutput), args.Error(1)
}

// MockIdentityService is a mock implementation of IdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) UpdateProfile(ctx context.Context, u *model.User, in service.UpdateProfileInput) (*model.User, error) {
	args := m.Called(ctx, u, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) EnsureRoot(ctx context.Context, email, username, password string) error {
	args := m.Called(ctx, email, username, password)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testUser() *model.User {
	u := &model.User{Email: "alice@example.com", Username: "alice", IsActive: true}
	u.ID = uuid.New()
	return u
}

// asUser wraps h so that it runs with u as the authenticated user.
func asUser(u *model.User, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", u)
		h(c)
	}
}
