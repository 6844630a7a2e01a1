package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/service"
	"github.com/taskboard/taskboard/internal/pkg/errs"
)

func TestCategoryHandler_CreateCategory(t *testing.T) {
	user := testUser()

	tests := []struct {
		name           string
		body           string
		setup          func(*MockCategoryService)
		expectedStatus int
	}{
		{
			name: "created",
			body: `{"name":"Work","color":"#10B981"}`,
			setup: func(svc *MockCategoryService) {
				svc.On("Create", mock.Anything, user, service.CreateCategoryInput{Name: "Work", Color: "#10B981"}).
					Return(&model.CategoryView{ID: uuid.New(), Name: "Work"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate name",
			body: `{"name":"Work"}`,
			setup: func(svc *MockCategoryService) {
				svc.On("Create", mock.Anything, user, mock.Anything).Return(nil, errs.ErrDuplicateName)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "name too long",
			body:           `{"name":"` + string(bytes.Repeat([]byte("a"), 101)) + `"}`,
			setup:          func(*MockCategoryService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"name":`,
			setup:          func(*MockCategoryService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCategoryService{}
			tt.setup(svc)

			h := NewCategoryHandler(svc)
			router := setupRouter()
			router.POST("/categories", asUser(user, h.CreateCategory))

			req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	user := testUser()
	id := uuid.New()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "deleted", expectedStatus: http.StatusOK},
		{name: "not found", err: errs.ErrNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCategoryService{}
			svc.On("Delete", mock.Anything, user, id).Return(tt.err)

			h := NewCategoryHandler(svc)
			router := setupRouter()
			router.DELETE("/categories/:id", asUser(user, h.DeleteCategory))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/categories/"+id.String(), nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCategoryHandler_ListCategoryProjects(t *testing.T) {
	user := testUser()
	id := uuid.New()

	svc := &MockCategoryService{}
	svc.On("ListProjects", mock.Anything, user, id, service.ListProjectsInput{Limit: 5}).
		Return(&service.ListProjectsOutput{Items: []*model.ProjectView{}}, nil)

	h := NewCategoryHandler(svc)
	router := setupRouter()
	router.GET("/categories/:id/projects", asUser(user, h.ListCategoryProjects))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/"+id.String()+"/projects?limit=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
