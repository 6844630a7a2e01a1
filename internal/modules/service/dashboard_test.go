package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/pkg/errs"
)

func TestDashboardService_Summarize(t *testing.T) {
	ctx := context.Background()
	owner := activeUser()
	want := &model.Dashboard{
		Projects:   model.ProjectSummary{Total: 3, Active: 1, Completed: 1, Overdue: 1},
		Tasks:      model.TaskSummary{Total: 4, Completed: 1, Todo: 2, InProgress: 1},
		Categories: model.CategorySummary{Total: 2},
	}

	r := &MockDashboardRepo{}
	r.On("Summarize", ctx, owner.ID, *mustDate("2024-01-15")).Return(want, nil)

	got, err := NewDashboardService(r, fixedClock).Summarize(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	r.AssertExpectations(t)

	_, err = NewDashboardService(r, fixedClock).Summarize(ctx, nil)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}
