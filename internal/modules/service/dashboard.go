package service

import (
	"context"

	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/repo"
)

type DashboardService interface {
	Summarize(ctx context.Context, owner *model.User) (*model.Dashboard, error)
}

type dashboardService struct {
	r   repo.DashboardRepo
	now model.Clock
}

func NewDashboardService(r repo.DashboardRepo, now model.Clock) DashboardService {
	return &dashboardService{r: r, now: now}
}

func (s *dashboardService) Summarize(ctx context.Context, owner *model.User) (*model.Dashboard, error) {
	if err := ownerOf(owner); err != nil {
		return nil, err
	}
	return s.r.Summarize(ctx, owner.ID, model.Today(s.now()))
}
