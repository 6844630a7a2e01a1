package bootstrap

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/infra/cache"
	"github.com/taskboard/taskboard/internal/infra/db"
	"github.com/taskboard/taskboard/internal/infra/logger"
	"github.com/taskboard/taskboard/internal/infra/queue"
	"github.com/taskboard/taskboard/internal/modules/handler"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/repo"
	"github.com/taskboard/taskboard/internal/modules/service"
	"github.com/taskboard/taskboard/internal/pkg/tokens"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// clock in the configured timezone; "today" is derived from it
	do.Provide(inj, func(i *do.Injector) (model.Clock, error) {
		loc := do.MustInvoke[*config.Config](i).Location()
		return func() time.Time { return time.Now().In(loc) }, nil
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg, do.MustInvoke[*zap.Logger](i))
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis, optional
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Redis.Addr == "" {
			return nil, nil
		}
		return cache.New(cfg), nil
	})
	do.Provide(inj, func(i *do.Injector) (tokens.Revoker, error) {
		rdb := do.MustInvoke[*redis.Client](i)
		if rdb == nil {
			do.MustInvoke[*zap.Logger](i).Sugar().Warnw("redis not configured, logout will not revoke tokens")
			return tokens.NopRevoker{}, nil
		}
		return cache.NewRevocationStore(rdb), nil
	})

	// RabbitMQ, optional
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		return amqp.Dial(cfg.RabbitMQ.URL)
	})
	do.Provide(inj, func(i *do.Injector) (service.EventPublisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		if conn == nil {
			return service.NopPublisher{}, nil
		}
		return queue.NewPublisher(conn, cfg.RabbitMQ.Exchange, do.MustInvoke[*zap.Logger](i))
	})

	// tokens
	do.Provide(inj, func(i *do.Injector) (*tokens.Issuer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return tokens.NewIssuer(cfg.Auth.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL()), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CategoryRepo, error) {
		return repo.NewCategoryRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.DashboardRepo, error) {
		return repo.NewDashboardRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.IdentityService, error) {
		return service.NewIdentityService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[model.Clock](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.CategoryRepo](i),
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[model.Clock](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CategoryService, error) {
		return service.NewCategoryService(
			do.MustInvoke[repo.CategoryRepo](i),
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[model.Clock](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.DashboardService, error) {
		return service.NewDashboardService(
			do.MustInvoke[repo.DashboardRepo](i),
			do.MustInvoke[model.Clock](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(
			do.MustInvoke[service.IdentityService](i),
			do.MustInvoke[*tokens.Issuer](i),
			do.MustInvoke[tokens.Revoker](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CategoryHandler, error) {
		return handler.NewCategoryHandler(do.MustInvoke[service.CategoryService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[service.DashboardService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})

	return inj
}
