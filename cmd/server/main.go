package main

//	@title			Taskboard API
//	@version		1.0
//	@description	Personal categories, projects and tasks.
//	@schemes		http https
//	@BasePath		/api/v1

//  Bearer at user level
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token (e.g., "Bearer eyJhbGciOi...")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard/internal/bootstrap"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/infra/cache"
	dbpkg "github.com/taskboard/taskboard/internal/infra/db"
	"github.com/taskboard/taskboard/internal/infra/queue"
	"github.com/taskboard/taskboard/internal/modules/handler"
	"github.com/taskboard/taskboard/internal/modules/service"
	"github.com/taskboard/taskboard/internal/pkg/tokens"
	"github.com/taskboard/taskboard/internal/router"
	"github.com/taskboard/taskboard/internal/telemetry"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()
	db := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown tracer", "err", err)
			}
		}()

		if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
			log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin", "err", err)
		}
		if rdb != nil {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				log.Sugar().Warnw("failed to register Redis OpenTelemetry plugin", "err", err)
			}
		}
	}

	identity := do.MustInvoke[service.IdentityService](inj)
	if err := identity.EnsureRoot(context.Background(), cfg.Root.Email, cfg.Root.Username, cfg.Root.Password); err != nil {
		log.Sugar().Fatalw("failed to ensure root account", "err", err)
	}

	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:          cfg,
		Log:             log,
		Issuer:          do.MustInvoke[*tokens.Issuer](inj),
		Revoker:         do.MustInvoke[tokens.Revoker](inj),
		Users:           identity,
		AuthHandler:     do.MustInvoke[*handler.AuthHandler](inj),
		CategoryHandler: do.MustInvoke[*handler.CategoryHandler](inj),
		ProjectHandler:  do.MustInvoke[*handler.ProjectHandler](inj),
		TaskHandler:     do.MustInvoke[*handler.TaskHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr, "timezone", cfg.Location().String())
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}

	if pub, ok := do.MustInvoke[service.EventPublisher](inj).(*queue.Publisher); ok {
		_ = pub.Close()
	}
	if conn := do.MustInvoke[*amqp.Connection](inj); conn != nil {
		_ = conn.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Sugar().Info("server exited")
}
