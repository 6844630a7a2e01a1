package db

import (
	"fmt"
	"time"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/infra/logger"
	"github.com/taskboard/taskboard/internal/modules/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

const slowQuery = 200 * time.Millisecond

// New opens the configured store. TranslateError makes unique-index violations
// surface as gorm.ErrDuplicatedKey on every dialect; SQL logging goes through log.
func New(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	case "postgres", "":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	d, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGorm(log, slowQuery),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == "sqlite" {
		// sqlite serializes writers; one connection keeps foreign_keys and busy handling consistent
		sqlDB.SetMaxOpenConns(1)
		if err := d.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	} else {
		if cfg.Database.MaxOpen > 0 {
			sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
		}
		if cfg.Database.MaxIdle > 0 {
			sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
		}
	}
	return d, nil
}

// Migrate creates the schema and the composite unique indexes that guard
// per-owner names. The indexes are the authoritative uniqueness check.
func Migrate(d *gorm.DB) error {
	if err := d.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Project{},
		&model.Task{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_categories_name_owner ON categories (name, created_by_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_projects_name_owner ON projects (name, created_by_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_tasks_name_project_owner ON tasks (name, project_id, created_by_id)`,
	}
	for _, s := range stmts {
		if err := d.Exec(s).Error; err != nil {
			return fmt.Errorf("create unique index: %w", err)
		}
	}
	return nil
}

func RegisterOpenTelemetryPlugin(d *gorm.DB) error {
	return d.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}
