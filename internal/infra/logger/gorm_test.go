package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func stmt(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		zapLevel  zapcore.Level
		begin     time.Time
		err       error
		wantLevel zapcore.Level
		wantMsg   string
		wantNone  bool
	}{
		{
			name:      "failed statement",
			zapLevel:  zapcore.InfoLevel,
			begin:     time.Now(),
			err:       errors.New("connection reset"),
			wantLevel: zapcore.ErrorLevel,
			wantMsg:   "query failed",
		},
		{
			name:     "not found is quiet at info",
			zapLevel: zapcore.InfoLevel,
			begin:    time.Now(),
			err:      gorm.ErrRecordNotFound,
			wantNone: true,
		},
		{
			name:     "duplicate key is quiet at info",
			zapLevel: zapcore.InfoLevel,
			begin:    time.Now(),
			err:      gorm.ErrDuplicatedKey,
			wantNone: true,
		},
		{
			name:      "slow statement",
			zapLevel:  zapcore.InfoLevel,
			begin:     time.Now().Add(-time.Second),
			wantLevel: zapcore.WarnLevel,
			wantMsg:   "slow query",
		},
		{
			name:     "plain statement hidden at info",
			zapLevel: zapcore.InfoLevel,
			begin:    time.Now(),
			wantNone: true,
		},
		{
			name:      "plain statement traced at debug",
			zapLevel:  zapcore.DebugLevel,
			begin:     time.Now(),
			wantLevel: zapcore.DebugLevel,
			wantMsg:   "query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(tt.zapLevel)
			l := NewGorm(zap.New(core), 200*time.Millisecond)

			l.Trace(ctx, tt.begin, stmt(`SELECT * FROM "projects"`, 2), tt.err)

			if tt.wantNone {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.wantMsg, entry.Message)
			assert.Equal(t, "gorm", entry.LoggerName)
			assert.Equal(t, `SELECT * FROM "projects"`, entry.ContextMap()["sql"])
			assert.Equal(t, int64(2), entry.ContextMap()["rows"])
		})
	}
}

func TestGormLogger_LogModeSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGorm(zap.New(core), 0).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), stmt("SELECT 1", 1), errors.New("boom"))
	l.Error(context.Background(), "failed %s", "x")

	assert.Zero(t, logs.Len())
}

func TestGormLogger_Messages(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewGorm(zap.New(core), 0)

	l.Info(context.Background(), "hidden %d", 1)
	l.Warn(context.Background(), "column %s renamed", "due")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "column due renamed", logs.All()[0].Message)
}
