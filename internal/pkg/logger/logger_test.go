package logger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	l := logger.New("production", "warn")
	require.NotNil(t, l)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.IsDevelopment("dev"))
	assert.False(t, logger.IsDevelopment("production"))
	assert.NoError(t, logger.Sync(nil))
}

func TestGormLogger(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("should log failed queries except record not found", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		gl := logger.NewGormLogger(zap.New(core), gormlogger.Warn, 0)

		gl.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
	})

	t.Run("should warn about slow queries", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		gl := logger.NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		require.Equal(t, 1, logs.FilterMessage("slow sql query").Len())
	})

	t.Run("should respect log mode", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		gl := logger.NewGormLogger(zap.New(core), gormlogger.Warn, 0)

		gl.Info(context.Background(), "hidden %d", 1)
		gl.LogMode(gormlogger.Info).Info(context.Background(), "shown %d", 2)
		gl.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), query, errors.New("boom"))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "shown 2", logs.All()[0].Message)
	})

	assert.Equal(t, gormlogger.Info, logger.GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, logger.GormLevel("info"))
}
