package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which a query is logged as a warning.
const slowQuery = 200 * time.Millisecond

// queryLogger sends gorm output to zerolog, tagged with the storage
// component. gorm's LogMode is honored on top of the zerolog level.
type queryLogger struct {
	log   zerolog.Logger
	level gorm_logger.LogLevel
}

func newQueryLogger(l zerolog.Logger) *queryLogger {
	return &queryLogger{
		log:   l.With().Str("component", "storage").Logger(),
		level: gorm_logger.Info,
	}
}

func (l *queryLogger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *queryLogger) Info(_ context.Context, s string, args ...interface{}) {
	if l.level >= gorm_logger.Info {
		l.log.Info().Msgf(s, args...)
	}
}

func (l *queryLogger) Warn(_ context.Context, s string, args ...interface{}) {
	if l.level >= gorm_logger.Warn {
		l.log.Warn().Msgf(s, args...)
	}
}

func (l *queryLogger) Error(_ context.Context, s string, args ...interface{}) {
	if l.level >= gorm_logger.Error {
		l.log.Error().Msgf(s, args...)
	}
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gorm_logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]interface{}{
		"sql":      sql,
		"rows":     rows,
		"duration": elapsed,
	}

	switch {
	// A missing budget row is an expected outcome
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.Error().Err(err).Fields(fields).Msg("query failed")
	case elapsed > slowQuery && l.level >= gorm_logger.Warn:
		l.log.Warn().Fields(fields).Msg("slow query")
	case l.level >= gorm_logger.Info:
		l.log.Debug().Fields(fields).Msg("query")
	}
}
