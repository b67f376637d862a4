package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

func query() (string, int64) {
	return "SELECT * FROM entries", 3
}

func TestQueryLoggerTrace(t *testing.T) {
	tests := []struct {
		name     string
		begin    time.Time
		err      error
		contains []string
	}{
		{"Query", time.Now(), nil, []string{`"level":"debug"`, `"message":"query"`, `"rows":3`, `"component":"storage"`}},
		{"Error", time.Now(), errors.New("disk I/O error"), []string{`"level":"error"`, `"error":"disk I/O error"`, `"message":"query failed"`}},
		{"Not found", time.Now(), gorm.ErrRecordNotFound, []string{`"level":"debug"`}},
		{"Slow", time.Now().Add(-time.Second), nil, []string{`"level":"warn"`, `"message":"slow query"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newQueryLogger(zerolog.New(&buf))

			l.Trace(context.Background(), tt.begin, query, tt.err)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			assert.Contains(t, buf.String(), "SELECT * FROM entries")
		})
	}
}

func TestQueryLoggerLogMode(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(zerolog.New(&buf))

	silent := l.LogMode(gorm_logger.Silent)
	silent.Trace(context.Background(), time.Now(), query, errors.New("fail"))
	silent.Error(context.Background(), "broken %s", "connection")
	assert.Empty(t, buf.String())

	warn := l.LogMode(gorm_logger.Warn)
	warn.Info(context.Background(), "hidden")
	warn.Trace(context.Background(), time.Now(), query, nil)
	assert.Empty(t, buf.String())

	warn.Warn(context.Background(), "shown %d", 1)
	assert.Contains(t, buf.String(), "shown 1")

	// LogMode does not change the original logger
	buf.Reset()
	l.Info(context.Background(), "info %s", "message")
	assert.Contains(t, buf.String(), "info message")
}
