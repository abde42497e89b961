package logger

import (
	"testing"

	"github.com/deppfellow/college-records/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerService_WithoutLicense(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())

	require.NotNil(t, ls)
	assert.Nil(t, ls.GetApplication())
	ls.Shutdown()
}

func TestNewLoggerService_RejectedLicenseFallsBack(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.NewRelic.LicenseKey = "too-short"

	ls := NewLoggerService(cfg)

	require.NotNil(t, ls)
	assert.Nil(t, ls.GetApplication())
}

func TestNilLoggerService(t *testing.T) {
	var ls *LoggerService

	assert.Nil(t, ls.GetApplication())
	ls.Shutdown()
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelNone, GetPgxTraceLogLevel(zerolog.Disabled))
}
