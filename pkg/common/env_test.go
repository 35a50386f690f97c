package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TABLE_TEST_STR", "value")
	t.Setenv("TABLE_TEST_INT", "42")
	t.Setenv("TABLE_TEST_BAD", "x")

	assert.Equal(t, "value", EnvOr("TABLE_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", EnvOr("TABLE_TEST_MISSING", "fallback"))
	assert.Equal(t, 42, EnvInt("TABLE_TEST_INT", 1))
	assert.Equal(t, 1, EnvInt("TABLE_TEST_BAD", 1))
}

func TestLoadTimeoutConfig(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "30")
	t.Setenv("READ_TIMEOUT", "-1")

	cfg := LoadTimeoutConfig(TimeoutConfig{Read: time.Second, Shutdown: time.Second})
	assert.Equal(t, 30*time.Second, cfg.Shutdown)
	assert.Equal(t, time.Second, cfg.Read)

	srv := NewServerWithTimeouts(nil, cfg)
	assert.Equal(t, time.Second, srv.ReadTimeout)
}
