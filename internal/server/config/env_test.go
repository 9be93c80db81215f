package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("FOODLOG_HTTP_ADDR", ":7070")
	t.Setenv("FOODLOG_ACCESS_TOKEN_TTL", "90s")
	t.Setenv("FOODLOG_UPLOAD_POLICY", "abort")
	t.Setenv("FOODLOG_LOG_LEVEL", "debug")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, 90*time.Second, cfg.AccessTokenValidityDuration)
	assert.Equal(t, UploadPolicyAbort, cfg.UploadFailurePolicy)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("FOODLOG_REFRESH_TOKEN_TTL", "forever")

	err := parseEnv(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
