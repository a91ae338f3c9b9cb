package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-mktows/pkg/soap"
)

const minimalConfig = `
marketo:
  endpoint: https://123-ABC-456.mktoapi.com/soap/mktows/2_0
  userId: user@example.com
  secretKey: ${TEST_MARKETO_SECRET}
`

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TEST_MARKETO_SECRET", "s3cret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Marketo.SecretKey)
	assert.Equal(t, soap.DefaultNamespace, cfg.Marketo.Namespace)
	assert.Equal(t, "UTC", cfg.Marketo.TimeZone)
	assert.Equal(t, 20*time.Second, cfg.Transport.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Transport.IdleConnTimeout)
	assert.Equal(t, 5.0, cfg.Transport.RateLimit)
	assert.Equal(t, 5, cfg.Transport.RateBurst)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Debug)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse([]byte(`
marketo:
  endpoint: https://example.mktoapi.com/soap/mktows/2_0
  userId: u
  secretKey: k
  namespace: urn:test
  timeZone: America/Los_Angeles
transport:
  timeout: 5s
  idleConnTimeout: 30s
  rateLimit: 2.5
  rateBurst: 1
  userAgent: sync-job/2
logging:
  level: warn
  format: json
debug: true
`))
	require.NoError(t, err)

	assert.Equal(t, "America/Los_Angeles", cfg.Location().String())

	https := cfg.HTTPSConfig()
	assert.Equal(t, 5*time.Second, https.Timeout)
	assert.Equal(t, 30*time.Second, https.IdleConnTimeout)
	assert.Equal(t, 2.5, https.RateLimit)
	assert.Equal(t, 1, https.RateBurst)
	assert.Equal(t, "sync-job/2", https.UserAgent)

	cc := cfg.ClientConfig(soap.NewClient(nil), nil)
	assert.Equal(t, "urn:test", cc.Namespace)
	assert.Equal(t, 5*time.Second, cc.Timeout)
	assert.True(t, cc.Debug)
	assert.Equal(t, "America/Los_Angeles", cc.Location.String())
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing endpoint", "marketo: {userId: u, secretKey: k}"},
		{"missing user", "marketo: {endpoint: e, secretKey: k}"},
		{"missing secret", "marketo: {endpoint: e, userId: u}"},
		{"bad zone", "marketo: {endpoint: e, userId: u, secretKey: k, timeZone: Mars/Olympus}"},
		{"bad level", "marketo: {endpoint: e, userId: u, secretKey: k}\nlogging: {level: loud}"},
		{"bad format", "marketo: {endpoint: e, userId: u, secretKey: k}\nlogging: {format: xml}"},
		{"bad yaml", "marketo: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg, err := Parse([]byte("marketo: {endpoint: e, userId: u, secretKey: k}\nlogging: {format: json, level: info}"))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	cfg.Debug = true
	buf.Reset()
	cfg.NewLogger(&buf).Debug("traced")
	assert.Contains(t, buf.String(), "traced")
}
