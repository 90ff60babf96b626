package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoscore/pkg/logger"
)

func init() {
	if err := logger.Init(true); err != nil {
		panic(err)
	}
}

const testYAML = `http:
  addr: ":9090"
  max_upload_bytes: 1048576
  rate_per_minute: 30
  shutdown_timeout: 5s

s3:
  endpoint: "https://storage.example.com"
  region: "us-east-1"
  access_key: "ak"
  secret_key: "sk"
  bucket: "recordings"
  public_base_url: "https://storage.example.com"

speech:
  language_code: "en-US"
  credentials_file: ""
`

func writeTestConfig(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(testYAML), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func TestLoadConfig(t *testing.T) {
	writeTestConfig(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, int64(1048576), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, 30, cfg.HTTP.RatePerMinute)
	assert.Equal(t, "5s", cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "recordings", cfg.S3.Bucket)
	assert.Equal(t, "en-US", cfg.Speech.LanguageCode)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	writeTestConfig(t)

	t.Setenv("S3_BUCKET", "override-bucket")
	t.Setenv("HTTP_ADDR", ":8081")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "override-bucket", cfg.S3.Bucket)
	assert.Equal(t, ":8081", cfg.HTTP.Addr)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})

	_, err = LoadConfig()
	assert.Error(t, err)
}
