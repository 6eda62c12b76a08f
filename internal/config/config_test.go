package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `store: postgres://analyst@localhost/fraud
data_dir: ./AntiFraudData
extensions:
  - .csv
  - .tsv
batch_size: 250
timeout: 10m
log_format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://analyst@localhost/fraud", cfg.Store)
	assert.Equal(t, "./AntiFraudData", cfg.DataDir)
	assert.Equal(t, []string{".csv", ".tsv"}, cfg.Extensions)
	assert.Equal(t, 250, cfg.BatchSize)
	assert.Equal(t, "10m", cfg.Timeout)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("store: fraud.db\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "fraud.db", cfg.Store)
	assert.Empty(t, cfg.DataDir)
	assert.Zero(t, cfg.BatchSize)
	assert.Nil(t, cfg.Extensions)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFileName)
	assert.Nil(t, cfg)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/data\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.DataDir)
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *ProjectConfig
		want    time.Duration
		wantErr bool
	}{
		{"nil config", nil, 0, false},
		{"empty", &ProjectConfig{}, 0, false},
		{"minutes", &ProjectConfig{Timeout: "10m"}, 10 * time.Minute, false},
		{"invalid", &ProjectConfig{Timeout: "soon"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.TimeoutDuration()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
