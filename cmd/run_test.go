package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"lotto/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this file share the global config and are not parallel
func useTestConfig(t *testing.T, mutate func(*config.Config)) {
	t.Helper()
	cfg := config.NewTestConfig()
	cfg.HistoryFile = filepath.Join(t.TempDir(), "history.json")
	if mutate != nil {
		mutate(cfg)
	}
	config.SetTestConfig(cfg)
	t.Cleanup(config.ResetConfig)
}

func TestRun_ShellIsDefault(t *testing.T) {
	useTestConfig(t, nil)

	var out bytes.Buffer
	err := Run(context.Background(), nil, strings.NewReader("pick 3\nrandom\nsave 1100\nexit\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Saved ticket")

	// a second session sees the saved ticket
	out.Reset()
	err = Run(context.Background(), []string{"shell"}, strings.NewReader("exit\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 tickets in history")
}

func TestRun_UnknownCommand(t *testing.T) {
	useTestConfig(t, nil)

	err := Run(context.Background(), []string{"launch"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, `unknown command "launch"`)
}

func TestRun_Help(t *testing.T) {
	useTestConfig(t, nil)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"help"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "usage: lotto")
}

func TestRun_MigrateRequiresDatabase(t *testing.T) {
	useTestConfig(t, nil)

	err := Run(context.Background(), []string{"migrate", "up"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "DATABASE_URL is required")
}

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel log.Level
		wantErr   bool
	}{
		{name: "debug text", level: "debug", format: "text", wantLevel: log.DebugLevel},
		{name: "upper case level", level: "WARN", format: "json", wantLevel: log.WarnLevel},
		{name: "invalid level", level: "loud", format: "text", wantErr: true},
	}

	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.LogLevel = tt.level
			cfg.LogFormat = tt.format

			err := setupLogging(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, log.GetLevel())
		})
	}
}
