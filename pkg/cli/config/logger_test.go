package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/cli/config"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/logging"
)

func TestLoggerConfigure(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	path := filepath.Join(t.TempDir(), "app.log")
	cfg := config.NewLoggerForTest("debug", "json", path)

	closer, err := cfg.Configure()
	gt.NoError(t, err).Required()

	logging.Default().Info("hello from test", "key", "value")
	closer()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.S(t, string(data)).Contains("hello from test").Contains(`"key":"value"`)
}

func TestLoggerConfigureErrors(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		cfg := config.NewLoggerForTest("verbose", "console", "-")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "-")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}

func TestGeminiConfigureWithoutProject(t *testing.T) {
	cfg := config.NewGeminiForTest("", "us-central1")
	client, err := cfg.Configure(context.Background())
	gt.NoError(t, err)
	gt.B(t, client == nil).True()
}

func TestLoggerLogValue(t *testing.T) {
	cfg := config.NewLoggerForTest("info", "console", "-")
	v := cfg.LogValue().String()
	gt.B(t, strings.Contains(v, "info")).True()
}
