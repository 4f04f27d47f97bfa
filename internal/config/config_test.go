package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults("/cfg")

	assert.Equal(t, "/cfg/templates", GetTemplateLocation())
	assert.Empty(t, GetExclude())
	assert.Equal(t, 8, GetConcurrency())
	assert.Equal(t, "warn", GetLogLevel())
	assert.Equal(t, "console", GetLogFormat())
}

func TestDefaultFileRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{name: "plain", dir: "/data/templates"},
		{name: "spaces and quotes", dir: `/tmp/my "t"`},
		{name: "backslash", dir: `/tmp/a\b`},
		{name: "unicode", dir: "/home/zoë/模板"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			var buf bytes.Buffer
			require.NoError(t, WriteDefault(&buf, tt.dir))

			viper.SetConfigType("toml")
			require.NoError(t, viper.ReadConfig(&buf))

			assert.Equal(t, tt.dir, GetTemplateLocation())
			assert.Equal(t, []string{".git", "node_modules"}, GetExclude())
			assert.Equal(t, 8, GetConcurrency())
			assert.Equal(t, "warn", GetLogLevel())
			assert.Equal(t, "console", GetLogFormat())
		})
	}
}

func TestConcurrencyFallsBackWhenInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyConcurrency, 0)
	assert.Equal(t, defaultConcurrency, GetConcurrency())
}

func TestTemplateLocationExpandsHome(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	viper.Set(KeyTemplatesLocation, "~/templates")
	assert.Equal(t, filepath.Join(home, "templates"), GetTemplateLocation())
}
