package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/pr1vateer/libretictactoe/xoxo"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "random", cfg.Strategy)
	require.Equal(t, "Tic-tac-toe", cfg.Title)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "seed: 42\nstrategy: none\nscale: 1.5\ndebug: true\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, "none", cfg.Strategy)
	require.Equal(t, 1.5, cfg.Scale)
	require.True(t, cfg.Debug)
	// untouched keys keep their defaults
	require.Equal(t, "Tic-tac-toe", cfg.Title)

	s, err := cfg.NewStrategy()
	require.NoError(t, err)
	require.IsType(t, xoxo.NoOpStrategy{}, s)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		err      error
	}{
		{"negative scale", "scale: -1\n", ErrInvalidScale},
		{"unknown strategy", "strategy: minimax\n", xoxo.ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			require.ErrorIs(t, err, tt.err)
		})
	}
	_, err := Load(writeConfig(t, "seed: [1, 2\n"))
	require.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRandSeeded(t *testing.T) {
	cfg := Default()
	cfg.Seed = 7
	require.Equal(t, cfg.Rand().Int63(), cfg.Rand().Int63())
}

func TestNewLogger(t *testing.T) {
	t.Setenv("LEVEL", "")
	t.Setenv("DEBUG", "")
	t.Setenv("TRACE", "")

	buf := new(bytes.Buffer)
	logger := Default().NewLogger(buf)
	logger.Info().Msg("hidden")
	require.Empty(t, buf.String())

	cfg := Default()
	cfg.Debug = true
	logger = cfg.NewLogger(buf)
	logger.Debug().Int("cell", 4).Msg("shown")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "cell=4")
	logger.Trace().Msg("too low")
	require.NotContains(t, buf.String(), "too low")

	t.Setenv("TRACE", "1")
	buf.Reset()
	logger = Default().NewLogger(buf)
	logger.Trace().Msg("traced")
	require.Contains(t, buf.String(), "traced")
}

func TestParse(t *testing.T) {
	path := writeConfig(t, "seed: 42\nstrategy: none\ntitle: xoxo\n")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	count := fs.Int("count", 1, "")
	cfg, err := Parse(fs, []string{"-config", path, "-strategy", "random", "-scale", "2", "-count", "3"})
	require.NoError(t, err)
	require.Equal(t, "random", cfg.Strategy)
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, 2.0, cfg.Scale)
	require.Equal(t, "xoxo", cfg.Title)
	require.Equal(t, 3, *count)

	_, err = Parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-strategy", "minimax"})
	require.ErrorIs(t, err, xoxo.ErrUnknownStrategy)
}
