package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nminhducit/rechronos/internal/naming"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, naming.StrategyFixed, cfg.Strategy)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.Equal(t, 10, cfg.PreviewLimit)
	assert.True(t, cfg.Extensions[".jpg"])
	assert.True(t, cfg.Extensions[".tiff"])
	assert.False(t, cfg.Extensions[".mkv"])
}

func TestAddExtension(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.AddExtension("heic"))
	assert.True(t, cfg.Extensions[".heic"])

	require.NoError(t, cfg.AddExtension(".RAW"))
	assert.True(t, cfg.Extensions[".raw"], "extensions are lowercased")

	assert.Error(t, cfg.AddExtension(""))
	assert.Error(t, cfg.AddExtension("."))
}

func TestParseFlags_RenameDefaults(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{"rename", "/photos/"})
	require.NoError(t, err)

	assert.Equal(t, CommandRename, cfg.Command)
	assert.Equal(t, "/photos", cfg.Target, "trailing slash stripped")
	assert.False(t, cfg.Recursive)
	assert.False(t, cfg.DryRun)
	require.NoError(t, cfg.Validate())
}

func TestParseFlags_AllOptions(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{
		"-r", "--dry-run", "--strategy", "ext", "--ext", "heic",
		"--map-log", "/tmp/map.csv", "--no-color", "-v", "rename", "/photos",
	})
	require.NoError(t, err)

	assert.True(t, cfg.Recursive)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, naming.StrategyExt, cfg.Strategy)
	assert.True(t, cfg.Extensions[".heic"])
	assert.Equal(t, "/tmp/map.csv", cfg.MapLogPath)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.True(t, cfg.Verbose)
}

func TestParseFlags_TargetDefaultsToCwd(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ParseFlags(&cfg, "test", []string{"preview"}))
	assert.Equal(t, ".", cfg.Target)
}

func TestParseFlags_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"bad strategy", []string{"--strategy", "upper", "rename", "."}},
		{"extra arg", []string{"rename", ".", "again"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			assert.Error(t, ParseFlags(&cfg, "test", tc.args))
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := DefaultConfig()
		cfg.Command = CommandRename
		cfg.Target = "."
		return cfg
	}

	t.Run("ok", func(t *testing.T) {
		cfg := base()
		assert.NoError(t, cfg.Validate())
	})
	t.Run("bad command", func(t *testing.T) {
		cfg := base()
		cfg.Command = "shuffle"
		assert.Error(t, cfg.Validate())
	})
	t.Run("bad strategy", func(t *testing.T) {
		cfg := base()
		cfg.Strategy = "upper"
		assert.Error(t, cfg.Validate())
	})
	t.Run("missing target", func(t *testing.T) {
		cfg := base()
		cfg.Target = ""
		assert.Error(t, cfg.Validate())
	})
	t.Run("batch outside rollback", func(t *testing.T) {
		cfg := base()
		cfg.BatchID = "20250929110312"
		assert.Error(t, cfg.Validate())
	})
	t.Run("batch with rollback", func(t *testing.T) {
		cfg := base()
		cfg.Command = CommandRollback
		cfg.BatchID = "20250929110312"
		assert.NoError(t, cfg.Validate())
	})
	t.Run("negative preview limit", func(t *testing.T) {
		cfg := base()
		cfg.PreviewLimit = -1
		assert.Error(t, cfg.Validate())
	})
}
