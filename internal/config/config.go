// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nminhducit/rechronos/internal/naming"
)

// --- Enum types for validated string fields ---

// Command selects the operation to run.
type Command string

const (
	CommandRename   Command = "rename"   // Plan and execute a rename batch.
	CommandPreview  Command = "preview"  // Print the plan only; no renames, no journaling.
	CommandRollback Command = "rollback" // Reverse the most recent (or named) batch.
	CommandCheck    Command = "check"    // Inspect target directory and mapping log.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Operation (set from positional args).
	Command Command
	// Target is the directory to rename/preview/check, or the mapping log
	// path (file or containing directory) for rollback.
	Target string

	// Planning.
	Recursive    bool            // Descend into subdirectories.
	Strategy     naming.Strategy // Prefix policy. Default: "img".
	Extensions   map[string]bool // Lowercased extensions eligible for renaming.
	PreviewLimit int             // Plan entries shown before truncating. Default: 10.

	// Execution.
	DryRun     bool
	MapLogPath string // Mapping log override. Default: <target>/rename_log.csv.
	BatchID    string // Rollback a specific batch instead of the latest.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional runtime log file (not the mapping log).
}

// defaultExtensions is the built-in image allow-list, extendable via --ext.
var defaultExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff",
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	exts := make(map[string]bool, len(defaultExtensions))
	for _, e := range defaultExtensions {
		exts[e] = true
	}
	return Config{
		Strategy:     naming.StrategyFixed,
		Extensions:   exts,
		PreviewLimit: 10,
		ColorMode:    ColorAuto,
	}
}

// AddExtension registers an extra eligible extension (leading dot optional,
// matched case-insensitively).
func (c *Config) AddExtension(ext string) error {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext == "." {
		return errors.New("empty extension")
	}
	c.Extensions[ext] = true
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that enum fields hold valid values and that the command
// has its target argument.
func (c *Config) Validate() error {
	switch c.Command {
	case CommandRename, CommandPreview, CommandRollback, CommandCheck:
		// valid
	default:
		return fmt.Errorf("invalid command %q (use rename, preview, rollback, or check)", string(c.Command))
	}

	switch c.Strategy {
	case naming.StrategyFixed, naming.StrategyExt:
		// valid
	default:
		return errors.New("invalid strategy (use 'img' or 'ext')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always', or 'never')")
	}

	if c.PreviewLimit < 0 {
		return errors.New("preview limit must be zero or positive")
	}
	if c.Target == "" {
		return errors.New("need a target directory (or mapping log for rollback)")
	}
	if c.BatchID != "" && c.Command != CommandRollback {
		return errors.New("--batch only applies to rollback")
	}
	return nil
}
