package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into planning, execution, display, and utility. The
// command and its target are positional, so flags must come first
// (rechronos [OPTIONS] <command> [path]).

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nminhducit/rechronos/internal/naming"
)

// ParseFlags parses args (os.Args[1:]) into cfg. On --help or --version it
// prints and exits. On error it returns non-nil (e.g. unknown flag, missing
// command).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("rechronos", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var exit exitFlags

	definePlanningFlags(fs, cfg)
	defineExecutionFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &exit)
	defineUtilityFlags(fs, &exit)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if exit.noColor {
		cfg.ColorMode = ColorNever
	} else if exit.forceColor {
		cfg.ColorMode = ColorAlways
	}

	if exit.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if exit.showVersion {
		fmt.Fprintln(os.Stdout, "rechronos v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// exitFlags holds flags applied after Parse: color overrides and the two
// print-and-exit switches.
type exitFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePlanningFlags registers -r/--recursive, --strategy, --ext, --preview-limit.
func definePlanningFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Recursive, "recursive", false, "Descend into subdirectories")
	fs.BoolVar(&cfg.Recursive, "r", false, "Same as --recursive")
	fs.Var(&strategyValue{&cfg.Strategy}, "strategy", "Prefix strategy: img | ext")
	fs.Var(&extListValue{cfg}, "ext", "Add an eligible extension (repeatable)")
	fs.IntVar(&cfg.PreviewLimit, "preview-limit", cfg.PreviewLimit, "Plan entries shown before truncating")
}

// defineExecutionFlags registers -d/--dry-run, --map-log, --batch.
func defineExecutionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Plan and journal only; do not rename")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.StringVar(&cfg.MapLogPath, "map-log", "", "Mapping log path (default: <dir>/rename_log.csv)")
	fs.StringVar(&cfg.BatchID, "batch", "", "Rollback this batch id instead of the latest")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, e *exitFlags) {
	fs.BoolVar(&e.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&e.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append runtime logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, e *exitFlags) {
	fs.BoolVar(&e.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&e.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&e.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&e.showHelp, "h", false, "Same as --help")
}

// parsePositionalArgs sets Command and Target. The path defaults to the
// current directory when omitted, matching the interactive original.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("need a command (rename, preview, rollback, or check)")
	}
	if len(args) > 2 {
		return fmt.Errorf("unexpected argument %q", args[2])
	}

	cfg.Command = Command(strings.ToLower(args[0]))
	if len(args) == 2 {
		cfg.Target = NormalizeDirArg(args[1])
	} else {
		cfg.Target = "."
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "reChronos v" + version + " — metadata-aware file renamer"},
		{"", ""},
		{"  rechronos [OPTIONS] <command> [path]", ""},
		{"", ""},
		{"Commands", ""},
		{"  rename <dir>", "Rename files by best timestamp, journal each rename"},
		{"  preview <dir>", "Print the rename plan without touching anything"},
		{"  rollback <dir|log>", "Reverse the most recent batch from the mapping log"},
		{"  check <dir>", "Inspect the directory and its mapping log"},
		{"", ""},
		{"Planning", ""},
		{"  -r, --recursive", "Descend into subdirectories"},
		{"  --strategy <img|ext>", "Filename prefix: fixed IMG or uppercased extension"},
		{"  --ext <.x>", "Add an eligible extension (repeatable)"},
		{"  --preview-limit <n>", "Plan entries shown before truncating (default: 10)"},
		{"", ""},
		{"Execution", ""},
		{"  -d, --dry-run", "Plan and journal only; filesystem untouched"},
		{"  --map-log <path>", "Mapping log path (default: <dir>/rename_log.csv)"},
		{"  --batch <id>", "Rollback this batch instead of the latest"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append runtime logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum and list fields with flag.Var.

type strategyValue struct{ p *naming.Strategy }

func (s *strategyValue) String() string {
	if s.p == nil {
		return ""
	}
	return string(*s.p)
}

func (s *strategyValue) Set(v string) error {
	switch strings.ToLower(v) {
	case "img":
		*s.p = naming.StrategyFixed
	case "ext":
		*s.p = naming.StrategyExt
	default:
		return fmt.Errorf("invalid strategy %q (use 'img' or 'ext')", v)
	}
	return nil
}

type extListValue struct{ cfg *Config }

func (e *extListValue) String() string { return "" }

func (e *extListValue) Set(v string) error {
	return e.cfg.AddExtension(v)
}
