// Package cmd wires the command-line surface onto the search engine in
// internal/search: argument parsing, configuration file lookup, and
// terminal-capability detection all live here, outside the core engine.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vennictus/gosearch/internal/config"
	"github.com/vennictus/gosearch/internal/logger"
	"github.com/vennictus/gosearch/internal/search"
)

// Run parses args against a freshly built root command, writing to stdout
// and stderr, and returns the process exit code. It never calls os.Exit
// itself, so it stays directly testable.
func Run(args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	root := NewRootCommand(&exitCode)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "Usage: gosearch [flags] <pattern> <path>")
		return 2
	}
	return exitCode
}

// cliFlags holds every flag registered on the root command.
type cliFlags struct {
	path        string
	git         bool
	ignoreCase  bool
	regex       bool
	html        bool
	pipe        bool
	threads     int
	noColor     bool
	color       bool
	format      string
	lineNumbers bool
	absPaths    bool
	debug       bool
	trace       bool
	maxSize     string
	extensions  string
	excludeDir  string
	quiet       bool
	countOnly   bool
	verbose     bool
}

// NewRootCommand builds the gosearch root cobra.Command. exitCode receives
// the process exit code once RunE completes; it is read by Run after
// Execute returns rather than via os.Exit, so the command stays testable.
func NewRootCommand(exitCode *int) *cobra.Command {
	flags := &cliFlags{lineNumbers: true}

	root := &cobra.Command{
		Use:           "gosearch [flags] <pattern> <path>",
		Short:         "Recursively search a source tree for a term",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			code, err := execute(c, args, flags)
			*exitCode = code
			if err != nil {
				fmt.Fprintln(c.ErrOrStderr(), err)
			}
			return nil
		},
	}

	root.Flags().StringVar(&flags.path, "path", ".", "root directory to search")
	root.Flags().BoolVar(&flags.git, "git", false, "discover files via `git ls-files` instead of a directory walk")
	root.Flags().BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	root.Flags().BoolVarP(&flags.regex, "regex", "e", false, "treat the pattern as a regular expression")
	root.Flags().BoolVar(&flags.html, "html", false, "emit HTML-formatted output")
	root.Flags().BoolVar(&flags.pipe, "pipe", false, "emit plain path:line:text output, no colors")
	root.Flags().IntVar(&flags.threads, "threads", 0, "worker thread count (default: min(NumCPU, 8))")
	root.Flags().IntVar(&flags.threads, "workers", 0, "alias for --threads")
	root.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colorized output")
	root.Flags().BoolVar(&flags.color, "color", false, "force colorized output even when not a TTY")
	root.Flags().StringVar(&flags.format, "format", "", "output format: text|json (overrides --pipe/--html)")
	root.Flags().BoolVarP(&flags.lineNumbers, "line-numbers", "n", true, "print line numbers")
	root.Flags().BoolVar(&flags.absPaths, "abs", false, "print absolute paths")
	root.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging to stderr")
	root.Flags().BoolVar(&flags.trace, "trace", false, "enable trace logging to stderr")
	root.Flags().StringVar(&flags.maxSize, "max-size", "", "skip files larger than this size, e.g. 2MB")
	root.Flags().StringVar(&flags.extensions, "extensions", "", "comma-separated list of file extensions to include")
	root.Flags().StringVar(&flags.excludeDir, "exclude-dir", "", "comma-separated list of directory names to exclude")
	root.Flags().BoolVar(&flags.quiet, "quiet", false, "suppress all output; rely on exit code only")
	root.Flags().BoolVar(&flags.countOnly, "count", false, "print only the total match count")
	root.Flags().BoolVar(&flags.verbose, "verbose", false, "log per-file ingest failures")

	return root
}

// execute builds search.Options from flags and positional args, runs the
// search, and returns the process exit code: 0 on a match, 1 on no match,
// 2 on a configuration error.
func execute(c *cobra.Command, args []string, flags *cliFlags) (int, error) {
	term, root, err := resolveTermAndPath(args, flags)
	if err != nil {
		fmt.Fprintln(c.ErrOrStderr(), "Usage: gosearch [flags] <pattern> <path>")
		return 2, err
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return 2, fmt.Errorf("path does not exist or is not a directory: %s", root)
	}

	fileCfg, err := loadFileConfig(root)
	if err != nil {
		return 2, err
	}

	opts, err := buildOptions(term, root, flags, fileCfg, c.OutOrStdout())
	if err != nil {
		return 2, err
	}

	level := "info"
	switch {
	case flags.trace:
		level = "trace"
	case flags.debug:
		level = "debug"
	}
	var log logger.Logger = logger.New(c.ErrOrStderr(), level)
	if flags.quiet {
		log = logger.Discard
	}

	searcher := search.New(opts, log, c.OutOrStdout(), c.ErrOrStderr())
	matched, runErr := searcher.Run(context.Background())
	if runErr != nil {
		return 2, runErr
	}
	if !matched {
		return 1, nil
	}
	return 0, nil
}

func resolveTermAndPath(args []string, flags *cliFlags) (term, root string, err error) {
	switch len(args) {
	case 1:
		term = args[0]
		root = flags.path
	case 2:
		term = args[0]
		root = args[1]
	default:
		return "", "", fmt.Errorf("expected 1 or 2 positional arguments, got %d", len(args))
	}

	if strings.TrimSpace(term) == "" {
		return "", "", fmt.Errorf("search term must not be empty")
	}
	return term, root, nil
}

func loadFileConfig(root string) (*config.Config, error) {
	candidates := []string{filepath.Join(root, ".gosearch.yaml")}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".gosearch.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return config.Load(path)
		}
	}
	return config.Default(), nil
}

func buildOptions(term, root string, flags *cliFlags, fileCfg *config.Config, stdout io.Writer) (*search.Options, error) {
	opts := &search.Options{
		Term:          term,
		Path:          root,
		LineNumbers:   flags.lineNumbers,
		AbsolutePaths: flags.absPaths,
		Quiet:         flags.quiet,
		CountOnly:     flags.countOnly,
		Verbose:       flags.verbose || flags.debug || flags.trace,
	}

	switch {
	case flags.regex:
		opts.Mode = search.Regex
	case flags.ignoreCase:
		opts.Mode = search.CaseInsensitive
	default:
		opts.Mode = search.CaseSensitive
	}

	if flags.git {
		opts.Source = search.GitFiles
	} else {
		opts.Source = search.AllFiles
	}

	opts.Output = resolveOutput(flags, fileCfg)

	opts.Threads = flags.threads
	if opts.Threads == 0 {
		opts.Threads = fileCfg.Threads
	}
	if opts.Threads == 0 {
		opts.Threads = search.DefaultThreads()
	}

	opts.ColorsEnabled = resolveColors(flags, fileCfg, stdout)

	maxSize := flags.maxSize
	if maxSize == "" {
		maxSize = fileCfg.MaxFileSize
	}
	size, err := parseSize(maxSize)
	if err != nil {
		return nil, err
	}
	opts.MaxFileSize = size

	if flags.extensions != "" {
		opts.Extensions = splitAndTrim(flags.extensions)
	}

	excludeDirs := fileCfg.ExcludeDirs
	if flags.excludeDir != "" {
		excludeDirs = append(excludeDirs, splitAndTrim(flags.excludeDir)...)
	}
	opts.ExcludeDirs = excludeDirs

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// resolveOutput picks the Output mode. Explicit flags (--format, --html,
// --pipe) always win; with none of those set, fileCfg.Output supplies the
// default, falling back to Pretty when it is empty or unrecognized.
func resolveOutput(flags *cliFlags, fileCfg *config.Config) search.Output {
	switch strings.ToLower(flags.format) {
	case "json":
		return search.JSON
	case "text":
		return search.Pretty
	}
	switch {
	case flags.html:
		return search.Html
	case flags.pipe:
		return search.Piped
	}
	switch strings.ToLower(fileCfg.Output) {
	case "json":
		return search.JSON
	case "html":
		return search.Html
	case "pipe", "piped":
		return search.Piped
	default:
		return search.Pretty
	}
}

func resolveColors(flags *cliFlags, fileCfg *config.Config, stdout io.Writer) bool {
	if flags.noColor {
		return false
	}
	if flags.color {
		return true
	}
	if f, ok := stdout.(*os.File); ok {
		return fileCfg.ColorsEnabled && isatty.IsTerminal(f.Fd())
	}
	return false
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
