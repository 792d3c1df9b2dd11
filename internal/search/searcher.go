// Package search implements the concurrent recursive content-search engine:
// file discovery, per-file ingestion and matching, and the ordered
// collection and rendering of matches.
package search

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Logger is the minimal status-logging surface the searcher needs; satisfied
// by internal/logger.Logger.
type Logger interface {
	LogInfo(string)
	LogWarn(string)
	LogError(string)
}

// Searcher is the orchestrator: it owns the pool, dispatches one task
// per discovered path, and serializes formatted output to stdout.
type Searcher struct {
	opts   *Options
	log    Logger
	stdout io.Writer
	stderr io.Writer
}

// New builds a Searcher for one invocation. opts is validated by the caller
// (internal/cmd) before this is constructed.
func New(opts *Options, log Logger, stdout, stderr io.Writer) *Searcher {
	return &Searcher{opts: opts, log: log, stdout: stdout, stderr: stderr}
}

// Run executes the search to completion and reports whether any match was
// found (the only signal the caller needs to compute the exit code).
func (s *Searcher) Run(ctx context.Context) (matched bool, err error) {
	runID := uuid.NewString()[:8]
	start := time.Now()

	matcher, err := NewMatcher(s.opts.Mode, s.opts.Term)
	if err != nil {
		return false, fmt.Errorf("compiling matcher: %w", err)
	}

	s.log.LogInfo(fmt.Sprintf("run=%s root=%s mode=%d threads=%d starting", runID, s.opts.Path, s.opts.Mode, s.opts.Threads))

	snk := newSink(s.stdout, s.stderr)

	var filesScanned int64

	p := newPool(s.opts.Threads, func(r any) {
		s.log.LogError(fmt.Sprintf("run=%s recovered internal worker failure: %v", runID, r))
	})

	emit := func(path string) bool {
		filesScanned++
		err := p.submit(func(buf *buffer) {
			searchFile(path, buf, matcher, s.opts, snk, func(failedPath string, ferr error) {
				if s.opts.Verbose {
					s.log.LogWarn(fmt.Sprintf("run=%s %s: %v", runID, failedPath, ferr))
				}
			})
		})
		return err == nil
	}

	var discErr error
	switch s.opts.Source {
	case GitFiles:
		discErr = discoverGitFiles(ctx, s.opts.Path, emit)
	default:
		discErr = discoverAllFiles(s.opts.Path, s.opts.ExcludeDirs, emit)
	}

	p.drainAndJoin()

	if s.opts.CountOnly && !s.opts.Quiet {
		fmt.Fprintf(s.stdout, "%d\n", snk.totalMatches())
	}

	elapsed := time.Since(start)
	s.log.LogInfo(fmt.Sprintf("run=%s files=%d matches=%d elapsed=%s done", runID, filesScanned, snk.totalMatches(), elapsed))

	if discErr != nil {
		return snk.hasMatch(), discErr
	}
	if snk.hasFailed() {
		return snk.hasMatch(), fmt.Errorf("output sink write failed")
	}

	return snk.hasMatch(), nil
}
