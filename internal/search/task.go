package search

import (
	"path/filepath"
	"strings"
)

// searchFile ingests the file, matches every line, and — if at least one
// line matched — formats the whole result as one block and appends it to
// the sink. buf is the calling worker's private scratch buffer; it is
// released for reuse as soon as this function returns.
func searchFile(path string, buf *buffer, matcher Matcher, opts *Options, snk *sink, onIngestFailure func(path string, err error)) {
	if len(opts.Extensions) > 0 && !hasAnyExtension(path, opts.Extensions) {
		return
	}

	view, err := ingest(path, buf, opts.MaxFileSize)
	if err != nil {
		if onIngestFailure != nil {
			onIngestFailure(path, err)
		}
		return
	}
	if len(view.Lines) == 0 {
		return
	}

	displayPath := path
	if opts.AbsolutePaths {
		if abs, err := filepath.Abs(path); err == nil {
			displayPath = abs
		}
	}

	result := FileResult{Path: displayPath}
	for i, line := range view.Lines {
		spans := matcher.Find(line.Bytes(buf.data))
		if len(spans) == 0 {
			continue
		}
		result.Matches = append(result.Matches, Match{
			LineNumber: i + 1,
			Line:       line,
			HitSpans:   spans,
		})
	}

	if len(result.Matches) == 0 {
		return
	}

	var block string
	if !opts.CountOnly && !opts.Quiet {
		block = formatBlock(result, buf.data, opts)
	}
	snk.write(block, len(result.Matches))
}

func hasAnyExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if strings.ToLower(want) == ext {
			return true
		}
	}
	return false
}
