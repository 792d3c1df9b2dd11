package search

import "errors"

// errOversized signals that a file exceeded Options.MaxFileSize and was
// skipped without being read.
var errOversized = errors.New("file exceeds configured max size")
