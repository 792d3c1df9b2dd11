package search

import (
	"bytes"
	"io"
	"os"
)

// binaryProbeWindow is the number of leading bytes examined by the binary
// heuristic.
const binaryProbeWindow = 100

// ingest opens path, rejects binaries, and produces a FileView whose
// LineViews borrow from buf. buf is the calling worker's private scratch
// buffer; it is grown in place and reused across files. On any failure the
// file degrades to an empty FileView — no ingest failure is fatal to the run.
func ingest(path string, buf *buffer, maxFileSize int64) (FileView, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileView{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return FileView{}, err
	}
	size := info.Size()
	if size == 0 {
		return FileView{}, nil
	}
	if maxFileSize > 0 && size > maxFileSize {
		return FileView{}, errOversized
	}

	data := buf.grow(int(size))
	if _, err := io.ReadFull(f, data); err != nil {
		return FileView{}, err
	}

	window := data
	if len(window) > binaryProbeWindow {
		window = window[:binaryProbeWindow]
	}
	if looksBinary(window) {
		return FileView{}, nil
	}

	return FileView{Size: size, Lines: splitLines(data)}, nil
}

// looksBinary reports a known binary magic prefix, or two consecutive zero
// bytes anywhere in the probe window.
func looksBinary(window []byte) bool {
	if bytes.HasPrefix(window, []byte("%PDF")) || bytes.HasPrefix(window, []byte("%!PS")) {
		return true
	}
	return bytes.Contains(window, []byte{0x00, 0x00})
}
