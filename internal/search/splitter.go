package search

import "bytes"

// splitLines splits buf into LineViews at each '\n', excluding a preceding
// '\r' from the emitted view. A trailing fragment with no terminating '\n'
// still produces a final LineView. Empty buffers emit no lines.
func splitLines(buf []byte) []LineView {
	if len(buf) == 0 {
		return nil
	}

	lines := make([]LineView, 0, 128)
	start := 0
	for {
		rel := bytes.IndexByte(buf[start:], '\n')
		if rel < 0 {
			break
		}
		end := start + rel
		length := end - start
		if length > 0 && buf[end-1] == '\r' {
			length--
		}
		lines = append(lines, LineView{Start: start, Length: length})
		start = end + 1
	}

	if start < len(buf) {
		lines = append(lines, LineView{Start: start, Length: len(buf) - start})
	}

	return lines
}
