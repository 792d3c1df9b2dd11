package search

import (
	"encoding/json"
	"fmt"
	"strings"
)

// formatBlock renders the entire formatted output for one
// file (a "block") as a single owned string, using buf to resolve each
// Match's LineView into text. It must be called before the worker reuses
// buf for its next file.
func formatBlock(fr FileResult, buf []byte, opts *Options) string {
	switch opts.Output {
	case Piped:
		return formatPiped(fr, buf, opts)
	case Html:
		return formatHTML(fr, buf, opts)
	case JSON:
		return formatJSON(fr, buf, opts)
	default:
		return formatPretty(fr, buf, opts)
	}
}

func formatPretty(fr FileResult, buf []byte, opts *Options) string {
	var sb strings.Builder
	sb.WriteString(colorize(Blue, fr.Path, opts.ColorsEnabled))
	sb.WriteByte('\n')
	for _, m := range fr.Matches {
		text := highlightLine(m, buf, opts.ColorsEnabled, false)
		if opts.LineNumbers {
			fmt.Fprintf(&sb, "%d: %s\n", m.LineNumber, text)
		} else {
			fmt.Fprintf(&sb, "%s\n", text)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

func formatPiped(fr FileResult, buf []byte, opts *Options) string {
	var sb strings.Builder
	for _, m := range fr.Matches {
		text := string(m.Line.Bytes(buf))
		if opts.LineNumbers {
			fmt.Fprintf(&sb, "%s:%d:%s\n", fr.Path, m.LineNumber, text)
		} else {
			fmt.Fprintf(&sb, "%s:%s\n", fr.Path, text)
		}
	}
	return sb.String()
}

func formatHTML(fr FileResult, buf []byte, opts *Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h3>%s</h3>\n<pre>\n", htmlEscape(fr.Path))
	for _, m := range fr.Matches {
		text := highlightLine(m, buf, true, true)
		if opts.LineNumbers {
			fmt.Fprintf(&sb, "%d: %s\n", m.LineNumber, text)
		} else {
			fmt.Fprintf(&sb, "%s\n", text)
		}
	}
	sb.WriteString("</pre>\n")
	return sb.String()
}

type jsonMatch struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

func formatJSON(fr FileResult, buf []byte, _ *Options) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	for _, m := range fr.Matches {
		_ = enc.Encode(jsonMatch{
			Path: fr.Path,
			Line: m.LineNumber,
			Text: string(m.Line.Bytes(buf)),
		})
	}
	return sb.String()
}

// highlightLine renders one match's line text with every hit span wrapped:
// in the "red" ANSI escape for plain/Pretty output, or in a
// <span class="hit"> tag (with the rest of the line HTML-escaped) for html.
func highlightLine(m Match, buf []byte, colorsEnabled bool, html bool) string {
	line := m.Line.Bytes(buf)
	if len(m.HitSpans) == 0 {
		if html {
			return htmlEscape(string(line))
		}
		return string(line)
	}

	escape := func(s string) string {
		if html {
			return htmlEscape(s)
		}
		return s
	}

	var sb strings.Builder
	prev := 0
	for _, span := range m.HitSpans {
		sb.WriteString(escape(string(line[prev:span.Start])))
		hit := string(line[span.Start:span.End])
		if html {
			sb.WriteString(`<span class="hit">` + htmlEscape(hit) + `</span>`)
		} else {
			sb.WriteString(colorize(Red, hit, colorsEnabled))
		}
		prev = span.End
	}
	sb.WriteString(escape(string(line[prev:])))
	return sb.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}
