package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSize parses a human size string like "128KB", "2MB", "3GB", or a bare
// byte count like "512", accepting an optional "B" suffix. An empty string
// means "no limit" (returns 0, nil).
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	upper := strings.ToUpper(s)
	multiplier := int64(1)
	numeric := upper

	switch {
	case strings.HasSuffix(upper, "GB"):
		multiplier = 1 << 30
		numeric = strings.TrimSuffix(upper, "GB")
	case strings.HasSuffix(upper, "MB"):
		multiplier = 1 << 20
		numeric = strings.TrimSuffix(upper, "MB")
	case strings.HasSuffix(upper, "KB"):
		multiplier = 1 << 10
		numeric = strings.TrimSuffix(upper, "KB")
	case strings.HasSuffix(upper, "B"):
		multiplier = 1
		numeric = strings.TrimSuffix(upper, "B")
	}

	numeric = strings.TrimSpace(numeric)
	value, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid size %q: must not be negative", s)
	}

	return value * multiplier, nil
}
