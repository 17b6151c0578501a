package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// formatDuration renders seconds as m:ss or h:mm:ss.
func formatDuration(seconds int64) string {
	if seconds <= 0 {
		return "Unknown"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatUploadDate renders the service's YYYYMMDD date strings.
func formatUploadDate(raw string) string {
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return "Unknown"
	}
	return t.Format("Jan 2, 2006")
}

// formatViews abbreviates large view counts (1.5K, 2.3M).
func formatViews(n int64) string {
	switch {
	case n >= 1_000_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000_000), ".0") + "M"
	case n >= 1_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000), ".0") + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// formatSize renders a byte count with binary units.
func formatSize(bytes int64) string {
	const k = 1024
	switch {
	case bytes <= 0:
		return "0 B"
	case bytes < k:
		return fmt.Sprintf("%d B", bytes)
	case bytes < k*k:
		return fmt.Sprintf("%.1f KB", float64(bytes)/k)
	case bytes < k*k*k:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(k*k))
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(k*k*k))
	}
}

// sanitizeFilename makes a title safe for the local filesystem.
func sanitizeFilename(name string) string {
	for _, ch := range `<>:"/\|?*` {
		name = strings.ReplaceAll(name, string(ch), "_")
	}
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
	name = strings.Trim(name, ".")
	if len(name) > 100 {
		name = name[:97] + "..."
	}
	if name == "" {
		return "unknown"
	}
	return name
}
