// Package youtube provides source URL validation and the quality
// catalog for download requests.
package youtube

import (
	"regexp"
	"strings"
)

// Accepted source URL shapes. The scheme is mandatory; the host match is
// case-insensitive and the www subdomain is optional.
var sourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^https?://(www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`(?i)^https?://youtu\.be/[\w-]+`),
	regexp.MustCompile(`(?i)^https?://(www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`(?i)^https?://(www\.)?youtube\.com/v/[\w-]+`),
	regexp.MustCompile(`(?i)^https?://(www\.)?youtube\.com/shorts/[\w-]+`),
	regexp.MustCompile(`(?i)^https?://m\.youtube\.com/watch\?v=[\w-]+`),
}

var videoIDPattern = regexp.MustCompile(`(?i)(?:v=|youtu\.be/|/embed/|/v/|/shorts/)([\w-]+)`)

// IsValidSource reports whether raw is one of the accepted YouTube URL
// shapes: watch pages (with or without www), youtu.be short links,
// embed links, legacy /v/ links, /shorts/ links, and mobile watch
// pages. It is a pure syntactic check; callers should trim the input
// first.
func IsValidSource(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	for _, p := range sourcePatterns {
		if p.MatchString(raw) {
			return true
		}
	}
	return false
}

// ExtractVideoID pulls the video identifier out of an accepted source
// URL. Returns "" when raw is not a valid source or carries no id.
func ExtractVideoID(raw string) string {
	if !IsValidSource(raw) {
		return ""
	}
	m := videoIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}
