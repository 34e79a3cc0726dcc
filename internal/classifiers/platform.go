package classifiers

import (
	"strings"

	"github.com/mileusna/useragent"
)

const (
	PlatformBot     = "Bot"
	PlatformUnknown = "Unknown"
)

// ClassifyPlatform returns the operating system family of a User-Agent
// (e.g. "Windows", "Android", "iOS"), "Bot" for crawlers, or "Unknown".
func ClassifyPlatform(userAgent string) string {
	trimmed := strings.TrimSpace(userAgent)
	if trimmed == "" {
		return PlatformUnknown
	}

	parsed := useragent.Parse(trimmed)
	if parsed.Bot {
		return PlatformBot
	}
	if parsed.OS != "" {
		return parsed.OS
	}
	return PlatformUnknown
}
