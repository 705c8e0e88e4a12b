package ui

import "strings"

// joinBasePath builds an absolute admin URL under the configured base path.
func joinBasePath(basePath, suffix string) string {
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	base := strings.TrimRight(strings.TrimSpace(basePath), "/")
	if base == "" {
		return suffix
	}
	return base + suffix
}
