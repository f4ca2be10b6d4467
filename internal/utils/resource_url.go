package utils

import (
	"strings"
)

// ResolveResourceURL combines a stored relative path with the caller-supplied
// base origin (scheme + host) into an absolute, client-fetchable URL.
// Stored paths use forward slashes canonically, but Windows-style separators
// are normalized too in case a path was produced with the native separator.
// An empty relative path resolves to an empty URL.
func ResolveResourceURL(baseOrigin, relativePath string) string {
	if relativePath == "" {
		return ""
	}
	p := strings.ReplaceAll(relativePath, "\\", "/")
	p = strings.TrimPrefix(p, "/")
	return strings.TrimSuffix(baseOrigin, "/") + "/" + p
}
