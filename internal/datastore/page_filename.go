package datastore

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	baselineExtension = ".html"
	nameHashLength    = 8
)

// PageFileName maps a page name to its baseline file name. Names made only of
// letters, digits, spaces, dots, dashes and underscores are kept as they are;
// any other name is sanitized and suffixed with a short hash of the original
// so two names never share a file.
func PageFileName(pageName string) string {
	sanitized := sanitizeName(pageName)
	if sanitized == pageName && !isReservedName(pageName) {
		return pageName + baselineExtension
	}
	sanitized = strings.TrimSpace(sanitized)
	if trimmed := strings.TrimLeft(sanitized, "."); trimmed != sanitized {
		sanitized = strings.Repeat("_", len(sanitized)-len(trimmed)) + trimmed
	}
	return sanitized + "-" + nameHash(pageName) + baselineExtension
}

func sanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// isReservedName rejects names that are unsafe as a bare file name.
func isReservedName(name string) bool {
	return name == "" || strings.HasPrefix(name, ".") || strings.TrimSpace(name) != name
}

func nameHash(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])[:nameHashLength]
}
