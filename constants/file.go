package constants

import "strings"

// AllowedImageExtensions holds the image extensions the bot accepts for
// receipt scans.
var AllowedImageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsImageExt reports whether a normalized extension is an accepted image type.
func IsImageExt(ext string) bool {
	_, ok := AllowedImageExtensions[ext]
	return ok
}
