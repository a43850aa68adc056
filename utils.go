package catalog

import (
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// IsImageFile reports whether a path carries one of the importable image
// extensions. The check is case-insensitive.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsSupportedImageType validates if an image mime type is supported
func IsSupportedImageType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}