package utils

import (
	"path/filepath"
	"sort"
	"strings"
)

// supportedFormats are the image extensions the service accepts. The set
// matches what the emotion backend can decode.
var supportedFormats = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".tiff": {},
	".webp": {},
}

// IsSupportedFormat reports whether the filename carries a supported image
// extension. Comparison is case-insensitive; a missing or unknown
// extension is a negative result, not an error.
func IsSupportedFormat(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := supportedFormats[ext]
	return ok
}

// SupportedFormatList returns the accepted extensions sorted, for use in
// caller-facing messages.
func SupportedFormatList() string {
	exts := make([]string, 0, len(supportedFormats))
	for ext := range supportedFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
