package utils

import (
	"regexp"
	"strings"
)

var (
	// Reserved on common filesystems, plus '#' which starts a URL
	// fragment once the name ends up in a media URL unencoded.
	unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*#]`)
	// Whitespace runs, newlines and tabs included.
	spaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeFilename makes an image filename safe to send to the media
// library. Reserved characters are stripped, whitespace runs collapse to
// a single space and the result is capped well under the usual 255-byte
// filesystem limit so an extension always fits. A name with nothing left
// after cleaning falls back to "image".
func SanitizeFilename(filename string) string {
	filename = unsafeFilenameChars.ReplaceAllString(filename, "")
	filename = spaceRuns.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	if len(filename) > 200 {
		filename = strings.TrimSpace(filename[:200])
	}
	if filename == "" {
		return "image"
	}
	return filename
}
