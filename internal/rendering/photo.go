package rendering

import (
	"regexp"
	"strings"
)

// DefaultPhotoPath is the bundled placeholder portrait. Content that still points at it
// is treated as having no photo.
const DefaultPhotoPath = "/assets/slackPic.png"

var absoluteURLRe = regexp.MustCompile(`(?i)^(https?:)?//`)

// ResolvePhotoURL returns a usable image reference for photo, or fallback when photo
// is empty, the placeholder, or a relative path outside assets/.
func ResolvePhotoURL(photo, fallback string) string {
	v := strings.TrimSpace(photo)
	switch {
	case v == "", v == DefaultPhotoPath, v == strings.TrimPrefix(DefaultPhotoPath, "/"):
		return fallback
	case strings.HasPrefix(v, "data:"), absoluteURLRe.MatchString(v), strings.HasPrefix(v, "/"):
		return v
	case strings.HasPrefix(v, "assets/"):
		return "/" + v
	default:
		return fallback
	}
}
