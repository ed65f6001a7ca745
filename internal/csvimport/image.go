package csvimport

import (
	"regexp"
	"strings"
)

// Marker pair that wraps an inline image payload inside a text field.
const (
	ImageStartMarker = "[[IMG]]"
	ImageEndMarker   = "[[/IMG]]"
)

var imageDataURI = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif|webp|svg\+xml);base64,[A-Za-z0-9+/]+={0,2}$`)

// IsImageDataURI reports whether s looks like a base64 image data URI.
func IsImageDataURI(s string) bool {
	return imageDataURI.MatchString(s)
}

type imageExtraction struct {
	Text  string
	Image string
	// Rejected is set when a marker pair was found but the payload was not
	// an image; the payload is kept in Text.
	Rejected bool
}

// extractImage pulls the first marker-wrapped payload out of field.
func extractImage(field string) imageExtraction {
	start := strings.Index(field, ImageStartMarker)
	if start < 0 {
		return imageExtraction{Text: field}
	}
	rest := field[start+len(ImageStartMarker):]
	end := strings.Index(rest, ImageEndMarker)
	if end < 0 {
		return imageExtraction{Text: field}
	}
	before := strings.TrimSpace(field[:start])
	payload := strings.TrimSpace(rest[:end])
	after := strings.TrimSpace(rest[end+len(ImageEndMarker):])

	if IsImageDataURI(payload) {
		return imageExtraction{Text: joinProse(before, after), Image: payload}
	}
	return imageExtraction{Text: joinProse(before, payload, after), Rejected: true}
}

func joinProse(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// embedImage is the inverse of extractImage.
func embedImage(text, image string) string {
	if image == "" {
		return text
	}
	wrapped := ImageStartMarker + image + ImageEndMarker
	if text == "" {
		return wrapped
	}
	return text + " " + wrapped
}
