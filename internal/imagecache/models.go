package imagecache

import (
	"strings"
	"time"
)

// DefaultContentType is recorded when the remote server omits a media type.
const DefaultContentType = "image/jpeg"

// Image is one cached cover image.
type Image struct {
	Link        string    `json:"link"`
	Data        []byte    `json:"imageData"`
	ContentType string    `json:"contentType"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Info describes a cached image without its bytes.
type Info struct {
	Link        string    `json:"link"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// NormalizeContentType trims a Content-Type header and falls back to
// DefaultContentType when it is empty.
func NormalizeContentType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultContentType
	}
	return value
}
