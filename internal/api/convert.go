package api

import (
	"fmt"
	"strings"
	"time"

	"shelf/internal/catalog"
	"shelf/internal/imagecache"
	"shelf/internal/preflight"
	"shelf/internal/services"
)

// FromEntry converts a catalog record to its API representation.
func FromEntry(entry *catalog.Entry) Entry {
	if entry == nil {
		return Entry{}
	}
	return Entry{
		ID:        entry.ID,
		Name:      entry.Name,
		Score:     entry.Score,
		Review:    entry.Review,
		Link:      entry.Link,
		Status:    string(entry.Status),
		CreatedAt: formatTime(entry.CreatedAt),
		UpdatedAt: formatTime(entry.UpdatedAt),
	}
}

// FromEntries converts a slice of catalog records into API DTOs.
func FromEntries(entries []catalog.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for i := range entries {
		out = append(out, FromEntry(&entries[i]))
	}
	return out
}

// ToDraft validates input and converts it to a catalog draft. An empty
// status means none.
func ToDraft(input EntryInput) (catalog.Draft, error) {
	status := catalog.StatusNone
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := parseStatus(input.Status)
		if err != nil {
			return catalog.Draft{}, err
		}
		status = parsed
	}
	return catalog.Draft{
		Name:   input.Name,
		Score:  input.Score,
		Review: input.Review,
		Link:   strings.TrimSpace(input.Link),
		Status: status,
	}, nil
}

// ToEntry converts a full wire entry back into a catalog record. The status
// is required.
func ToEntry(dto Entry) (catalog.Entry, error) {
	status, err := parseStatus(dto.Status)
	if err != nil {
		return catalog.Entry{}, err
	}
	return catalog.Entry{
		ID:     strings.TrimSpace(dto.ID),
		Name:   dto.Name,
		Score:  dto.Score,
		Review: dto.Review,
		Link:   strings.TrimSpace(dto.Link),
		Status: status,
	}, nil
}

// FromImage converts a cached image to its API representation.
func FromImage(img *imagecache.Image) Image {
	if img == nil {
		return Image{}
	}
	return Image{
		Link:        img.Link,
		ContentType: img.ContentType,
		Data:        img.Data,
		FetchedAt:   formatTime(img.FetchedAt),
	}
}

// FromImageInfos converts cache metadata into API DTOs.
func FromImageInfos(infos []imagecache.Info) []ImageInfo {
	out := make([]ImageInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ImageInfo{
			Link:        info.Link,
			ContentType: info.ContentType,
			Size:        info.Size,
			FetchedAt:   formatTime(info.FetchedAt),
		})
	}
	return out
}

func parseStatus(raw string) (catalog.Status, error) {
	status, ok := catalog.ParseStatus(raw)
	if !ok {
		return "", services.Wrap(
			services.ErrValidation,
			"api",
			"parse status",
			fmt.Sprintf("unknown status %q (want one of %s)", raw, statusNames()),
			nil,
		)
	}
	return status, nil
}

func statusNames() string {
	names := make([]string, 0, 4)
	for _, status := range catalog.AllStatuses() {
		names = append(names, string(status))
	}
	return strings.Join(names, ", ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// FromChecks converts preflight results for transport.
func FromChecks(results []preflight.Result) []CheckResult {
	out := make([]CheckResult, 0, len(results))
	for _, r := range results {
		out = append(out, CheckResult{Name: r.Name, Passed: r.Passed, Detail: r.Detail})
	}
	return out
}
