package ipc

import "shelf/internal/api"

// Entry mirrors the API entry DTO for IPC callers.
type Entry = api.Entry

// EntryInput mirrors the API entry input DTO.
type EntryInput = api.EntryInput

// Image mirrors the API image DTO.
type Image = api.Image

// ImageInfo mirrors the API image metadata DTO.
type ImageInfo = api.ImageInfo

// DaemonStatus mirrors the API daemon status DTO.
type DaemonStatus = api.DaemonStatus

// CreateEntryRequest creates a new entry.
type CreateEntryRequest struct {
	Entry EntryInput `json:"entry"`
}

// CreateEntryResponse returns the stored entry.
type CreateEntryResponse struct {
	Entry Entry `json:"entry"`
}

// GetEntryRequest fetches one entry.
type GetEntryRequest struct {
	ID string `json:"id"`
}

// GetEntryResponse carries the entry when found.
type GetEntryResponse struct {
	Found bool   `json:"found"`
	Entry *Entry `json:"entry,omitempty"`
}

// UpdateEntryRequest replaces an existing entry.
type UpdateEntryRequest struct {
	Entry Entry `json:"entry"`
}

// UpdateEntryResponse returns the stored entry.
type UpdateEntryResponse struct {
	Entry Entry `json:"entry"`
}

// DeleteEntryRequest removes one entry.
type DeleteEntryRequest struct {
	ID string `json:"id"`
}

// DeleteEntryResponse reports whether the entry existed.
type DeleteEntryResponse struct {
	Existed bool `json:"existed"`
}

// ListEntriesRequest filters the entry listing.
type ListEntriesRequest struct {
	Statuses []string `json:"statuses"`
	Query    string   `json:"query"`
}

// ListEntriesResponse contains entries.
type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

// GetImageForEntryRequest fetches the cover of an entry.
type GetImageForEntryRequest struct {
	EntryID string `json:"entry_id"`
}

// GetImageByLinkRequest fetches the cover for a link.
type GetImageByLinkRequest struct {
	Link string `json:"link"`
}

// ImageResponse carries a cover image.
type ImageResponse struct {
	Image Image `json:"image"`
}

// ListImagesRequest lists cached covers.
type ListImagesRequest struct{}

// ListImagesResponse contains cached cover metadata.
type ListImagesResponse struct {
	Images []ImageInfo `json:"images"`
}

// ClearImagesRequest empties the image cache.
type ClearImagesRequest struct{}

// ClearImagesResponse reports number of removed images.
type ClearImagesResponse struct {
	Removed int64 `json:"removed"`
}

// ExportEntriesRequest renders the catalog as JSON.
type ExportEntriesRequest struct{}

// ExportEntriesResponse carries the export document.
type ExportEntriesResponse struct {
	Document string `json:"document"`
	Count    int    `json:"count"`
}

// ImportEntriesRequest creates entries from an export document.
type ImportEntriesRequest struct {
	Document string `json:"document"`
}

// ImportEntriesResponse lists the created entries.
type ImportEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents daemon status information.
type StatusResponse struct {
	Status DaemonStatus `json:"status"`
}
