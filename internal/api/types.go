package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// EntryInput carries the user-editable fields for a new entry.
type EntryInput struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Review string  `json:"review"`
	Link   string  `json:"link"`
	Status string  `json:"status"`
}

// Entry describes a catalog entry in a transport-friendly format.
type Entry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Review    string  `json:"review"`
	Link      string  `json:"link"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// Image is a cached cover image including its bytes.
type Image struct {
	Link        string `json:"link"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"imageData"`
	FetchedAt   string `json:"fetchedAt,omitempty"`
}

// ImageInfo describes a cached image without its bytes.
type ImageInfo struct {
	Link        string `json:"link"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	FetchedAt   string `json:"fetchedAt,omitempty"`
}

// Summary reports catalog and cache sizes.
type Summary struct {
	Entries      int            `json:"entries"`
	Images       int            `json:"images"`
	StatusCounts map[string]int `json:"statusCounts"`
}

// CheckResult mirrors a preflight check outcome.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// DaemonStatus aggregates runtime information for API consumers.
type DaemonStatus struct {
	Running      bool          `json:"running"`
	PID          int           `json:"pid"`
	DatabasePath string        `json:"databasePath"`
	LockFilePath string        `json:"lockFilePath"`
	SocketPath   string        `json:"socketPath"`
	APIAddress   string        `json:"apiAddress,omitempty"`
	Summary      Summary       `json:"summary"`
	Checks       []CheckResult `json:"checks,omitempty"`
}

// EntryListResponse wraps a collection of entries for API responses.
type EntryListResponse struct {
	Entries []Entry `json:"entries"`
}

// EntryResponse wraps a single entry.
type EntryResponse struct {
	Entry Entry `json:"entry"`
}

// ImageListResponse wraps cached image metadata.
type ImageListResponse struct {
	Images []ImageInfo `json:"images"`
}
