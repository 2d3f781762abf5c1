package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the user's watch state for an entry.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
	StatusWaiting   Status = "waiting"
	StatusNone      Status = "none"
)

var allStatuses = []Status{
	StatusCompleted,
	StatusDropped,
	StatusWaiting,
	StatusNone,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status. Matching is
// case-insensitive.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

// Label returns the capitalized form shown in tables.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// MarshalJSON refuses to emit an unknown status.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %q", string(s))
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON accepts the lowercase names and rejects anything else. An
// empty string decodes as none.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		*s = StatusNone
		return nil
	}
	parsed, ok := ParseStatus(raw)
	if !ok {
		return fmt.Errorf("unknown status %q", raw)
	}
	*s = parsed
	return nil
}

// Entry is one catalog record.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     float64   `json:"score"`
	Review    string    `json:"review"`
	Link      string    `json:"link"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft carries the user-editable fields of an entry without an identity.
type Draft struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Review string  `json:"review"`
	Link   string  `json:"link"`
	Status Status  `json:"status"`
}

// NewEntry builds an entry from a draft with a fresh random identifier.
// An empty status defaults to StatusNone.
func NewEntry(d Draft) Entry {
	status := d.Status
	if status == "" {
		status = StatusNone
	}
	return Entry{
		ID:     NewID(),
		Name:   d.Name,
		Score:  d.Score,
		Review: d.Review,
		Link:   strings.TrimSpace(d.Link),
		Status: status,
	}
}

// NewID returns a random version-4 UUID string.
func NewID() string {
	return uuid.NewString()
}

// Draft returns the editable fields of e.
func (e Entry) Draft() Draft {
	return Draft{
		Name:   e.Name,
		Score:  e.Score,
		Review: e.Review,
		Link:   e.Link,
		Status: e.Status,
	}
}

// HasLink reports whether the entry references a remote page.
func (e Entry) HasLink() bool {
	return strings.TrimSpace(e.Link) != ""
}
