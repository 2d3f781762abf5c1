package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter narrows a list of entries by status and a free-text query.
// The zero value matches everything.
type Filter struct {
	Statuses []Status
	Query    string
}

// ParseStatuses converts CLI/API status arguments. Values may be
// comma-separated.
func ParseStatuses(values []string) ([]Status, bool) {
	var out []Status
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			status, ok := ParseStatus(part)
			if !ok {
				return nil, false
			}
			out = append(out, status)
		}
	}
	return out, true
}

// Empty reports whether the filter matches every entry.
func (f Filter) Empty() bool {
	return len(f.Statuses) == 0 && strings.TrimSpace(f.Query) == ""
}

// Apply returns the entries matching f, preserving order.
func (f Filter) Apply(entries []Entry) []Entry {
	if f.Empty() {
		return entries
	}
	folder := cases.Fold()
	query := folder.String(strings.TrimSpace(f.Query))
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if !f.matchesStatus(entry.Status) {
			continue
		}
		if query != "" && !strings.Contains(folder.String(entry.Name), query) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (f Filter) matchesStatus(status Status) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, candidate := range f.Statuses {
		if candidate == status {
			return true
		}
	}
	return false
}
