package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"shelf/internal/services"
)

// ExportFileName returns the default export file name for day.
func ExportFileName(day time.Time) string {
	return fmt.Sprintf("catalog-%s.json", day.Format("2006-01-02"))
}

// Export writes entries as an indented JSON array.
func Export(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return services.Wrap(services.ErrPersistence, component, "export", "encode entries", err)
	}
	return nil
}

// DecodeImport parses an export document into drafts. Identifiers and
// timestamps in the document are ignored; every draft becomes a new entry on
// import. A missing or empty status defaults to none, an unknown one fails
// the whole document.
func DecodeImport(r io.Reader) ([]Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, component, "import", "read document", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, services.Wrap(services.ErrValidation, component, "import", "document is empty", nil)
	}

	var drafts []Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, services.Wrap(services.ErrValidation, component, "import", "decode entries", err)
	}
	for i := range drafts {
		if drafts[i].Status == "" {
			drafts[i].Status = StatusNone
		}
	}
	return drafts, nil
}
