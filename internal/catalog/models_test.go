package catalog_test

import (
	"encoding/json"
	"strings"
	"testing"

	"shelf/internal/catalog"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]catalog.Status{
		"completed": catalog.StatusCompleted,
		"Dropped":   catalog.StatusDropped,
		" WAITING ": catalog.StatusWaiting,
		"none":      catalog.StatusNone,
	}
	for input, want := range cases {
		got, ok := catalog.ParseStatus(input)
		if !ok || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v", input, got, ok)
		}
	}
	if _, ok := catalog.ParseStatus("paused"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
	if _, ok := catalog.ParseStatus(""); ok {
		t.Fatal("expected empty status to be rejected")
	}
}

func TestStatusJSONUsesLowercaseNames(t *testing.T) {
	entry := catalog.NewEntry(catalog.Draft{Name: "x", Status: catalog.StatusWaiting})
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"status":"waiting"`) {
		t.Fatalf("unexpected encoding: %s", data)
	}

	var decoded catalog.Entry
	if err := json.Unmarshal([]byte(`{"id":"1","status":"Completed"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Status != catalog.StatusCompleted {
		t.Fatalf("expected completed, got %q", decoded.Status)
	}
	if err := json.Unmarshal([]byte(`{"id":"1","status":"paused"}`), &decoded); err == nil {
		t.Fatal("expected unknown status to fail decoding")
	}
}

func TestNewEntryDefaults(t *testing.T) {
	a := catalog.NewEntry(catalog.Draft{Name: "a", Link: "  https://shikimori.one/animes/1  "})
	b := catalog.NewEntry(catalog.Draft{Name: "b"})
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct generated IDs, got %q and %q", a.ID, b.ID)
	}
	if a.Status != catalog.StatusNone {
		t.Fatalf("expected default status none, got %q", a.Status)
	}
	if a.Link != "https://shikimori.one/animes/1" {
		t.Fatalf("expected trimmed link, got %q", a.Link)
	}
	if b.HasLink() {
		t.Fatal("expected entry without link")
	}
}
