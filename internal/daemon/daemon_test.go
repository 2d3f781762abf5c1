package daemon_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"shelf/internal/api"
	"shelf/internal/artwork"
	"shelf/internal/catalog"
	"shelf/internal/config"
	"shelf/internal/daemon"
	"shelf/internal/database"
	"shelf/internal/imagecache"
	"shelf/internal/scraper"
	"shelf/internal/testsupport"
)

func newDaemon(t *testing.T, cfg *config.Config) *daemon.Daemon {
	t.Helper()
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	entries := catalog.NewStore(db)
	images := imagecache.NewStore(db, nil)
	art := artwork.New(images, scraper.NewFromConfig(cfg, nil), entries)
	d, err := daemon.New(cfg, db, api.NewCatalogService(entries, images, art, nil), nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		_ = d.Close()
	})
	return d
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d := newDaemon(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	status, err := d.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status.Running || status.APIAddress == "" {
		t.Fatalf("expected running daemon with API address, got %#v", status)
	}
	if status.DatabasePath != cfg.DatabasePath() || status.LockFilePath != cfg.LockPath() {
		t.Fatalf("unexpected paths in status %#v", status)
	}

	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	if d.Running() {
		t.Fatal("expected daemon to be stopped")
	}
	if d.APIAddress() != "" {
		t.Fatal("expected API to be stopped")
	}
}

func TestDaemonLockPreventsSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := newDaemon(t, cfg)
	second := newDaemon(t, cfg)
	ctx := context.Background()

	if err := first.Start(ctx); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := second.Start(ctx); err == nil || !strings.Contains(err.Error(), "already running") {
		t.Fatalf("expected lock conflict, got %v", err)
	}
	first.Stop()
	if err := second.Start(ctx); err != nil {
		t.Fatalf("second Start after release failed: %v", err)
	}
}

func TestDaemonWithoutAPIBind(t *testing.T) {
	cfg := testsupport.NewConfig(t, func(c *config.Config) { c.Paths.APIBind = "" })
	d := newDaemon(t, cfg)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if d.APIAddress() != "" {
		t.Fatalf("expected API disabled, got %q", d.APIAddress())
	}
}

func TestHTTPAPIServesEntriesAndImages(t *testing.T) {
	site := testsupport.NewSite(t)
	cfg := testsupport.NewConfig(t, testsupport.WithRemoteSite(site.URL()))
	d := newDaemon(t, cfg)
	ctx := context.Background()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	base := "http://" + d.APIAddress()

	created, err := d.Catalog().CreateEntry(ctx, api.EntryInput{Name: "Show A", Link: site.Link("123-show"), Status: "waiting"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	var list api.EntryListResponse
	getJSON(t, base+"/api/entries?status=waiting", http.StatusOK, &list)
	if len(list.Entries) != 1 || list.Entries[0].ID != created.ID {
		t.Fatalf("unexpected entry list %#v", list)
	}

	var one api.EntryResponse
	getJSON(t, base+"/api/entries/"+created.ID, http.StatusOK, &one)
	if one.Entry.Name != "Show A" {
		t.Fatalf("unexpected entry %#v", one)
	}

	resp, err := http.Get(base + "/api/entries/" + created.ID + "/image")
	if err != nil {
		t.Fatalf("GET image: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/jpeg" {
		t.Fatalf("unexpected image response %d %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if string(body) != string(site.ImageBody) {
		t.Fatalf("unexpected image body %q", body)
	}

	var images api.ImageListResponse
	getJSON(t, base+"/api/images", http.StatusOK, &images)
	if len(images.Images) != 1 || images.Images[0].Link != created.Link {
		t.Fatalf("unexpected image list %#v", images)
	}

	getJSON(t, base+"/api/entries/"+catalog.NewID(), http.StatusNotFound, nil)
	getJSON(t, base+"/api/entries/"+catalog.NewID()+"/image", http.StatusNotFound, nil)
	getJSON(t, base+"/api/entries?status=bogus", http.StatusBadRequest, nil)
	getJSON(t, base+"/api/images?link="+"https://example.com/animes/1", http.StatusUnprocessableEntity, nil)

	var status api.DaemonStatus
	getJSON(t, base+"/api/status", http.StatusOK, &status)
	if status.Summary.Entries != 1 || status.Summary.Images != 1 {
		t.Fatalf("unexpected status summary %#v", status.Summary)
	}
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: expected %d, got %d: %s", url, wantStatus, resp.StatusCode, body)
	}
	if out == nil {
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}
