package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImageAndCacheCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	link := env.site.Link("1-cowboy-bebop")

	out, _, err := runCLI(t, []string{"add", "Cowboy Bebop", "--link", link, "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id := extractJSONField(t, out, "id")

	target := filepath.Join(env.baseDir, "cover.jpg")
	out, _, err = runCLI(t, []string{"image", id, "-o", target}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	requireContains(t, out, "image/jpeg")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read cover: %v", err)
	}
	if !bytes.Equal(data, env.site.ImageBody) {
		t.Fatalf("unexpected cover bytes %q", data)
	}

	out, _, err = runCLI(t, []string{"image", "--link", link, "-o", "-"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("image --link: %v", err)
	}
	if out != string(env.site.ImageBody) {
		t.Fatalf("unexpected stdout bytes %q", out)
	}
	if env.site.PageHits() != 1 {
		t.Fatalf("expected one page fetch, got %d", env.site.PageHits())
	}

	out, _, err = runCLI(t, []string{"cache", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, link)

	out, _, err = runCLI(t, []string{"cache", "clear"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 1")

	out, _, err = runCLI(t, []string{"cache", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("cache list after clear: %v", err)
	}
	requireContains(t, out, "Cache is empty")
}

func TestImageCommandArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"image"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error without entry id or link")
	}
	_, _, err := runCLI(t, []string{"image", "--link", "https://example.com/animes/1"}, env.socketPath, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported link error, got %v", err)
	}
}
