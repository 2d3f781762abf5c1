package scraper

import "testing"

func TestPickSrcsetURL(t *testing.T) {
	cases := []struct {
		name   string
		srcset string
		want   string
	}{
		{name: "prefers 2x", srcset: "//cdn.example/a.jpg 1x, //cdn.example/b.jpg 2x", want: "//cdn.example/b.jpg"},
		{name: "first without 2x", srcset: "/a.jpg 1x, /b.jpg 1.5x", want: "/a.jpg"},
		{name: "single bare url", srcset: "https://cdn.example/only.jpg", want: "https://cdn.example/only.jpg"},
		{name: "first 2x wins", srcset: "a.jpg 2x, b.jpg 2x", want: "a.jpg"},
		{name: "extra whitespace", srcset: "  a.jpg   1x ,\n b.jpg\t2x ", want: "b.jpg"},
		{name: "empty", srcset: "", want: ""},
		{name: "only commas", srcset: " , ,", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PickSrcsetURL(tc.srcset); got != tc.want {
				t.Fatalf("PickSrcsetURL(%q) = %q, want %q", tc.srcset, got, tc.want)
			}
		})
	}
}

func TestNormalizeImageURL(t *testing.T) {
	const origin = "https://shikimori.one"
	cases := map[string]string{
		"//cdn.example/b.jpg":           "https://cdn.example/b.jpg",
		"/system/animes/original/1.jpg": "https://shikimori.one/system/animes/original/1.jpg",
		"https://cdn.example/c.jpg":     "https://cdn.example/c.jpg",
		"http://cdn.example/d.jpg":      "http://cdn.example/d.jpg",
	}
	for input, want := range cases {
		if got := NormalizeImageURL(input, origin); got != want {
			t.Fatalf("NormalizeImageURL(%q) = %q, want %q", input, got, want)
		}
	}
	if got := NormalizeImageURL("/x.jpg", origin+"/"); got != origin+"/x.jpg" {
		t.Fatalf("expected trailing slash on origin to be trimmed, got %q", got)
	}
}

func TestSrcsetSelectionEndToEnd(t *testing.T) {
	raw := PickSrcsetURL("//cdn.example/a.jpg 1x, //cdn.example/b.jpg 2x")
	if got := NormalizeImageURL(raw, "https://shikimori.one"); got != "https://cdn.example/b.jpg" {
		t.Fatalf("unexpected normalized url %q", got)
	}
}
