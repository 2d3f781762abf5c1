package scraper_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/net/html"

	"shelf/internal/config"
	"shelf/internal/imagecache"
	"shelf/internal/scraper"
	"shelf/internal/services"
	"shelf/internal/testsupport"
)

func newResolver(site *testsupport.Site) *scraper.Resolver {
	return scraper.New(scraper.Options{
		AcceptedPrefix: site.URL() + "/animes/",
		Origin:         site.URL(),
		UserAgent:      "shelf-test",
	})
}

func TestResolveFetchesPageAndImage(t *testing.T) {
	site := testsupport.NewSite(t)
	resolver := newResolver(site)
	link := site.Link("123-show")

	img, err := resolver.Resolve(context.Background(), link)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if img.Link != link {
		t.Fatalf("expected image keyed by input link, got %q", img.Link)
	}
	if !bytes.Equal(img.Data, site.ImageBody) {
		t.Fatalf("unexpected image bytes %q", img.Data)
	}
	if img.ContentType != "image/jpeg" {
		t.Fatalf("unexpected content type %q", img.ContentType)
	}
	if site.PageHits() != 1 || site.ImageHits() != 1 {
		t.Fatalf("expected one page and one image fetch, got %d/%d", site.PageHits(), site.ImageHits())
	}
}

func TestResolvePrefers2xCandidate(t *testing.T) {
	var requested atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/animes/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testsupport.PosterPage("/img/a.jpg 1x, /img/b.jpg 2x")))
	})
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		requested.Store(r.URL.Path)
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write([]byte("webp"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	resolver := scraper.New(scraper.Options{AcceptedPrefix: server.URL + "/animes/", Origin: server.URL})
	img, err := resolver.Resolve(context.Background(), server.URL+"/animes/1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got, _ := requested.Load().(string); got != "/img/b.jpg" {
		t.Fatalf("expected 2x candidate to be fetched, got %q", got)
	}
	if img.ContentType != "image/webp" {
		t.Fatalf("expected server content type, got %q", img.ContentType)
	}
}

func TestResolveDefaultsContentType(t *testing.T) {
	site := testsupport.NewSite(t, func(s *testsupport.Site) { s.ContentType = "" })

	img, err := newResolver(site).Resolve(context.Background(), site.Link("2"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if img.ContentType != imagecache.DefaultContentType {
		t.Fatalf("expected default content type, got %q", img.ContentType)
	}
}

func TestResolveRejectsUnsupportedLinkWithoutNetwork(t *testing.T) {
	site := testsupport.NewSite(t)
	resolver := newResolver(site)

	for _, link := range []string{"https://example.com/animes/1", "", site.URL() + "/mangas/1"} {
		_, err := resolver.Resolve(context.Background(), link)
		if !errors.Is(err, services.ErrUnsupportedSource) {
			t.Fatalf("link %q: expected ErrUnsupportedSource, got %v", link, err)
		}
	}
	if site.PageHits() != 0 || site.ImageHits() != 0 {
		t.Fatalf("expected zero network calls, got %d/%d", site.PageHits(), site.ImageHits())
	}
}

func TestResolveDefaultPrefixIsShikimori(t *testing.T) {
	resolver := scraper.New(scraper.Options{})
	if resolver.AcceptedPrefix() != config.DefaultAcceptedPrefix {
		t.Fatalf("unexpected default prefix %q", resolver.AcceptedPrefix())
	}
	if !resolver.Supports("https://shikimori.one/animes/123-show") {
		t.Fatal("expected shikimori anime link to be supported")
	}
	if resolver.Supports("https://shikimori.one/mangas/1") {
		t.Fatal("expected manga link to be rejected")
	}
}

func TestResolveFailures(t *testing.T) {
	cases := []struct {
		name    string
		page    func(w http.ResponseWriter)
		image   func(w http.ResponseWriter)
		wantErr error
	}{
		{
			name:    "page status",
			page:    func(w http.ResponseWriter) { http.Error(w, "gone", http.StatusNotFound) },
			wantErr: services.ErrTransport,
		},
		{
			name:    "no poster element",
			page:    func(w http.ResponseWriter) { _, _ = w.Write([]byte("<html><body><p>changed</p></body></html>")) },
			wantErr: services.ErrParse,
		},
		{
			name:    "missing srcset",
			page:    func(w http.ResponseWriter) { _, _ = w.Write([]byte(testsupport.PosterPage(""))) },
			wantErr: services.ErrParse,
		},
		{
			name:    "blank srcset",
			page:    func(w http.ResponseWriter) { _, _ = w.Write([]byte(testsupport.PosterPage(" , "))) },
			wantErr: services.ErrParse,
		},
		{
			name:    "image status",
			page:    func(w http.ResponseWriter) { _, _ = w.Write([]byte(testsupport.PosterPage("/img/a.jpg 2x"))) },
			image:   func(w http.ResponseWriter) { http.Error(w, "boom", http.StatusInternalServerError) },
			wantErr: services.ErrTransport,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/animes/", func(w http.ResponseWriter, r *http.Request) { tc.page(w) })
			mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
				if tc.image != nil {
					tc.image(w)
					return
				}
				_, _ = w.Write([]byte("ok"))
			})
			server := httptest.NewServer(mux)
			defer server.Close()

			resolver := scraper.New(scraper.Options{AcceptedPrefix: server.URL + "/animes/", Origin: server.URL})
			img, err := resolver.Resolve(context.Background(), server.URL+"/animes/1")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if img != nil {
				t.Fatalf("expected no image on failure, got %#v", img)
			}
		})
	}
}

func TestResolveTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	origin := server.URL
	server.Close()

	resolver := scraper.New(scraper.Options{AcceptedPrefix: origin + "/animes/", Origin: origin})
	if _, err := resolver.Resolve(context.Background(), origin+"/animes/1"); !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestSelectorExtractorMalformedSelector(t *testing.T) {
	extractor := scraper.NewSelectorExtractor("div > > [")
	if err := extractor.Err(); !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse from compile, got %v", err)
	}
	doc, err := html.Parse(strings.NewReader("<html></html>"))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	if _, err := extractor.Srcset(doc); !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestDefaultSelectorMatchesPosterPage(t *testing.T) {
	extractor := scraper.NewSelectorExtractor(config.DefaultPosterSelector)
	if err := extractor.Err(); err != nil {
		t.Fatalf("default selector should compile: %v", err)
	}
	doc, err := html.Parse(strings.NewReader(testsupport.PosterPage("/a.jpg 1x")))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	srcset, err := extractor.Srcset(doc)
	if err != nil {
		t.Fatalf("Srcset failed: %v", err)
	}
	if srcset != "/a.jpg 1x" {
		t.Fatalf("unexpected srcset %q", srcset)
	}
}
