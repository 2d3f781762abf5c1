package testsupport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// PosterPage renders an HTML page whose element tree matches the default
// poster selector, with the given srcset on the <source> element. An empty
// srcset omits the attribute.
func PosterPage(srcset string) string {
	attr := ""
	if srcset != "" {
		attr = fmt.Sprintf(` srcset="%s"`, srcset)
	}
	return `<!DOCTYPE html><html><body>
<div id="animes_show"><section><div><div class="menu-slide-outer x199"><div><div>
<div><div class="b-db_entry"><div class="c-image"><div class="cc block"><div class="c-poster"><div>
<picture><source` + attr + `><img src="/fallback.jpg"></picture>
</div></div></div></div></div></div>
<div>sidebar</div>
</div></div></div></div></section></div>
</body></html>`
}

// Site is a fake remote catalog site that counts page and image requests.
type Site struct {
	Server *httptest.Server

	pages  atomic.Int64
	images atomic.Int64

	// Srcset is served on every /animes/ page. It may reference the
	// placeholder {origin}, which is replaced with the server URL.
	Srcset      string
	ImageBody   []byte
	ContentType string
}

// NewSite starts a fake site. Pages live under /animes/ and images under
// /images/. Configure functions run before the server starts.
func NewSite(t testing.TB, configure ...func(*Site)) *Site {
	t.Helper()

	site := &Site{
		Srcset:      "{origin}/images/poster.jpg 1x, {origin}/images/poster@2x.jpg 2x",
		ImageBody:   []byte("\xff\xd8\xff\xe0fake-jpeg"),
		ContentType: "image/jpeg",
	}
	for _, fn := range configure {
		fn(site)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/animes/", func(w http.ResponseWriter, r *http.Request) {
		site.pages.Add(1)
		srcset := strings.ReplaceAll(site.Srcset, "{origin}", "http://"+r.Host)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(PosterPage(srcset)))
	})
	mux.HandleFunc("/images/", func(w http.ResponseWriter, r *http.Request) {
		site.images.Add(1)
		if site.ContentType != "" {
			w.Header().Set("Content-Type", site.ContentType)
		} else {
			// Suppress content sniffing so the header is really absent.
			w.Header()["Content-Type"] = nil
		}
		_, _ = w.Write(site.ImageBody)
	})
	site.Server = httptest.NewServer(mux)
	t.Cleanup(site.Server.Close)
	return site
}

// URL returns the server origin.
func (s *Site) URL() string {
	return s.Server.URL
}

// Link returns an accepted catalog link for slug.
func (s *Site) Link(slug string) string {
	return s.Server.URL + "/animes/" + slug
}

// PageHits reports how many page requests were served.
func (s *Site) PageHits() int64 {
	return s.pages.Load()
}

// ImageHits reports how many image requests were served.
func (s *Site) ImageHits() int64 {
	return s.images.Load()
}
