package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"shelf/internal/config"
	"shelf/internal/imagecache"
	"shelf/internal/logging"
	"shelf/internal/services"
)

const component = "scraper"

const (
	maxPageBytes  = 8 << 20
	maxImageBytes = 32 << 20
)

// HTTPDoer describes the HTTP client used by the resolver.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Resolver.
type Options struct {
	AcceptedPrefix string
	Origin         string
	UserAgent      string
	Extractor      Extractor
	Client         HTTPDoer
	Logger         *slog.Logger
	Now            func() time.Time
}

// Resolver scrapes cover images from the configured site.
type Resolver struct {
	prefix    string
	origin    string
	userAgent string
	extractor Extractor
	client    HTTPDoer
	logger    *slog.Logger
	now       func() time.Time
}

// New constructs a resolver. Missing options fall back to the site defaults
// and http.DefaultClient.
func New(opts Options) *Resolver {
	r := &Resolver{
		prefix:    opts.AcceptedPrefix,
		origin:    strings.TrimRight(opts.Origin, "/"),
		userAgent: strings.TrimSpace(opts.UserAgent),
		extractor: opts.Extractor,
		client:    opts.Client,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if r.prefix == "" {
		r.prefix = config.DefaultAcceptedPrefix
	}
	if r.origin == "" {
		r.origin = config.DefaultOrigin
	}
	if r.extractor == nil {
		r.extractor = NewSelectorExtractor(config.DefaultPosterSelector)
	}
	if r.client == nil {
		r.client = http.DefaultClient
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	r.logger = logging.NewComponentLogger(r.logger, component)
	if r.now == nil {
		r.now = func() time.Time { return time.Now().UTC() }
	}
	return r
}

// NewFromConfig builds a resolver from the scraper config section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Resolver {
	client := &http.Client{}
	if timeout := cfg.RequestTimeout(); timeout > 0 {
		client.Timeout = timeout
	}
	return New(Options{
		AcceptedPrefix: cfg.Scraper.AcceptedPrefix,
		Origin:         cfg.Scraper.Origin,
		UserAgent:      cfg.Scraper.UserAgent,
		Extractor:      NewSelectorExtractor(cfg.Scraper.Selector),
		Client:         client,
		Logger:         logger,
	})
}

// AcceptedPrefix returns the link prefix the resolver accepts.
func (r *Resolver) AcceptedPrefix() string {
	return r.prefix
}

// Supports reports whether link passes the prefix check.
func (r *Resolver) Supports(link string) bool {
	return strings.HasPrefix(link, r.prefix)
}

// Resolve downloads the cover image for link.
func (r *Resolver) Resolve(ctx context.Context, link string) (*imagecache.Image, error) {
	if !r.Supports(link) {
		return nil, services.Wrap(
			services.ErrUnsupportedSource,
			component,
			"resolve",
			fmt.Sprintf("only links starting with %s are supported", r.prefix),
			nil,
		)
	}

	page, _, err := r.fetch(ctx, link, maxPageBytes, "fetch page")
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, services.Wrap(services.ErrParse, component, "parse page", "read HTML document", err)
	}
	srcset, err := r.extractor.Srcset(doc)
	if err != nil {
		return nil, err
	}
	candidate := PickSrcsetURL(srcset)
	if candidate == "" {
		return nil, services.Wrap(services.ErrParse, component, "extract", "srcset has no image candidates", nil)
	}
	imageURL := NormalizeImageURL(candidate, r.origin)

	r.logger.Debug("poster located",
		logging.String(logging.FieldLink, link),
		logging.String("image_url", imageURL),
	)

	data, contentType, err := r.fetch(ctx, imageURL, maxImageBytes, "fetch image")
	if err != nil {
		return nil, err
	}

	return &imagecache.Image{
		Link:        link,
		Data:        data,
		ContentType: imagecache.NormalizeContentType(contentType),
		FetchedAt:   r.now(),
	}, nil
}

func (r *Resolver) fetch(ctx context.Context, target string, limit int64, operation string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", services.Wrap(services.ErrTransport, component, operation, fmt.Sprintf("build request for %s", target), err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, "", services.Wrap(services.ErrTransport, component, operation, fmt.Sprintf("request %s", target), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", services.Wrap(
			services.ErrTransport,
			component,
			operation,
			fmt.Sprintf("%s returned %d %s", target, resp.StatusCode, http.StatusText(resp.StatusCode)),
			nil,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", services.Wrap(services.ErrTransport, component, operation, fmt.Sprintf("read body of %s", target), err)
	}
	if int64(len(body)) > limit {
		return nil, "", services.Wrap(services.ErrTransport, component, operation, fmt.Sprintf("%s exceeds %d bytes", target, limit), nil)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
