package artwork

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"shelf/internal/catalog"
	"shelf/internal/imagecache"
	"shelf/internal/logging"
	"shelf/internal/services"
)

const component = "artwork"

// Cache is the image store consulted before any remote fetch.
type Cache interface {
	Get(ctx context.Context, link string) (*imagecache.Image, error)
	Save(ctx context.Context, img imagecache.Image) error
}

// Resolver downloads a cover image for a link.
type Resolver interface {
	Resolve(ctx context.Context, link string) (*imagecache.Image, error)
}

// EntryLookup resolves entry identifiers to entries.
type EntryLookup interface {
	Get(ctx context.Context, id string) (*catalog.Entry, error)
}

// Service implements get-or-fetch over a cache and a resolver.
type Service struct {
	cache    Cache
	resolver Resolver
	entries  EntryLookup
	logger   *slog.Logger
	inflight *singleflight.Group
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, component)
		}
	}
}

// WithSingleFlight collapses concurrent misses for the same link into one
// remote fetch when enabled.
func WithSingleFlight(enabled bool) Option {
	return func(s *Service) {
		if enabled {
			s.inflight = &singleflight.Group{}
		} else {
			s.inflight = nil
		}
	}
}

// New constructs the orchestrator.
func New(cache Cache, resolver Resolver, entries EntryLookup, opts ...Option) *Service {
	s := &Service{
		cache:    cache,
		resolver: resolver,
		entries:  entries,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrFetch returns the cached image for link, resolving and caching it on
// a miss. Once cached, a link is never fetched again until the cache is
// cleared. Failed resolutions cache nothing.
func (s *Service) GetOrFetch(ctx context.Context, link string) (*imagecache.Image, error) {
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldLink, link))

	cached, err := s.cache.Get(ctx, link)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		logger.Debug("cover image served from cache")
		return cached, nil
	}

	if s.inflight == nil {
		return s.fetchAndStore(ctx, link, logger)
	}

	// The shared fetch outlives any single caller; each caller still stops
	// waiting when its own context ends.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(link, func() (any, error) {
		// A caller that finished just before this flight started may have
		// filled the cache already.
		cached, err := s.cache.Get(flightCtx, link)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
		return s.fetchAndStore(flightCtx, link, logger)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	img := res.Val.(*imagecache.Image)
	if res.Shared {
		logger.Debug("cover image shared with concurrent request")
		cp := *img
		return &cp, nil
	}
	return img, nil
}

// GetOrFetchForEntry looks up the entry's link and delegates to GetOrFetch.
// A missing entry fails with ErrNotFound before any network activity.
func (s *Service) GetOrFetchForEntry(ctx context.Context, entryID string) (*imagecache.Image, error) {
	ctx = services.WithEntryID(ctx, entryID)
	entry, err := s.entries.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, services.Wrap(services.ErrNotFound, component, "image for entry", fmt.Sprintf("entry %q does not exist", entryID), nil)
	}
	return s.GetOrFetch(ctx, entry.Link)
}

func (s *Service) fetchAndStore(ctx context.Context, link string, logger *slog.Logger) (*imagecache.Image, error) {
	started := time.Now()
	img, err := s.resolver.Resolve(ctx, link)
	if err != nil {
		logging.WarnWithContext(logger, "cover image fetch failed", "artwork_fetch_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.String(logging.FieldErrorHint, "verify the link opens the title page in a browser"),
			logging.String(logging.FieldImpact, "entry is shown without a cover image"),
		)
		return nil, err
	}
	// The cache key is always the requested link.
	img.Link = link
	if err := s.cache.Save(ctx, *img); err != nil {
		return nil, err
	}
	logger.Info("cover image cached",
		logging.Int("bytes", len(img.Data)),
		logging.String("content_type", img.ContentType),
		logging.Duration("elapsed", time.Since(started)),
	)
	return img, nil
}
