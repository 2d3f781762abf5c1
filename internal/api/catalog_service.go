package api

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"shelf/internal/catalog"
	"shelf/internal/imagecache"
	"shelf/internal/logging"
)

// EntryStore abstracts catalog persistence.
type EntryStore interface {
	Create(ctx context.Context, entry catalog.Entry) (*catalog.Entry, error)
	Get(ctx context.Context, id string) (*catalog.Entry, error)
	Update(ctx context.Context, entry catalog.Entry) (*catalog.Entry, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]catalog.Entry, error)
	Validate(entry catalog.Entry) error
}

// ImageStore abstracts the cover image cache for maintenance commands.
type ImageStore interface {
	List(ctx context.Context) ([]imagecache.Info, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) (int64, error)
}

// Artwork serves cover images cache-aside.
type Artwork interface {
	GetOrFetch(ctx context.Context, link string) (*imagecache.Image, error)
	GetOrFetchForEntry(ctx context.Context, entryID string) (*imagecache.Image, error)
}

// CatalogService implements every command exposed to clients.
type CatalogService struct {
	entries EntryStore
	images  ImageStore
	artwork Artwork
	logger  *slog.Logger
}

// NewCatalogService wires the command surface.
func NewCatalogService(entries EntryStore, images ImageStore, artwork Artwork, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		entries: entries,
		images:  images,
		artwork: artwork,
		logger:  logging.NewComponentLogger(logger, "api"),
	}
}

// CreateEntry stores a new entry with a fresh identifier.
func (s *CatalogService) CreateEntry(ctx context.Context, input EntryInput) (Entry, error) {
	draft, err := ToDraft(input)
	if err != nil {
		return Entry{}, err
	}
	stored, err := s.entries.Create(ctx, catalog.NewEntry(draft))
	if err != nil {
		return Entry{}, err
	}
	logging.WithContext(ctx, s.logger).Info("entry created",
		logging.String(logging.FieldEntryID, stored.ID),
		logging.String(logging.FieldEventType, "entry_created"),
	)
	return FromEntry(stored), nil
}

// GetEntry returns the entry with id, or nil when it does not exist.
func (s *CatalogService) GetEntry(ctx context.Context, id string) (*Entry, error) {
	entry, err := s.entries.Get(ctx, strings.TrimSpace(id))
	if err != nil || entry == nil {
		return nil, err
	}
	dto := FromEntry(entry)
	return &dto, nil
}

// UpdateEntry replaces an existing entry. It fails with ErrNotFound when the
// entry does not exist.
func (s *CatalogService) UpdateEntry(ctx context.Context, dto Entry) (Entry, error) {
	entry, err := ToEntry(dto)
	if err != nil {
		return Entry{}, err
	}
	stored, err := s.entries.Update(ctx, entry)
	if err != nil {
		return Entry{}, err
	}
	logging.WithContext(ctx, s.logger).Info("entry updated",
		logging.String(logging.FieldEntryID, stored.ID),
		logging.String(logging.FieldEventType, "entry_updated"),
	)
	return FromEntry(stored), nil
}

// DeleteEntry removes an entry and reports whether it existed.
func (s *CatalogService) DeleteEntry(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	removed, err := s.entries.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		logging.WithContext(ctx, s.logger).Info("entry deleted",
			logging.String(logging.FieldEntryID, id),
			logging.String(logging.FieldEventType, "entry_deleted"),
		)
	}
	return removed, nil
}

// ListEntries returns all entries matching filter.
func (s *CatalogService) ListEntries(ctx context.Context, filter catalog.Filter) ([]Entry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromEntries(filter.Apply(entries)), nil
}

// GetImageForEntry returns the cover image of an entry, fetching it on first use.
func (s *CatalogService) GetImageForEntry(ctx context.Context, entryID string) (Image, error) {
	img, err := s.artwork.GetOrFetchForEntry(ctx, strings.TrimSpace(entryID))
	if err != nil {
		return Image{}, err
	}
	return FromImage(img), nil
}

// GetImageByLink returns the cover image for a link, fetching it on first use.
func (s *CatalogService) GetImageByLink(ctx context.Context, link string) (Image, error) {
	img, err := s.artwork.GetOrFetch(ctx, strings.TrimSpace(link))
	if err != nil {
		return Image{}, err
	}
	return FromImage(img), nil
}

// ListImages returns metadata for every cached image.
func (s *CatalogService) ListImages(ctx context.Context) ([]ImageInfo, error) {
	infos, err := s.images.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromImageInfos(infos), nil
}

// ClearImages empties the image cache.
func (s *CatalogService) ClearImages(ctx context.Context) (int64, error) {
	return s.images.Clear(ctx)
}

// ExportEntries renders every entry as a JSON document.
func (s *CatalogService) ExportEntries(ctx context.Context) ([]byte, int, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	var buf bytes.Buffer
	if err := catalog.Export(&buf, entries); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(entries), nil
}

// ImportEntries creates a new entry for every record in document. The whole
// document is validated before anything is written.
func (s *CatalogService) ImportEntries(ctx context.Context, document []byte) ([]Entry, error) {
	drafts, err := catalog.DecodeImport(bytes.NewReader(document))
	if err != nil {
		return nil, err
	}
	pending := make([]catalog.Entry, 0, len(drafts))
	for _, draft := range drafts {
		entry := catalog.NewEntry(draft)
		if err := s.entries.Validate(entry); err != nil {
			return nil, err
		}
		pending = append(pending, entry)
	}

	created := make([]Entry, 0, len(pending))
	for _, entry := range pending {
		stored, err := s.entries.Create(ctx, entry)
		if err != nil {
			return created, err
		}
		created = append(created, FromEntry(stored))
	}
	logging.WithContext(ctx, s.logger).Info("entries imported",
		logging.Int("count", len(created)),
		logging.String(logging.FieldEventType, "entries_imported"),
	)
	return created, nil
}

// Summary reports catalog and cache sizes.
func (s *CatalogService) Summary(ctx context.Context) (Summary, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	images, err := s.images.Count(ctx)
	if err != nil {
		return Summary{}, err
	}
	counts := make(map[string]int, len(catalog.AllStatuses()))
	for _, status := range catalog.AllStatuses() {
		counts[string(status)] = 0
	}
	for _, entry := range entries {
		counts[string(entry.Status)]++
	}
	return Summary{Entries: len(entries), Images: images, StatusCounts: counts}, nil
}
