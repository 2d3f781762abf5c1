package imagecache

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shelf/internal/database"
	"shelf/internal/logging"
	"shelf/internal/services"
)

const component = "imagecache"

// Store keeps cover images in SQLite.
type Store struct {
	db     *database.DB
	guard  *services.Guard
	logger *slog.Logger
	now    func() time.Time
}

// NewStore returns an image cache store over db. A nil logger discards
// diagnostics.
func NewStore(db *database.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		db:     db,
		guard:  services.NewGuard(component),
		logger: logging.NewComponentLogger(logger, component),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the cached image for link, or nil when none is cached.
func (s *Store) Get(ctx context.Context, link string) (*Image, error) {
	var img *Image
	err := s.guard.Do("get", func() error {
		var (
			image      Image
			fetchedRaw sql.NullString
		)
		row := s.db.SQL().QueryRowContext(
			ctx,
			`SELECT link, image_data, content_type, fetched_at FROM images WHERE link = ?`,
			link,
		)
		err := row.Scan(&image.Link, &image.Data, &image.ContentType, &fetchedRaw)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "get", "read image", err)
		}
		image.FetchedAt = parseTime(fetchedRaw)
		img = &image
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Save stores img under its link, replacing any existing record.
func (s *Store) Save(ctx context.Context, img Image) error {
	if strings.TrimSpace(img.Link) == "" {
		return services.Wrap(services.ErrValidation, component, "save", "image link is empty", nil)
	}
	img.ContentType = NormalizeContentType(img.ContentType)
	if img.FetchedAt.IsZero() {
		img.FetchedAt = s.now()
	}
	if img.Data == nil {
		img.Data = []byte{}
	}

	err := s.guard.Do("save", func() error {
		if _, err := s.db.Exec(
			ctx,
			`INSERT INTO images (link, image_data, content_type, fetched_at)
             VALUES (?, ?, ?, ?)
             ON CONFLICT(link) DO UPDATE SET
                 image_data = excluded.image_data,
                 content_type = excluded.content_type,
                 fetched_at = excluded.fetched_at`,
			img.Link,
			img.Data,
			img.ContentType,
			img.FetchedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return services.Wrap(services.ErrPersistence, component, "save", "insert image", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("image cached",
		logging.String(logging.FieldLink, img.Link),
		logging.Int("bytes", len(img.Data)),
		logging.String("content_type", img.ContentType),
	)
	return nil
}

// List returns metadata for every cached image ordered by link.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	infos := []Info{}
	err := s.guard.Do("list", func() error {
		rows, err := s.db.SQL().QueryContext(
			ctx,
			`SELECT link, content_type, length(image_data), fetched_at FROM images ORDER BY link`,
		)
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "list", "query images", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				info       Info
				fetchedRaw sql.NullString
			)
			if err := rows.Scan(&info.Link, &info.ContentType, &info.Size, &fetchedRaw); err != nil {
				return services.Wrap(services.ErrPersistence, component, "list", "scan image", err)
			}
			info.FetchedAt = parseTime(fetchedRaw)
			infos = append(infos, info)
		}
		if err := rows.Err(); err != nil {
			return services.Wrap(services.ErrPersistence, component, "list", "iterate images", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Count returns the number of cached images.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.guard.Do("count", func() error {
		if err := s.db.SQL().QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&count); err != nil {
			return services.Wrap(services.ErrPersistence, component, "count", "count images", err)
		}
		return nil
	})
	return count, err
}

// Clear removes every cached image and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	var removed int64
	err := s.guard.Do("clear", func() error {
		res, err := s.db.Exec(ctx, `DELETE FROM images`)
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "clear", "delete images", err)
		}
		removed, err = res.RowsAffected()
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "clear", "rows affected", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("image cache cleared", logging.Int64("removed", removed))
	return removed, nil
}

func parseTime(raw sql.NullString) time.Time {
	if !raw.Valid || raw.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
