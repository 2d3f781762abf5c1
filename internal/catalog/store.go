package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"shelf/internal/config"
	"shelf/internal/database"
	"shelf/internal/logging"
	"shelf/internal/services"
)

const component = "catalog"

const entryColumns = "id, name, score, review, link, status, created_at, updated_at"

// ScoreRange bounds entry scores when enforced.
type ScoreRange struct {
	Min float64
	Max float64
}

// Store persists catalog entries in SQLite.
type Store struct {
	db     *database.DB
	guard  *services.Guard
	logger *slog.Logger
	scores *ScoreRange
	now    func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger attaches a logger for store diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, component)
		}
	}
}

// WithScoreRange enables score validation on create and update.
func WithScoreRange(min, max float64) Option {
	return func(s *Store) {
		s.scores = &ScoreRange{Min: min, Max: max}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// OptionsFromConfig derives store options from the catalog config section.
func OptionsFromConfig(cfg *config.Config) []Option {
	if cfg == nil || !cfg.Catalog.EnforceScoreRange {
		return nil
	}
	return []Option{WithScoreRange(cfg.Catalog.MinScore, cfg.Catalog.MaxScore)}
}

// NewStore returns an entity store over db.
func NewStore(db *database.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		guard:  services.NewGuard(component),
		logger: logging.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores entry under its ID, replacing any existing record with the
// same ID. An empty ID is filled with a fresh UUID. The original creation
// time of a replaced record is preserved.
func (s *Store) Create(ctx context.Context, entry Entry) (*Entry, error) {
	if strings.TrimSpace(entry.ID) == "" {
		entry.ID = NewID()
	}
	if err := s.Validate(entry); err != nil {
		return nil, err
	}

	var stored *Entry
	err := s.guard.Do("create", func() error {
		timestamp := s.now().Format(time.RFC3339Nano)
		err := database.RetryOnBusy(ctx, func() error {
			row := s.db.SQL().QueryRowContext(
				ctx,
				`INSERT INTO entries (`+entryColumns+`)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
                 ON CONFLICT(id) DO UPDATE SET
                     name = excluded.name,
                     score = excluded.score,
                     review = excluded.review,
                     link = excluded.link,
                     status = excluded.status,
                     updated_at = excluded.updated_at
                 RETURNING `+entryColumns,
				entry.ID,
				entry.Name,
				entry.Score,
				entry.Review,
				entry.Link,
				string(entry.Status),
				timestamp,
				timestamp,
			)
			created, err := scanEntry(row)
			if err != nil {
				return err
			}
			stored = created
			return nil
		})
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "create", "insert entry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("entry stored", logging.String(logging.FieldEntryID, entry.ID))
	return stored, nil
}

// Get returns the entry with id, or nil when none exists.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	var entry *Entry
	err := s.guard.Do("get", func() error {
		var err error
		entry, err = s.getLocked(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Update replaces an existing entry. It fails with ErrNotFound when no entry
// has the given ID and never creates one.
func (s *Store) Update(ctx context.Context, entry Entry) (*Entry, error) {
	if err := s.Validate(entry); err != nil {
		return nil, err
	}

	var stored *Entry
	err := s.guard.Do("update", func() error {
		timestamp := s.now().Format(time.RFC3339Nano)
		err := database.RetryOnBusy(ctx, func() error {
			row := s.db.SQL().QueryRowContext(
				ctx,
				`UPDATE entries
                 SET name = ?, score = ?, review = ?, link = ?, status = ?, updated_at = ?
                 WHERE id = ?
                 RETURNING `+entryColumns,
				entry.Name,
				entry.Score,
				entry.Review,
				entry.Link,
				string(entry.Status),
				timestamp,
				entry.ID,
			)
			updated, err := scanEntry(row)
			if err != nil {
				return err
			}
			stored = updated
			return nil
		})
		if errors.Is(err, sql.ErrNoRows) {
			return services.Wrap(services.ErrNotFound, component, "update", fmt.Sprintf("entry %q does not exist", entry.ID), nil)
		}
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "update", "update entry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("entry updated", logging.String(logging.FieldEntryID, entry.ID))
	return stored, nil
}

// Delete removes the entry with id and reports whether one existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.guard.Do("delete", func() error {
		res, err := s.db.Exec(ctx, `DELETE FROM entries WHERE id = ?`, id)
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "delete", "delete entry", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "delete", "rows affected", err)
		}
		removed = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Debug("entry deleted", logging.String(logging.FieldEntryID, id))
	}
	return removed, nil
}

// List returns every entry ordered by creation time.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := s.guard.Do("list", func() error {
		rows, err := s.db.SQL().QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY created_at, id`)
		if err != nil {
			return services.Wrap(services.ErrPersistence, component, "list", "query entries", err)
		}
		defer rows.Close()

		for rows.Next() {
			entry, err := scanEntry(rows)
			if err != nil {
				return services.Wrap(services.ErrPersistence, component, "list", "scan entry", err)
			}
			entries = append(entries, *entry)
		}
		if err := rows.Err(); err != nil {
			return services.Wrap(services.ErrPersistence, component, "list", "iterate entries", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.guard.Do("count", func() error {
		if err := s.db.SQL().QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
			return services.Wrap(services.ErrPersistence, component, "count", "count entries", err)
		}
		return nil
	})
	return count, err
}

func (s *Store) getLocked(ctx context.Context, id string) (*Entry, error) {
	row := s.db.SQL().QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, component, "get", "read entry", err)
	}
	return entry, nil
}

// Validate checks entry against the store policy without touching storage.
func (s *Store) Validate(entry Entry) error {
	if !entry.Status.Valid() {
		return services.Wrap(services.ErrValidation, component, "validate", fmt.Sprintf("unknown status %q", string(entry.Status)), nil)
	}
	if math.IsNaN(entry.Score) || math.IsInf(entry.Score, 0) {
		return services.Wrap(services.ErrValidation, component, "validate", "score must be a finite number", nil)
	}
	if s.scores != nil && (entry.Score < s.scores.Min || entry.Score > s.scores.Max) {
		return services.Wrap(
			services.ErrValidation,
			component,
			"validate",
			fmt.Sprintf("score %g outside %g..%g", entry.Score, s.scores.Min, s.scores.Max),
			nil,
		)
	}
	return nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry      Entry
		statusRaw  string
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.Name,
		&entry.Score,
		&entry.Review,
		&entry.Link,
		&statusRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	status, ok := ParseStatus(statusRaw)
	if !ok {
		return nil, fmt.Errorf("entry %s has unknown status %q", entry.ID, statusRaw)
	}
	entry.Status = status
	entry.CreatedAt = parseTime(createdRaw)
	entry.UpdatedAt = parseTime(updatedRaw)
	return &entry, nil
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
