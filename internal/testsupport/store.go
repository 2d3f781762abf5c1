package testsupport

import (
	"testing"

	"shelf/internal/config"
	"shelf/internal/database"
)

// MustOpenDB opens the database for cfg and closes it when the test ends.
func MustOpenDB(t testing.TB, cfg *config.Config) *database.DB {
	t.Helper()

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
