package services_test

import (
	"errors"
	"sync"
	"testing"

	"shelf/internal/services"
)

func TestGuardConvertsPanicToConcurrencyError(t *testing.T) {
	guard := services.NewGuard("catalog")
	err := guard.Do("list", func() error {
		panic("corrupt row")
	})
	if !errors.Is(err, services.ErrConcurrency) {
		t.Fatalf("expected concurrency error, got %v", err)
	}

	// The guard stays usable after a panic.
	called := false
	if err := guard.Do("get", func() error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if !called {
		t.Fatal("expected second call to run")
	}
}

func TestGuardPassesThroughErrors(t *testing.T) {
	guard := services.NewGuard("images")
	boom := errors.New("boom")
	if err := guard.Do("save", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestGuardSerializesCallers(t *testing.T) {
	guard := services.NewGuard("catalog")
	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = guard.Do("op", func() error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Fatalf("expected at most one caller inside the guard, saw %d", maxSeen)
	}
}
