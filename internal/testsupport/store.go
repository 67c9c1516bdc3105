package testsupport

import (
	"testing"

	"collate/internal/config"
	"collate/internal/review"
)

// MustOpenReview opens a review.Store for tests and registers cleanup.
func MustOpenReview(t testing.TB, cfg *config.Config) *review.Store {
	t.Helper()

	store, err := review.Open(cfg)
	if err != nil {
		t.Fatalf("review.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
