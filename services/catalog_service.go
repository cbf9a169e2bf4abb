package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"bestMuscatAPI/internal/types/place"
)

// PlaceSource retrieves the canonical place dataset. Implementations are the
// Postgres catalog and the bundled JSON file.
type PlaceSource interface {
	FetchPlaces(ctx context.Context) ([]place.Place, error)
	Ping(ctx context.Context) error
}

// CatalogService loads the place catalog once and keeps it resident for the
// process lifetime. Concurrent first callers share a single fetch; a failed
// fetch leaves the cache empty so a later call can retry.
type CatalogService struct {
	source PlaceSource

	mu     sync.RWMutex
	places []place.Place
	loaded bool

	group singleflight.Group
}

func NewCatalogService(source PlaceSource) *CatalogService {
	return &CatalogService{source: source}
}

// Catalog returns the cached snapshot, fetching it on first use.
func (s *CatalogService) Catalog(ctx context.Context) ([]place.Place, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.places, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.group.Do("catalog", func() (interface{}, error) {
		// A caller that raced a finished load must not fetch again.
		s.mu.RLock()
		if s.loaded {
			defer s.mu.RUnlock()
			return s.places, nil
		}
		s.mu.RUnlock()

		places, err := s.source.FetchPlaces(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load place catalog: %w", err)
		}

		s.mu.Lock()
		s.places = places
		s.loaded = true
		s.mu.Unlock()

		return places, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]place.Place), nil
}

// Get returns the place with the given slug, or ok=false when absent.
func (s *CatalogService) Get(ctx context.Context, slug string) (place.Place, bool, error) {
	places, err := s.Catalog(ctx)
	if err != nil {
		return place.Place{}, false, err
	}
	for _, p := range places {
		if p.Slug == slug {
			return p, true, nil
		}
	}
	return place.Place{}, false, nil
}

// Ping reports whether the underlying source is reachable.
func (s *CatalogService) Ping(ctx context.Context) error {
	return s.source.Ping(ctx)
}
