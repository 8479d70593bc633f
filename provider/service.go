package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkarlsen/moviefare/cache"
)

// Getter abstracts the HTTP client for testing.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Settings holds the provider endpoints and cache policy.
type Settings struct {
	CinemaWorldURL      string
	FilmWorldURL        string
	CacheTTL            time.Duration
	CinemaWorldCacheKey string
	FilmWorldCacheKey   string
}

// Service resolves catalogs and movie details with a cache-aside policy:
// cache hit returns immediately, a miss goes upstream and populates the
// cache on a usable response. Failed or empty results are never cached so a
// transient provider outage cannot poison the cache for a whole TTL window.
type Service struct {
	client   Getter
	cache    cache.Store
	settings Settings
	logger   zerolog.Logger
}

// NewService creates a fetch service backed by the given client and cache.
func NewService(client Getter, store cache.Store, settings Settings, logger zerolog.Logger) *Service {
	return &Service{
		client:   client,
		cache:    store,
		settings: settings,
		logger:   logger,
	}
}

// CinemaWorldCatalog returns the full Cinema World movie listing.
func (s *Service) CinemaWorldCatalog(ctx context.Context) ([]Movie, error) {
	return s.catalog(ctx, s.settings.CinemaWorldCacheKey, s.settings.CinemaWorldURL+"/movies")
}

// FilmWorldCatalog returns the full Film World movie listing.
func (s *Service) FilmWorldCatalog(ctx context.Context) ([]Movie, error) {
	return s.catalog(ctx, s.settings.FilmWorldCacheKey, s.settings.FilmWorldURL+"/movies")
}

// catalog fetches one provider's movie list through the cache.
func (s *Service) catalog(ctx context.Context, cacheKey, requestURL string) ([]Movie, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		if movies, ok := cached.([]Movie); ok && len(movies) > 0 {
			s.logger.Debug().Str("cache_key", cacheKey).Int("count", len(movies)).
				Msg("Catalog served from cache")
			return movies, nil
		}
	}

	body, err := s.client.Get(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	var response catalogResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}

	if len(response.Movies) > 0 {
		s.cache.Set(cacheKey, response.Movies, s.settings.CacheTTL)
	}

	s.logger.Debug().Str("cache_key", cacheKey).Int("count", len(response.Movies)).
		Msg("Catalog fetched from provider")
	return response.Movies, nil
}

// Detail returns the full record for one movie from the named provider.
// The movie id must already carry the provider's own prefix (cw123, fw123).
func (s *Service) Detail(ctx context.Context, movieID, providerName string) (*MovieDetail, error) {
	baseURL, err := s.baseURL(providerName)
	if err != nil {
		return nil, err
	}

	cacheKey := providerName + ":" + movieID
	if cached, ok := s.cache.Get(cacheKey); ok {
		if detail, ok := cached.(*MovieDetail); ok && detail != nil {
			s.logger.Debug().Str("cache_key", cacheKey).Msg("Movie detail served from cache")
			return detail, nil
		}
	}

	body, err := s.client.Get(ctx, fmt.Sprintf("%s/movie/%s", baseURL, movieID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie %s: %w", movieID, err)
	}

	var detail MovieDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse movie detail: %w", err)
	}

	// A record without an id is a malformed payload; never cache it.
	if detail.ID != "" {
		s.cache.Set(cacheKey, &detail, s.settings.CacheTTL)
	}

	s.logger.Debug().Str("movie_id", movieID).Str("provider", providerName).
		Msg("Movie detail fetched from provider")
	return &detail, nil
}

// baseURL maps a provider token to its API root.
func (s *Service) baseURL(providerName string) (string, error) {
	switch providerName {
	case CinemaWorld:
		return s.settings.CinemaWorldURL, nil
	case FilmWorld:
		return s.settings.FilmWorldURL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProvider, providerName)
}
