// Package movie implements the use cases on top of the provider layer:
// catalog aggregation across both providers, detail lookup by composite id,
// and price comparison.
package movie

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mkarlsen/moviefare/provider"
)

// Human-readable provider labels used in comparison results.
const (
	CinemaWorldLabel = "Cinema World"
	FilmWorldLabel   = "Film World"
)

var nonDigit = regexp.MustCompile(`\D`)

// Fetcher defines the provider operations the use cases depend on.
type Fetcher interface {
	CinemaWorldCatalog(ctx context.Context) ([]provider.Movie, error)
	FilmWorldCatalog(ctx context.Context) ([]provider.Movie, error)
	Detail(ctx context.Context, movieID, providerName string) (*provider.MovieDetail, error)
}

// PriceComparison is the outcome of comparing one movie's price across both
// providers. It is derived per request and never cached.
type PriceComparison struct {
	MovieID       string          `json:"movieId"`
	Title         string          `json:"title"`
	CheapestPrice decimal.Decimal `json:"cheapestPrice"`
	Provider      string          `json:"provider"`
}

// Service implements the movie use cases.
type Service struct {
	providers Fetcher
	logger    zerolog.Logger
}

// NewService creates a movie service on top of the given provider fetcher.
func NewService(providers Fetcher, logger zerolog.Logger) *Service {
	return &Service{
		providers: providers,
		logger:    logger,
	}
}

// ListAllMovies returns the union of both provider catalogs, deduplicated by
// title. A provider that fails contributes nothing rather than failing the
// whole listing, so one provider being down degrades the result instead of
// erroring. Title collisions keep the Cinema World entry.
func (s *Service) ListAllMovies(ctx context.Context) []provider.Movie {
	var cinema, film []provider.Movie

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		movies, err := s.providers.CinemaWorldCatalog(gctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Cinema World catalog unavailable, continuing without it")
			return nil
		}
		cinema = movies
		return nil
	})
	g.Go(func() error {
		movies, err := s.providers.FilmWorldCatalog(gctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Film World catalog unavailable, continuing without it")
			return nil
		}
		film = movies
		return nil
	})
	g.Wait()

	merged := make([]provider.Movie, 0, len(cinema)+len(film))
	merged = append(merged, cinema...)
	merged = append(merged, film...)

	return dedupeByTitle(merged)
}

// dedupeByTitle keeps the first occurrence of each title. The two providers
// assign independent ids, so title is the only shared key; two genuinely
// different movies with identical titles will collapse into one entry.
func dedupeByTitle(movies []provider.Movie) []provider.Movie {
	seen := make(map[string]struct{}, len(movies))
	out := make([]provider.Movie, 0, len(movies))
	for _, m := range movies {
		if _, ok := seen[m.Title]; ok {
			continue
		}
		seen[m.Title] = struct{}{}
		out = append(out, m)
	}
	return out
}

// GetMovieDetail resolves one movie by its composite id (cw123, fw456).
// An unrecognized prefix and a movie that genuinely does not exist are
// deliberately indistinguishable: both come back as ErrNotFound.
func (s *Service) GetMovieDetail(ctx context.Context, compositeID string) (*provider.MovieDetail, error) {
	providerName, err := RouteID(compositeID)
	if err != nil {
		s.logger.Debug().Str("movie_id", compositeID).Msg("Unrecognized movie id prefix")
		return nil, ErrNotFound
	}

	detail, err := s.providers.Detail(ctx, compositeID, providerName)
	if err != nil {
		s.logger.Warn().Err(err).Str("movie_id", compositeID).Str("provider", providerName).
			Msg("Movie detail lookup failed")
		return nil, ErrNotFound
	}

	return detail, nil
}

// ComparePrice fetches the movie's detail record from both providers and
// reports the cheaper offer. The raw id is normalized by stripping every
// non-digit character, so cw123, fw123 and plain 123 all compare the same
// movie. Ties go to Cinema World.
func (s *Service) ComparePrice(ctx context.Context, rawID string) (*PriceComparison, error) {
	numericID := nonDigit.ReplaceAllString(rawID, "")

	var cinema, film *provider.MovieDetail

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		detail, err := s.providers.Detail(gctx, "cw"+numericID, provider.CinemaWorld)
		if err != nil {
			s.logger.Warn().Err(err).Str("movie_id", "cw"+numericID).
				Msg("Cinema World detail unavailable for comparison")
			return nil
		}
		cinema = detail
		return nil
	})
	g.Go(func() error {
		detail, err := s.providers.Detail(gctx, "fw"+numericID, provider.FilmWorld)
		if err != nil {
			s.logger.Warn().Err(err).Str("movie_id", "fw"+numericID).
				Msg("Film World detail unavailable for comparison")
			return nil
		}
		film = detail
		return nil
	})
	g.Wait()

	cinemaPresent := cinema != nil && cinema.ID != ""
	filmPresent := film != nil && film.ID != ""

	switch {
	case !cinemaPresent && !filmPresent:
		return nil, ErrNotFound

	case cinemaPresent && filmPresent:
		cinemaPrice, err := parsePrice(cinema.Price)
		if err != nil {
			return nil, err
		}
		filmPrice, err := parsePrice(film.Price)
		if err != nil {
			return nil, err
		}
		if cinemaPrice.LessThanOrEqual(filmPrice) {
			return comparisonResult(cinema, cinemaPrice, CinemaWorldLabel), nil
		}
		return comparisonResult(film, filmPrice, FilmWorldLabel), nil

	case cinemaPresent:
		price, err := parsePrice(cinema.Price)
		if err != nil {
			return nil, err
		}
		return comparisonResult(cinema, price, CinemaWorldLabel), nil

	default:
		price, err := parsePrice(film.Price)
		if err != nil {
			return nil, err
		}
		return comparisonResult(film, price, FilmWorldLabel), nil
	}
}

// parsePrice converts the wire-format price string into an exact decimal.
// Prices are currency values; binary floats would introduce rounding
// artifacts in both comparison and display.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q: %w", ErrInvalidPrice, raw, err)
	}
	return price, nil
}

func comparisonResult(detail *provider.MovieDetail, price decimal.Decimal, label string) *PriceComparison {
	return &PriceComparison{
		MovieID:       detail.ID,
		Title:         detail.Title,
		CheapestPrice: price,
		Provider:      label,
	}
}
