package movie

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsen/moviefare/provider"
)

// fakeFetcher implements Fetcher with canned data.
type fakeFetcher struct {
	cinemaCatalog []provider.Movie
	cinemaErr     error
	filmCatalog   []provider.Movie
	filmErr       error
	details       map[string]*provider.MovieDetail // key: provider:movieID
	detailErrs    map[string]error
}

func (f *fakeFetcher) CinemaWorldCatalog(context.Context) ([]provider.Movie, error) {
	return f.cinemaCatalog, f.cinemaErr
}

func (f *fakeFetcher) FilmWorldCatalog(context.Context) ([]provider.Movie, error) {
	return f.filmCatalog, f.filmErr
}

func (f *fakeFetcher) Detail(_ context.Context, movieID, providerName string) (*provider.MovieDetail, error) {
	key := providerName + ":" + movieID
	if err, ok := f.detailErrs[key]; ok {
		return nil, err
	}
	if detail, ok := f.details[key]; ok {
		return detail, nil
	}
	return nil, &provider.APIError{StatusCode: 404, URL: movieID}
}

func newService(f *fakeFetcher) *Service {
	return NewService(f, zerolog.Nop())
}

func TestListAllMoviesDedupesByTitle(t *testing.T) {
	fetcher := &fakeFetcher{
		cinemaCatalog: []provider.Movie{
			{ID: "cw1", Title: "Star Wars"},
			{ID: "cw2", Title: "Jaws"},
		},
		filmCatalog: []provider.Movie{
			{ID: "fw1", Title: "Star Wars"},
			{ID: "fw3", Title: "Alien"},
		},
	}

	movies := newService(fetcher).ListAllMovies(context.Background())

	require.Len(t, movies, 3)
	titles := make(map[string]int)
	for _, m := range movies {
		titles[m.Title]++
	}
	for title, count := range titles {
		assert.Equal(t, 1, count, "duplicate title %q survived the merge", title)
	}

	// The Cinema World entry wins title collisions
	assert.Equal(t, "cw1", movies[0].ID)
	assert.Equal(t, "Star Wars", movies[0].Title)
}

func TestListAllMoviesOneProviderDown(t *testing.T) {
	fetcher := &fakeFetcher{
		cinemaErr: errors.New("connection refused"),
		filmCatalog: []provider.Movie{
			{ID: "fw1", Title: "Alien"},
		},
	}

	movies := newService(fetcher).ListAllMovies(context.Background())

	require.Len(t, movies, 1)
	assert.Equal(t, "fw1", movies[0].ID)
}

func TestListAllMoviesBothProvidersDown(t *testing.T) {
	fetcher := &fakeFetcher{
		cinemaErr: errors.New("timeout"),
		filmErr:   errors.New("timeout"),
	}

	movies := newService(fetcher).ListAllMovies(context.Background())

	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestGetMovieDetail(t *testing.T) {
	fetcher := &fakeFetcher{
		details: map[string]*provider.MovieDetail{
			"cinemaWrld:cw123": {ID: "cw123", Title: "Star Wars", Price: "12.50"},
			"filmWrld:fw456":   {ID: "fw456", Title: "Alien", Price: "9.00"},
		},
	}
	svc := newService(fetcher)
	ctx := context.Background()

	t.Run("cinema world id", func(t *testing.T) {
		detail, err := svc.GetMovieDetail(ctx, "cw123")
		require.NoError(t, err)
		assert.Equal(t, "Star Wars", detail.Title)
	})

	t.Run("film world id", func(t *testing.T) {
		detail, err := svc.GetMovieDetail(ctx, "fw456")
		require.NoError(t, err)
		assert.Equal(t, "Alien", detail.Title)
	})

	t.Run("prefix match is case-insensitive", func(t *testing.T) {
		detail, err := svc.GetMovieDetail(ctx, "CW123")
		require.NoError(t, err)
		assert.Equal(t, "Star Wars", detail.Title)
	})

	t.Run("unrecognized prefix reads as not found", func(t *testing.T) {
		_, err := svc.GetMovieDetail(ctx, "xx789")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("provider failure reads as not found", func(t *testing.T) {
		_, err := svc.GetMovieDetail(ctx, "cw999")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestComparePriceCinemaWorldCheaper(t *testing.T) {
	fetcher := &fakeFetcher{
		details: map[string]*provider.MovieDetail{
			"cinemaWrld:cw123": {ID: "cw123", Title: "Star Wars", Price: "5.00"},
			"filmWrld:fw123":   {ID: "fw123", Title: "Star Wars", Price: "10.00"},
		},
	}

	result, err := newService(fetcher).ComparePrice(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, "cw123", result.MovieID)
	assert.Equal(t, CinemaWorldLabel, result.Provider)
	assert.True(t, result.CheapestPrice.Equal(decimal.RequireFromString("5.00")))
}

func TestComparePriceFilmWorldCheaper(t *testing.T) {
	fetcher := &fakeFetcher{
		details: map[string]*provider.MovieDetail{
			"cinemaWrld:cw123": {ID: "cw123", Title: "Star Wars", Price: "15.00"},
			"filmWrld:fw123":   {ID: "fw123", Title: "Star Wars", Price: "10.00"},
		},
	}

	result, err := newService(fetcher).ComparePrice(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, "fw123", result.MovieID)
	assert.Equal(t, FilmWorldLabel, result.Provider)
	assert.True(t, result.CheapestPrice.Equal(decimal.RequireFromString("10.00")))
}

func TestComparePriceTieFavorsCinemaWorld(t *testing.T) {
	fetcher := &fakeFetcher{
		details: map[string]*provider.MovieDetail{
			"cinemaWrld:cw123": {ID: "cw123", Title: "Star Wars", Price: "7.50"},
			"filmWrld:fw123":   {ID: "fw123", Title: "Star Wars", Price: "7.50"},
		},
	}

	result, err := newService(fetcher).ComparePrice(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, CinemaWorldLabel, result.Provider)
	assert.Equal(t, "cw123", result.MovieID)
}

func TestComparePriceNormalizesRawID(t *testing.T) {
	fetcher := &fakeFetcher{
		details: map[string]*provider.MovieDetail{
			"cinemaWrld:cw123": {ID: "cw123", Title: "Star Wars", Price: "5.00"},
			"filmWrld:fw123":   {ID: "fw123", Title: "Star Wars", Price: "10.00"},
		},
	}
	svc := newService(fetcher)
	ctx := context.Background()

	for _, rawID := range []string{"123", "cw123", "fw123", "FW-123"} {
		result, err := svc.ComparePrice(ctx, rawID)
		require.NoError(t, err, "raw id %q", rawID)
		assert.Equal(t, "cw123", result.MovieID, "raw id %q", rawID)
	}
}

func TestComparePriceOnlyOneProviderHasMovie(t *testing.T) {
	t.Run("film world only", func(t *testing.T) {
		fetcher := &fakeFetcher{
			details: map[string]*provider.MovieDetail{
				"filmWrld:fw123": {ID: "fw123", Title: "Star Wars", Price: "10.00"},
			},
		}

		result, err := newService(fetcher).ComparePrice(context.Background(), "123")
		require.NoError(t, err)
		assert.Equal(t, FilmWorldLabel, result.Provider)
		assert.True(t, result.CheapestPrice.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("cinema world only", func(t *testing.T) {
		fetcher := &fakeFetcher{
			details: map[string]*provider.MovieDetail{
				"cinemaWrld:cw123": {ID: "cw123", Title: "Star Wars", Price: "15.00"},
			},
			detailErrs: map[string]error{
				"filmWrld:fw123": errors.New("service unavailable"),
			},
		}

		result, err := newService(fetcher).ComparePrice(context.Background(), "123")
		require.NoError(t, err)
		assert.Equal(t, CinemaWorldLabel, result.Provider)
		assert.True(t, result.CheapestPrice.Equal(decimal.RequireFromString("15.00")))
	})
}

func TestComparePriceBothAbsent(t *testing.T) {
	fetcher := &fakeFetcher{}

	_, err := newService(fetcher).ComparePrice(context.Background(), "123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComparePriceEmptyIDCountsAsAbsent(t *testing.T) {
	fetcher := &fakeFetcher{
		details: map[string]*provider.MovieDetail{
			"cinemaWrld:cw123": {Title: "Broken"},
			"filmWrld:fw123":   {ID: "fw123", Title: "Star Wars", Price: "10.00"},
		},
	}

	result, err := newService(fetcher).ComparePrice(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, FilmWorldLabel, result.Provider)
}

func TestComparePriceInvalidPrice(t *testing.T) {
	t.Run("single present side", func(t *testing.T) {
		fetcher := &fakeFetcher{
			details: map[string]*provider.MovieDetail{
				"filmWrld:fw123": {ID: "fw123", Title: "Star Wars", Price: "notdecimal"},
			},
		}

		_, err := newService(fetcher).ComparePrice(context.Background(), "123")
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("one malformed of two", func(t *testing.T) {
		fetcher := &fakeFetcher{
			details: map[string]*provider.MovieDetail{
				"cinemaWrld:cw123": {ID: "cw123", Title: "Star Wars", Price: "5.00"},
				"filmWrld:fw123":   {ID: "fw123", Title: "Star Wars", Price: "$$"},
			},
		}

		_, err := newService(fetcher).ComparePrice(context.Background(), "123")
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("empty price string", func(t *testing.T) {
		fetcher := &fakeFetcher{
			details: map[string]*provider.MovieDetail{
				"cinemaWrld:cw123": {ID: "cw123", Title: "Star Wars", Price: ""},
			},
		}

		_, err := newService(fetcher).ComparePrice(context.Background(), "123")
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestRouteID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{name: "cinema world prefix", id: "cw123", want: provider.CinemaWorld},
		{name: "film world prefix", id: "fw123", want: provider.FilmWorld},
		{name: "uppercase prefix", id: "CW123", want: provider.CinemaWorld},
		{name: "mixed case prefix", id: "Fw123", want: provider.FilmWorld},
		{name: "unknown prefix", id: "xx789", wantErr: true},
		{name: "empty id", id: "", wantErr: true},
		{name: "bare digits", id: "123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RouteID(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidMovieID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
