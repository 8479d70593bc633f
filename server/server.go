// Package server exposes the movie use cases over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkarlsen/moviefare/movie"
	"github.com/mkarlsen/moviefare/provider"
)

// MovieAPI defines the use-case operations the HTTP layer exposes.
type MovieAPI interface {
	ListAllMovies(ctx context.Context) []provider.Movie
	GetMovieDetail(ctx context.Context, compositeID string) (*provider.MovieDetail, error)
	ComparePrice(ctx context.Context, rawID string) (*movie.PriceComparison, error)
}

// TokenManager defines the token operations the HTTP layer depends on.
type TokenManager interface {
	Generate(username string) (string, error)
	Verify(token string) (string, error)
}

// Options configures the HTTP server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Username     string
	Password     string
	// CORSOrigin is the origin allowed to call the API from a browser.
	// Empty disables the CORS headers entirely.
	CORSOrigin string
}

// Server wires the movie service and token service into an HTTP API.
type Server struct {
	movies  MovieAPI
	tokens  TokenManager
	options Options
	logger  zerolog.Logger
	http    *http.Server
}

// New creates an HTTP server for the movie API.
func New(movies MovieAPI, tokens TokenManager, options Options, logger zerolog.Logger) *Server {
	s := &Server{
		movies:  movies,
		tokens:  tokens,
		options: options,
		logger:  logger,
	}

	s.http = &http.Server{
		Addr:         options.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
	}

	return s
}

// Handler returns the full middleware-wrapped route table.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(s.requestLogger())
	r.Use(s.recovery())
	if s.options.CORSOrigin != "" {
		r.Use(s.cors(s.options.CORSOrigin))
	}

	r.POST("/api/auth/login", s.handleLogin)

	authed := r.Group("/api", s.requireAuth())
	authed.GET("/movies", s.handleListMovies)
	authed.GET("/movies/:movieId", s.handleMovieDetail)
	authed.GET("/movies/:movieId/compare", s.handleComparePrice)

	return r
}

// Run serves requests until the context is cancelled, then shuts down
// gracefully, letting in-flight requests finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	s.logger.Info().Str("addr", s.options.Addr).Msg("HTTP server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
