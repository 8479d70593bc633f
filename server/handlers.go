package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsen/moviefare/movie"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleLogin exchanges valid credentials for a bearer token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Username != s.options.Username || req.Password != s.options.Password {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	token, err := s.tokens.Generate(req.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token})
}

// handleListMovies returns the deduplicated union of both provider catalogs.
func (s *Server) handleListMovies(c *gin.Context) {
	movies := s.movies.ListAllMovies(c.Request.Context())
	c.JSON(http.StatusOK, movies)
}

// handleMovieDetail returns the full record for one composite movie id.
func (s *Server) handleMovieDetail(c *gin.Context) {
	movieID := c.Param("movieId")

	detail, err := s.movies.GetMovieDetail(c.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "movie not found"})
			return
		}
		s.logger.Error().Err(err).Str("movie_id", movieID).Msg("Movie detail lookup failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// handleComparePrice reports which provider offers the movie cheaper.
func (s *Server) handleComparePrice(c *gin.Context) {
	movieID := c.Param("movieId")

	result, err := s.movies.ComparePrice(c.Request.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, movie.ErrNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: "movie not found"})
		case errors.Is(err, movie.ErrInvalidPrice):
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid price data from provider"})
		default:
			s.logger.Error().Err(err).Str("movie_id", movieID).Msg("Price comparison failed")
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
