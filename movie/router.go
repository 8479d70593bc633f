package movie

import (
	"fmt"
	"strings"

	"github.com/mkarlsen/moviefare/provider"
)

// RouteID maps a composite movie id to the provider that can resolve it.
// The prefix match is case-insensitive: cw -> Cinema World, fw -> Film World.
func RouteID(compositeID string) (string, error) {
	id := strings.ToLower(compositeID)
	switch {
	case strings.HasPrefix(id, "cw"):
		return provider.CinemaWorld, nil
	case strings.HasPrefix(id, "fw"):
		return provider.FilmWorld, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMovieID, compositeID)
}
