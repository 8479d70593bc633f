// Package provider talks to the Cinema World and Film World movie APIs.
//
// Both providers expose the same surface: a catalog endpoint listing every
// movie they carry, and a detail endpoint returning the full record for one
// movie, price included. Responses are cached per provider (catalogs) and per
// movie (details) so repeated lookups within the cache TTL never hit the
// network.
//
// # Usage
//
//	client := provider.NewClient(accessToken, logger)
//	svc := provider.NewService(client, store, settings, logger)
//
//	// Full Cinema World catalog (cached)
//	movies, err := svc.CinemaWorldCatalog(ctx)
//
//	// One movie's detail record (cached per movie)
//	detail, err := svc.Detail(ctx, "cw123", provider.CinemaWorld)
package provider
