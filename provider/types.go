package provider

// Provider name tokens as used in cache keys and detail lookups.
const (
	CinemaWorld = "cinemaWrld"
	FilmWorld   = "filmWrld"
)

// Movie is one entry of a provider catalog listing.
type Movie struct {
	ID     string `json:"ID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// MovieDetail is the full record for a single movie. Price comes over the
// wire as a string and is not guaranteed to be well-formed; it is parsed at
// the comparison boundary, not here.
type MovieDetail struct {
	ID        string `json:"ID"`
	Title     string `json:"Title"`
	Year      string `json:"Year"`
	Rated     string `json:"Rated"`
	Released  string `json:"Released"`
	Runtime   string `json:"Runtime"`
	Genre     string `json:"Genre"`
	Director  string `json:"Director"`
	Actors    string `json:"Actors"`
	Plot      string `json:"Plot"`
	Language  string `json:"Language"`
	Country   string `json:"Country"`
	Metascore string `json:"Metascore"`
	Rating    string `json:"Rating"`
	Votes     string `json:"Votes"`
	Poster    string `json:"Poster"`
	Type      string `json:"Type"`
	Price     string `json:"Price"`
}

// catalogResponse is the envelope returned by the /movies endpoint.
type catalogResponse struct {
	Movies []Movie `json:"Movies"`
}
