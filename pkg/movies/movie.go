package movies

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// Movie is a catalogue entry returned by the recommender backend.
type Movie struct {
	ID      int       `json:"movieid"`
	Title   string    `json:"title"`
	TMDBID  string    `json:"tmdbid,omitempty"`
	IMDBID  string    `json:"imdbid,omitempty"`
	Ratings []float64 `json:"ratings,omitempty"`
	Rating  *float64  `json:"rating,omitempty"`
	Genres  string    `json:"genres,omitempty"`
}

type movieWire struct {
	ID      int             `json:"movieid"`
	Title   string          `json:"title"`
	TMDBID  json.RawMessage `json:"tmdbid"`
	IMDBID  json.RawMessage `json:"imdbid"`
	Ratings []float64       `json:"ratings"`
	Rating  *float64        `json:"rating"`
	Genres  string          `json:"genres"`
}

// UnmarshalJSON accepts the external ids as either strings or numbers.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var wire movieWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*m = Movie{
		ID:      wire.ID,
		Title:   wire.Title,
		TMDBID:  flexibleID(wire.TMDBID),
		IMDBID:  flexibleID(wire.IMDBID),
		Ratings: wire.Ratings,
		Rating:  wire.Rating,
		Genres:  wire.Genres,
	}
	return nil
}

func flexibleID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// AverageRating is the mean of Ratings, or 0 when the movie has none.
func (m Movie) AverageRating() float64 {
	if len(m.Ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.Ratings {
		sum += r
	}
	return sum / float64(len(m.Ratings))
}

type catalogue struct {
	Movies []Movie `json:"Movies"`
}

// Details is the TMDB metadata shown on a movie page. Empty strings mean TMDB
// did not provide the field.
type Details struct {
	Tagline     string `json:"tagline,omitempty"`
	Overview    string `json:"overview,omitempty"`
	Genres      string `json:"genres,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	PosterURL   string `json:"poster_url,omitempty"`
}

type tmdbMovie struct {
	Tagline     string `json:"tagline"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
}
