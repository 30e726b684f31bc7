// Package omdb looks up movie metadata from the OMDb title-search API and
// normalizes it into the shape the rest of the app consumes.
package omdb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "http://www.omdbapi.com/"

const requestTimeout = 5 * time.Second

// MovieDetails is the normalized record produced by a title lookup.
type MovieDetails struct {
	Name      string
	Director  string
	Year      int
	Rating    float64
	PosterURL string
}

// MovieLookup resolves a free-text title into movie details. A (nil, nil)
// return means the title is unknown; callers treat transport and parsing
// errors the same way after logging them.
type MovieLookup interface {
	FetchMovieDetails(title string) (*MovieDetails, error)
}

// Client is the OMDb implementation of MovieLookup.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient creates an OMDb client. An empty baseURL falls back to the
// public endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(requestTimeout),
		apiKey: apiKey,
	}
}

// omdbResponse mirrors the subset of OMDb's flat JSON record we care about.
type omdbResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// FetchMovieDetails queries OMDb by title. It returns (nil, nil) when OMDb
// reports the title as unknown, and an error for transport or HTTP
// failures.
func (c *Client) FetchMovieDetails(title string) (*MovieDetails, error) {
	var body omdbResponse
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"t":      title,
			"apikey": c.apiKey,
		}).
		SetResult(&body).
		Get("/")
	if err != nil {
		return nil, fmt.Errorf("omdb request for %q: %w", title, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("omdb request for %q: status %s", title, resp.Status())
	}
	if !strings.EqualFold(body.Response, "True") {
		// OMDb signals "not found" in-band with Response=False.
		return nil, nil
	}

	return &MovieDetails{
		Name:      body.Title,
		Director:  body.Director,
		Year:      parseYear(body.Year),
		Rating:    parseRating(body.ImdbRating),
		PosterURL: body.Poster,
	}, nil
}

// parseYear handles both plain years and series ranges like "2016–2018",
// keeping the first year. Zero means unknown.
func parseYear(raw string) int {
	first := strings.SplitN(raw, "–", 2)[0]
	first = strings.TrimSpace(strings.SplitN(first, "-", 2)[0])
	year, err := strconv.Atoi(first)
	if err != nil {
		return 0
	}
	return year
}

// parseRating drops OMDb's "N/A" placeholder. Zero means unrated.
func parseRating(raw string) float64 {
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return rating
}
