package movies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// Defaults for the external services.
const (
	DefaultBaseURL   = "http://127.0.0.1:8000/"
	DefaultTMDBURL   = "https://api.themoviedb.org/3/movie/"
	DefaultImageBase = "https://image.tmdb.org/t/p/w500"
)

// Client talks to the recommender backend and to TMDB. It is safe for
// concurrent use.
type Client struct {
	baseURL   string
	tmdbURL   string
	tmdbKey   string
	imageBase string

	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*response]
	limiter *rate.Limiter
	logger  zerolog.Logger
}

type clientConfig struct {
	http            *http.Client
	tmdbURL         string
	tmdbKey         string
	imageBase       string
	breakerFailures uint32
	breakerTimeout  time.Duration
	rateLimit       rate.Limit
	burst           int
	logger          zerolog.Logger
}

// Option configures a Client.
type Option func(*clientConfig)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *clientConfig) {
		if client != nil {
			cfg.http = client
		}
	}
}

// WithTMDB points detail lookups at endpoint using apiKey.
func WithTMDB(endpoint, apiKey string) Option {
	return func(cfg *clientConfig) {
		if endpoint != "" {
			cfg.tmdbURL = endpoint
		}
		cfg.tmdbKey = apiKey
	}
}

// WithImageBase sets the prefix joined to TMDB poster paths.
func WithImageBase(base string) Option {
	return func(cfg *clientConfig) {
		cfg.imageBase = base
	}
}

// WithBreaker opens the backend circuit after failures consecutive failures
// and probes again after timeout.
func WithBreaker(failures uint32, timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.breakerFailures = failures
		cfg.breakerTimeout = timeout
	}
}

// WithRateLimit paces TMDB requests.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(cfg *clientConfig) {
		cfg.rateLimit = limit
		cfg.burst = burst
	}
}

// WithLogger sets the logger. The default discards everything.
//
//nolint:gocritic // zerolog.Logger is passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.logger = logger
	}
}

// New returns a client for the backend at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("movies: invalid base URL %q: %w", baseURL, err)
	}

	cfg := clientConfig{
		http:            &http.Client{Timeout: 10 * time.Second},
		tmdbURL:         DefaultTMDBURL,
		imageBase:       DefaultImageBase,
		breakerFailures: 5,
		breakerTimeout:  30 * time.Second,
		rateLimit:       rate.Limit(4),
		burst:           4,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &Client{
		baseURL:   withSlash(baseURL),
		tmdbURL:   withSlash(cfg.tmdbURL),
		tmdbKey:   cfg.tmdbKey,
		imageBase: cfg.imageBase,
		http:      cfg.http,
		limiter:   rate.NewLimiter(cfg.rateLimit, cfg.burst),
		logger:    cfg.logger,
	}

	failures := cfg.breakerFailures
	c.breaker = gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "movies-backend",
		MaxRequests: 1,
		Timeout:     cfg.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	return c, nil
}

// BreakerState reports the backend circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// Login exchanges credentials for a token and stores both in session.
func (c *Client) Login(ctx context.Context, session *Session, username, password string) error {
	resp, err := c.backend(ctx, http.MethodPost, "login", credentials(username, password))
	if err != nil {
		return err
	}

	var body struct {
		User *struct {
			IDToken string `json:"idToken"`
		} `json:"User"`
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return &BackendError{Op: "login", Status: resp.status, Message: GenericFailure}
	}
	if body.User == nil || body.User.IDToken == "" {
		return &BackendError{Op: "login", Status: resp.status, Message: messageOr(body.Message)}
	}

	session.set(username, body.User.IDToken)
	c.logger.Info().Str("username", username).Msg("logged in")
	return nil
}

// CreateAccount registers a new user. It does not log in.
func (c *Client) CreateAccount(ctx context.Context, username, password string) error {
	resp, err := c.backend(ctx, http.MethodPost, "createAccount", credentials(username, password))
	if err != nil {
		return err
	}
	if err := expectSuccess("createAccount", resp); err != nil {
		return err
	}
	c.logger.Info().Str("username", username).Msg("account created")
	return nil
}

// TopRated lists the top rated movies, highest average rating first and ties
// broken by title.
func (c *Client) TopRated(ctx context.Context) ([]Movie, error) {
	list, err := c.list(ctx, "topRatedMovies", nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		ai, aj := list[i].AverageRating(), list[j].AverageRating()
		if ai != aj {
			return ai > aj
		}
		return list[i].Title < list[j].Title
	})
	return list, nil
}

// Search finds movies by title. The query is sent lowercased.
func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	params := url.Values{"searchText": {strings.ToLower(query)}}
	return c.list(ctx, "search?"+params.Encode(), nil)
}

// Recommended lists recommendations for the session user.
func (c *Client) Recommended(ctx context.Context, session *Session) ([]Movie, error) {
	headers, err := authHeaders(session)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, "recommended", headers)
}

// RatedMovies lists the movies the session user has rated.
func (c *Client) RatedMovies(ctx context.Context, session *Session) ([]Movie, error) {
	headers, err := authHeaders(session)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, "getRatedMovies", headers)
}

// Rate records a 1..5 rating for movieID.
func (c *Client) Rate(ctx context.Context, session *Session, movieID, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	headers, err := authHeaders(session)
	if err != nil {
		return err
	}
	path := "rateMovie/" + strconv.Itoa(movieID) + "/" + strconv.Itoa(rating)
	resp, err := c.backend(ctx, http.MethodPost, path, headers)
	if err != nil {
		return err
	}
	return expectSuccess("rateMovie", resp)
}

// Details fetches TMDB metadata for tmdbID. Calls are paced by the client
// rate limiter and bypass the backend circuit breaker.
func (c *Client) Details(ctx context.Context, tmdbID string) (Details, error) {
	if tmdbID == "" {
		return Details{}, errors.New("movies: tmdb id is required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return Details{}, fmt.Errorf("movies: details: %w", err)
	}

	endpoint := c.tmdbURL + url.PathEscape(tmdbID) + "?" + url.Values{"api_key": {c.tmdbKey}}.Encode()
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Details{}, fmt.Errorf("movies: details: %w", err)
	}
	if resp.status != http.StatusOK {
		return Details{}, &BackendError{Op: "details", Status: resp.status, Message: GenericFailure}
	}

	var raw tmdbMovie
	if err := json.Unmarshal(resp.body, &raw); err != nil {
		return Details{}, fmt.Errorf("movies: decode details: %w", err)
	}

	names := make([]string, 0, len(raw.Genres))
	for _, genre := range raw.Genres {
		if genre.Name != "" {
			names = append(names, genre.Name)
		}
	}
	details := Details{
		Tagline:     raw.Tagline,
		Overview:    raw.Overview,
		Genres:      strings.Join(names, ", "),
		ReleaseDate: raw.ReleaseDate,
	}
	if raw.PosterPath != "" {
		details.PosterURL = c.imageBase + raw.PosterPath
	}
	return details, nil
}

type response struct {
	status int
	body   []byte
}

func (c *Client) list(ctx context.Context, path string, headers http.Header) ([]Movie, error) {
	resp, err := c.backend(ctx, http.MethodGet, path, headers)
	if err != nil {
		return nil, err
	}
	var body catalogue
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return nil, fmt.Errorf("movies: decode %s: %w", strings.SplitN(path, "?", 2)[0], err)
	}
	if body.Movies == nil {
		return []Movie{}, nil
	}
	return body.Movies, nil
}

// backend calls the recommender through the circuit breaker. Transport errors
// and 5xx responses count as breaker failures; other statuses are returned to
// the caller for interpretation.
func (c *Client) backend(ctx context.Context, method, path string, headers http.Header) (*response, error) {
	resp, err := c.breaker.Execute(func() (*response, error) {
		resp, err := c.do(ctx, method, c.baseURL+path, headers)
		if err != nil {
			return nil, err
		}
		if resp.status >= http.StatusInternalServerError {
			return resp, fmt.Errorf("status %d", resp.status)
		}
		return resp, nil
	})
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		if resp != nil {
			return nil, &BackendError{Op: path, Status: resp.status, Message: messageFrom(resp.body)}
		}
		return nil, fmt.Errorf("movies: %s %s: %w", method, path, err)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, headers http.Header) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range headers {
		req.Header[key] = values
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return &response{status: res.StatusCode, body: body}, nil
}

// credentials and authHeaders set the lowercase header names the backend
// reads, bypassing canonicalisation.
func credentials(username, password string) http.Header {
	return http.Header{"username": {username}, "password": {password}}
}

func authHeaders(session *Session) (http.Header, error) {
	if session == nil || !session.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	username, token := session.Credentials()
	return http.Header{"userToken": {token}, "username": {username}}, nil
}

func expectSuccess(op string, resp *response) error {
	var body struct {
		Result  string `json:"Result"`
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return &BackendError{Op: op, Status: resp.status, Message: GenericFailure}
	}
	if body.Result != "success" {
		return &BackendError{Op: op, Status: resp.status, Message: messageOr(body.Message)}
	}
	return nil
}

func messageFrom(body []byte) string {
	var payload struct {
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return GenericFailure
	}
	return messageOr(payload.Message)
}

func messageOr(message string) string {
	if message == "" {
		return GenericFailure
	}
	return message
}

func withSlash(raw string) string {
	if strings.HasSuffix(raw, "/") {
		return raw
	}
	return raw + "/"
}
