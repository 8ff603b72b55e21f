// Package nyt talks to the NYT crossword games API.
package nyt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIRoot is the production games API root.
	DefaultAPIRoot = "https://nyt-games-prd.appspot.com/svc/crosswords"
	// DefaultLoginURL is the iOS login endpoint.
	DefaultLoginURL = "https://myaccount.nytimes.com/svc/ios/v2/login"

	cookieName = "NYT-S"
	userAgent  = "Crosswords/20191213190708 CFNetwork/1128.0.1 Darwin/19.6.0"
	clientID   = "ios.crosswords"
	dateLayout = "2006-01-02"
)

// Client issues requests against the games API.
type Client struct {
	http     *http.Client
	apiRoot  string
	loginURL string
	logger   *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithAPIRoot overrides the games API root.
func WithAPIRoot(root string) Option {
	return func(c *Client) {
		c.apiRoot = strings.TrimRight(root, "/")
	}
}

// WithLoginURL overrides the login endpoint.
func WithLoginURL(u string) Option {
	return func(c *Client) {
		c.loginURL = u
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a Client for the production endpoints. No request
// timeout is configured.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{},
		apiRoot:  DefaultAPIRoot,
		loginURL: DefaultLoginURL,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginResponse struct {
	Data struct {
		Cookies []struct {
			Name          string `json:"name"`
			CipheredValue string `json:"cipheredValue"`
		} `json:"cookies"`
	} `json:"data"`
}

// Login exchanges a username and password for the NYT-S cookie value.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("login", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("client_id", clientID)

	c.logger.Debug("logging in", "url", c.loginURL)
	var payload loginResponse
	if err := c.do(req, &payload); err != nil {
		return "", &AuthenticationError{Err: err}
	}
	for _, cookie := range payload.Data.Cookies {
		if cookie.Name == cookieName {
			return cookie.CipheredValue, nil
		}
	}
	return "", &AuthenticationError{Err: ErrCookieNotFound}
}

// Puzzle is the subset of puzzle metadata the fetcher needs.
type Puzzle struct {
	ID        int64  `json:"puzzle_id"`
	PrintDate string `json:"print_date"`
}

type puzzleResponse struct {
	Results []Puzzle `json:"results"`
}

// PuzzleForDate returns the daily puzzle published on the given date.
func (c *Client) PuzzleForDate(ctx context.Context, cookie string, date time.Time) (Puzzle, error) {
	endpoint := fmt.Sprintf("%s/v2/puzzle/daily-%s.json", c.apiRoot, date.Format(dateLayout))
	req, err := c.newAuthedRequest(ctx, endpoint, cookie)
	if err != nil {
		return Puzzle{}, err
	}
	var payload puzzleResponse
	if err := c.do(req, &payload); err != nil {
		return Puzzle{}, err
	}
	if len(payload.Results) == 0 {
		return Puzzle{}, fmt.Errorf("%s: %w", date.Format(dateLayout), ErrNoPuzzle)
	}
	return payload.Results[0], nil
}

// Solve is the per-user solve metadata for one puzzle. Checked and Revealed
// reflect the presence of the firstChecked and firstRevealed keys.
type Solve struct {
	Solved      bool
	Checked     bool
	Revealed    bool
	FirstSolved time.Time
	TimeElapsed int64
}

type solveResults struct {
	Solved        *bool           `json:"solved"`
	FirstChecked  json.RawMessage `json:"firstChecked"`
	FirstRevealed json.RawMessage `json:"firstRevealed"`
	FirstSolved   *int64          `json:"firstSolved"`
	TimeElapsed   *int64          `json:"timeElapsed"`
}

type solveResponse struct {
	Results *solveResults `json:"results"`
}

// SolveForPuzzle returns the solve metadata for a puzzle id. Absent fields
// default to false and zero, with FirstSolved at the Unix epoch.
func (c *Client) SolveForPuzzle(ctx context.Context, cookie string, puzzleID int64) (Solve, error) {
	endpoint := fmt.Sprintf("%s/v2/game/%d.json", c.apiRoot, puzzleID)
	req, err := c.newAuthedRequest(ctx, endpoint, cookie)
	if err != nil {
		return Solve{}, err
	}
	var payload solveResponse
	if err := c.do(req, &payload); err != nil {
		return Solve{}, err
	}
	if payload.Results == nil {
		return Solve{}, fmt.Errorf("game %d: missing results", puzzleID)
	}
	r := payload.Results
	solve := Solve{
		Checked:     r.FirstChecked != nil,
		Revealed:    r.FirstRevealed != nil,
		FirstSolved: time.Unix(0, 0),
	}
	if r.Solved != nil {
		solve.Solved = *r.Solved
	}
	if r.FirstSolved != nil {
		solve.FirstSolved = time.Unix(*r.FirstSolved, 0)
	}
	if r.TimeElapsed != nil {
		solve.TimeElapsed = *r.TimeElapsed
	}
	return solve, nil
}

func (c *Client) newAuthedRequest(ctx context.Context, endpoint, cookie string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	c.logger.Debug("request", "method", req.Method, "url", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
