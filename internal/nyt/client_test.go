package nyt_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/xwstats/internal/nyt"
)

// newTestClient creates a Client whose API root and login URL point at the handler.
func newTestClient(t *testing.T, handler http.Handler) *nyt.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return nyt.NewClient(
		nyt.WithHTTPClient(server.Client()),
		nyt.WithAPIRoot(server.URL+"/svc/crosswords/"),
		nyt.WithLoginURL(server.URL+"/svc/ios/v2/login"),
	)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLogin_ReturnsCipheredCookie(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/svc/ios/v2/login", r.URL.Path)
		assert.Equal(t, "ios.crosswords", r.Header.Get("client_id"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Crosswords/")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "solver@example.com", r.PostForm.Get("login"))
		assert.Equal(t, "hunter2", r.PostForm.Get("password"))

		writeJSON(t, w, map[string]any{
			"data": map[string]any{
				"cookies": []map[string]string{
					{"name": "NYT-A", "cipheredValue": "other"},
					{"name": "NYT-S", "cipheredValue": "secret-token"},
				},
			},
		})
	})

	client := newTestClient(t, handler)
	token, err := client.Login(context.Background(), "solver@example.com", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)
}

func TestLogin_MissingCookie(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"data": map[string]any{"cookies": []any{}}})
	})

	client := newTestClient(t, handler)
	_, err := client.Login(context.Background(), "a", "b")

	var authErr *nyt.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, nyt.ErrCookieNotFound)
}

func TestLogin_HTTPFailureIsAuthenticationError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	client := newTestClient(t, handler)
	_, err := client.Login(context.Background(), "a", "b")

	var authErr *nyt.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	var httpErr *nyt.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
}

func TestPuzzleForDate(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/svc/crosswords/v2/puzzle/daily-2023-03-15.json", r.URL.Path)
		cookie, err := r.Cookie("NYT-S")
		require.NoError(t, err)
		assert.Equal(t, "tok", cookie.Value)

		writeJSON(t, w, map[string]any{
			"results": []map[string]any{{"puzzle_id": 20918, "print_date": "2023-03-15"}},
		})
	})

	client := newTestClient(t, handler)
	puzzle, err := client.PuzzleForDate(context.Background(), "tok", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, int64(20918), puzzle.ID)
	assert.Equal(t, "2023-03-15", puzzle.PrintDate)
}

func TestPuzzleForDate_EmptyResults(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"results": []any{}})
	})

	client := newTestClient(t, handler)
	_, err := client.PuzzleForDate(context.Background(), "tok", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, nyt.ErrNoPuzzle)
}

func TestPuzzleForDate_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	client := newTestClient(t, handler)
	_, err := client.PuzzleForDate(context.Background(), "tok", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC))

	var httpErr *nyt.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, http.MethodGet, httpErr.Method)
}

func TestSolveForPuzzle_AllFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/svc/crosswords/v2/game/20918.json", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"results": map[string]any{
				"solved":        true,
				"firstChecked":  1678900000,
				"firstRevealed": nil,
				"firstSolved":   1678900100,
				"timeElapsed":   45,
			},
		})
	})

	client := newTestClient(t, handler)
	solve, err := client.SolveForPuzzle(context.Background(), "tok", 20918)

	require.NoError(t, err)
	assert.True(t, solve.Solved)
	assert.True(t, solve.Checked)
	assert.True(t, solve.Revealed, "a present key counts even when null")
	assert.Equal(t, int64(1678900100), solve.FirstSolved.Unix())
	assert.Equal(t, int64(45), solve.TimeElapsed)
}

func TestSolveForPuzzle_Defaults(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"results": map[string]any{}})
	})

	client := newTestClient(t, handler)
	solve, err := client.SolveForPuzzle(context.Background(), "tok", 1)

	require.NoError(t, err)
	assert.False(t, solve.Solved)
	assert.False(t, solve.Checked)
	assert.False(t, solve.Revealed)
	assert.Equal(t, int64(0), solve.FirstSolved.Unix())
	assert.Equal(t, int64(0), solve.TimeElapsed)
}

func TestSolveForPuzzle_ServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, handler)
	_, err := client.SolveForPuzzle(context.Background(), "tok", 1)

	var httpErr *nyt.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
}
