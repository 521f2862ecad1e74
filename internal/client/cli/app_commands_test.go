package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ameleshko/booklog-cli/internal/client/api"
	"github.com/ameleshko/booklog-cli/internal/client/cache"
	"github.com/ameleshko/booklog-cli/internal/client/services"
	"github.com/ameleshko/booklog-cli/internal/client/session"
	"github.com/ameleshko/booklog-cli/internal/logging"
)

// newServerApp builds an App against a live test server, the way NewApp
// wires it minus the terminal.
func newServerApp(t *testing.T, handler http.Handler) (*App, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.New()
	client, err := api.New(srv.URL+"/api/", sess)
	require.NoError(t, err)

	mem := cache.NewMemory()
	journal := services.NewJournal(client, mem, logging.Nop())

	var out bytes.Buffer
	return &App{
		session: sess,
		auth:    services.NewAuth(client, sess, mem, logging.Nop()),
		journal: journal,
		office:  services.NewOffice(client, journal),
		reader:  bufio.NewReader(&bytes.Buffer{}),
		out:     &out,
	}, &out
}

func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListBooksCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books/", func(w http.ResponseWriter, r *http.Request) {
		respond(w, []map[string]any{
			{"id": 1, "title": "Solaris", "genre": map[string]any{"id": 2, "title": "Sci-Fi"}, "type": 0},
			{"id": 2, "title": "Cosmos", "genre": map[string]any{"id": 3, "title": "Science"}, "type": 1},
		})
	})

	app, out := newServerApp(t, mux)
	app.listBooks(context.Background(), nil)

	require.Contains(t, out.String(), "Solaris (Sci-Fi, fiction)")
	require.Contains(t, out.String(), "Cosmos (Science, non-fiction)")
}

func TestListBooksCommand_Search(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "solaris lem", r.URL.Query().Get("search"))
		respond(w, []map[string]any{})
	})

	app, out := newServerApp(t, mux)
	app.listBooks(context.Background(), []string{"solaris", "lem"})

	require.Contains(t, out.String(), "No books found.")
}

func TestShowQuoteCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/quotes/7/", func(w http.ResponseWriter, r *http.Request) {
		respond(w, map[string]any{
			"id":     7,
			"book":   map[string]any{"id": 1, "title": "Solaris"},
			"note":   "We take off into the cosmos...",
			"privat": false,
			"likes": []map[string]any{
				{"id": 1, "user": map[string]any{"id": 2, "username": "bob"}, "quote": 7},
			},
		})
	})

	app, out := newServerApp(t, mux)
	app.show(context.Background(), []string{"quote", "7"})

	require.Contains(t, out.String(), "We take off into the cosmos")
	require.Contains(t, out.String(), "Book:    Solaris")
	require.Contains(t, out.String(), "Liked by bob")
}

func TestShowCommand_BadArgs(t *testing.T) {
	app, out := newServerApp(t, http.NewServeMux())

	app.show(context.Background(), []string{"book"})
	require.Contains(t, out.String(), "Usage: show")

	out.Reset()
	app.show(context.Background(), []string{"book", "seven"})
	require.Contains(t, out.String(), "Bad id")
}

func TestLikeCommand_RequiresLogin(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits++ })

	app, out := newServerApp(t, mux)
	app.like(context.Background(), []string{"7"})

	require.Contains(t, out.String(), "Not logged in")
	require.Zero(t, hits)
}

func TestLikeCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/likes/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.EqualValues(t, 7, body["quote"])
		w.WriteHeader(http.StatusCreated)
		respond(w, map[string]any{"id": 12, "quote": 7})
	})

	app, out := newServerApp(t, mux)
	asLoggedIn(app)
	app.like(context.Background(), []string{"7"})

	require.Contains(t, out.String(), "Liked quote 7 (like 12)")
}

func TestOfficeCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/user/current/", func(w http.ResponseWriter, r *http.Request) {
		respond(w, map[string]any{
			"id": 1, "username": "alice", "email": "alice@example.org",
			"email_confirmed": true, "user_type": 1,
		})
	})
	mux.HandleFunc("GET /api/booklogs/", func(w http.ResponseWriter, r *http.Request) {
		respond(w, []map[string]any{
			{"id": 3, "book": map[string]any{"id": 1, "title": "Solaris"}, "score": 9},
		})
	})
	mux.HandleFunc("GET /api/quotes/", func(w http.ResponseWriter, r *http.Request) {
		respond(w, []map[string]any{})
	})

	app, out := newServerApp(t, mux)
	asLoggedIn(app)
	app.showOffice(context.Background())

	require.Contains(t, out.String(), "alice@example.org")
	require.Contains(t, out.String(), "Journal (1 entries):")
	require.Contains(t, out.String(), "Solaris (score 9)")
	require.Contains(t, out.String(), "Quotes (0):")
}

func TestModerateCommand(t *testing.T) {
	approved := false
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/books/5/approve/", func(w http.ResponseWriter, r *http.Request) {
		approved = true
		respond(w, map[string]any{"id": 5, "title": "Solaris", "status": "approved"})
	})

	app, out := newServerApp(t, mux)
	asLoggedIn(app)
	app.moderate(context.Background(), []string{"book", "5"}, true)

	require.True(t, approved)
	require.Contains(t, out.String(), "Approved.")
}
