// Package cli is the interactive REPL of the BookLog client.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/ameleshko/booklog-cli/internal/client/api"
	"github.com/ameleshko/booklog-cli/internal/client/cache"
	"github.com/ameleshko/booklog-cli/internal/client/config"
	"github.com/ameleshko/booklog-cli/internal/client/services"
	"github.com/ameleshko/booklog-cli/internal/client/session"
	"github.com/ameleshko/booklog-cli/internal/logging"
)

// App wires the whole client together and drives the command loop.
type App struct {
	config  *config.Config
	session *session.Session
	auth    services.AuthService
	journal *services.Journal
	office  *services.Office
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	))

	sess := session.New()
	client, err := api.New(cfg.APIBaseURL, sess,
		api.WithLogger(logger),
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
	)
	if err != nil {
		return nil, err
	}

	mem := cache.NewMemory()
	journal := services.NewJournal(client, mem, logger)

	app := &App{
		config:  cfg,
		session: sess,
		auth:    services.NewAuth(client, sess, mem, logger),
		journal: journal,
		office:  services.NewOffice(client, journal),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	// Any lost session (failed refresh included) drops the prompt back to
	// the anonymous view on the next loop iteration; announce it once.
	// Session notifications run on whichever goroutine mutated the session
	// (office fetches are concurrent), so the closure state needs a lock.
	var mu sync.Mutex
	wasAuthenticated := false
	sess.Subscribe(func() {
		mu.Lock()
		defer mu.Unlock()
		now := sess.IsAuthenticated()
		if wasAuthenticated && !now {
			app.printf("Session ended, switching to anonymous view.\n")
		}
		wasAuthenticated = now
	})

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
