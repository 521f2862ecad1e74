package services

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/ameleshko/booklog-cli/internal/client/api"
	"github.com/ameleshko/booklog-cli/internal/client/models"
)

// OfficeView aggregates everything the personal office page shows: the
// profile plus the caller's reading journal and quotes.
type OfficeView struct {
	User     *models.User
	BookLogs []models.BookLog
	Quotes   []models.Quote
}

// Office assembles the personal office page data.
type Office struct {
	api     *api.Client
	journal *Journal
}

func NewOffice(client *api.Client, journal *Journal) *Office {
	return &Office{api: client, journal: journal}
}

// View fetches the three data sets concurrently. Any failure cancels the
// remaining fetches and fails the whole view.
func (o *Office) View(ctx context.Context) (*OfficeView, error) {
	var view OfficeView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := o.api.CurrentUser(gctx)
		if err != nil {
			return err
		}
		view.User = user
		return nil
	})
	g.Go(func() error {
		logs, err := o.journal.BookLogs().List(gctx, url.Values{})
		if err != nil {
			return err
		}
		view.BookLogs = logs
		return nil
	})
	g.Go(func() error {
		quotes, err := o.journal.Quotes().List(gctx, url.Values{})
		if err != nil {
			return err
		}
		view.Quotes = quotes
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("office: %w", err)
	}
	return &view, nil
}
