package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ameleshko/booklog-cli/internal/client/models"
)

// Resource is a typed client for one REST collection, e.g. "books/". All
// calls go through Do and therefore through the refresh protocol.
type Resource[T any] struct {
	c    *Client
	path string
}

func resource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// Path returns the collection path relative to the API base.
func (r *Resource[T]) Path() string { return r.path }

func (r *Resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s%d/", r.path, id)
}

// List fetches the collection, optionally filtered by query params.
func (r *Resource[T]) List(ctx context.Context, params url.Values) ([]T, error) {
	var items []T
	err := r.c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   r.path,
		Params: params,
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one item by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	err := r.c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   r.itemPath(id),
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a new item. in is the creation payload (flat foreign keys),
// which generally differs from the nested read shape T.
func (r *Resource[T]) Create(ctx context.Context, in any) (*T, error) {
	var item T
	err := r.c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   r.path,
		Body:   in,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces an item (PUT).
func (r *Resource[T]) Update(ctx context.Context, id int64, in any) (*T, error) {
	var item T
	err := r.c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   r.itemPath(id),
		Body:   in,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Patch partially updates an item.
func (r *Resource[T]) Patch(ctx context.Context, id int64, in any) (*T, error) {
	var item T
	err := r.c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   r.itemPath(id),
		Body:   in,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   r.itemPath(id),
	}, nil)
}

// ModeratedResource adds the approve/reject moderation actions that authors
// and books carry.
type ModeratedResource[T any] struct {
	*Resource[T]
}

func (m *ModeratedResource[T]) action(ctx context.Context, id int64, verb string) (*T, error) {
	var item T
	err := m.c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   m.itemPath(id) + verb + "/",
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Approve marks a pending item as accepted.
func (m *ModeratedResource[T]) Approve(ctx context.Context, id int64) (*T, error) {
	return m.action(ctx, id, "approve")
}

// Reject declines a pending item.
func (m *ModeratedResource[T]) Reject(ctx context.Context, id int64) (*T, error) {
	return m.action(ctx, id, "reject")
}

func (c *Client) Authors() *ModeratedResource[models.Author] {
	return &ModeratedResource[models.Author]{resource[models.Author](c, "authors/")}
}

func (c *Client) Genres() *Resource[models.Genre] {
	return resource[models.Genre](c, "genres/")
}

func (c *Client) Books() *ModeratedResource[models.Book] {
	return &ModeratedResource[models.Book]{resource[models.Book](c, "books/")}
}

func (c *Client) BookLogs() *Resource[models.BookLog] {
	return resource[models.BookLog](c, "booklogs/")
}

func (c *Client) Quotes() *Resource[models.Quote] {
	return resource[models.Quote](c, "quotes/")
}

func (c *Client) Likes() *Resource[models.Like] {
	return resource[models.Like](c, "likes/")
}

func (c *Client) Shares() *Resource[models.Share] {
	return resource[models.Share](c, "shares/")
}
