package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/ameleshko/booklog-cli/internal/client/api"
	"github.com/ameleshko/booklog-cli/internal/client/cache"
	"github.com/ameleshko/booklog-cli/internal/client/models"
	"github.com/ameleshko/booklog-cli/internal/logging"
)

const defaultCacheTTL = 5 * time.Minute

// Journal is the cached browsing service for the content entities. Reads go
// through the query cache; writes invalidate the tags they touch, so the
// next read refetches.
type Journal struct {
	api   *api.Client
	cache cache.Cache
	ttl   time.Duration
	log   logging.Logger
}

func NewJournal(client *api.Client, c cache.Cache, log logging.Logger) *Journal {
	return &Journal{
		api:   client,
		cache: c,
		ttl:   defaultCacheTTL,
		log:   log.With("component", "journal"),
	}
}

// Collection couples one API resource with its cache tags.
type Collection[T any] struct {
	j    *Journal
	res  *api.Resource[T]
	name string
}

func newCollection[T any](j *Journal, res *api.Resource[T], name string) *Collection[T] {
	return &Collection[T]{j: j, res: res, name: name}
}

func (c *Collection[T]) listKey(params url.Values) string {
	key := c.res.Path()
	if len(params) > 0 {
		key += "?" + params.Encode()
	}
	return key
}

// List returns the cached listing when fresh, otherwise fetches and caches.
func (c *Collection[T]) List(ctx context.Context, params url.Values) ([]T, error) {
	key := c.listKey(params)
	if b, ok := c.j.cache.Get(key); ok {
		var items []T
		if err := json.Unmarshal(b, &items); err == nil {
			c.j.log.Debug(ctx, "cache hit", "key", key)
			return items, nil
		}
	}

	items, err := c.res.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(items); err == nil {
		c.j.cache.Set(key, b, []cache.Tag{cache.ListTag(c.name)}, c.j.ttl)
	}
	return items, nil
}

// Get returns one cached entity when fresh, otherwise fetches and caches.
func (c *Collection[T]) Get(ctx context.Context, id int64) (*T, error) {
	key := c.res.Path() + strconv.FormatInt(id, 10) + "/"
	if b, ok := c.j.cache.Get(key); ok {
		var item T
		if err := json.Unmarshal(b, &item); err == nil {
			return &item, nil
		}
	}

	item, err := c.res.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(item); err == nil {
		c.j.cache.Set(key, b, []cache.Tag{cache.IDTag(c.name, id)}, c.j.ttl)
	}
	return item, nil
}

func (c *Collection[T]) Create(ctx context.Context, in any) (*T, error) {
	item, err := c.res.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	c.j.cache.Invalidate(cache.ListTag(c.name))
	return item, nil
}

func (c *Collection[T]) Update(ctx context.Context, id int64, in any) (*T, error) {
	item, err := c.res.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	c.j.cache.Invalidate(cache.IDTag(c.name, id), cache.ListTag(c.name))
	return item, nil
}

func (c *Collection[T]) Patch(ctx context.Context, id int64, in any) (*T, error) {
	item, err := c.res.Patch(ctx, id, in)
	if err != nil {
		return nil, err
	}
	c.j.cache.Invalidate(cache.IDTag(c.name, id), cache.ListTag(c.name))
	return item, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	if err := c.res.Delete(ctx, id); err != nil {
		return err
	}
	c.j.cache.Invalidate(cache.IDTag(c.name, id), cache.ListTag(c.name))
	return nil
}

// ModeratedCollection adds cached approve/reject for authors and books.
type ModeratedCollection[T any] struct {
	*Collection[T]
	res *api.ModeratedResource[T]
}

func (m *ModeratedCollection[T]) Approve(ctx context.Context, id int64) (*T, error) {
	item, err := m.res.Approve(ctx, id)
	if err != nil {
		return nil, err
	}
	m.j.cache.Invalidate(cache.IDTag(m.name, id), cache.ListTag(m.name))
	return item, nil
}

func (m *ModeratedCollection[T]) Reject(ctx context.Context, id int64) (*T, error) {
	item, err := m.res.Reject(ctx, id)
	if err != nil {
		return nil, err
	}
	m.j.cache.Invalidate(cache.IDTag(m.name, id), cache.ListTag(m.name))
	return item, nil
}

func (j *Journal) Authors() *ModeratedCollection[models.Author] {
	res := j.api.Authors()
	return &ModeratedCollection[models.Author]{newCollection(j, res.Resource, "Author"), res}
}

func (j *Journal) Genres() *Collection[models.Genre] {
	return newCollection(j, j.api.Genres(), "Genre")
}

func (j *Journal) Books() *ModeratedCollection[models.Book] {
	res := j.api.Books()
	return &ModeratedCollection[models.Book]{newCollection(j, res.Resource, "Book"), res}
}

func (j *Journal) BookLogs() *Collection[models.BookLog] {
	return newCollection(j, j.api.BookLogs(), "BookLog")
}

func (j *Journal) Quotes() *Collection[models.Quote] {
	return newCollection(j, j.api.Quotes(), "Quote")
}

func (j *Journal) Likes() *Collection[models.Like] {
	return newCollection(j, j.api.Likes(), "Like")
}

func (j *Journal) Shares() *Collection[models.Share] {
	return newCollection(j, j.api.Shares(), "Share")
}
