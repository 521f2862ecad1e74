// Package cache is an in-memory, process-lifetime cache for query results,
// with tag-based invalidation: every entry carries the tags of the entities
// it contains, and mutations invalidate by tag rather than by key.
package cache

import (
	"strconv"
	"sync"
	"time"
)

// Tag identifies a set of cached entries to invalidate together, e.g.
// "Book:LIST" or "Book:7".
type Tag string

// ListTag covers every cached listing of a resource.
func ListTag(resource string) Tag {
	return Tag(resource + ":LIST")
}

// IDTag covers cached reads of one entity.
func IDTag(resource string, id int64) Tag {
	return Tag(resource + ":" + strconv.FormatInt(id, 10))
}

// Cache is the port the services consume. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the cached value for key, if present and fresh.
	Get(key string) ([]byte, bool)

	// Set stores value under key, associated with tags. ttl <= 0 means
	// no expiry.
	Set(key string, value []byte, tags []Tag, ttl time.Duration)

	// Invalidate drops every entry carrying any of the given tags.
	Invalidate(tags ...Tag)

	// Purge drops everything (logout, profile deletion).
	Purge()
}

type entry struct {
	value     []byte
	tags      []Tag
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is the in-process Cache implementation.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*entry
	byTag   map[Tag]map[string]struct{}
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*entry),
		byTag:   make(map[Tag]map[string]struct{}),
		now:     time.Now,
	}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(m.now()) {
		m.removeLocked(key, e)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(key string, value []byte, tags []Tag, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[key]; ok {
		m.removeLocked(key, old)
	}

	e := &entry{value: value, tags: tags}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	for _, tag := range tags {
		keys, ok := m.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			m.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

func (m *Memory) Invalidate(tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range tags {
		for key := range m.byTag[tag] {
			if e, ok := m.entries[key]; ok {
				m.removeLocked(key, e)
			}
		}
	}
}

func (m *Memory) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*entry)
	m.byTag = make(map[Tag]map[string]struct{})
}

func (m *Memory) removeLocked(key string, e *entry) {
	delete(m.entries, key)
	for _, tag := range e.tags {
		if keys, ok := m.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(m.byTag, tag)
			}
		}
	}
}
