package services

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func journalMux(hits *hitCounter) *http.ServeMux {
	books := []map[string]any{
		{"id": 1, "title": "Crime and Punishment", "type": 0},
		{"id": 2, "title": "The Idiot", "type": 0},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books/", func(w http.ResponseWriter, r *http.Request) {
		hits.inc("GET " + r.URL.Path)
		writeJSON(w, http.StatusOK, books)
	})
	mux.HandleFunc("GET /api/books/1/", func(w http.ResponseWriter, r *http.Request) {
		hits.inc("GET " + r.URL.Path)
		writeJSON(w, http.StatusOK, books[0])
	})
	mux.HandleFunc("POST /api/books/", func(w http.ResponseWriter, r *http.Request) {
		hits.inc("POST " + r.URL.Path)
		writeJSON(w, http.StatusCreated, map[string]any{"id": 3, "title": "Demons", "type": 0})
	})
	mux.HandleFunc("PATCH /api/books/1/", func(w http.ResponseWriter, r *http.Request) {
		hits.inc("PATCH " + r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "title": "Renamed", "type": 0})
	})
	mux.HandleFunc("DELETE /api/books/2/", func(w http.ResponseWriter, r *http.Request) {
		hits.inc("DELETE " + r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/books/1/approve/", func(w http.ResponseWriter, r *http.Request) {
		hits.inc("POST " + r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "title": "Crime and Punishment", "type": 0})
	})
	return mux
}

func TestCollection_ListIsCached(t *testing.T) {
	hits := newHitCounter()
	s := newStack(t, journalMux(hits))
	ctx := context.Background()

	first, err := s.journal.Books().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := s.journal.Books().List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, hits.get("GET /api/books/"), "second read must come from cache")
}

func TestCollection_DistinctParamsAreDistinctEntries(t *testing.T) {
	hits := newHitCounter()
	s := newStack(t, journalMux(hits))
	ctx := context.Background()

	_, err := s.journal.Books().List(ctx, nil)
	require.NoError(t, err)

	params := url.Values{}
	params.Set("genre", "1")
	_, err = s.journal.Books().List(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, 2, hits.get("GET /api/books/"))
}

func TestCollection_CreateInvalidatesList(t *testing.T) {
	hits := newHitCounter()
	s := newStack(t, journalMux(hits))
	ctx := context.Background()

	_, err := s.journal.Books().List(ctx, nil)
	require.NoError(t, err)

	created, err := s.journal.Books().Create(ctx, map[string]any{"title": "Demons", "author": 1, "genre": 1, "type": 0})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	_, err = s.journal.Books().List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hits.get("GET /api/books/"), "create must invalidate the cached list")
}

func TestCollection_GetIsCachedAndPatchInvalidates(t *testing.T) {
	hits := newHitCounter()
	s := newStack(t, journalMux(hits))
	ctx := context.Background()

	book, err := s.journal.Books().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Crime and Punishment", book.Title)

	_, err = s.journal.Books().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, hits.get("GET /api/books/1/"))

	_, err = s.journal.Books().Patch(ctx, 1, map[string]any{"title": "Renamed"})
	require.NoError(t, err)

	_, err = s.journal.Books().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, hits.get("GET /api/books/1/"), "patch must invalidate the cached entity")
}

func TestCollection_DeleteInvalidatesList(t *testing.T) {
	hits := newHitCounter()
	s := newStack(t, journalMux(hits))
	ctx := context.Background()

	_, err := s.journal.Books().List(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, s.journal.Books().Delete(ctx, 2))

	_, err = s.journal.Books().List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hits.get("GET /api/books/"))
}

func TestModeratedCollection_ApproveInvalidates(t *testing.T) {
	hits := newHitCounter()
	s := newStack(t, journalMux(hits))
	ctx := context.Background()

	_, err := s.journal.Books().Get(ctx, 1)
	require.NoError(t, err)

	_, err = s.journal.Books().Approve(ctx, 1)
	require.NoError(t, err)

	_, err = s.journal.Books().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, hits.get("GET /api/books/1/"))
	assert.Equal(t, 1, hits.get("POST /api/books/1/approve/"))
}

func TestCollection_ErrorsAreNotCached(t *testing.T) {
	hits := newHitCounter()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/quotes/", func(w http.ResponseWriter, r *http.Request) {
		n := hits.inc("GET " + r.URL.Path)
		if n == 1 {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "boom"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 5, "note": "q"}})
	})

	s := newStack(t, mux)
	ctx := context.Background()

	_, err := s.journal.Quotes().List(ctx, nil)
	require.Error(t, err)

	quotes, err := s.journal.Quotes().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, 2, hits.get("GET /api/quotes/"))
}
