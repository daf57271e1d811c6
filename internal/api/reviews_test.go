// ABOUTME: Tests for review endpoints
// ABOUTME: Covers the wrapped submission response and query construction

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookReviewsQuery(t *testing.T) {
	c := newBookServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "b1", q.Get("bookId"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"data":       []map[string]any{{"_id": "r1", "bookId": "b1", "rating": 4, "content": "Great read."}},
			"pagination": map[string]int{"totalCount": 1, "totalPages": 1, "currentPage": 1, "limit": 10},
		})
	})

	page, err := c.BookReviews(context.Background(), "b1", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "r1", page.Data[0].ID)
	assert.Equal(t, 4, page.Data[0].Rating)
}

func TestAddReviewUnwrapsEnvelope(t *testing.T) {
	c := newBookServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var input NewReview
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "b1", input.BookID)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"_id": "r9", "bookId": input.BookID, "rating": input.Rating, "content": input.Content},
		})
	})

	review, err := c.AddReview(context.Background(), NewReview{BookID: "b1", Rating: 4, Content: "Great read, highly recommend it."})
	require.NoError(t, err)
	assert.Equal(t, "r9", review.ID)
	assert.Equal(t, 4, review.Rating)
}

func TestMyReviewsPath(t *testing.T) {
	c := newBookServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews/user", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data":       []map[string]any{},
			"pagination": map[string]int{"totalCount": 0, "totalPages": 0, "currentPage": 1, "limit": 10},
		})
	})

	_, err := c.MyReviews(context.Background(), 1, 10)
	require.NoError(t, err)
}

func TestDeleteReview(t *testing.T) {
	c := newBookServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/reviews/r1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteReview(context.Background(), "r1"))
}

func TestDeleteReviewEmptyID(t *testing.T) {
	c := newBookServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for a local validation failure")
	})

	err := c.DeleteReview(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
