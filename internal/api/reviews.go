// ABOUTME: Review endpoints: per-book listing, submission, user's reviews, deletion
// ABOUTME: Submission responses arrive wrapped in a {data: ...} envelope

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// BookReviews calls GET /reviews?bookId={id} with paging.
func (c *Client) BookReviews(ctx context.Context, bookID string, page, limit int) (*ReviewPage, error) {
	if bookID == "" {
		return nil, NewValidation("book id is required")
	}
	query := url.Values{}
	query.Set("bookId", bookID)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result ReviewPage
	if err := c.do(ctx, http.MethodGet, "/reviews", query, nil, &result); err != nil {
		return nil, err
	}
	for i := range result.Data {
		result.Data[i].normalize()
	}
	return &result, nil
}

// AddReview calls POST /reviews. Content and rating are validated by the
// caller before this point; the backend revalidates regardless.
func (c *Client) AddReview(ctx context.Context, input NewReview) (*Review, error) {
	var envelope struct {
		Data Review `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, input, &envelope); err != nil {
		return nil, err
	}
	envelope.Data.normalize()
	return &envelope.Data, nil
}

// MyReviews calls GET /reviews/user for the authenticated user's reviews.
func (c *Client) MyReviews(ctx context.Context, page, limit int) (*ReviewPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result ReviewPage
	if err := c.do(ctx, http.MethodGet, "/reviews/user", query, nil, &result); err != nil {
		return nil, err
	}
	for i := range result.Data {
		result.Data[i].normalize()
	}
	return &result, nil
}

// DeleteReview calls DELETE /reviews/{id}.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	if id == "" {
		return NewValidation("review id is required")
	}
	return c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil, nil)
}
