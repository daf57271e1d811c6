// ABOUTME: Book endpoints: listing with filters, detail, featured, create
// ABOUTME: Every returned entity passes through identifier normalization

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListBooks calls GET /books with paging and optional filters. Empty filter
// fields are omitted from the query entirely.
func (c *Client) ListBooks(ctx context.Context, page, limit int, filters BookFilters) (*BookPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if filters.Title != "" {
		query.Set("title", filters.Title)
	}
	if filters.Author != "" {
		query.Set("author", filters.Author)
	}
	if filters.Genre != "" {
		query.Set("genre", filters.Genre)
	}

	var result BookPage
	if err := c.do(ctx, http.MethodGet, "/books", query, nil, &result); err != nil {
		return nil, err
	}
	for i := range result.Data {
		result.Data[i].normalize()
	}
	return &result, nil
}

// GetBook calls GET /books/{id}.
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	if id == "" {
		return nil, NewValidation("book id is required")
	}
	var book Book
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, nil, &book); err != nil {
		return nil, err
	}
	book.normalize()
	return &book, nil
}

// AddBook calls POST /books. Admin only; the backend enforces the role.
func (c *Client) AddBook(ctx context.Context, input NewBook) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPost, "/books", nil, input, &book); err != nil {
		return nil, err
	}
	book.normalize()
	return &book, nil
}

// FeaturedBooks calls GET /books/featured. The backend returns either a bare
// array or a {data: [...]} envelope; both shapes are accepted.
func (c *Client) FeaturedBooks(ctx context.Context) ([]Book, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/books/featured", nil, nil, &raw); err != nil {
		return nil, err
	}

	var books []Book
	if err := json.Unmarshal(raw, &books); err != nil {
		var envelope struct {
			Data []Book `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("invalid featured books response: %w", err)
		}
		books = envelope.Data
	}

	for i := range books {
		books[i].normalize()
	}
	return books, nil
}
