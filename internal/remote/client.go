// Package remote is the HTTP client for the board API. The base URL and the
// bearer credential are passed in explicitly; the client never reads them
// from the environment.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// maxErrorBody caps how much of an error response body is kept
const maxErrorBody = 512

// Client wraps http.Client with helpers for the board API's JSON requests
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient creates a client for the API rooted at baseURL. token is the
// opaque bearer credential; it may be empty, in which case every call fails
// with ErrNoCredential without touching the network.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredential reports whether the client carries a bearer token
func (c *Client) HasCredential() bool {
	return c != nil && c.token != ""
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ============================================================================
// BOARDS
// ============================================================================

// ListBoards returns the boards visible to the credential
func (c *Client) ListBoards(ctx context.Context) ([]*models.Board, error) {
	var boards []*models.Board
	if err := c.do(ctx, http.MethodGet, "/api/boards", nil, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// CreateBoard creates a board
func (c *Client) CreateBoard(ctx context.Context, title string) (*models.Board, error) {
	var board models.Board
	body := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPost, "/api/boards", body, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// GetBoardLists fetches the lists of a board, each with its nested cards
func (c *Client) GetBoardLists(ctx context.Context, boardID types.BoardID) ([]*models.List, error) {
	var lists []*models.List
	path := "/api/boards/" + url.PathEscape(boardID.String()) + "/lists"
	if err := c.do(ctx, http.MethodGet, path, nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// ============================================================================
// LISTS
// ============================================================================

// NewList is the body of a list creation
type NewList struct {
	Title   string        `json:"title"`
	BoardID types.BoardID `json:"board_id"`
	Order   int           `json:"order"`
}

// ListPatch is a partial list update. Nil fields are omitted.
type ListPatch struct {
	Title *string `json:"title,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// CreateList creates a list and returns the server entity
func (c *Client) CreateList(ctx context.Context, in NewList) (*models.List, error) {
	var list models.List
	if err := c.do(ctx, http.MethodPost, "/api/lists", in, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// PatchList persists a list rename or reorder
func (c *Client) PatchList(ctx context.Context, id types.ListID, patch ListPatch) error {
	return c.do(ctx, http.MethodPatch, "/api/lists/"+url.PathEscape(id.String()), patch, nil)
}

// DeleteList deletes a list and its cards
func (c *Client) DeleteList(ctx context.Context, id types.ListID) error {
	return c.do(ctx, http.MethodDelete, "/api/lists/"+url.PathEscape(id.String()), nil, nil)
}

// ============================================================================
// CARDS
// ============================================================================

// NewCard is the body of a card creation
type NewCard struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ListID      types.ListID `json:"list_id"`
	Order       int          `json:"order"`
}

// CardPatch is a partial card update. A relocation sets ListID and Order.
type CardPatch struct {
	ListID *types.ListID `json:"list_id,omitempty"`
	Order  *int          `json:"order,omitempty"`
	Title  *string       `json:"title,omitempty"`
}

// CreateCard creates a card and returns the server entity
func (c *Client) CreateCard(ctx context.Context, in NewCard) (*models.Card, error) {
	var card models.Card
	if err := c.do(ctx, http.MethodPost, "/api/cards", in, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// PatchCard persists a card relocation, reorder or rename
func (c *Client) PatchCard(ctx context.Context, id types.CardID, patch CardPatch) error {
	return c.do(ctx, http.MethodPatch, "/api/cards/"+url.PathEscape(id.String()), patch, nil)
}

// DeleteCard deletes a card
func (c *Client) DeleteCard(ctx context.Context, id types.CardID) error {
	return c.do(ctx, http.MethodDelete, "/api/cards/"+url.PathEscape(id.String()), nil, nil)
}

// ============================================================================
// TRANSPORT
// ============================================================================

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if !c.HasCredential() {
		return ErrNoCredential
	}

	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
