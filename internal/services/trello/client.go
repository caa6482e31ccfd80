// Package trello is a thin client for the Trello REST API.
// API reference: https://developer.atlassian.com/cloud/trello/rest/
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.trello.com"

// Board is a Trello board summary.
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Card is a Trello card. Desc may carry a tag binding marker (see the
// usecases package).
type Card struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Desc         string   `json:"desc"`
	IDChecklists []string `json:"idChecklists"`
}

// CheckItem is one entry of a checklist. State is "complete" or "incomplete";
// Pos orders items within the list.
type CheckItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	State string  `json:"state"`
	Pos   float64 `json:"pos"`
}

// Checklist is a card's sub-list of actionable items.
type Checklist struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	CheckItems []CheckItem `json:"checkItems"`
}

// NextTodoItem returns the incomplete item with the lowest position, or nil
// when every item is complete.
func (c *Checklist) NextTodoItem() *CheckItem {
	var next *CheckItem
	for i := range c.CheckItems {
		item := &c.CheckItems[i]
		if item.State != "incomplete" {
			continue
		}
		if next == nil || item.Pos < next.Pos {
			next = item
		}
	}
	return next
}

// APIError reports a non-2xx response from the Trello API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trello API returned status %d: %s", e.Status, e.Body)
}

// Client authenticates requests with an API key and a user token, passed as
// query parameters on every call.
type Client struct {
	key     string
	token   string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Trello client for the given credentials.
func New(key, token string, opts ...Option) *Client {
	c := &Client{
		key:     key,
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Boards lists the boards of a member ("me" for the token's owner).
func (c *Client) Boards(ctx context.Context, member string) ([]Board, error) {
	var boards []Board
	err := c.do(ctx, http.MethodGet, "/1/members/"+member+"/boards", nil, &boards)
	return boards, err
}

// Cards lists all cards of a board.
func (c *Client) Cards(ctx context.Context, boardID string) ([]Card, error) {
	var cards []Card
	err := c.do(ctx, http.MethodGet, "/1/boards/"+boardID+"/cards", nil, &cards)
	return cards, err
}

// Card fetches one card, including its checklist ids.
func (c *Client) Card(ctx context.Context, cardID string) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodGet, "/1/cards/"+cardID, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// ChecklistIDs returns the ids of a card's checklists.
func (c *Client) ChecklistIDs(ctx context.Context, cardID string) ([]string, error) {
	card, err := c.Card(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return card.IDChecklists, nil
}

// Checklist fetches a checklist with its items.
func (c *Client) Checklist(ctx context.Context, checklistID string) (*Checklist, error) {
	var checklist Checklist
	if err := c.do(ctx, http.MethodGet, "/1/checklists/"+checklistID, nil, &checklist); err != nil {
		return nil, err
	}
	return &checklist, nil
}

// AddComment posts a comment on a card.
func (c *Client) AddComment(ctx context.Context, cardID, text string) error {
	params := url.Values{"text": {text}}
	return c.do(ctx, http.MethodPost, "/1/cards/"+cardID+"/actions/comments", params, nil)
}

// AddChecklistItem inserts an item into a checklist. Pos is "top" or
// "bottom".
func (c *Client) AddChecklistItem(ctx context.Context, checklistID, name, pos string) error {
	params := url.Values{"name": {name}, "pos": {pos}}
	return c.do(ctx, http.MethodPost, "/1/checklists/"+checklistID+"/checkItems", params, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.key)
	params.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("trello request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("trello response read failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("trello response decode failed: %w", err)
		}
	}
	return nil
}
