// Package ticktick is a minimal client for TickTick's unofficial v2 API,
// covering email/password sign-in and task creation.
package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.ticktick.com"

// Client signs in with email credentials and keeps the session token for
// subsequent calls.
type Client struct {
	email    string
	password string
	baseURL  string
	http     *http.Client
	token    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// New creates a TickTick client for the given credentials.
func New(email, password string, opts ...Option) *Client {
	c := &Client{
		email:    email,
		password: password,
		baseURL:  defaultBaseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect signs in and stores the session token.
func (c *Client) Connect(ctx context.Context) error {
	payload := map[string]string{
		"username": c.email,
		"password": c.password,
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/api/v2/user/signon?wc=true&remember=true", payload, &result); err != nil {
		return fmt.Errorf("error while trying to login to ticktick.com: %w", err)
	}
	if result.Token == "" {
		return fmt.Errorf("error while trying to login to ticktick.com: no session token in response")
	}
	c.token = result.Token
	return nil
}

// Task is the payload of a task creation request.
type Task struct {
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	IsAllDay  bool   `json:"isAllDay,omitempty"`
}

// AddTask creates a task in the account's inbox. A non-nil date schedules
// the task; isAllDay marks it as a day-long entry rather than a timed one.
func (c *Client) AddTask(ctx context.Context, title, desc string, date *time.Time, isAllDay bool) error {
	if c.token == "" {
		return fmt.Errorf("error while trying to add a task to ticktick.com: not connected")
	}
	task := Task{Title: title, Content: desc, IsAllDay: isAllDay}
	if date != nil {
		task.StartDate = date.UTC().Format("2006-01-02T15:04:05.000-0700")
	}
	if err := c.post(ctx, "/api/v2/task", task, nil); err != nil {
		return fmt.Errorf("error while trying to add a task to ticktick.com: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Cookie", "t="+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
