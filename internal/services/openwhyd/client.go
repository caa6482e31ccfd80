// Package openwhyd posts music tracks to the Openwhyd API, authenticating
// through its Auth0 password grant.
package openwhyd

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

const (
	defaultBaseURL   = "https://openwhyd.org"
	defaultIssuerURL = "https://openwhyd.eu.auth0.com"
	apiAudience      = "https://openwhyd.org/api/v2/"
)

// Credentials carries everything needed to post on a user's behalf.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// PostRequest is the body of POST /api/v2/postTrack.
type PostRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
}

// Client talks to the Openwhyd API.
type Client struct {
	creds     Credentials
	baseURL   string
	issuerURL string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the API and token issuer endpoints, for tests.
func WithBaseURLs(apiURL, issuerURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(apiURL, "/")
		c.issuerURL = strings.TrimSuffix(issuerURL, "/")
	}
}

// New creates an Openwhyd client.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:     creds,
		baseURL:   defaultBaseURL,
		issuerURL: defaultIssuerURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requestToken exchanges the user's credentials for an API access token.
// Auth0's password grant needs an audience parameter, which the standard
// oauth2 password flow cannot carry, hence the direct request.
func (c *Client) requestToken(ctx context.Context) (string, error) {
	payload := map[string]string{
		"audience":      apiAudience,
		"client_id":     c.creds.ClientID,
		"client_secret": c.creds.ClientSecret,
		"grant_type":    "password",
		"username":      c.creds.Username,
		"password":      c.creds.Password,
	}
	var result struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := c.postJSON(ctx, c.issuerURL+"/oauth/token", "", payload, &result); err != nil {
		return "", fmt.Errorf("failed to get openwhyd token: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("failed to get openwhyd token, cause: %s, %s", result.Error, result.ErrorDescription)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("failed to get openwhyd token: empty access token")
	}
	return result.AccessToken, nil
}

// PostTrack publishes a track and returns the URL of the created post.
func (c *Client) PostTrack(ctx context.Context, track PostRequest) (string, error) {
	token, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}
	var result struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/api/v2/postTrack", token, track, &result); err != nil {
		return "", fmt.Errorf("failed to post track on Openwhyd API: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("failed to post track on Openwhyd API, error: %s", result.Error)
	}
	return result.URL, nil
}

func (c *Client) postJSON(ctx context.Context, url, bearer string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
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
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON response: %w", err)
		}
	}
	return nil
}
