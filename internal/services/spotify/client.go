// Package spotify fetches album metadata from the Spotify Web API using the
// client-credentials grant.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL  = "https://api.spotify.com"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// Album is the subset of Spotify's album object the bot cares about.
type Album struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	Artists     []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// ArtistNames joins the album's artists into one display string.
func (a *Album) ArtistNames() string {
	names := make([]string, len(a.Artists))
	for i, artist := range a.Artists {
		names[i] = artist.Name
	}
	return strings.Join(names, ", ")
}

// Client authenticates via the client-credentials flow; the oauth2 transport
// handles token acquisition and refresh.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*clientcredentials.Config, *Client)

// WithBaseURL overrides both the API and token endpoints, for tests.
func WithBaseURL(apiURL, tokenURL string) Option {
	return func(cfg *clientcredentials.Config, c *Client) {
		c.baseURL = strings.TrimSuffix(apiURL, "/")
		cfg.TokenURL = tokenURL
	}
}

// New creates a Spotify client for the given application credentials.
func New(ctx context.Context, clientID, secret string, opts ...Option) *Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: secret,
		TokenURL:     defaultTokenURL,
	}
	c := &Client{baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(cfg, c)
	}
	c.http = cfg.Client(ctx)
	return c
}

// FetchAlbumMetadata retrieves one album by id.
func (c *Client) FetchAlbumMetadata(ctx context.Context, albumID string) (*Album, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/albums/"+albumID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spotify response read failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var album Album
	if err := json.Unmarshal(body, &album); err != nil {
		return nil, fmt.Errorf("spotify response decode failed: %w", err)
	}
	return &album, nil
}

var albumIDRE = regexp.MustCompile(`(?:open\.spotify\.com/album/|spotify:album:)([A-Za-z0-9]+)`)

// ParseAlbumID extracts a Spotify album id from free text containing an
// album URL or URI. Returns "" when none is found.
func ParseAlbumID(text string) string {
	match := albumIDRE.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}
