// Package youtube extracts video references from free text and fetches
// their metadata from the YouTube Data API.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com"

// Video is a YouTube video reference found in a message.
type Video struct {
	URL string
	ID  string
}

var urlRE = regexp.MustCompile(`https?://[^\s]+`)

var videoIDREs = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.googleapis\.com/v/([a-zA-Z0-9_-]+)`),
}

// ParseURL finds the first YouTube URL in text and extracts its video id.
// Returns nil when the text holds no recognizable YouTube link.
func ParseURL(text string) *Video {
	rawURL := urlRE.FindString(text)
	if rawURL == "" {
		return nil
	}
	for _, re := range videoIDREs {
		if match := re.FindStringSubmatch(rawURL); match != nil {
			return &Video{URL: rawURL, ID: match[1]}
		}
	}
	return nil
}

// VideoInfo is the metadata subset used when posting a track.
type VideoInfo struct {
	Title        string
	ChannelName  string
	ThumbnailURL string
}

// Client queries the YouTube Data API v3 with an API key.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// New creates a YouTube client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchVideoInfo retrieves the snippet of one video.
func (c *Client) FetchVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	params := url.Values{
		"part": {"snippet"},
		"id":   {videoID},
		"key":  {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/youtube/v3/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info from YouTube: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read YouTube response: %w", err)
	}

	var result struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Items []struct {
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode YouTube response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch video info from YouTube, cause: %s", result.Error.Message)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("no YouTube video found for id %s", videoID)
	}

	return &VideoInfo{
		Title:        result.Items[0].Snippet.Title,
		ChannelName:  result.Items[0].Snippet.ChannelTitle,
		ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", videoID),
	}, nil
}
