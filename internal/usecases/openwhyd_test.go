package usecases

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openwhydValues() options.Values {
	return options.Values{
		"openwhyd": {
			"username":          "adrien",
			"password":          "secret",
			"api_client_id":     "client",
			"api_client_secret": "s3cret",
			"youtube_api_key":   "yt-key",
		},
	}
}

func newFakeYouTube(t *testing.T, title string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/youtube/v3/videos", r.URL.Path)
		require.Equal(t, "yt-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"snippet": map[string]string{"title": title, "channelTitle": "some channel"}},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

type postedTrack struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
}

func newFakeOpenwhyd(t *testing.T) (*postedTrack, *httptest.Server) {
	t.Helper()
	posted := &postedTrack{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		var grant map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&grant))
		require.Equal(t, "password", grant["grant_type"])
		require.Equal(t, "https://openwhyd.org/api/v2/", grant["audience"])
		if grant["password"] != "secret" {
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_grant",
				"error_description": "Wrong email or password.",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "ow-token"})
	})
	mux.HandleFunc("POST /api/v2/postTrack", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer ow-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(posted))
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://openwhyd.org/c/post1"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return posted, server
}

func TestPostYouTubeTrackOnOpenwhyd_MissingCredentials(t *testing.T) {
	t.Parallel()

	handler := New().Handlers()["/openwhyd"]
	resp := handler(context.Background(), models.ParsedEntities{}, options.Values{})
	assert.Equal(t, "missing openwhyd.username", resp.Text)
}

func TestPostYouTubeTrackOnOpenwhyd_RequiresYouTubeURL(t *testing.T) {
	t.Parallel()

	handler := New().Handlers()["/openwhyd"]
	entities := models.ParsedEntities{Rest: "no link in this message"}
	resp := handler(context.Background(), entities, openwhydValues())
	assert.Equal(t, "😕  Error while processing: failed to find or parse YouTube URL", resp.Text)
}

func TestPostYouTubeTrackOnOpenwhyd_PostsTrack(t *testing.T) {
	t.Parallel()

	youtubeServer := newFakeYouTube(t, "Daft Punk - Around the World")
	posted, openwhydServer := newFakeOpenwhyd(t)

	handler := New(
		WithYouTubeBaseURL(youtubeServer.URL),
		WithOpenwhydURLs(openwhydServer.URL, openwhydServer.URL),
	).Handlers()["/openwhyd"]

	entities := models.ParsedEntities{
		Rest: "a classic https://youtu.be/K0HSD_i2DvA enjoy",
	}
	resp := handler(context.Background(), entities, openwhydValues())

	assert.Equal(t, "✅  Posted track on https://openwhyd.org/c/post1", resp.Text)
	assert.Equal(t, "https://youtube.com/watch?v=K0HSD_i2DvA", posted.URL)
	assert.Equal(t, "Daft Punk - Around the World", posted.Title)
	assert.Equal(t, "https://img.youtube.com/vi/K0HSD_i2DvA/hqdefault.jpg", posted.Thumbnail)
	assert.Equal(t, "a classic  enjoy", posted.Description)
}

func TestPostYouTubeTrackOnOpenwhyd_WrongPassword(t *testing.T) {
	t.Parallel()

	youtubeServer := newFakeYouTube(t, "some video")
	_, openwhydServer := newFakeOpenwhyd(t)

	handler := New(
		WithYouTubeBaseURL(youtubeServer.URL),
		WithOpenwhydURLs(openwhydServer.URL, openwhydServer.URL),
	).Handlers()["/openwhyd"]

	opts := openwhydValues()
	opts["openwhyd"]["password"] = "wrong"
	entities := models.ParsedEntities{Rest: "https://youtu.be/K0HSD_i2DvA"}
	resp := handler(context.Background(), entities, opts)

	assert.Contains(t, resp.Text, "😕  Error while processing: ")
	assert.Contains(t, resp.Text, "invalid_grant")
}
