package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlbumID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"album URL", "https://open.spotify.com/album/6dVIqQ8qmQ5GBnJ9shOYGE", "6dVIqQ8qmQ5GBnJ9shOYGE"},
		{"album URL with query", "https://open.spotify.com/album/6dVIqQ8qmQ5GBnJ9shOYGE?si=abc", "6dVIqQ8qmQ5GBnJ9shOYGE"},
		{"album URI", "spotify:album:6dVIqQ8qmQ5GBnJ9shOYGE", "6dVIqQ8qmQ5GBnJ9shOYGE"},
		{"URL inside a sentence", "loved this one https://open.spotify.com/album/abc123 so much", "abc123"},
		{"track URL is not an album", "https://open.spotify.com/track/6dVIqQ8qmQ5GBnJ9shOYGE", ""},
		{"plain text", "no album here", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParseAlbumID(tc.text))
		})
	}
}

func TestFetchAlbumMetadata(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /v1/albums/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           r.PathValue("id"),
			"name":         "Discovery",
			"release_date": "2001-03-12",
			"artists":      []map[string]string{{"name": "Daft Punk"}, {"name": "Someone Else"}},
			"images":       []map[string]string{{"url": "https://img.example/discovery.jpg"}},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	ctx := context.Background()
	client := New(ctx, "id", "secret", WithBaseURL(server.URL, server.URL+"/token"))
	album, err := client.FetchAlbumMetadata(ctx, "album1")
	require.NoError(t, err)
	assert.Equal(t, "Discovery", album.Name)
	assert.Equal(t, "2001-03-12", album.ReleaseDate)
	assert.Equal(t, "Daft Punk, Someone Else", album.ArtistNames())
}
