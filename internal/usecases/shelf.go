package usecases

import (
	"context"
	"fmt"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/adrienjoly/telegram-scribe-bot/internal/services/github"
	"github.com/adrienjoly/telegram-scribe-bot/internal/services/spotify"
	"gopkg.in/yaml.v3"
)

// The album shelf is a static-site repository whose _data/albums.yaml file
// lists one YAML entry per album.
var shelfTarget = struct {
	owner    string
	repo     string
	filePath string
}{
	owner:    "adrienjoly",
	repo:     "album-shelf",
	filePath: "_data/albums.yaml",
}

type shelfEntry struct {
	Title       string `yaml:"title"`
	Artist      string `yaml:"artist"`
	ReleaseDate string `yaml:"release_date"`
	Img         string `yaml:"img"`
	URL         string `yaml:"url"`
}

func (r *Registry) githubClient(token string) (*github.Client, error) {
	if r.githubBaseURL != "" {
		return github.NewWithBaseURL(token, r.githubBaseURL)
	}
	return github.New(token), nil
}

// addSpotifyAlbumToShelfRepo looks up the album referenced in the message
// and submits a PR adding its metadata to the shelf repository.
func (r *Registry) addSpotifyAlbumToShelfRepo(ctx context.Context, entities models.ParsedEntities, opts options.Values) (string, error) {
	if _, err := options.Check(opts, "github", "token"); err != nil {
		return "", err
	}
	spotifyCreds, err := options.Check(opts, "spotify", "clientid", "secret")
	if err != nil {
		return "", err
	}

	albumID := spotify.ParseAlbumID(entities.Rest)
	if albumID == "" {
		return "", userError("🤔  Please include a Spotify album URL or URI in your message")
	}

	var spotifyOpts []spotify.Option
	if r.spotifyAPIURL != "" {
		spotifyOpts = append(spotifyOpts, spotify.WithBaseURL(r.spotifyAPIURL, r.spotifyTokenURL))
	}
	spotifyClient := spotify.New(ctx, spotifyCreds["clientid"], spotifyCreds["secret"], spotifyOpts...)
	album, err := spotifyClient.FetchAlbumMetadata(ctx, albumID)
	if err != nil {
		return "", err
	}

	entry := shelfEntry{
		Title:       album.Name,
		Artist:      album.ArtistNames(),
		ReleaseDate: album.ReleaseDate,
		URL:         "https://open.spotify.com/album/" + album.ID,
	}
	if len(album.Images) > 0 {
		entry.Img = album.Images[0].URL
	}
	meta, err := yaml.Marshal([]shelfEntry{entry})
	if err != nil {
		return "", fmt.Errorf("failed to render album metadata: %w", err)
	}

	githubClient, err := r.githubClient(opts.Get("github", "token"))
	if err != nil {
		return "", err
	}
	prURL, err := githubClient.ProposeFileChangePR(ctx, github.FileChangePR{
		Owner:        shelfTarget.owner,
		Repo:         shelfTarget.repo,
		FilePath:     shelfTarget.filePath,
		ContentToAdd: "\n" + string(meta) + "\n",
		BranchName:   fmt.Sprintf("scribe-bot-%d", r.now().UnixMilli()),
		Title:        fmt.Sprintf("add %q to %s", album.Name, shelfTarget.filePath),
		Body:         "Sent from telegram-scribe-bot, on " + entities.Date.UTC().Format("Mon Jan 2 15:04:05 MST 2006"),
	})
	if err != nil {
		return "", err
	}
	return "✅  Submitted PR on " + prURL, nil
}
