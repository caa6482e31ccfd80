package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/adrienjoly/telegram-scribe-bot/internal/services/openwhyd"
	"github.com/adrienjoly/telegram-scribe-bot/internal/services/youtube"
)

const openwhydNamespace = "openwhyd"

var openwhydKeys = []string{"username", "password", "api_client_id", "api_client_secret", "youtube_api_key"}

// postYouTubeTrackOnOpenwhyd finds the YouTube link in the message, fetches
// the video's metadata, and posts it as a track on the user's Openwhyd
// profile. The rest of the message becomes the post's description.
func (r *Registry) postYouTubeTrackOnOpenwhyd(ctx context.Context, entities models.ParsedEntities, opts options.Values) (string, error) {
	creds, err := options.Check(opts, openwhydNamespace, openwhydKeys...)
	if err != nil {
		return "", err
	}

	video := youtube.ParseURL(entities.Rest)
	if video == nil {
		return "", fmt.Errorf("failed to find or parse YouTube URL")
	}

	var youtubeOpts []youtube.Option
	if r.youtubeBaseURL != "" {
		youtubeOpts = append(youtubeOpts, youtube.WithBaseURL(r.youtubeBaseURL))
	}
	info, err := youtube.New(creds["youtube_api_key"], youtubeOpts...).FetchVideoInfo(ctx, video.ID)
	if err != nil {
		return "", err
	}

	var openwhydOpts []openwhyd.Option
	if r.openwhydAPIURL != "" {
		openwhydOpts = append(openwhydOpts, openwhyd.WithBaseURLs(r.openwhydAPIURL, r.openwhydIssuerURL))
	}
	client := openwhyd.New(openwhyd.Credentials{
		ClientID:     creds["api_client_id"],
		ClientSecret: creds["api_client_secret"],
		Username:     creds["username"],
		Password:     creds["password"],
	}, openwhydOpts...)

	postedURL, err := client.PostTrack(ctx, openwhyd.PostRequest{
		URL:         "https://youtube.com/watch?v=" + video.ID,
		Title:       info.Title,
		Thumbnail:   info.ThumbnailURL,
		Description: strings.TrimSpace(strings.Replace(entities.Rest, video.URL, "", 1)),
	})
	if err != nil {
		return "", err
	}
	return "✅  Posted track on " + postedURL, nil
}
