// Package usecases implements the bot's commands over the integration
// clients. Every handler validates its own configuration namespace and
// converts its failures into user-visible chat text.
package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/adrienjoly/telegram-scribe-bot/internal/bot"
	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
)

// userError is guidance for the end user (wrong input, nothing matched).
// Its message is already phrased for chat display and is surfaced verbatim.
type userError string

func (e userError) Error() string { return string(e) }

// Registry builds the command handler map. Endpoint overrides exist so tests
// can point the integration clients at local fakes.
type Registry struct {
	trelloBaseURL     string
	ticktickBaseURL   string
	spotifyAPIURL     string
	spotifyTokenURL   string
	githubBaseURL     string
	openwhydAPIURL    string
	openwhydIssuerURL string
	youtubeBaseURL    string
	now               func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithTrelloBaseURL points the Trello client at a different endpoint.
func WithTrelloBaseURL(u string) Option {
	return func(r *Registry) { r.trelloBaseURL = u }
}

// WithTicktickBaseURL points the TickTick client at a different endpoint.
func WithTicktickBaseURL(u string) Option {
	return func(r *Registry) { r.ticktickBaseURL = u }
}

// WithSpotifyURLs points the Spotify client at different API and token
// endpoints.
func WithSpotifyURLs(apiURL, tokenURL string) Option {
	return func(r *Registry) {
		r.spotifyAPIURL = apiURL
		r.spotifyTokenURL = tokenURL
	}
}

// WithGitHubBaseURL points the GitHub client at a different endpoint.
func WithGitHubBaseURL(u string) Option {
	return func(r *Registry) { r.githubBaseURL = u }
}

// WithOpenwhydURLs points the Openwhyd client at different API and token
// issuer endpoints.
func WithOpenwhydURLs(apiURL, issuerURL string) Option {
	return func(r *Registry) {
		r.openwhydAPIURL = apiURL
		r.openwhydIssuerURL = issuerURL
	}
}

// WithYouTubeBaseURL points the YouTube client at a different endpoint.
func WithYouTubeBaseURL(u string) Option {
	return func(r *Registry) { r.youtubeBaseURL = u }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// New creates a Registry.
func New(opts ...Option) *Registry {
	r := &Registry{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handlers returns the command map to register on the router. Constructed
// once at startup; the map itself is never mutated afterwards.
func (r *Registry) Handlers() map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"/todo":     r.handler(r.addTaskToTicktick),
		"/today":    r.handler(r.addTodayTaskToTicktick),
		"/note":     r.handler(r.addAsTrelloComment),
		"/next":     r.handler(r.getOrAddTrelloTasks),
		"/album":    r.handler(r.addSpotifyAlbumToShelfRepo),
		"/openwhyd": r.handler(r.postYouTubeTrackOnOpenwhyd),
		"/version":  r.handler(r.version),
	}
}

type commandFunc func(ctx context.Context, entities models.ParsedEntities, opts options.Values) (string, error)

// handler adapts a fallible command implementation to the router's
// infallible contract. Missing-configuration and user-guidance errors are
// surfaced verbatim; anything else gets a generic failure prefix.
func (r *Registry) handler(fn commandFunc) bot.CommandHandler {
	return func(ctx context.Context, entities models.ParsedEntities, opts options.Values) bot.Response {
		text, err := fn(ctx, entities, opts)
		if err != nil {
			var missing *options.MissingKeyError
			var guidance userError
			switch {
			case errors.As(err, &missing), errors.As(err, &guidance):
				text = err.Error()
			default:
				text = "😕  Error while processing: " + err.Error()
			}
		}
		return bot.Response{Text: text}
	}
}

// version reports the bot's build version from the "bot" options namespace.
func (r *Registry) version(_ context.Context, _ models.ParsedEntities, opts options.Values) (string, error) {
	v := opts.Get("bot", "version")
	if v == "" {
		v = "dev"
	}
	return "ℹ️  telegram-scribe-bot " + v, nil
}
