// Package bot routes parsed chat messages to their command handlers.
package bot

import (
	"context"
	"sort"
	"strings"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
)

// Response is the single result contract of every command handler. Handlers
// convert their own failures into user-visible text, so a Response is always
// produced and the router never needs to intercept errors.
type Response struct {
	Text string
}

// CommandHandler processes a parsed message for one command.
type CommandHandler func(ctx context.Context, entities models.ParsedEntities, opts options.Values) Response

// Router maps command strings to handlers. The handler map is fixed at
// construction time and shared read-only across requests.
type Router struct {
	handlers map[string]CommandHandler
	names    []string
}

// NewRouter builds a router over an immutable handler map. Command names are
// kept sorted so guidance messages enumerate them deterministically.
func NewRouter(handlers map[string]CommandHandler) *Router {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Router{handlers: handlers, names: names}
}

// Commands returns the registered command names in sorted order.
func (r *Router) Commands() []string {
	return r.names
}

// Dispatch selects the handler for the first command of the message and runs
// it. Messages without a command, or with an unregistered one, get a retry
// invitation listing the available commands.
func (r *Router) Dispatch(ctx context.Context, entities models.ParsedEntities, opts options.Values) Response {
	var command string
	if len(entities.Commands) > 0 {
		command = entities.Commands[0].Text
	}
	handler, ok := r.handlers[command]
	if !ok {
		return Response{Text: "🤔  Please retry with a valid command: " + strings.Join(r.names, ", ")}
	}
	return handler(ctx, entities, opts)
}
