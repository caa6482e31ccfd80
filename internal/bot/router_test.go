package bot

import (
	"context"
	"testing"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/stretchr/testify/assert"
)

func commandEntity(text string) models.TaggedText {
	return models.TaggedText{
		MessageEntity: models.MessageEntity{Type: models.EntityBotCommand, Length: len(text)},
		Text:          text,
	}
}

func TestDispatch_NoCommandListsAvailableOnes(t *testing.T) {
	t.Parallel()

	router := NewRouter(map[string]CommandHandler{
		"/todo": func(context.Context, models.ParsedEntities, options.Values) Response {
			return Response{Text: "handled"}
		},
		"/note": func(context.Context, models.ParsedEntities, options.Values) Response {
			return Response{Text: "handled"}
		},
	})

	resp := router.Dispatch(context.Background(), models.ParsedEntities{Rest: "Hello world!"}, nil)
	assert.Equal(t, "🤔  Please retry with a valid command: /note, /todo", resp.Text)
}

func TestDispatch_UnknownCommandListsAvailableOnes(t *testing.T) {
	t.Parallel()

	router := NewRouter(map[string]CommandHandler{
		"/todo": func(context.Context, models.ParsedEntities, options.Values) Response {
			return Response{Text: "handled"}
		},
	})

	entities := models.ParsedEntities{Commands: []models.TaggedText{commandEntity("/nope")}}
	resp := router.Dispatch(context.Background(), entities, nil)
	assert.Contains(t, resp.Text, "Please retry with a valid command")
	assert.Contains(t, resp.Text, "/todo")
}

func TestDispatch_FirstCommandWins(t *testing.T) {
	t.Parallel()

	var invoked string
	handler := func(name string) CommandHandler {
		return func(context.Context, models.ParsedEntities, options.Values) Response {
			invoked = name
			return Response{Text: name}
		}
	}
	router := NewRouter(map[string]CommandHandler{
		"/todo":  handler("/todo"),
		"/today": handler("/today"),
	})

	entities := models.ParsedEntities{
		Commands: []models.TaggedText{commandEntity("/today"), commandEntity("/todo")},
	}
	resp := router.Dispatch(context.Background(), entities, nil)
	assert.Equal(t, "/today", invoked)
	assert.Equal(t, "/today", resp.Text)
}

func TestDispatch_PassesEntitiesAndOptionsThrough(t *testing.T) {
	t.Parallel()

	opts := options.Values{"trello": {"apikey": "k"}}
	router := NewRouter(map[string]CommandHandler{
		"/echo": func(_ context.Context, entities models.ParsedEntities, got options.Values) Response {
			assert.Equal(t, "payload", entities.Rest)
			assert.Equal(t, opts, got)
			return Response{Text: "ok"}
		},
	})

	entities := models.ParsedEntities{
		Commands: []models.TaggedText{commandEntity("/echo")},
		Rest:     "payload",
	}
	resp := router.Dispatch(context.Background(), entities, opts)
	assert.Equal(t, "ok", resp.Text)
}
