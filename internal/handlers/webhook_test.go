package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrienjoly/telegram-scribe-bot/internal/bot"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/adrienjoly/telegram-scribe-bot/internal/usecases"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, opts options.Values) *httptest.Server {
	t.Helper()
	router := bot.NewRouter(usecases.New().Handlers())
	r := mux.NewRouter()
	NewWebhookHandler(router, opts, zap.NewNop()).RegisterRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestWebhook_RespondsToGet(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, options.Values{})
	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, true, payload["ok"])
}

func TestWebhook_RejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, options.Values{})
	resp, payload := postJSON(t, server.URL+"/", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "not a telegram message", payload["status"])
}

func TestWebhook_MessageWithoutCommandGetsGuidance(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, options.Values{})
	resp, payload := postJSON(t, server.URL+"/", `{
		"message": {
			"chat": {"id": 1},
			"from": {"id": 1, "first_name": "test_name"},
			"date": 1556207540,
			"text": "Hello world!"
		}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, payload["status"])
	assert.Equal(t, "sendMessage", payload["method"])
	assert.Equal(t, float64(1), payload["chat_id"])
	assert.Contains(t, payload["text"], "Please retry with a valid command")
}

func TestWebhook_MissingIntegrationOptionIsReportedVerbatim(t *testing.T) {
	t.Parallel()

	opts := options.Values{"trello": {"apikey": "incorrect"}}
	server := newTestServer(t, opts)
	resp, payload := postJSON(t, server.URL+"/", `{
		"message": {
			"chat": {"id": 1},
			"from": {"id": 1, "first_name": "test_name"},
			"date": 1556207540,
			"text": "/next",
			"entities": [{"type": "bot_command", "offset": 0, "length": 5}]
		}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "missing trello.usertoken", payload["text"])
}

func TestWebhook_UnauthorizedSenderIsWarned(t *testing.T) {
	t.Parallel()

	opts := options.Values{"telegram": {"onlyfromuserid": "1"}}
	server := newTestServer(t, opts)
	resp, payload := postJSON(t, server.URL+"/", `{
		"message": {
			"chat": {"id": 1},
			"from": {"id": 2, "first_name": "test_name"},
			"date": 1556207540,
			"text": "/version"
		}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "this sender is not allowed", payload["text"])
}

func TestWebhook_AuthorizedSenderPasses(t *testing.T) {
	t.Parallel()

	opts := options.Values{
		"telegram": {"onlyfromuserid": "42"},
		"bot":      {"version": "1.2.3"},
	}
	server := newTestServer(t, opts)
	resp, payload := postJSON(t, server.URL+"/", `{
		"message": {
			"chat": {"id": 1},
			"from": {"id": 42, "first_name": "test_name"},
			"date": 1556207540,
			"text": "/version",
			"entities": [{"type": "bot_command", "offset": 0, "length": 8}]
		}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ℹ️  telegram-scribe-bot 1.2.3", payload["text"])
}

func TestWebhook_EditedMessageIsProcessed(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, options.Values{})
	resp, payload := postJSON(t, server.URL+"/", `{
		"edited_message": {
			"chat": {"id": 1},
			"from": {"id": 1, "first_name": "test_name"},
			"date": 1556207540,
			"text": "Hello world!"
		}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, payload["text"], "Please retry with a valid command")
}
