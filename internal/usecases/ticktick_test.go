package usecases

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedTask struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	StartDate string `json:"startDate"`
	IsAllDay  bool   `json:"isAllDay"`
	Cookie    string `json:"-"`
}

func newFakeTicktick(t *testing.T) (*[]recordedTask, *httptest.Server) {
	t.Helper()
	var tasks []recordedTask
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v2/user/signon", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Username != "user@example.com" || creds.Password != "secret" {
			http.Error(w, `{"errorMessage":"wrong credentials"}`, http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
	})
	mux.HandleFunc("POST /api/v2/task", func(w http.ResponseWriter, r *http.Request) {
		var task recordedTask
		require.NoError(t, json.NewDecoder(r.Body).Decode(&task))
		task.Cookie = r.Header.Get("Cookie")
		tasks = append(tasks, task)
		_, _ = w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &tasks, server
}

func ticktickValues() options.Values {
	return options.Values{
		"ticktick": {"email": "user@example.com", "password": "secret"},
	}
}

func TestAddTaskToTicktick_MissingCredentials(t *testing.T) {
	t.Parallel()

	handler := New().Handlers()["/todo"]
	resp := handler(context.Background(), models.ParsedEntities{Rest: "buy milk"}, options.Values{})
	assert.Equal(t, "missing ticktick.email", resp.Text)
}

func TestAddTaskToTicktick_SendsToInbox(t *testing.T) {
	t.Parallel()

	tasks, server := newFakeTicktick(t)
	handler := New(WithTicktickBaseURL(server.URL)).Handlers()["/todo"]

	sent := time.Date(2023, 5, 1, 10, 30, 0, 0, time.UTC)
	entities := models.ParsedEntities{Date: sent, Rest: "buy milk"}
	resp := handler(context.Background(), entities, ticktickValues())

	assert.Equal(t, "✅  Sent to TickTick's inbox", resp.Text)
	require.Len(t, *tasks, 1)
	task := (*tasks)[0]
	assert.Equal(t, "buy milk", task.Title)
	assert.Contains(t, task.Content, "Sent from telegram-scribe-bot, on ")
	assert.Contains(t, task.Content, "Mon, 01 May 2023 10:30:00 UTC")
	assert.False(t, task.IsAllDay)
	assert.Empty(t, task.StartDate)
	assert.Contains(t, task.Cookie, "t=session-token")
}

func TestAddTodayTaskToTicktick_SchedulesAllDayToday(t *testing.T) {
	t.Parallel()

	tasks, server := newFakeTicktick(t)
	today := time.Date(2023, 5, 2, 8, 0, 0, 0, time.UTC)
	handler := New(
		WithTicktickBaseURL(server.URL),
		WithClock(func() time.Time { return today }),
	).Handlers()["/today"]

	resp := handler(context.Background(), models.ParsedEntities{Date: today, Rest: "stretch"}, ticktickValues())

	assert.Equal(t, "✅  Sent to TickTick's \"Today\" tasks", resp.Text)
	require.Len(t, *tasks, 1)
	task := (*tasks)[0]
	assert.Equal(t, "stretch", task.Title)
	assert.True(t, task.IsAllDay)
	assert.NotEmpty(t, task.StartDate)
}

func TestAddTaskToTicktick_LoginFailure(t *testing.T) {
	t.Parallel()

	_, server := newFakeTicktick(t)
	handler := New(WithTicktickBaseURL(server.URL)).Handlers()["/todo"]

	badCreds := options.Values{"ticktick": {"email": "user@example.com", "password": "wrong"}}
	resp := handler(context.Background(), models.ParsedEntities{Rest: "buy milk"}, badCreds)
	assert.Contains(t, resp.Text, "😕  Error while processing: ")
	assert.Contains(t, resp.Text, "error while trying to login to ticktick.com")
}
