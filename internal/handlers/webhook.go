// Package handlers exposes the bot's HTTP surface: the Telegram webhook
// endpoint and the operational probes.
package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/adrienjoly/telegram-scribe-bot/internal/bot"
	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/adrienjoly/telegram-scribe-bot/internal/telegram"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// WebhookHandler handles Telegram webhook requests
type WebhookHandler struct {
	router *bot.Router
	opts   options.Values
	logger *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(router *bot.Router, opts options.Values, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{router: router, opts: opts, logger: logger}
}

// RegisterRoutes registers the webhook routes
func (h *WebhookHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.Probe).Methods("GET")
	r.HandleFunc("/", h.HandleUpdate).Methods("POST")
}

// Probe responds to browser checks on the webhook URL
func (h *WebhookHandler) Probe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleUpdate processes one Telegram update. The command's outcome travels
// back in the HTTP response body as a sendMessage payload, so the bot never
// calls the Telegram API itself.
func (h *WebhookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSONStatus(w, http.StatusBadRequest, "not a telegram message")
		return
	}

	msg, err := telegram.ParseUpdate(body)
	if err != nil {
		h.logger.Warn("webhook_payload_rejected", zap.Error(err))
		respondJSONStatus(w, http.StatusBadRequest, "not a telegram message")
		return
	}

	h.logger.Info("telegram_message_received",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Int64("from_id", msg.From.ID),
	)

	if !h.senderAllowed(msg) {
		h.logger.Warn("telegram_sender_rejected", zap.Int64("from_id", msg.From.ID))
		respondJSON(w, http.StatusOK, telegram.NewSendMessage(msg.Chat.ID, "this sender is not allowed"))
		return
	}

	entities := telegram.ParseEntities(msg)
	resp := h.router.Dispatch(r.Context(), entities, h.opts)
	respondJSON(w, http.StatusOK, telegram.NewSendMessage(msg.Chat.ID, resp.Text))
}

// senderAllowed enforces the telegram.onlyfromuserid option. An empty option
// accepts messages from anyone; a non-numeric value accepts no one.
func (h *WebhookHandler) senderAllowed(msg *models.Message) bool {
	raw := h.opts.Get("telegram", "onlyfromuserid")
	if raw == "" {
		return true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	return err == nil && msg.From.ID == id
}
