package telegram

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// SendMessage is the response payload the chat platform expects in the body
// of the webhook's HTTP response.
type SendMessage struct {
	Method    string `json:"method"`
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// markdown compiles the small markdown subset handlers are allowed to emit.
// Telegram's own markdown parser fails silently on unbalanced markup, so the
// bot compiles to HTML itself instead of delegating.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// sanitizer restricts compiled HTML to the tags Telegram accepts in
// parse_mode=HTML messages. Everything else is stripped, keeping its text.
var sanitizer = newSanitizer()

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "s", "del", "u", "code", "pre")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "tg")
	return p
}

// NewSendMessage builds the sendMessage response for a chat, compiling the
// handler's markdown output to Telegram-safe HTML.
func NewSendMessage(chatID int64, text string) SendMessage {
	return SendMessage{
		Method:    "sendMessage",
		ChatID:    chatID,
		Text:      RenderHTML(text),
		ParseMode: "HTML",
	}
}

// RenderHTML compiles markdown text into the HTML subset accepted by the
// chat platform. Paragraphs and other block markup unwrap to plain lines.
func RenderHTML(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		// the fallback keeps the raw text visible to the user
		return text
	}
	out := buf.String()
	out = strings.ReplaceAll(out, "</p>\n", "\n")
	out = strings.ReplaceAll(out, "<br>\n", "\n")
	out = strings.ReplaceAll(out, "<br />\n", "\n")
	out = sanitizer.Sanitize(out)
	return strings.TrimSpace(out)
}
