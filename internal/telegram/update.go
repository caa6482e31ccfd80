package telegram

import (
	"encoding/json"
	"fmt"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/go-playground/validator/v10"
)

// ErrNotTelegramMessage is returned when a webhook payload cannot be
// normalized into a chat message. It is the only error the parsing stage is
// allowed to surface past the core: the HTTP adapter maps it to a 4xx status.
var ErrNotTelegramMessage = fmt.Errorf("not a telegram message")

var validate = validator.New()

// ParseUpdate decodes a raw webhook body into a chat message. Both the
// "message" and "edited_message" update shapes are recognized and normalized
// to the same structure. Updates without a sender or text body are rejected.
func ParseUpdate(body []byte) (*models.Message, error) {
	var update models.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, ErrNotTelegramMessage
	}

	msg := update.Message
	if msg == nil {
		msg = update.EditedMessage
	}
	if msg == nil || msg.Chat.ID == 0 {
		return nil, ErrNotTelegramMessage
	}
	if err := validate.Struct(msg); err != nil {
		return nil, ErrNotTelegramMessage
	}
	return msg, nil
}
