package models

// Telegram Bot API wire types, as delivered by webhook updates.
// Reference: https://core.telegram.org/bots/api#available-types

// EntityType identifies the kind of a message entity span.
type EntityType string

const (
	EntityMention     EntityType = "mention"
	EntityHashtag     EntityType = "hashtag"
	EntityCashtag     EntityType = "cashtag"
	EntityBotCommand  EntityType = "bot_command"
	EntityURL         EntityType = "url"
	EntityEmail       EntityType = "email"
	EntityPhoneNumber EntityType = "phone_number"
	EntityBold        EntityType = "bold"
	EntityItalic      EntityType = "italic"
	EntityCode        EntityType = "code"
	EntityPre         EntityType = "pre"
	EntityTextLink    EntityType = "text_link"
	EntityTextMention EntityType = "text_mention"
)

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// User is the sender of a message or the target of a text_mention entity.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

// MessageEntity is a tagged span over a message's text. Offset and Length
// are expressed in UTF-16 code units, not bytes or runes: Telegram clients
// compute them against UTF-16 encoding.
type MessageEntity struct {
	Type   EntityType `json:"type"`
	Offset int        `json:"offset"`
	Length int        `json:"length"`
	URL    string     `json:"url,omitempty"`
	User   *User      `json:"user,omitempty"`
}

// Message is a chat message, either freshly sent or edited.
type Message struct {
	Chat     Chat            `json:"chat"`
	From     *User           `json:"from" validate:"required"`
	Text     string          `json:"text" validate:"required"`
	Date     int64           `json:"date"`
	Entities []MessageEntity `json:"entities"`
}

// Update is the envelope Telegram posts to the webhook endpoint. Exactly one
// of the message fields is set, depending on whether the user sent a new
// message or edited an existing one.
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message"`
	EditedMessage *Message `json:"edited_message"`
}
