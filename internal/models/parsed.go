package models

import "time"

// TaggedText is a message entity together with the substring it covers.
type TaggedText struct {
	MessageEntity
	Text string `json:"text"`
}

// ParsedEntities is the structured form of a chat message: its commands and
// hashtags, plus the free text left over once command spans are stripped.
// Immutable once built.
type ParsedEntities struct {
	Date     time.Time    `json:"date"`
	Commands []TaggedText `json:"commands"`
	Tags     []TaggedText `json:"tags"`
	Rest     string       `json:"rest"`
}
