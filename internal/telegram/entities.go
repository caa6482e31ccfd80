package telegram

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
)

// SupportedTypes lists the entity kinds the extractor retains. Every other
// kind is silently dropped.
var SupportedTypes = []models.EntityType{models.EntityBotCommand, models.EntityHashtag}

// InlineTypes lists the retained kinds that stay visible in the free text:
// hashtags are kept inline so they read naturally in notes while also being
// available as structured tags.
var InlineTypes = []models.EntityType{models.EntityHashtag}

var spaceRunRE = regexp.MustCompile(` {2,}`)

// ParseEntities extracts commands, hashtags and the remaining free text from
// a message, using the default supported and inline kinds. It never fails:
// spans with out-of-range offsets degrade to empty substrings.
func ParseEntities(msg *models.Message) models.ParsedEntities {
	return ParseEntitiesWith(msg, SupportedTypes, InlineTypes)
}

// ParseEntitiesWith is ParseEntities with explicit supported and inline kind
// sets. Entity offsets are interpreted as UTF-16 code unit positions, so all
// slicing happens over the message text's UTF-16 encoding.
func ParseEntitiesWith(msg *models.Message, supported, inline []models.EntityType) models.ParsedEntities {
	units := utf16.Encode([]rune(msg.Text))

	parsed := models.ParsedEntities{
		Date:     time.Unix(msg.Date, 0),
		Commands: []models.TaggedText{},
		Tags:     []models.TaggedText{},
	}

	var retained []models.MessageEntity
	for _, entity := range msg.Entities {
		if !containsType(supported, entity.Type) {
			continue
		}
		retained = append(retained, entity)
		tagged := models.TaggedText{
			MessageEntity: entity,
			Text:          sliceUnits(units, entity.Offset, entity.Length),
		}
		// source order is preserved within each group, so the first
		// command of the message stays first
		switch entity.Type {
		case models.EntityBotCommand:
			parsed.Commands = append(parsed.Commands, tagged)
		case models.EntityHashtag:
			parsed.Tags = append(parsed.Tags, tagged)
		}
	}

	var removable []models.MessageEntity
	for _, entity := range retained {
		if !containsType(inline, entity.Type) {
			removable = append(removable, entity)
		}
	}

	parsed.Rest = removeSpans(units, removable)
	return parsed
}

// removeSpans deletes each span from the text, working from the end of the
// string towards the beginning so earlier offsets stay valid, then collapses
// the first run of consecutive spaces left behind by a removal.
func removeSpans(units []uint16, spans []models.MessageEntity) string {
	rest := make([]uint16, len(units))
	copy(rest, units)

	sorted := make([]models.MessageEntity, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	for _, span := range sorted {
		start, end := clampSpan(len(rest), span.Offset, span.Length)
		rest = append(rest[:start], rest[end:]...)
	}

	text := string(utf16.Decode(rest))
	if len(spans) == 0 {
		return text
	}
	// known limitation, kept for compatibility: only the first run of
	// doubled spaces is collapsed
	if loc := spaceRunRE.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + " " + text[loc[1]:]
	}
	return strings.TrimSpace(text)
}

func sliceUnits(units []uint16, offset, length int) string {
	start, end := clampSpan(len(units), offset, length)
	return string(utf16.Decode(units[start:end]))
}

func clampSpan(size, offset, length int) (int, int) {
	start := offset
	if start < 0 {
		start = 0
	}
	if start > size {
		start = size
	}
	end := start + length
	if length < 0 {
		end = start
	}
	if end > size {
		end = size
	}
	return start, end
}

func containsType(types []models.EntityType, t models.EntityType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
