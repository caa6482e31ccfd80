package usecases

import (
	"context"
	"regexp"
	"strings"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/adrienjoly/telegram-scribe-bot/internal/services/trello"
	"golang.org/x/sync/errgroup"
)

const trelloNamespace = "trello"

var trelloKeys = []string{"apikey", "usertoken", "boardid"}

type trelloOptions struct {
	APIKey    string
	UserToken string
	BoardID   string
}

func trelloOptionsFrom(opts options.Values) (trelloOptions, error) {
	return options.Require(opts, trelloNamespace, func(ns map[string]string) trelloOptions {
		return trelloOptions{
			APIKey:    ns["apikey"],
			UserToken: ns["usertoken"],
			BoardID:   ns["boardid"],
		}
	}, trelloKeys...)
}

// cardBindingRE matches the marker users embed in a card's description to
// bind it to one or more tags, e.g.
// telegram-scribe-bot:addCommentsFromTaggedNotes(health,sport)
var cardBindingRE = regexp.MustCompile(`telegram-scribe-bot:addCommentsFromTaggedNotes\(([^)]+)\)`)

func cleanTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(tag, "#", "")))
}

func extractTagsFromBinding(card trello.Card) []string {
	match := cardBindingRE.FindStringSubmatch(card.Desc)
	if match == nil {
		return nil
	}
	parts := strings.Split(match[1], ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, cleanTag(part))
	}
	return tags
}

type cardWithTags struct {
	card trello.Card
	tags []string
}

// listValidTags renders the distinct bound tags of a board, #-prefixed, in
// first-seen order, for guidance messages.
func listValidTags(cards []cardWithTags) string {
	seen := make(map[string]bool)
	var ordered []string
	for _, c := range cards {
		for _, tag := range c.tags {
			if !seen[tag] {
				seen[tag] = true
				ordered = append(ordered, "#"+tag)
			}
		}
	}
	return strings.Join(ordered, ", ")
}

// cardsBoundToTags selects the cards whose bound tags intersect the
// requested ones. Matching is case- and #-insensitive.
func cardsBoundToTags(cards []cardWithTags, requested []string) []trello.Card {
	wanted := make(map[string]bool, len(requested))
	for _, tag := range requested {
		wanted[cleanTag(tag)] = true
	}
	var matched []trello.Card
	for _, c := range cards {
		for _, tag := range c.tags {
			if wanted[tag] {
				matched = append(matched, c.card)
				break
			}
		}
	}
	return matched
}

type boardState struct {
	client    *trello.Client
	options   trelloOptions
	cards     []cardWithTags
	validTags string
}

func (r *Registry) trelloClient(o trelloOptions) *trello.Client {
	var clientOpts []trello.Option
	if r.trelloBaseURL != "" {
		clientOpts = append(clientOpts, trello.WithBaseURL(r.trelloBaseURL))
	}
	return trello.New(o.APIKey, o.UserToken, clientOpts...)
}

// fetchCardsWithTags loads the whole board and derives each card's bound tag
// set. A board where no card carries any binding is unusable: the user is
// asked to bind tags first.
func (r *Registry) fetchCardsWithTags(ctx context.Context, opts options.Values) (*boardState, error) {
	o, err := trelloOptionsFrom(opts)
	if err != nil {
		return nil, err
	}
	client := r.trelloClient(o)
	cards, err := client.Cards(ctx, o.BoardID)
	if err != nil {
		return nil, err
	}
	withTags := make([]cardWithTags, len(cards))
	for i, card := range cards {
		withTags[i] = cardWithTags{card: card, tags: extractTagsFromBinding(card)}
	}
	validTags := listValidTags(withTags)
	if validTags == "" {
		return nil, userError("🤔  Please bind tags to your cards. How: https://github.com/adrienjoly/telegram-scribe-bot#2-bind-tags-to-trello-cards")
	}
	return &boardState{client: client, options: o, cards: withTags, validTags: validTags}, nil
}

// fetchTargetedCards narrows the board to the cards matching the message's
// hashtags, failing with guidance when the message has no hashtag or none
// matches.
func (r *Registry) fetchTargetedCards(ctx context.Context, entities models.ParsedEntities, opts options.Values) (*boardState, []trello.Card, error) {
	state, err := r.fetchCardsWithTags(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	noteTags := make([]string, len(entities.Tags))
	for i, tag := range entities.Tags {
		noteTags[i] = tag.Text
	}
	if len(noteTags) == 0 {
		return nil, nil, userError("🤔  Please specify at least one hashtag: " + state.validTags)
	}
	targeted := cardsBoundToTags(state.cards, noteTags)
	if len(targeted) == 0 {
		return nil, nil, userError("🤔  No cards match. Please pick another tag: " + state.validTags)
	}
	return state, targeted, nil
}

// addAsTrelloComment posts the message's free text as a comment on every
// matched card, fanning the writes out concurrently.
func (r *Registry) addAsTrelloComment(ctx context.Context, entities models.ParsedEntities, opts options.Values) (string, error) {
	state, targeted, err := r.fetchTargetedCards(ctx, entities, opts)
	if err != nil {
		return "", err
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, card := range targeted {
		g.Go(func() error {
			return state.client.AddComment(gctx, card.ID, entities.Rest)
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	names := make([]string, len(targeted))
	for i, card := range targeted {
		names[i] = card.Name
	}
	return "✅  Sent to Trello cards: " + strings.Join(names, ", "), nil
}

// addAsTrelloTask inserts the free text at the top of the unique checklist
// of each matched card. Cards without exactly one checklist are skipped; the
// batch fails only when no card was actionable.
func (r *Registry) addAsTrelloTask(ctx context.Context, entities models.ParsedEntities, opts options.Values) (string, error) {
	state, targeted, err := r.fetchTargetedCards(ctx, entities, opts)
	if err != nil {
		return "", err
	}
	taskName := entities.Rest
	// results are indexed by fetch order so the summary stays deterministic
	populated := make([]string, len(targeted))
	g, gctx := errgroup.WithContext(ctx)
	for i, card := range targeted {
		g.Go(func() error {
			checklistIDs, err := state.client.ChecklistIDs(gctx, card.ID)
			if err != nil {
				return err
			}
			if len(checklistIDs) != 1 {
				return nil // no unique checklist to act on, skip this card
			}
			checklist, err := state.client.Checklist(gctx, checklistIDs[0])
			if err != nil {
				return err
			}
			if err := state.client.AddChecklistItem(gctx, checklist.ID, taskName, "top"); err != nil {
				return err
			}
			populated[i] = card.Name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	var names []string
	for _, name := range populated {
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", userError("🤔  No checklists were found for these tags. Please retry without another tag.")
	}
	return "✅  Added task at the top of these Trello cards' unique checklists: " + strings.Join(names, ", "), nil
}

// getNextTrelloTasks lists the next incomplete checklist item of every
// tagged card, one "card: item" line per card, in board order.
func (r *Registry) getNextTrelloTasks(ctx context.Context, _ models.ParsedEntities, opts options.Values) (string, error) {
	state, err := r.fetchCardsWithTags(ctx, opts)
	if err != nil {
		return "", err
	}
	var tagged []cardWithTags
	for _, c := range state.cards {
		if len(c.tags) > 0 {
			tagged = append(tagged, c)
		}
	}
	lines := make([]string, len(tagged))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range tagged {
		g.Go(func() error {
			checklistIDs, err := state.client.ChecklistIDs(gctx, c.card.ID)
			if err != nil {
				return err
			}
			if len(checklistIDs) == 0 {
				return nil
			}
			checklist, err := state.client.Checklist(gctx, checklistIDs[0])
			if err != nil {
				return err
			}
			if next := checklist.NextTodoItem(); next != nil {
				lines[i] = c.card.Name + ": " + next.Name
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	var out []string
	for _, line := range lines {
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}

// getOrAddTrelloTasks reads next steps when the message carries no free
// text, and otherwise adds the text as a task.
func (r *Registry) getOrAddTrelloTasks(ctx context.Context, entities models.ParsedEntities, opts options.Values) (string, error) {
	if entities.Rest == "" {
		return r.getNextTrelloTasks(ctx, entities, opts)
	}
	return r.addAsTrelloTask(ctx, entities, opts)
}
