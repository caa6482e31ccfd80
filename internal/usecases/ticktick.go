package usecases

import (
	"context"
	"time"

	"github.com/adrienjoly/telegram-scribe-bot/internal/models"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/adrienjoly/telegram-scribe-bot/internal/services/ticktick"
)

const ticktickNamespace = "ticktick"

var ticktickKeys = []string{"email", "password"}

type ticktickOptions struct {
	Email    string
	Password string
}

func ticktickOptionsFrom(opts options.Values) (ticktickOptions, error) {
	return options.Require(opts, ticktickNamespace, func(ns map[string]string) ticktickOptions {
		return ticktickOptions{Email: ns["email"], Password: ns["password"]}
	}, ticktickKeys...)
}

func (r *Registry) ticktickClient(o ticktickOptions) *ticktick.Client {
	var clientOpts []ticktick.Option
	if r.ticktickBaseURL != "" {
		clientOpts = append(clientOpts, ticktick.WithBaseURL(r.ticktickBaseURL))
	}
	return ticktick.New(o.Email, o.Password, clientOpts...)
}

func taskDescription(entities models.ParsedEntities) string {
	return "Sent from telegram-scribe-bot, on " + entities.Date.UTC().Format(time.RFC1123)
}

// addTaskToTicktick files the message's free text in the TickTick inbox.
func (r *Registry) addTaskToTicktick(ctx context.Context, entities models.ParsedEntities, opts options.Values) (string, error) {
	o, err := ticktickOptionsFrom(opts)
	if err != nil {
		return "", err
	}
	client := r.ticktickClient(o)
	if err := client.Connect(ctx); err != nil {
		return "", err
	}
	if err := client.AddTask(ctx, entities.Rest, taskDescription(entities), nil, false); err != nil {
		return "", err
	}
	return "✅  Sent to TickTick's inbox", nil
}

// addTodayTaskToTicktick files the free text as an all-day task dated today.
func (r *Registry) addTodayTaskToTicktick(ctx context.Context, entities models.ParsedEntities, opts options.Values) (string, error) {
	o, err := ticktickOptionsFrom(opts)
	if err != nil {
		return "", err
	}
	client := r.ticktickClient(o)
	if err := client.Connect(ctx); err != nil {
		return "", err
	}
	today := r.now()
	if err := client.AddTask(ctx, entities.Rest, taskDescription(entities), &today, true); err != nil {
		return "", err
	}
	return "✅  Sent to TickTick's \"Today\" tasks", nil
}
