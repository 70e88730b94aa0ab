// Package telegram is the chat transport: it turns incoming messages into
// engine actions and renders engine outcomes back as messages and reply
// keyboards. It holds no quiz state of its own.
package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"quizbot/internal/catalog"
	"quizbot/internal/quiz"
)

const errorReply = "Произошла ошибка. Попробуйте позже."

// LeaderboardService serves top-player reads, normally through the cache.
type LeaderboardService interface {
	Top(ctx context.Context, n int) ([]quiz.LeaderboardEntry, error)
}

// sender is the outbound half of the bot API.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api         *tgbotapi.BotAPI
	send        sender
	engine      *quiz.Engine
	leaderboard LeaderboardService
	catalog     *catalog.Catalog
	subjects    map[string]catalog.Subject
	log         *zap.SugaredLogger
	handlers    sync.WaitGroup
}

func NewBot(token string, engine *quiz.Engine, leaderboard LeaderboardService, cat *catalog.Catalog, log *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram api init: %w", err)
	}

	return &Bot{
		api:         api,
		send:        api,
		engine:      engine,
		leaderboard: leaderboard,
		catalog:     cat,
		subjects:    buildSubjectIndex(cat),
		log:         log,
	}, nil
}

// Run consumes updates until ctx is cancelled. Each update is handled on its
// own goroutine; the engine serializes per user, so rapid double-taps from
// one user still advance their session exactly once per accepted answer.
// In-flight handlers are drained before Run returns, so the stores stay open
// for every message already being processed.
func (b *Bot) Run(ctx context.Context) {
	b.log.Infow("bot authorized", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	b.consume(ctx, b.api.GetUpdatesChan(u))
	b.api.StopReceivingUpdates()
}

func (b *Bot) consume(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer b.handlers.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handlers.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.handlers.Done()
				b.handleMessage(ctx, msg)
			}(update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	displayName := displayNameOf(msg.From)

	if msg.Command() == "start" {
		if err := b.engine.Contact(ctx, userID, displayName); err != nil {
			b.log.Errorw("contact failed", "user_id", userID, "error", err)
			b.reply(msg.Chat.ID, errorReply, nil)
			return
		}
		greeting := fmt.Sprintf("Привет, %s! 👋\nВыбери тест:", displayName)
		b.reply(msg.Chat.ID, greeting, mainMenuKeyboard(b.catalog))
		return
	}

	// Subject buttons and the cancel button are resolved here, by exact
	// label match, before anything reaches the engine.
	if subject, ok := b.subjects[msg.Text]; ok {
		outcome, err := b.engine.StartSubject(ctx, userID, displayName, subject)
		if err != nil {
			b.log.Errorw("start subject failed", "user_id", userID, "subject", subject, "error", err)
			b.reply(msg.Chat.ID, "Ошибка при запуске теста. Попробуйте позже.", nil)
			return
		}
		b.renderOutcome(msg.Chat.ID, outcome)
		return
	}

	if msg.Text == cancelLabel {
		outcome, err := b.engine.Cancel(ctx, userID)
		if err != nil {
			b.log.Errorw("cancel failed", "user_id", userID, "error", err)
			b.reply(msg.Chat.ID, errorReply, nil)
			return
		}
		if outcome.Kind == quiz.OutcomeCancelled {
			b.reply(msg.Chat.ID, "Тест отменён", mainMenuKeyboard(b.catalog))
		}
		return
	}

	outcome, err := b.engine.SubmitAnswer(ctx, userID, msg.Text)
	if err != nil {
		b.log.Errorw("submit answer failed", "user_id", userID, "error", err)
		b.reply(msg.Chat.ID, errorReply, nil)
		return
	}

	if outcome.Kind == quiz.OutcomeIgnored {
		// Menu commands are only live for idle users. Mid-test the same
		// labels are just text that matches no option and stay unanswered,
		// keeping the question keyboard in place.
		if outcome.SessionActive {
			return
		}
		switch msg.Text {
		case topLabel:
			b.sendTop(ctx, msg.Chat.ID)
		case aboutLabel:
			b.reply(msg.Chat.ID, formatAbout(b.engine.CatalogSummary()), mainMenuKeyboard(b.catalog))
		}
		return
	}

	b.renderOutcome(msg.Chat.ID, outcome)
}

func (b *Bot) renderOutcome(chatID int64, outcome quiz.Outcome) {
	if outcome.Feedback != nil {
		b.reply(chatID, formatFeedback(outcome.Feedback), nil)
	}

	switch outcome.Kind {
	case quiz.OutcomeNextQuestion:
		b.reply(chatID, formatQuestion(outcome.Question), questionKeyboard(outcome.Question.Options))
	case quiz.OutcomeTestFinished:
		b.reply(chatID, formatFinished(outcome.Result), mainMenuKeyboard(b.catalog))
	case quiz.OutcomeCancelled:
		b.reply(chatID, "Тест отменён", mainMenuKeyboard(b.catalog))
	}
}

func (b *Bot) sendTop(ctx context.Context, chatID int64) {
	entries, err := b.leaderboard.Top(ctx, 10)
	if err != nil {
		b.log.Errorw("leaderboard read failed", "error", err)
		b.reply(chatID, "Ошибка при получении топа игроков", nil)
		return
	}
	b.reply(chatID, formatTop(entries), mainMenuKeyboard(b.catalog))
}

// reply sends text with an optional reply keyboard. Send failures are logged
// and dropped; the next user action re-drives state from the stores anyway.
func (b *Bot) reply(chatID int64, text string, keyboard any) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	if _, err := b.send.Send(msg); err != nil {
		b.log.Errorw("send message failed", "chat_id", chatID, "error", err)
	}
}

func displayNameOf(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return user.FirstName
}
