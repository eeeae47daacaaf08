package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/robertomlsoares/hiomo-tg-bot/internal/menu"
)

func (r *Router) sendText(chatID int64, text string) {
	if err := r.Send(chatID, text, false); err != nil {
		r.log.Warn("reply failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) sendMarkdown(chatID int64, text string) {
	if err := r.Send(chatID, text, true); err != nil {
		r.log.Warn("reply failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) handleStart(chatID int64) {
	r.sendText(chatID, startText)
}

func (r *Router) handleHelp(chatID int64) {
	r.sendText(chatID, helpText)
}

func (r *Router) handleOpen(chatID int64) {
	r.sendMarkdown(chatID, openText)
}

func (r *Router) handleFood(ctx context.Context, chatID int64, mode menu.Mode) {
	r.sendMarkdown(chatID, r.menuMessage(ctx, mode))
}

// menuMessage fetches and renders today's menu. Any fetch failure
// collapses to the no-menu fallback; raw errors never reach a chat.
func (r *Router) menuMessage(ctx context.Context, mode menu.Mode) string {
	m, err := r.menus.Today(ctx)
	if err != nil {
		r.log.Warn("menu fetch failed", zap.Error(err))
		return menu.NoMenuText
	}
	return menu.Format(m, mode)
}

func (r *Router) handleSubscribe(ctx context.Context, chatID int64) {
	created, err := r.repo.Add(ctx, chatID)
	if err != nil {
		r.log.Error("subscribe failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, subscribeErrorText)
		return
	}
	if created {
		r.sched.Arm(chatID)
		r.sendText(chatID, subscribedText)
		return
	}
	// Already subscribed: a defined outcome, not a fault. The store's
	// no-op contract guarantees no duplicate timer exists either way.
	r.sendText(chatID, alreadySubscribedText)
}

func (r *Router) handleUnsubscribe(ctx context.Context, chatID int64) {
	// Disarm first so a timer can never fire for a chat the store has
	// already forgotten.
	r.sched.Disarm(chatID)
	removed, err := r.repo.Remove(ctx, chatID)
	if err != nil {
		r.log.Error("unsubscribe failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, unsubscribeErrorText)
		return
	}
	if removed {
		r.sendText(chatID, unsubscribedText)
		return
	}
	r.sendText(chatID, notSubscribedText)
}

// handleInlineQuery answers inline queries with the four static articles:
// the menu in each locale mode plus the opening hours.
func (r *Router) handleInlineQuery(ctx context.Context, q *tgbotapi.InlineQuery) {
	results := []interface{}{
		tgbotapi.NewInlineQueryResultArticleMarkdown(uuid.NewString(), "food", r.menuMessage(ctx, menu.Bilingual)),
		tgbotapi.NewInlineQueryResultArticleMarkdown(uuid.NewString(), "fooden", r.menuMessage(ctx, menu.EnglishOnly)),
		tgbotapi.NewInlineQueryResultArticleMarkdown(uuid.NewString(), "foodfi", r.menuMessage(ctx, menu.FinnishOnly)),
		tgbotapi.NewInlineQueryResultArticleMarkdown(uuid.NewString(), "open", openText),
	}
	if _, err := r.bot.Request(tgbotapi.InlineConfig{
		InlineQueryID: q.ID,
		Results:       results,
	}); err != nil {
		r.log.Warn("inline query answer failed", zap.Error(err))
	}
}
