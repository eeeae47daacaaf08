package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/robertomlsoares/hiomo-tg-bot/internal/domain"
	"github.com/robertomlsoares/hiomo-tg-bot/internal/menu"
	"github.com/robertomlsoares/hiomo-tg-bot/internal/store"
)

// Subscriptions is what the router needs from the scheduler: arm on
// subscribe, disarm on unsubscribe. scheduler.Scheduler implements it.
type Subscriptions interface {
	Arm(chatID int64)
	Disarm(chatID int64)
}

// Fetcher retrieves today's menu for on-demand /food queries.
type Fetcher interface {
	Today(ctx context.Context) (menu.Menu, error)
}

// Router wires Telegram updates to handlers.
type Router struct {
	bot   *tgbotapi.BotAPI
	log   *zap.Logger
	repo  store.Repo
	menus Fetcher
	sched Subscriptions
}

// NewRouter creates a new Telegram router. AttachScheduler must be called
// before updates are handled.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, menus Fetcher) *Router {
	return &Router{
		bot:   bot,
		log:   log,
		repo:  repo,
		menus: menus,
	}
}

// AttachScheduler resolves the router/scheduler construction cycle: the
// scheduler needs the router as its Sender, the router needs the
// scheduler for subscribe/unsubscribe.
func (r *Router) AttachScheduler(s Subscriptions) {
	r.sched = s
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID

		switch msg.Command() {
		case "start":
			r.handleStart(chatID)
		case "help":
			r.handleHelp(chatID)
		case "food":
			r.handleFood(ctx, chatID, menu.Bilingual)
		case "fooden":
			r.handleFood(ctx, chatID, menu.EnglishOnly)
		case "foodfi":
			r.handleFood(ctx, chatID, menu.FinnishOnly)
		case "open":
			r.handleOpen(chatID)
		case "subscribe":
			r.handleSubscribe(ctx, chatID)
		case "unsubscribe":
			r.handleUnsubscribe(ctx, chatID)
		default:
			// Anything unrecognized gets the help text, never silence.
			r.handleHelp(chatID)
		}
		return
	}

	if upd.InlineQuery != nil {
		r.handleInlineQuery(ctx, upd.InlineQuery)
	}
}

// Send delivers a message to the given chat, optionally with Markdown
// formatting. This makes Router satisfy scheduler.Sender. Errors from
// destinations that are permanently gone wrap domain.ErrChatUnreachable.
func (r *Router) Send(chatID int64, text string, markdown bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := r.bot.Send(msg); err != nil {
		if isChatGone(err) {
			return fmt.Errorf("%w: %v", domain.ErrChatUnreachable, err)
		}
		return err
	}
	return nil
}

// isChatGone matches the Telegram API errors that signal the destination
// will never accept messages again.
func isChatGone(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "bot was blocked") ||
		strings.Contains(s, "bot was kicked") ||
		strings.Contains(s, "user is deactivated") ||
		strings.Contains(s, "chat not found")
}
