package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/robertomlsoares/hiomo-tg-bot/internal/domain"
	"github.com/robertomlsoares/hiomo-tg-bot/internal/menu"
	"github.com/robertomlsoares/hiomo-tg-bot/internal/store"
)

// Sender is the minimal interface the scheduler needs to deliver a message.
// telegram.Router implements it. A send error wrapping
// domain.ErrChatUnreachable means the destination is permanently gone.
type Sender interface {
	Send(chatID int64, text string, markdown bool) error
}

// Fetcher retrieves today's menu. menu.Client implements it.
type Fetcher interface {
	Today(ctx context.Context) (menu.Menu, error)
}

// Scheduler keeps one timer goroutine per active subscription and fires
// the daily menu notification at each weekday 10:30 occurrence.
type Scheduler struct {
	repo    store.Repo
	log     *zap.Logger
	sender  Sender
	fetcher Fetcher
	loc     *time.Location
	now     func() time.Time

	mu      sync.Mutex
	entries map[int64]context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a Scheduler. loc is the zone the 10:30 schedule runs in.
func New(repo store.Repo, log *zap.Logger, sender Sender, fetcher Fetcher, loc *time.Location) *Scheduler {
	return &Scheduler{
		repo:    repo,
		log:     log,
		sender:  sender,
		fetcher: fetcher,
		loc:     loc,
		now:     time.Now,
		entries: make(map[int64]context.CancelFunc),
	}
}

// Start rehydrates subscriptions from the store and arms a timer for each.
// Must be called once before handling commands.
func (s *Scheduler) Start(ctx context.Context) error {
	subs, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		s.Arm(sub.ChatID)
	}
	s.log.Info("scheduler armed", zap.Int("subscriptions", len(subs)))
	return nil
}

// Arm registers a timer for the chat. Arming an already-armed chat is a
// no-op, so racing subscribe commands never produce duplicate timers.
func (s *Scheduler) Arm(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[chatID]; ok {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.entries[chatID] = cancel
	s.wg.Add(1)
	go s.run(ctx, chatID)
}

// Disarm cancels the chat's pending timer. If a fire is already in flight
// it completes, but the subscription is not re-armed afterward.
func (s *Scheduler) Disarm(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.entries[chatID]; ok {
		cancel()
		delete(s.entries, chatID)
	}
}

// Stop cancels every timer and waits for in-flight fires to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for chatID, cancel := range s.entries {
		cancel()
		delete(s.entries, chatID)
	}
	s.mu.Unlock()
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

// run is the per-subscription timer loop: sleep until the next weekday
// 10:30, fire, re-arm. Cancellation wins over re-arming.
func (s *Scheduler) run(ctx context.Context, chatID int64) {
	defer s.wg.Done()
	for {
		next := domain.NextNotify(s.now().In(s.loc))
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.fire(ctx, chatID)

		// Disarmed (or removed) while firing: do not re-arm.
		if ctx.Err() != nil {
			return
		}
	}
}

// fire performs one notification attempt: fetch (with one immediate
// retry), format, deliver. A fetch that fails twice sends nothing; the
// subscription stays armed for the next occurrence. A permanent delivery
// failure removes the subscription entirely.
func (s *Scheduler) fire(ctx context.Context, chatID int64) {
	m, err := s.fetcher.Today(ctx)
	if err != nil {
		m, err = s.fetcher.Today(ctx)
	}
	if err != nil {
		s.log.Warn("menu fetch failed twice, skipping occurrence",
			zap.Int64("chatID", chatID), zap.Error(err))
		return
	}

	text := menu.Format(m, menu.Bilingual)
	if err := s.sender.Send(chatID, text, true); err != nil {
		if errors.Is(err, domain.ErrChatUnreachable) {
			s.log.Info("chat unreachable, treating as unsubscribe",
				zap.Int64("chatID", chatID), zap.Error(err))
			s.Disarm(chatID)
			if _, rerr := s.repo.Remove(context.Background(), chatID); rerr != nil {
				s.log.Error("remove unreachable chat failed",
					zap.Int64("chatID", chatID), zap.Error(rerr))
			}
			return
		}
		s.log.Error("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}
