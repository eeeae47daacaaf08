package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/robertomlsoares/hiomo-tg-bot/internal/domain"
	"github.com/robertomlsoares/hiomo-tg-bot/internal/menu"
)

// fakeRepo is an in-memory store.Repo.
type fakeRepo struct {
	mu   sync.Mutex
	subs map[int64]time.Time
}

func newFakeRepo(chatIDs ...int64) *fakeRepo {
	r := &fakeRepo{subs: make(map[int64]time.Time)}
	for _, id := range chatIDs {
		r.subs[id] = time.Now().UTC()
	}
	return r
}

func (r *fakeRepo) Add(_ context.Context, chatID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[chatID]; ok {
		return false, nil
	}
	r.subs[chatID] = time.Now().UTC()
	return true, nil
}

func (r *fakeRepo) Remove(_ context.Context, chatID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[chatID]; !ok {
		return false, nil
	}
	delete(r.subs, chatID)
	return true, nil
}

func (r *fakeRepo) ListActive(_ context.Context) ([]domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domain.Subscription
	for id, created := range r.subs {
		res = append(res, domain.Subscription{ChatID: id, CreatedAt: created})
	}
	return res, nil
}

func (r *fakeRepo) Close() error { return nil }

func (r *fakeRepo) has(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subs[chatID]
	return ok
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *fakeSender) Send(_ int64, text string, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, text)
	return nil
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type fakeFetcher struct {
	mu       sync.Mutex
	calls    int
	failures int // fail this many leading calls
	menu     menu.Menu
}

func (f *fakeFetcher) Today(context.Context) (menu.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, fmt.Errorf("provider timeout %d", f.calls)
	}
	return f.menu, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (s *Scheduler) armedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Scheduler) armed(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[chatID]
	return ok
}

func newTestScheduler(repo *fakeRepo, sender *fakeSender, fetcher *fakeFetcher) *Scheduler {
	return New(repo, zap.NewNop(), sender, fetcher, time.UTC)
}

func TestStartRehydratesFromStore(t *testing.T) {
	repo := newFakeRepo(1, 2, 3)
	s := newTestScheduler(repo, &fakeSender{}, &fakeFetcher{})
	defer s.Stop()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := s.armedCount(); got != 3 {
		t.Fatalf("want 3 armed timers after rehydration, got %d", got)
	}
}

func TestArmIsIdempotent(t *testing.T) {
	s := newTestScheduler(newFakeRepo(), &fakeSender{}, &fakeFetcher{})
	defer s.Stop()

	s.Arm(42)
	s.Arm(42)
	if got := s.armedCount(); got != 1 {
		t.Fatalf("want a single timer for chat 42, got %d", got)
	}
}

func TestConcurrentArmSingleTimer(t *testing.T) {
	s := newTestScheduler(newFakeRepo(), &fakeSender{}, &fakeFetcher{})
	defer s.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Arm(42)
		}()
	}
	wg.Wait()

	if got := s.armedCount(); got != 1 {
		t.Fatalf("want a single timer after racing arms, got %d", got)
	}
}

func TestDisarmCancelsTimer(t *testing.T) {
	s := newTestScheduler(newFakeRepo(), &fakeSender{}, &fakeFetcher{})

	s.Arm(42)
	s.Disarm(42)
	if s.armed(42) {
		t.Fatal("chat 42 still armed after disarm")
	}
	// Stop returns promptly because the timer goroutine saw the cancel.
	done := make(chan struct{})
	go func() { s.Stop(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not drain after disarm")
	}
}

func TestDisarmUnknownChatIsNoOp(t *testing.T) {
	s := newTestScheduler(newFakeRepo(), &fakeSender{}, &fakeFetcher{})
	defer s.Stop()

	s.Disarm(42) // nothing armed; must not panic or block
}

func TestFireRetriesFetchOnce(t *testing.T) {
	sender := &fakeSender{}
	fetcher := &fakeFetcher{
		failures: 1,
		menu:     menu.Menu{{TitleFi: "Kana", TitleEn: "Chicken", Properties: "G"}},
	}
	s := newTestScheduler(newFakeRepo(42), sender, fetcher)

	s.fire(context.Background(), 42)

	if got := fetcher.callCount(); got != 2 {
		t.Fatalf("want one retry after a fetch failure, got %d calls", got)
	}
	if got := sender.count(); got != 1 {
		t.Fatalf("want one delivery after successful retry, got %d", got)
	}
}

func TestFireFetchFailsTwiceSendsNothing(t *testing.T) {
	repo := newFakeRepo(42)
	sender := &fakeSender{}
	fetcher := &fakeFetcher{failures: 2}
	s := newTestScheduler(repo, sender, fetcher)
	defer s.Stop()

	s.Arm(42)
	s.fire(context.Background(), 42)

	if got := sender.count(); got != 0 {
		t.Fatalf("no message may be sent when both fetches fail, got %d", got)
	}
	if !s.armed(42) {
		t.Fatal("subscription must stay armed after a failed occurrence")
	}
	if !repo.has(42) {
		t.Fatal("subscription must stay stored after a failed occurrence")
	}
}

func TestFirePermanentDeliveryFailureRemovesSubscription(t *testing.T) {
	repo := newFakeRepo(7)
	sender := &fakeSender{err: fmt.Errorf("%w: bot was blocked by the user", domain.ErrChatUnreachable)}
	fetcher := &fakeFetcher{menu: menu.Menu{{TitleFi: "Kana", TitleEn: "Chicken", Properties: "G"}}}
	s := newTestScheduler(repo, sender, fetcher)
	defer s.Stop()

	s.Arm(7)
	s.fire(context.Background(), 7)

	if s.armed(7) {
		t.Fatal("chat 7 must be disarmed after a permanent delivery failure")
	}
	if repo.has(7) {
		t.Fatal("chat 7 must be removed from the store after a permanent delivery failure")
	}
}

func TestFireTransientDeliveryFailureKeepsSubscription(t *testing.T) {
	repo := newFakeRepo(42)
	sender := &fakeSender{err: errors.New("too many requests")}
	fetcher := &fakeFetcher{menu: menu.Menu{{TitleFi: "Kana", TitleEn: "Chicken", Properties: "G"}}}
	s := newTestScheduler(repo, sender, fetcher)
	defer s.Stop()

	s.Arm(42)
	s.fire(context.Background(), 42)

	if !s.armed(42) {
		t.Fatal("transient send failure must not disarm the subscription")
	}
	if !repo.has(42) {
		t.Fatal("transient send failure must not remove the subscription")
	}
}

func TestStopDrainsAllTimers(t *testing.T) {
	s := newTestScheduler(newFakeRepo(), &fakeSender{}, &fakeFetcher{})
	for id := int64(1); id <= 5; id++ {
		s.Arm(id)
	}

	done := make(chan struct{})
	go func() { s.Stop(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	if got := s.armedCount(); got != 0 {
		t.Fatalf("want no armed timers after Stop, got %d", got)
	}
}
