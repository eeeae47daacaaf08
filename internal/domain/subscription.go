package domain

import (
	"errors"
	"time"
)

// Subscription is a chat that receives the daily menu notification.
// Existence is the whole state: there is no paused or soft-deleted form.
type Subscription struct {
	ChatID    int64
	CreatedAt time.Time // UTC
}

// ErrChatUnreachable marks a delivery failure that will never recover:
// the chat was deleted or the bot was blocked/kicked. The scheduler treats
// it as an implicit unsubscribe. Transient delivery failures are plain
// errors and must not wrap this sentinel.
var ErrChatUnreachable = errors.New("chat unreachable")
