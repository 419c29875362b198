package forms

import (
	"errors"
	"fmt"
	"sync"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

// NoticeLevel distinguishes success notices from errors.
type NoticeLevel int

const (
	NoticeNone NoticeLevel = iota
	NoticeInfo
	NoticeError
)

// Notice holds the single message shown after the latest attempt. Each Set
// replaces whatever was there before.
type Notice struct {
	mu    sync.Mutex
	level NoticeLevel
	text  string
}

func (n *Notice) Info(text string) { n.set(NoticeInfo, text) }

func (n *Notice) Error(text string) { n.set(NoticeError, text) }

// Fail shows the message that Describe derives from err.
func (n *Notice) Fail(err error, fallback string) { n.set(NoticeError, Describe(err, fallback)) }

func (n *Notice) Clear() { n.set(NoticeNone, "") }

// Get returns the current level and message.
func (n *Notice) Get() (NoticeLevel, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.level, n.text
}

func (n *Notice) set(level NoticeLevel, text string) {
	n.mu.Lock()
	n.level, n.text = level, text
	n.mu.Unlock()
}

// Describe renders err for display:
//
//	network failure         → the fixed "Unable to reach server…" message
//	failure with a message  → "msg (status N)", or just msg without a status
//	form validation error   → the validation messages
//	anything else           → fallback
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if f, ok := domain.AsFailure(err); ok {
		switch {
		case f.Kind == domain.FailureNetwork:
			return domain.NetworkFailure(nil).Message
		case f.Message != "" && f.Status != 0:
			return fmt.Sprintf("%s (status %d)", f.Message, f.Status)
		case f.Message != "":
			return f.Message
		}
		return fallback
	}
	if errors.Is(err, ErrInvalid) {
		return Message(err)
	}
	return fallback
}
