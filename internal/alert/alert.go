// Package alert carries user-visible notifications. The storefront showed
// these as a dismissable banner; here every failure or success path emits
// exactly one human-readable message through a Notifier.
package alert

import (
	"sync"

	"go.uber.org/zap"

	"tienda-storefront/internal/logger"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindDanger  Kind = "danger"
	KindWarning Kind = "warning"
)

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Notifier receives user-facing messages. Implementations must be safe for
// concurrent use: checkout fans out per-line work on goroutines.
type Notifier interface {
	Notify(kind Kind, text string)
}

// LogNotifier forwards messages to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(kind Kind, text string) {
	switch kind {
	case KindDanger:
		logger.L().Error("user alert", zap.String("kind", string(kind)), zap.String("text", text))
	case KindWarning:
		logger.L().Warn("user alert", zap.String("kind", string(kind)), zap.String("text", text))
	default:
		logger.L().Info("user alert", zap.String("kind", string(kind)), zap.String("text", text))
	}
}

// Recorder accumulates messages so the HTTP layer can flush them into a
// response, and tests can assert on exactly what the shopper would see.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(kind Kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Kind: kind, Text: text})
}

// Drain returns the accumulated messages and resets the recorder.
func (r *Recorder) Drain() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.messages
	r.messages = nil
	return out
}

// Messages returns a copy of the accumulated messages without resetting.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}
