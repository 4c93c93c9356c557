// Package notify carries transient user-visible notices, the Go rendition
// of the storefront's toast messages. Notices are advisory: emitting one
// never fails the operation that triggered it.
package notify

import (
	"sync"

	"github.com/nance-store/storefront/pkg/logger"
)

// Notifier receives transient notices.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Log forwards notices to the application log.
type Log struct {
	log *logger.Logger
}

var _ Notifier = (*Log)(nil)

// NewLog creates a log-backed notifier.
func NewLog(log *logger.Logger) *Log {
	if log == nil {
		log = logger.NewDefault("notify")
	}
	return &Log{log: log}
}

func (n *Log) Success(msg string) {
	n.log.WithField("notice", "success").Info(msg)
}

func (n *Log) Error(msg string) {
	n.log.WithField("notice", "error").Warn(msg)
}

// Notice is a captured notification.
type Notice struct {
	Level   string
	Message string
}

// Recorder captures notices for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

var _ Notifier = (*Recorder)(nil)

func (r *Recorder) Success(msg string) { r.record("success", msg) }
func (r *Recorder) Error(msg string)   { r.record("error", msg) }

func (r *Recorder) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Level: level, Message: msg})
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Reset clears the recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}

// Nop discards all notices.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
