package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"toolrent-console/internal/logger"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient user-facing message
type Notification struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	CreatedAt   time.Time
}

func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

func Failure(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}

type Notifier interface {
	Notify(n Notification)
}

// Feed keeps the most recent notifications until they are drained or dismissed
type Feed struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// DefaultFeedLimit bounds a Feed created with a non-positive limit
const DefaultFeedLimit = 20

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{limit: limit}
}

func (f *Feed) Notify(n Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.limit; over > 0 {
		f.items = append([]Notification(nil), f.items[over:]...)
	}
}

// Drain returns pending notifications oldest first and empties the feed
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items
	f.items = nil
	return items
}

func (f *Feed) Pending() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.items...)
}

// Dismiss removes one notification; unknown ids are ignored
func (f *Feed) Dismiss(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}

// Writer prints notifications for a terminal
type Writer struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

// NewWriter sends default notifications to out and destructive ones to errOut
func NewWriter(out, errOut io.Writer) *Writer {
	return &Writer{out: out, err: errOut}
}

func (w *Writer) Notify(n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	dst, mark := w.out, "✓"
	if n.Variant == VariantDestructive {
		dst, mark = w.err, "✗"
	}
	if n.Description == "" {
		fmt.Fprintf(dst, "%s %s\n", mark, n.Title)
		return
	}
	fmt.Fprintf(dst, "%s %s: %s\n", mark, n.Title, n.Description)
}

// Log records notifications in the structured log
type Log struct{}

func (Log) Notify(n Notification) {
	if n.Variant == VariantDestructive {
		logger.Warn("Notification", "title", n.Title, "description", n.Description)
		return
	}
	logger.Info("Notification", "title", n.Title, "description", n.Description)
}

// Multi fans a notification out to several notifiers
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, target := range m {
		target.Notify(n)
	}
}

// Discard drops everything
type Discard struct{}

func (Discard) Notify(Notification) {}
