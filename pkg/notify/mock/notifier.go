package mock

import (
	"context"
	"sync"
)

// Notification is a delivered title and body.
type Notification struct {
	Title string
	Body  string
}

// Notifier records notifications.
type Notifier struct {
	mu   sync.Mutex
	sent []Notification
	Err  error
}

func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.sent = append(n.sent, Notification{Title: title, Body: body})
	return nil
}

// Sent returns a copy of the recorded notifications.
func (n *Notifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}
