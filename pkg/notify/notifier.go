package notify

import (
	"context"
	"sync"

	"github.com/AccelByte/extend-beat-party/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Notifier delivers a local notification to the device.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// LogNotifier writes notifications to the log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, title, body string) error {
	logrus.WithFields(logrus.Fields{
		"channel": "buzz",
		"title":   title,
	}).Info(body)
	return nil
}

// Message is a rendered notification.
type Message struct {
	Title string
	Body  string
}

// Dispatcher sends messages without blocking the caller.
type Dispatcher struct {
	notifier Notifier
	wg       sync.WaitGroup
}

func NewDispatcher(n Notifier) *Dispatcher {
	if n == nil {
		n = LogNotifier{}
	}
	return &Dispatcher{notifier: n}
}

// Send delivers each message on its own goroutine. Failures are logged.
func (d *Dispatcher) Send(ctx context.Context, msgs ...Message) {
	for _, msg := range msgs {
		d.wg.Add(1)
		go func(msg Message) {
			defer d.wg.Done()
			if err := d.notifier.Notify(ctx, msg.Title, msg.Body); err != nil {
				metrics.NotificationsTotal.WithLabelValues("failed").Inc()
				logrus.Warnf("failed to send notification %q: %v", msg.Title, err)
				return
			}
			metrics.NotificationsTotal.WithLabelValues("sent").Inc()
		}(msg)
	}
}

// Wait blocks until every sent message has been handed to the notifier.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
