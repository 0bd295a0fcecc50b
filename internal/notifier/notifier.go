package notifier

import (
	"context"

	"github.com/aleister1102/pagewatch/internal/common"
)

// Message is a subject/body notification.
type Message struct {
	Subject string
	Body    string
}

// Notifier delivers messages to a configured recipient.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// NopNotifier drops every message. Used when no transport is enabled.
type NopNotifier struct{}

// Send implements Notifier.
func (NopNotifier) Send(context.Context, Message) error { return nil }

// MultiNotifier fans a message out to several notifiers. Every notifier is
// tried even when an earlier one fails.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a MultiNotifier, skipping nil entries.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// Len returns the number of wrapped notifiers.
func (m *MultiNotifier) Len() int {
	return len(m.notifiers)
}

// Send implements Notifier.
func (m *MultiNotifier) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return common.CombineErrors(errs)
}
