// Package events delivers ledger notifications to external observers.
package events

import (
	"context"
	"errors"
	"strings"

	"fundflow/internal/domain"
)

// Fanout publishes each notification to every sink in order and joins their
// errors.
type Fanout []domain.EventSink

func (f Fanout) Publish(ctx context.Context, topic string, payload []byte) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Publish(ctx, topic, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func qualify(prefix, sep, topic string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), sep)
	if prefix == "" {
		return topic
	}
	return prefix + sep + topic
}

var _ domain.EventSink = Fanout(nil)
