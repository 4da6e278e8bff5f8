package signal

import (
	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
)

// SinkFunc adapts a plain function to the event sink interface.
type SinkFunc func(domain.LiveEvent)

func (f SinkFunc) Publish(event domain.LiveEvent) {
	f(event)
}

// MultiSink fans one event out to several sinks, in order. Used to feed the
// spectator hub and the metrics collector from a single publish.
type MultiSink struct {
	sinks []ports.LiveEventSink
}

func NewMultiSink(sinks ...ports.LiveEventSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Publish(event domain.LiveEvent) {
	for _, sink := range m.sinks {
		sink.Publish(event)
	}
}

var (
	_ ports.LiveEventSink = (*MultiSink)(nil)
	_ ports.LiveEventSink = (SinkFunc)(nil)
)
