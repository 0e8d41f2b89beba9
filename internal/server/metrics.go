package server

import (
	"github.com/zeusync/volley/internal/core/events/bus"
	"github.com/zeusync/volley/internal/core/observability/log"
)

// busMetrics observes event delivery while the simulation loop runs. Its
// presence also turns on the bus counters served on /healthz.
type busMetrics struct {
	logger log.Log
}

func (m *busMetrics) OnPublish(_, _ string, _ bus.Event) {}

func (m *busMetrics) OnDelivered(topic, eventType string, handlers int, err error, durationMicros int64) {
	if err == nil {
		return
	}
	m.logger.Warn("Event handler failed",
		log.String("topic", topic),
		log.String("event_type", eventType),
		log.Int("handlers", handlers),
		log.Int64("duration_us", durationMicros),
		log.Error(err))
}
