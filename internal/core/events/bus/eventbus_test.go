package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent string

func (e testEvent) Type() string { return string(e) }

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_, _ string, _ Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_, _ string, handlers int, err error, _ int64) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got []Event
	_, err := b.Subscribe("score", func(e Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(testEvent("score")))
	require.NoError(t, b.Publish(testEvent("collision")))
	assert.Equal(t, []Event{testEvent("score")}, got)
}

func TestAnyTypeReceivesEverythingInOrder(t *testing.T) {
	b := New()
	var got []string
	_, err := b.Subscribe(AnyType, func(e Event) error {
		got = append(got, e.Type())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.PublishBatch(testEvent("a"), testEvent("b"), testEvent("c")))
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	_, _ = b.Subscribe("x", func(Event) error { return errA })
	_, _ = b.Subscribe(AnyType, func(Event) error { return errB })

	err := b.PublishBatch(testEvent("x"), testEvent("y"))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	count := 0
	sub, err := b.Subscribe("x", func(Event) error { count++; return nil })
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID())
	assert.Equal(t, "x", sub.EventType())

	_ = b.Publish(testEvent("x"))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	assert.False(t, sub.IsActive())
	_ = b.Publish(testEvent("x"))

	assert.Equal(t, 1, count)
	assert.NoError(t, b.Unsubscribe(nil))
}

func TestTopicsIsolation(t *testing.T) {
	b := New()
	require.NoError(t, b.CreateTopic("t1"))
	require.NoError(t, b.CreateTopic("t2"))

	count1, count2 := 0, 0
	_, _ = b.SubscribeTopic("t1", "ev", func(Event) error { count1++; return nil })
	_, _ = b.SubscribeTopic("t2", "ev", func(Event) error { count2++; return nil })
	_ = b.PublishToTopic("t1", testEvent("ev"))

	assert.Equal(t, 1, count1)
	assert.Equal(t, 0, count2)

	names := map[string]int{}
	for _, ti := range b.GetTopics() {
		names[ti.Name] = ti.Subs
	}
	assert.Equal(t, map[string]int{"": 0, "t1": 1, "t2": 1}, names)
}

func TestObserverMetricsOptional(t *testing.T) {
	b := New()
	_, _ = b.Subscribe("e", func(Event) error { return nil })
	_ = b.Publish(testEvent("e"))
	assert.Equal(t, EventBusMetrics{}, b.GetMetrics(), "no metrics without observers")

	obs := &testObserver{}
	b.AddObserver(obs)
	_ = b.Publish(testEvent("e"))

	m := b.GetMetrics()
	assert.Equal(t, uint64(1), m.Published)
	assert.Equal(t, uint64(1), m.DeliveredHandlers)
	assert.Equal(t, uint64(1), m.SubscribersActive)
	assert.Equal(t, 1, obs.publishCount)
	assert.Equal(t, 1, obs.deliveredCount)
	assert.NoError(t, obs.lastErr)

	b.RemoveObserver(obs)
	_ = b.Publish(testEvent("e"))
	assert.Equal(t, 1, obs.publishCount)
}

func TestNilHandlerRejected(t *testing.T) {
	_, err := New().Subscribe("x", nil)
	assert.Error(t, err)
}
