package bus

// EventBus is a thread-safe, in-process pub/sub bus used to fan drained
// simulation events out to network and logging consumers.
//
// Handlers subscribe by Event.Type(), or by AnyType to receive every event of
// a topic. Delivery is synchronous in the publisher's goroutine and handler
// errors are joined and returned from Publish. Topics are logical groupings;
// the default topic is "". Metrics are only collected while at least one
// observer is registered.
type EventBus interface {
	// Publish delivers the event to every active subscriber of event.Type()
	// and of AnyType in the default topic.
	Publish(event Event) error
	// PublishBatch publishes events in order and joins their errors.
	PublishBatch(events ...Event) error
	// Subscribe registers a handler in the default topic.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the subscription. A nil subscription is ignored.
	Unsubscribe(Subscription) error

	// CreateTopic declares a topic. Repeat declarations are no-ops.
	CreateTopic(name string) error
	SubscribeTopic(topic, eventType string, handler EventHandler) (Subscription, error)
	PublishToTopic(topic string, event Event) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	GetMetrics() EventBusMetrics
	GetTopics() []TopicInfo
}

// AnyType subscribes a handler to every event type of a topic.
const AnyType = "*"

// Event is an immutable message routed by its type.
type Event interface {
	Type() string
}

// EventHandler is invoked once per delivered event.
type EventHandler func(event Event) error

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries and errors.
type EventBusObserver interface {
	OnPublish(topic, eventType string, event Event)
	OnDelivered(topic, eventType string, handlers int, err error, durationMicros int64)
}

// EventBusMetrics is updated only while an observer is registered.
type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
	Topics            uint64
}

type TopicInfo struct {
	Name       string
	EventTypes int
	Subs       int
}
