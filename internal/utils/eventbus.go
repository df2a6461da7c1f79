package utils

import "sync"

// Change notification event names.
const (
	EventPostsChanged    = "posts_changed"
	EventSessionsChanged = "sessions_changed"
)

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Handler func(event Event)

// EventBus decouples the services that mutate board state from the
// consumers that react to it: in-process subscribers (cache
// invalidation) run synchronously, and the channel feeds the websocket
// hub. Publish never blocks; if the hub falls behind, events are
// dropped rather than stalling a request.
type EventBus struct {
	subscribers map[string][]Handler
	events      chan Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]Handler),
		events:      make(chan Event, 100),
	}
}

func (eb *EventBus) Publish(event string, data interface{}) {
	e := Event{Event: event, Data: data}

	eb.mu.RLock()
	handlers := eb.subscribers[event]
	eb.mu.RUnlock()
	for _, h := range handlers {
		h(e)
	}

	select {
	case eb.events <- e:
	default:
	}
}

func (eb *EventBus) Subscribe(event string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[event] = append(eb.subscribers[event], handler)
}

func (eb *EventBus) SubscribeCh() <-chan Event {
	return eb.events
}
