package swat

type EventType int

const (
	EventLevelStarted EventType = iota
	EventSpawned
	EventLanded
	EventBite
	EventSmash
	EventLevelCleared
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventLevelStarted:
		return "level-started"
	case EventSpawned:
		return "spawned"
	case EventLanded:
		return "landed"
	case EventBite:
		return "bite"
	case EventSmash:
		return "smash"
	case EventLevelCleared:
		return "level-cleared"
	case EventGameOver:
		return "game-over"
	}
	return "unknown"
}

type Event struct {
	Type       EventType
	MosquitoID int // 0 for game-wide events
	X, Y       float64
	Level      int
	Bites      int
	Score      int
}

type EventHandler func(Event)

type subscription struct {
	typ EventType
	all bool
	fn  EventHandler
}

// EventBus dispatches synchronously on the emitting goroutine, in the order
// handlers subscribed.
type EventBus struct {
	subs []subscription
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.subs = append(eb.subs, subscription{typ: t, fn: fn})
}

// SubscribeAll receives every event.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	eb.subs = append(eb.subs, subscription{all: true, fn: fn})
}

func (eb *EventBus) Emit(e Event) {
	for _, s := range eb.subs {
		if s.all || s.typ == e.Type {
			s.fn(e)
		}
	}
}
