package event

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

type Event struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func NewEvent(level Level, message string) Event {
	return Event{Level: level, Message: message}
}

// Bus is an explicit publish/subscribe channel for transient user
// notifications. Callers subscribe with a callback and unsubscribe with the
// returned function; there is no package-level registry.
type Bus struct {
	mutex     sync.Mutex
	nextID    int
	listeners map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[int]func(Event))}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Listeners are invoked synchronously in Publish.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	return func() {
		b.mutex.Lock()
		defer b.mutex.Unlock()
		delete(b.listeners, id)
	}
}

func (b *Bus) Publish(ev Event) {
	b.mutex.Lock()
	fns := make([]func(Event), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mutex.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (b *Bus) Success(message string) {
	b.Publish(NewEvent(LevelSuccess, message))
}

func (b *Bus) Error(message string) {
	b.Publish(NewEvent(LevelError, message))
}

func (b *Bus) Warning(message string) {
	b.Publish(NewEvent(LevelWarning, message))
}

func (b *Bus) Info(message string) {
	b.Publish(NewEvent(LevelInfo, message))
}

// Notifier is the subset of Bus the reconciliation sessions need.
type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
func (discard) Warning(string) {}
func (discard) Info(string)    {}

// Discard returns a Notifier that drops every notification.
func Discard() Notifier { return discard{} }
