package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusSubscribePublish(t *testing.T) {
	bus := NewBus()

	var received []Event
	unsubscribe := bus.Subscribe(func(ev Event) {
		received = append(received, ev)
	})

	bus.Success("saved")
	bus.Error("billing locked")

	assert.Len(t, received, 2)
	assert.Equal(t, Event{Level: LevelSuccess, Message: "saved"}, received[0])
	assert.Equal(t, Event{Level: LevelError, Message: "billing locked"}, received[1])

	unsubscribe()
	bus.Info("after unsubscribe")
	assert.Len(t, received, 2, "unsubscribed listener should not be invoked")
}

func TestBusMultipleListeners(t *testing.T) {
	bus := NewBus()

	first := 0
	second := 0
	bus.Subscribe(func(Event) { first++ })
	stop := bus.Subscribe(func(Event) { second++ })

	bus.Warning("heads up")
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	stop()
	bus.Warning("again")
	assert.Equal(t, 2, first)
	assert.Equal(t, 1, second)
}

func TestDiscardNotifier(t *testing.T) {
	n := Discard()
	// Must be safe to call without panicking.
	n.Success("x")
	n.Error("x")
	n.Warning("x")
	n.Info("x")
}
