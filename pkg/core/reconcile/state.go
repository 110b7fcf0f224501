package reconcile

import (
	"errors"

	"storeops.com/console/pkg/shared/client"
)

// State is the lifecycle position of one aggregate session. Transitions:
// Idle -> Loading -> Ready -> Saving -> Ready on both save outcomes (edits
// are retained when the save fails), and Loading -> Error when the initial
// fetch fails and there is nothing to edit.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateSaving  State = "saving"
	StateError   State = "error"
)

var (
	// ErrSaveInFlight rejects a save (or edit) while another save for the
	// same aggregate is still outstanding. The request is refused, never
	// queued.
	ErrSaveInFlight = errors.New("a save is already in flight")

	// ErrNotReady rejects operations that need loaded, editable state.
	ErrNotReady = errors.New("no editable state loaded")
)

// userMessage extracts the text to surface for a failed operation: the
// server's message verbatim when there is one, the fallback otherwise.
func userMessage(err error, fallback string) string {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
