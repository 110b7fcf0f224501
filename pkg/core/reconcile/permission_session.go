package reconcile

import (
	"context"
	"sync"

	"storeops.com/console/pkg/core/permission"
	"storeops.com/console/pkg/core/service"
	"storeops.com/console/pkg/shared/event"
)

// PermissionSession reconciles one store's permission catalog. The update is
// a full replace, so the session always sends every entry. The flag set and
// the permission catalog key off the same store but save independently, each
// with its own in-flight guard.
type PermissionSession struct {
	permissions *service.PermissionService
	notify      event.Notifier

	mutex    sync.Mutex
	state    State
	storeID  int64
	baseline []permission.Entry
	edited   []permission.Entry
}

func NewPermissionSession(permissions *service.PermissionService, notify event.Notifier, storeID int64) *PermissionSession {
	if notify == nil {
		notify = event.Discard()
	}
	return &PermissionSession{
		permissions: permissions,
		notify:      notify,
		state:       StateIdle,
		storeID:     storeID,
	}
}

func (s *PermissionSession) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Entries returns a copy of the edited catalog.
func (s *PermissionSession) Entries() []permission.Entry {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]permission.Entry, len(s.edited))
	copy(out, s.edited)
	return out
}

// Empty reports whether the catalog loaded successfully but has no entries,
// which is its own user-visible condition, not a fetch failure.
func (s *PermissionSession) Empty() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state == StateReady && len(s.edited) == 0
}

func (s *PermissionSession) Groups() []permission.Group {
	return permission.GroupByFeature(s.Entries())
}

func (s *PermissionSession) Load(ctx context.Context) error {
	s.mutex.Lock()
	if s.state == StateSaving {
		s.mutex.Unlock()
		return ErrSaveInFlight
	}
	s.state = StateLoading
	s.mutex.Unlock()

	entries, err := s.permissions.StoreCatalog(ctx, s.storeID)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err != nil {
		s.state = StateError
		s.notify.Error(userMessage(err, "Failed to load permissions"))
		return err
	}

	s.baseline = entries
	s.edited = make([]permission.Entry, len(entries))
	copy(s.edited, entries)
	s.state = StateReady

	if len(entries) == 0 {
		s.notify.Warning("No permissions configured for this store")
	}
	return nil
}

// Toggle flips one entry in the working state.
func (s *PermissionSession) Toggle(permissionID int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	switch s.state {
	case StateSaving:
		return ErrSaveInFlight
	case StateReady:
	default:
		return ErrNotReady
	}
	s.edited = permission.Toggle(s.edited, permissionID)
	return nil
}

// Save replaces the store's permission state with the full edited catalog.
// Edits survive a failed save; a successful save adopts the echoed catalog
// as the new baseline.
func (s *PermissionSession) Save(ctx context.Context) error {
	s.mutex.Lock()
	if s.state == StateSaving {
		s.mutex.Unlock()
		return ErrSaveInFlight
	}
	if s.state != StateReady {
		s.mutex.Unlock()
		return ErrNotReady
	}
	s.state = StateSaving
	req := permission.ToUpdateRequest(s.edited)
	s.mutex.Unlock()

	echoed, err := s.permissions.UpdateStore(ctx, s.storeID, req)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err != nil {
		s.state = StateReady
		s.notify.Error(userMessage(err, "Failed to update permissions"))
		return err
	}

	if len(echoed) == 0 {
		// Server acknowledged without echoing; the edits are the state.
		echoed = s.edited
	}
	s.baseline = echoed
	s.edited = make([]permission.Entry, len(echoed))
	copy(s.edited, echoed)
	s.state = StateReady
	s.notify.Success("Permissions updated successfully!")
	return nil
}
