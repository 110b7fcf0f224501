package reconcile

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"storeops.com/console/pkg/core/flagset"
	"storeops.com/console/pkg/core/service"
	"storeops.com/console/pkg/shared/event"
)

// FlagSession reconciles one tenant's flag set: it loads the server
// baseline, tracks local edits against it, sends the total update payload
// and folds the acknowledged record back in as the new baseline. At most one
// save is in flight at any time.
type FlagSession struct {
	stores *service.StoreService
	notify event.Notifier

	mutex    sync.Mutex
	state    State
	storeID  int64
	store    service.Store
	baseline flagset.FlagSet
	edited   flagset.FlagSet
}

func NewFlagSession(stores *service.StoreService, notify event.Notifier, storeID int64) *FlagSession {
	if notify == nil {
		notify = event.Discard()
	}
	return &FlagSession{
		stores:  stores,
		notify:  notify,
		state:   StateIdle,
		storeID: storeID,
	}
}

func (s *FlagSession) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Store returns the store record fetched alongside the flags.
func (s *FlagSession) Store() service.Store {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.store
}

// Flags returns a copy of the edited working state.
func (s *FlagSession) Flags() flagset.FlagSet {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.edited.Clone()
}

// Dirty reports whether the working state differs from the baseline.
func (s *FlagSession) Dirty() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return !flagSetsEqual(s.baseline, s.edited)
}

// Load fetches the store and replaces both baseline and working state,
// discarding any local edits.
func (s *FlagSession) Load(ctx context.Context) error {
	s.mutex.Lock()
	if s.state == StateSaving {
		s.mutex.Unlock()
		return ErrSaveInFlight
	}
	s.state = StateLoading
	s.mutex.Unlock()

	detail, err := s.stores.Get(ctx, s.storeID)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err != nil {
		s.state = StateError
		s.notify.Error(userMessage(err, "Failed to load store details"))
		return err
	}

	s.store = detail.Store
	s.baseline = detail.Flags
	s.edited = detail.Flags.Clone()
	s.state = StateReady
	return nil
}

func (s *FlagSession) SetFlag(name string, enabled bool) error {
	return s.edit(func(fs flagset.FlagSet) (flagset.FlagSet, error) {
		return fs.WithFlag(name, enabled)
	})
}

func (s *FlagSession) SetLimit(name string, value *int64) error {
	return s.edit(func(fs flagset.FlagSet) (flagset.FlagSet, error) {
		return fs.WithLimit(name, value)
	})
}

func (s *FlagSession) SetBillingStatus(status flagset.BillingStatus) error {
	return s.edit(func(fs flagset.FlagSet) (flagset.FlagSet, error) {
		return fs.WithBillingStatus(status), nil
	})
}

func (s *FlagSession) SetBillingPaidUntil(date string) error {
	return s.edit(func(fs flagset.FlagSet) (flagset.FlagSet, error) {
		return fs.WithBillingPaidUntil(date), nil
	})
}

func (s *FlagSession) SetLastBillingDate(date string) error {
	return s.edit(func(fs flagset.FlagSet) (flagset.FlagSet, error) {
		return fs.WithLastBillingDate(date), nil
	})
}

func (s *FlagSession) edit(apply func(flagset.FlagSet) (flagset.FlagSet, error)) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	switch s.state {
	case StateSaving:
		return ErrSaveInFlight
	case StateReady:
	default:
		return ErrNotReady
	}

	edited, err := apply(s.edited)
	if err != nil {
		return err
	}
	s.edited = edited
	return nil
}

// Save sends the full edited flag set. On success the acknowledged record
// (or a re-fetch, when the server echoes nothing) becomes the new baseline;
// on failure the edits stay in place so the operator can retry.
func (s *FlagSession) Save(ctx context.Context) error {
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
	payload := s.edited.UpdatePayload()
	s.mutex.Unlock()

	echoed, err := s.stores.UpdateFeatures(ctx, s.storeID, payload)
	if err != nil {
		s.mutex.Lock()
		s.state = StateReady
		s.mutex.Unlock()
		s.notify.Error(userMessage(err, "Failed to update features"))
		return err
	}

	if echoed == nil {
		detail, ferr := s.stores.Get(ctx, s.storeID)
		if ferr != nil {
			// The save itself went through; keep the edited state as
			// the best-known baseline.
			log.Warn().Err(ferr).Int64("store_id", s.storeID).
				Msg("Saved features but failed to refresh store record")
			s.mutex.Lock()
			s.baseline = s.edited.Clone()
			s.state = StateReady
			s.mutex.Unlock()
			s.notify.Success("Features updated successfully!")
			return nil
		}
		fs := detail.Flags
		echoed = &fs
	}

	s.mutex.Lock()
	s.baseline = echoed.Clone()
	s.edited = echoed.Clone()
	s.state = StateReady
	s.mutex.Unlock()
	s.notify.Success("Features updated successfully!")
	return nil
}

func flagSetsEqual(a, b flagset.FlagSet) bool {
	if a.BillingStatus != b.BillingStatus {
		return false
	}
	if !stringPtrEqual(a.BillingPaidUntil, b.BillingPaidUntil) ||
		!stringPtrEqual(a.LastBillingDate, b.LastBillingDate) {
		return false
	}
	for _, name := range flagset.FlagNames {
		if a.Flags[name] != b.Flags[name] {
			return false
		}
	}
	for _, name := range flagset.LimitNames {
		if !int64PtrEqual(a.Limits[name], b.Limits[name]) {
			return false
		}
	}
	return true
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
