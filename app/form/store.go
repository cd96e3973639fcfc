package form

import "sync"

// Snapshot is an immutable view of a Store at one point in time, with every
// derived value computed fresh from Data.
type Snapshot struct {
	Data      Data    `json:"data"`
	Touched   Touched `json:"touched"`
	Errors    Errors  `json:"errors"`
	Visible   Errors  `json:"visible"`
	CanSubmit bool    `json:"canSubmit"`
	// Version increases by one with every accepted change.
	Version uint64 `json:"version"`
}

func snapshot(d Data, t Touched, version uint64) Snapshot {
	errs := Validate(d)
	return Snapshot{
		Version:   version,
		Data:      d,
		Touched:   t.Clone(),
		Errors:    errs,
		Visible:   Visible(errs, t),
		CanSubmit: CanSubmit(d),
	}
}

// Observer is called with the new Snapshot after every state replacement.
type Observer func(Snapshot)

// Store owns the current form state of one visitor. Changes replace the
// state wholesale and then notify observers, which is where re-rendering
// hooks in.
//
// Observers see snapshots in Version order: notify is taken before mu is
// released, so a later Dispatch cannot overtake an earlier one's delivery.
// Observers must not call Dispatch on the same Store.
type Store struct {
	mu        sync.Mutex
	notify    sync.Mutex
	data      Data
	touched   Touched
	version   uint64
	observers map[int]Observer
	nextID    int
}

// NewStore creates a Store holding initial and touched.
//
//	store := form.NewStore(form.Defaults(), form.InitialTouched())
func NewStore(initial Data, touched Touched) *Store {
	return &Store{
		data:      initial,
		touched:   touched.Clone(),
		observers: make(map[int]Observer),
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.data, s.touched, s.version)
}

// Dispatch applies c and notifies every observer with the resulting state.
// Observers are not called when the change is rejected.
func (s *Store) Dispatch(c Change) (Snapshot, error) {
	s.mu.Lock()
	data, touched, err := Apply(s.data, s.touched, c)
	if err != nil {
		snap := snapshot(s.data, s.touched, s.version)
		s.mu.Unlock()
		return snap, err
	}
	s.version++
	s.data, s.touched = data, touched
	snap := snapshot(data, touched, s.version)
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.notify.Lock()
	s.mu.Unlock()
	defer s.notify.Unlock()

	for _, o := range observers {
		o(snap)
	}
	return snap, nil
}

// Subscribe registers o and returns a function that removes it.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// Submit runs the submit handler against the current state. It never
// changes the state.
func (s *Store) Submit() Outcome {
	return Submit(s.Snapshot().Data)
}
