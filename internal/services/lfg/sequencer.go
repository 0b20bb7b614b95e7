package lfg

import "sync"

// sequencer serializes work per session ID while letting different sessions
// proceed in parallel. Entries are dropped once nobody holds or waits on them.
type sequencer struct {
	mu    sync.Mutex
	locks map[string]*sequenceLock
}

type sequenceLock struct {
	mu   sync.Mutex
	refs int
}

func newSequencer() *sequencer {
	return &sequencer{
		locks: make(map[string]*sequenceLock),
	}
}

// Lock blocks until the caller holds id and returns the matching unlock
func (s *sequencer) Lock(id string) func() {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sequenceLock{}
		s.locks[id] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			lock.mu.Unlock()

			s.mu.Lock()
			lock.refs--
			if lock.refs == 0 {
				delete(s.locks, id)
			}
			s.mu.Unlock()
		})
	}
}

// Len returns the number of IDs currently held or waited on
func (s *sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
