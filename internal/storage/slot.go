package storage

import (
	"sync"
	"time"
)

// Slot holds the single stored value shared by every request
type Slot struct {
	mutex sync.RWMutex
	value *string
	set   bool

	writes    uint64
	lastWrite time.Time
}

// Stats describes the write history of a slot
type Stats struct {
	Writes    uint64
	LastWrite time.Time
}

// NewSlot creates an unset slot
func NewSlot() *Slot {
	return &Slot{}
}

// Save replaces the stored value. A nil value marks the slot as written but
// holding nothing.
func (s *Slot) Save(value *string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if value != nil {
		v := *value
		value = &v
	}
	s.value = value
	s.set = true
	s.writes++
	s.lastWrite = time.Now()
}

// Read returns the stored value and whether the slot holds one.
func (s *Slot) Read() (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.value == nil {
		return "", false
	}
	return *s.value, true
}

// IsSet reports whether Save has been called at least once.
func (s *Slot) IsSet() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.set
}

func (s *Slot) Stats() Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return Stats{
		Writes:    s.writes,
		LastWrite: s.lastWrite,
	}
}
