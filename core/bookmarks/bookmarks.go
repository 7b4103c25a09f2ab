// Package bookmarks keeps the frequency annotations that are shown as
// tags above the frequency scale: user bookmarks and received DX spots.
package bookmarks

import (
	"image/color"
	"sort"
	"sync"

	"github.com/ftl/panafall/core"
)

// Entry is one tagged frequency.
type Entry struct {
	Frequency core.Frequency
	Label     string
	Color     color.RGBA
}

// DefaultColor for entries added without an explicit color.
var DefaultColor = color.RGBA{0xeb, 0xcb, 0x8b, 0xff}

// Store is an in-memory list of entries, sorted by frequency.
type Store struct {
	entries []Entry
	lock    sync.RWMutex
}

func NewStore() *Store {
	return &Store{}
}

// Add the given entry to the store.
func (s *Store) Add(entry Entry) {
	if entry.Color == (color.RGBA{}) {
		entry.Color = DefaultColor
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Frequency >= entry.Frequency
	})
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = entry
}

// Remove all entries at the given frequency.
func (s *Store) Remove(frequency core.Frequency) {
	s.lock.Lock()
	defer s.lock.Unlock()
	kept := s.entries[:0]
	for _, entry := range s.entries {
		if entry.Frequency != frequency {
			kept = append(kept, entry)
		}
	}
	s.entries = kept
}

// Clear the store.
func (s *Store) Clear() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.entries = nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.entries)
}

// EntriesInRange returns all entries within the given frequency range,
// sorted by frequency.
func (s *Store) EntriesInRange(r core.FrequencyRange) []Entry {
	s.lock.RLock()
	defer s.lock.RUnlock()
	from := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Frequency >= r.From
	})
	to := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Frequency > r.To
	})
	result := make([]Entry, to-from)
	copy(result, s.entries[from:to])
	return result
}
