package lookup

import (
	"fmt"
	"sync"

	"github.com/Sosthene00/bitcoin-pro/pkg/descriptor"
)

// OutPoint identifies a transaction output on chain. It is the deduplication
// key of a UtxoSet: the same coin found through different scan passes is still
// the same coin.
type OutPoint struct {
	Hash  string
	Index uint32
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// Entry is one resolved coin together with the derivation coordinates it was
// found at.
type Entry struct {
	OutPoint        OutPoint
	Value           uint64
	Script          []byte
	DerivationIndex uint32
	Variant         descriptor.Variant
	Confirmed       bool
}

// UtxoSet is an outpoint-keyed, insertion-ordered set of resolved coins. Add
// is idempotent, which makes repeated or overlapping scan passes safe.
type UtxoSet struct {
	mutex   *sync.RWMutex
	entries map[OutPoint]Entry
	order   []OutPoint
}

// NewUtxoSet returns an empty set.
func NewUtxoSet() *UtxoSet {
	return &UtxoSet{
		mutex:   &sync.RWMutex{},
		entries: map[OutPoint]Entry{},
		order:   make([]OutPoint, 0),
	}
}

// Add inserts the entry and reports whether it was new. An entry for an
// already known outpoint leaves the set unchanged.
func (s *UtxoSet) Add(entry Entry) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.entries[entry.OutPoint]; ok {
		return false
	}
	s.entries[entry.OutPoint] = entry
	s.order = append(s.order, entry.OutPoint)
	return true
}

// Contains reports whether the outpoint is already in the set.
func (s *UtxoSet) Contains(outpoint OutPoint) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, ok := s.entries[outpoint]
	return ok
}

// Len returns the number of distinct coins in the set.
func (s *UtxoSet) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.entries)
}

// Entries returns the coins in insertion order.
func (s *UtxoSet) Entries() []Entry {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, outpoint := range s.order {
		entries = append(entries, s.entries[outpoint])
	}
	return entries
}

// TotalValue returns the sum of the values of all coins in the set.
func (s *UtxoSet) TotalValue() uint64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var total uint64
	for _, entry := range s.entries {
		total += entry.Value
	}
	return total
}
