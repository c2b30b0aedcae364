package store

import (
	"fmt"
	"sync"
)

// IndexStats contains statistics about the triple store.
type IndexStats struct {
	TotalTriples     int            `json:"total_triples"`
	UniqueSubjects   int            `json:"unique_subjects"`
	UniquePredicates int            `json:"unique_predicates"`
	UniqueObjects    int            `json:"unique_objects"`
	PredicateCounts  map[string]int `json:"predicate_counts"`
}

type tripleKey struct {
	subject   string
	predicate string
	object    string
	kind      Kind
}

// TripleStore is an in-memory RDF triple store that remembers insertion
// order. Every query returns triples in the order they were first added, so
// "first match" scans over the store are deterministic.
// Lookups go through three position indexes:
//   - subject -> positions (facts about a subject)
//   - predicate -> positions (subjects with a property)
//   - object -> positions (subjects pointing to an object)
type TripleStore struct {
	mu sync.RWMutex

	triples []Triple
	present map[tripleKey]struct{}

	bySubject   map[string][]int
	byPredicate map[string][]int
	byObject    map[string][]int
}

// NewTripleStore creates a new in-memory triple store with all indexes initialized.
func NewTripleStore() *TripleStore {
	return &TripleStore{
		present:     make(map[tripleKey]struct{}),
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
		byObject:    make(map[string][]int),
	}
}

// Add inserts a triple whose object kind is inferred. Returns nil if
// successful or if the triple already exists (idempotent operation).
func (ts *TripleStore) Add(subject, predicate, object string) error {
	return ts.AddTriple(NewTriple(subject, predicate, object))
}

// AddTriple inserts a Triple struct into the store.
func (ts *TripleStore) AddTriple(triple Triple) error {
	if !triple.IsValid() {
		return fmt.Errorf("triple components cannot be empty")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.addUnsafe(triple)
	return nil
}

// Find queries triples matching the pattern. Use empty string "" for
// wildcards. Results are in insertion order.
func (ts *TripleStore) Find(subject, predicate, object string) []Triple {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.findUnsafe(TriplePattern{Subject: subject, Predicate: predicate, Object: object})
}

// Exists checks if a triple with these components exists, whatever its
// object kind. Stored triples never have KindAuto: it is resolved on insert.
func (ts *TripleStore) Exists(subject, predicate, object string) bool {
	return len(ts.Find(subject, predicate, object)) > 0
}

// Get retrieves all properties for a subject as a map of predicate -> []objects.
// Objects of each predicate keep insertion order.
func (ts *TripleStore) Get(subject string) map[string][]string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	result := make(map[string][]string)
	for _, position := range ts.bySubject[subject] {
		triple := ts.triples[position]
		result[triple.Predicate] = append(result[triple.Predicate], triple.Object)
	}

	return result
}

// Delete removes every triple matching the pattern ("" is a wildcard) and
// returns how many were removed. Remaining triples keep their relative order.
// Matches are found through the indexes; the store is only rebuilt when
// something is removed.
func (ts *TripleStore) Delete(subject, predicate, object string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if subject == "" && predicate == "" && object == "" {
		removed := len(ts.triples)
		ts.resetUnsafe()
		return removed
	}

	pattern := TriplePattern{Subject: subject, Predicate: predicate, Object: object}
	candidates, ok := ts.candidatesUnsafe(pattern)
	if !ok {
		return 0
	}

	doomed := make(map[int]struct{})
	for _, position := range candidates {
		if pattern.Matches(ts.triples[position]) {
			doomed[position] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return 0
	}

	previous := ts.triples
	ts.resetUnsafe()
	for position, triple := range previous {
		if _, removed := doomed[position]; !removed {
			ts.addUnsafe(triple)
		}
	}
	return len(doomed)
}

func (ts *TripleStore) resetUnsafe() {
	ts.triples = nil
	ts.present = make(map[tripleKey]struct{})
	ts.bySubject = make(map[string][]int)
	ts.byPredicate = make(map[string][]int)
	ts.byObject = make(map[string][]int)
}

// Count returns the total number of triples in the store.
func (ts *TripleStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.triples)
}

// Stats returns statistics about the store.
func (ts *TripleStore) Stats() IndexStats {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	predicateCounts := make(map[string]int, len(ts.byPredicate))
	for predicate, positions := range ts.byPredicate {
		predicateCounts[predicate] = len(positions)
	}

	return IndexStats{
		TotalTriples:     len(ts.triples),
		UniqueSubjects:   len(ts.bySubject),
		UniquePredicates: len(ts.byPredicate),
		UniqueObjects:    len(ts.byObject),
		PredicateCounts:  predicateCounts,
	}
}

// All returns all triples in insertion order.
func (ts *TripleStore) All() []Triple {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return append([]Triple(nil), ts.triples...)
}

// addUnsafe appends a triple and updates the indexes without locking.
func (ts *TripleStore) addUnsafe(triple Triple) {
	triple = triple.Resolved()
	key := tripleKey{triple.Subject, triple.Predicate, triple.Object, triple.Kind}
	if _, exists := ts.present[key]; exists {
		return
	}
	ts.present[key] = struct{}{}

	position := len(ts.triples)
	ts.triples = append(ts.triples, triple)

	ts.bySubject[triple.Subject] = append(ts.bySubject[triple.Subject], position)

	ts.byPredicate[triple.Predicate] = append(ts.byPredicate[triple.Predicate], position)

	ts.byObject[triple.Object] = append(ts.byObject[triple.Object], position)
}

// findUnsafe scans the smallest index that covers the pattern without locking.
func (ts *TripleStore) findUnsafe(pattern TriplePattern) []Triple {
	var results []Triple

	// All wildcards - return all triples
	if pattern.Subject == "" && pattern.Predicate == "" && pattern.Object == "" {
		return append(results, ts.triples...)
	}

	candidates, ok := ts.candidatesUnsafe(pattern)
	if !ok {
		return nil
	}

	for _, position := range candidates {
		if triple := ts.triples[position]; pattern.Matches(triple) {
			results = append(results, triple)
		}
	}

	return results
}

// candidatesUnsafe returns the shortest position list among the bound
// components. ok is false when a bound component is not in the store.
func (ts *TripleStore) candidatesUnsafe(pattern TriplePattern) ([]int, bool) {
	var best []int
	found := false

	consider := func(index map[string][]int, value string) bool {
		if value == "" {
			return true
		}
		positions, exists := index[value]
		if !exists {
			return false
		}
		if !found || len(positions) < len(best) {
			best = positions
			found = true
		}
		return true
	}

	if !consider(ts.bySubject, pattern.Subject) ||
		!consider(ts.byPredicate, pattern.Predicate) ||
		!consider(ts.byObject, pattern.Object) {
		return nil, false
	}

	return best, found
}
