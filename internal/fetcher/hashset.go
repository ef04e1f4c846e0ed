package fetcher

import "sync"

// HashSet is the run-scoped set of content hashes already written to
// storage. It lives for the process duration and is never persisted.
// The mutex matters only if a caller parallelizes batch processing; the
// default pipeline is sequential.
type HashSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewHashSet creates an empty set.
func NewHashSet() *HashSet {
	return &HashSet{seen: make(map[string]struct{})}
}

// Contains reports whether the hash was already recorded.
func (h *HashSet) Contains(hash string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.seen[hash]
	return ok
}

// Add records a hash. Call only after the corresponding file was written.
func (h *HashSet) Add(hash string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[hash] = struct{}{}
}

// Len returns the number of recorded hashes.
func (h *HashSet) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.seen)
}
