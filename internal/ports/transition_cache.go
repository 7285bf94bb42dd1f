package ports

import "bus-transition-engine/internal/domain"

// Port: a boundary for caching transition results between validation
// requests. Implementations must be safe for concurrent use.
type TransitionCache interface {
	// Get returns the cached result for a quantized pair key, or ok=false
	// on miss or TTL expiry.
	Get(key string) (domain.TransitionResult, bool)

	// Put stores a result under a quantized pair key. Last write wins.
	Put(key string, result domain.TransitionResult)

	// Clear drops all entries and returns how many were held.
	Clear() int

	// Size reports the current number of entries.
	Size() int
}
