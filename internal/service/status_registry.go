package service

import (
	"sync"

	"docflow/internal/domain"
)

// StatusRegistry tracks the current stage of every document submitted during
// the process lifetime. Entries are never removed. It is safe for concurrent use.
type StatusRegistry struct {
	mu       sync.RWMutex
	statuses map[string]domain.StageStatus
}

// NewStatusRegistry creates an empty StatusRegistry.
func NewStatusRegistry() *StatusRegistry {
	return &StatusRegistry{statuses: make(map[string]domain.StageStatus)}
}

// Set records status for documentID, replacing any previous value.
func (r *StatusRegistry) Set(documentID string, status domain.StageStatus) {
	r.mu.Lock()
	r.statuses[documentID] = status
	r.mu.Unlock()
}

// Get returns the status of documentID and whether it is known.
func (r *StatusRegistry) Get(documentID string) (domain.StageStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.statuses[documentID]
	return status, ok
}

// SnapshotAll returns a point-in-time copy of every entry. Different documents
// may be observed at different points of their runs.
func (r *StatusRegistry) SnapshotAll() map[string]domain.StageStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.StageStatus, len(r.statuses))
	for id, status := range r.statuses {
		out[id] = status
	}
	return out
}

// Len returns the number of tracked documents.
func (r *StatusRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.statuses)
}
