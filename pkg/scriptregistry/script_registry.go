package scriptregistry

import "sync"

// Registry maps logical script names to remote content identifiers and
// tracks which identifiers are confirmed loaded on the remote store. It
// holds no I/O; the script cache is responsible for only recording
// bindings whose load calls succeeded, so every identifier in the name map
// is always a member of the loaded set.
type Registry struct {
	nameToID  map[string]string
	loadedIDs map[string]struct{}
	mutex     sync.RWMutex
}

// NewRegistry creates an empty script registry.
func NewRegistry() *Registry {
	return &Registry{
		nameToID:  make(map[string]string),
		loadedIDs: make(map[string]struct{}),
	}
}

// IsLoaded reports whether contentID is known to be loaded on the remote
// store.
func (r *Registry) IsLoaded(contentID string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, ok := r.loadedIDs[contentID]
	return ok
}

// Resolve returns the content identifier bound to name, if any.
func (r *Registry) Resolve(name string) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	id, ok := r.nameToID[name]
	return id, ok
}

// RecordLoaded marks contentID as loaded and binds name to it. Recording
// the same pair twice is a no-op; recording a previously bound name with a
// different identifier overwrites the binding (the cache never does this,
// it is the registry's contract, not a reachable cache state).
func (r *Registry) RecordLoaded(name, contentID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.loadedIDs[contentID] = struct{}{}
	r.nameToID[name] = contentID
}

// Names returns all registered script names, in no particular order.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.nameToID))
	for name := range r.nameToID {
		names = append(names, name)
	}
	return names
}

// Snapshot returns a copy of the full name to identifier mapping.
func (r *Registry) Snapshot() map[string]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make(map[string]string, len(r.nameToID))
	for name, id := range r.nameToID {
		result[name] = id
	}
	return result
}
