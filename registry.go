package dgmenu

import "sync"

// Registry is a concurrent mapping from message identity to the listener
// handle attached to that message.
//
// Lookups are lock-free; structural mutations (Insert, Remove, Rekey) are
// serialized by a small mutex so that Rekey moves an entry atomically.
// The registry never calls into listeners itself: callers look up a handle and
// invoke it outside any registry lock, so listener I/O cannot stall unrelated
// identities.
type Registry struct {
	mu      sync.Mutex // serializes structural mutations
	entries sync.Map   // MessageIdentity -> *Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Insert registers a handle under the given identity.
// Returns a DuplicateEntryError if an entry already exists there.
func (r *Registry) Insert(id MessageIdentity, h *Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, loaded := r.entries.LoadOrStore(id, h); loaded {
		return &DuplicateEntryError{Identity: id}
	}
	return nil
}

// Get returns the handle registered under the identity, if any.
// It does not touch the listener's own lock.
func (r *Registry) Get(id MessageIdentity) (*Handle, bool) {
	v, ok := r.entries.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Handle), true
}

// Remove deletes and returns the entry at the identity, if any.
func (r *Registry) Remove(id MessageIdentity) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	return v.(*Handle), true
}

// Rekey atomically moves the entry at from to to.
// Returns a MissingEntryError if from has no entry and a DuplicateEntryError
// if to is already taken; both signal a lost or conflicting entry and must
// not be ignored by callers.
func (r *Registry) Rekey(from, to MessageIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries.Load(from)
	if !ok {
		return &MissingEntryError{Identity: from}
	}
	if _, taken := r.entries.Load(to); taken {
		return &DuplicateEntryError{Identity: to}
	}
	r.entries.Store(to, v)
	r.entries.Delete(from)
	return nil
}

// Snapshot returns the current set of entries. The returned map is a copy:
// iterating it cannot block concurrent registry operations, and entries added
// afterwards are simply not included.
func (r *Registry) Snapshot() map[MessageIdentity]*Handle {
	out := make(map[MessageIdentity]*Handle)
	r.entries.Range(func(k, v any) bool {
		out[k.(MessageIdentity)] = v.(*Handle)
		return true
	})
	return out
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	n := 0
	r.entries.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
