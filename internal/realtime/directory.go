package realtime

import (
	"strings"
	"sync"
)

// Directory maps a buyer identity to its active connection id. It is the
// only long-lived shared mutable state in the push path: written from
// connection lifecycle events, read from arbitrary webhook-handling
// goroutines.
type Directory struct {
	mu      sync.RWMutex
	byBuyer map[string]string
	byConn  map[string]string
}

func NewDirectory() *Directory {
	return &Directory{
		byBuyer: make(map[string]string),
		byConn:  make(map[string]string),
	}
}

// Register binds identity to connID. A buyer has at most one entry; the
// last connection wins.
func (d *Directory) Register(identity, connID string) {
	identity = normalizeIdentity(identity)
	connID = strings.TrimSpace(connID)
	if identity == "" || connID == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.byBuyer[identity]; ok {
		delete(d.byConn, prev)
	}
	d.byBuyer[identity] = connID
	d.byConn[connID] = identity
}

// Unregister removes the entry whose connection id matches, if any. A
// disconnect of a superseded connection does not evict the newer one.
func (d *Directory) Unregister(connID string) {
	connID = strings.TrimSpace(connID)
	if connID == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	identity, ok := d.byConn[connID]
	if !ok {
		return
	}
	delete(d.byConn, connID)
	if d.byBuyer[identity] == connID {
		delete(d.byBuyer, identity)
	}
}

// Lookup returns the active connection id for identity.
func (d *Directory) Lookup(identity string) (string, bool) {
	identity = normalizeIdentity(identity)
	if identity == "" {
		return "", false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	connID, ok := d.byBuyer[identity]
	return connID, ok
}

func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
