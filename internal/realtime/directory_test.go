package realtime

import (
	"fmt"
	"sync"
	"testing"
)

func TestDirectoryRegisterAndLookup(t *testing.T) {
	d := NewDirectory()
	d.Register("buyer@example.com", "conn-1")

	connID, ok := d.Lookup("buyer@example.com")
	if !ok || connID != "conn-1" {
		t.Fatalf("lookup = %q, %v", connID, ok)
	}
}

func TestDirectoryLookupNormalizesIdentity(t *testing.T) {
	d := NewDirectory()
	d.Register("Buyer@Example.com ", "conn-1")

	if _, ok := d.Lookup("buyer@example.com"); !ok {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
}

func TestDirectoryLastConnectionWins(t *testing.T) {
	d := NewDirectory()
	d.Register("buyer@example.com", "conn-1")
	d.Register("buyer@example.com", "conn-2")

	connID, ok := d.Lookup("buyer@example.com")
	if !ok || connID != "conn-2" {
		t.Fatalf("lookup = %q, %v", connID, ok)
	}

	// Disconnect of the superseded connection must not evict the newer one.
	d.Unregister("conn-1")
	if connID, ok := d.Lookup("buyer@example.com"); !ok || connID != "conn-2" {
		t.Fatalf("lookup after stale unregister = %q, %v", connID, ok)
	}
}

func TestDirectoryUnregister(t *testing.T) {
	d := NewDirectory()
	d.Register("buyer@example.com", "conn-1")
	d.Unregister("conn-1")

	if _, ok := d.Lookup("buyer@example.com"); ok {
		t.Fatal("expected entry to be removed")
	}
}

func TestDirectoryUnregisterUnknownConn(t *testing.T) {
	d := NewDirectory()
	d.Register("buyer@example.com", "conn-1")
	d.Unregister("conn-unknown")

	if _, ok := d.Lookup("buyer@example.com"); !ok {
		t.Fatal("unknown unregister must not touch other entries")
	}
}

func TestDirectoryConcurrentAccess(t *testing.T) {
	d := NewDirectory()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			identity := fmt.Sprintf("buyer%d@example.com", i%4)
			connID := fmt.Sprintf("conn-%d", i)
			d.Register(identity, connID)
			d.Lookup(identity)
			d.Unregister(connID)
		}(i)
	}
	wg.Wait()
}
