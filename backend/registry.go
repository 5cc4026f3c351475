package backend

import (
	"slices"
	"sync"
)

// HostFactory creates a new host instance.
type HostFactory func() Host

// registry holds registered hosts.
var (
	registryMu sync.RWMutex
	hosts      = make(map[string]HostFactory)
	// Priority order for host selection (first available wins).
	hostPriority = []string{BackendGogpu, BackendEbiten}
)

// Register registers a host factory with the given name.
// This is typically called from init() functions in host packages.
// If a host with the same name is already registered, it will be replaced.
func Register(name string, factory HostFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	hosts[name] = factory
}

// Unregister removes a host from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(hosts, name)
}

// Available returns the registered host names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(hosts))
	for name := range hosts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a host with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := hosts[name]
	return ok
}

// Get returns a host instance by name.
// Returns nil if the host is not registered.
func Get(name string) Host {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := hosts[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available host based on priority.
// Priority order: gogpu > ebiten
// Returns nil if no hosts are registered.
func Default() Host {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range hostPriority {
		if factory, ok := hosts[name]; ok {
			if h := factory(); h != nil {
				return h
			}
		}
	}

	// Fallback: first available in name order.
	names := make([]string, 0, len(hosts))
	for name := range hosts {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if h := hosts[name](); h != nil {
			return h
		}
	}

	return nil
}
