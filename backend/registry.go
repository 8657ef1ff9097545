package backend

import (
	"sort"
	"sync"
)

// NameSim is the name of the simulated runtime in backend/sim.
const NameSim = "sim"

// Factory creates a new runtime instance.
// A factory may return nil when its runtime is compiled out.
type Factory func() Runtime

var (
	registryMu sync.RWMutex
	runtimes   = make(map[string]Factory)
)

// Register registers a runtime factory with the given name.
// This is typically called from init() functions in runtime packages.
// If a runtime with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	runtimes[name] = factory
}

// Unregister removes a runtime from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(runtimes, name)
}

// Available returns the registered runtime names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedNames()
}

// IsRegistered checks if a runtime with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := runtimes[name]
	return ok
}

// Get returns a runtime instance by name.
// Returns nil if the runtime is not registered.
func Get(name string) Runtime {
	registryMu.RLock()
	factory, ok := runtimes[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Default returns the preferred registered runtime.
// Vendor runtimes are tried in name order before the simulator, which is
// only used when nothing else is registered. Returns nil if no factory
// produces a runtime.
func Default() Runtime {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range sortedNames() {
		if name == NameSim {
			continue
		}
		if rt := runtimes[name](); rt != nil {
			return rt
		}
	}

	if factory, ok := runtimes[NameSim]; ok {
		return factory()
	}
	return nil
}

// sortedNames must be called with registryMu held.
func sortedNames() []string {
	names := make([]string, 0, len(runtimes))
	for name := range runtimes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
