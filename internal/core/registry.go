package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]SourceDefinition)
	registryMu sync.RWMutex
)

// Register adds a source definition to the registry.
// Panics if a source with the same key is already registered.
func Register(def SourceDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("source already registered: %s", def.Info.Key))
	}
	if def.Info.HeaderOffset < 0 {
		panic(fmt.Sprintf("source %s: negative header offset", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns a source definition by key.
// Returns false if not found.
func Get(key string) (SourceDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// MustGet returns a source definition or an error naming the unknown key.
func MustGet(key string) (SourceDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return SourceDefinition{}, fmt.Errorf("unknown source: %s", key)
	}
	return def, nil
}

// All returns all registered source definitions sorted by key.
func All() []SourceDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]SourceDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// SourceCount returns the number of registered sources.
func SourceCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered sources.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]SourceDefinition)
}
