package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Opener connects a Store from a driver-specific connection string.
type Opener func(ctx context.Context, conn string) (Store, error)

var (
	registry = make(map[string]Opener)
	mu       sync.RWMutex
)

// Register adds a driver to the registry. Backends call it from init.
func Register(name string, open Opener) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = open
}

// Open connects a Store using the named driver.
func Open(ctx context.Context, driver, conn string) (Store, error) {
	mu.RLock()
	open, ok := registry[driver]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
	return open(ctx, conn)
}

// Drivers returns all registered driver names, sorted.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
