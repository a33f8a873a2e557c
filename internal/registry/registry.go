// Package registry provides a global registry for application factories.
// Applications register themselves in init() functions, allowing the
// platform hosts and the CLI to discover and instantiate them without
// hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/pixelcore/internal/engine"
)

// AppInfo contains metadata about a registered application.
type AppInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh application instance. Every run gets its own
// instance, so concurrent SSH sessions never share app state.
type Factory func() engine.App

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an application factory to the registry.
// Typically called from an app's init() function.
// Panics if an app with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: app %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered apps, sorted by ID.
func List() []AppInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]AppInfo, 0, len(factories))
	for id := range factories {
		result = append(result, AppInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new app by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (engine.App, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown app %q", id)
	}

	return f(), nil
}

// Title returns the display title of a registered app, or the ID itself.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok && t != "" {
		return t
	}
	return id
}

// Exists checks if an app with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
