// Package registry maps game IDs to factories. Game packages register
// from init(), so commands only need a blank import to find them.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/dodgeball/internal/core"
)

// Game is driven by the platform once per rendered frame. Implementations
// hold pure logic; input mapping, timing, audio and drawing live in the
// platform packages.
type Game interface {
	ID() string
	Title() string

	// Reset starts the first run. The config carries the screen size,
	// the clock at the first frame and the RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step consumes one frame of input and clock and reports the result.
	Step(f core.Frame) core.StepResult

	// Render draws the latest state into dst.
	Render(dst *core.Screen)

	State() core.GameState
}

// Factory builds a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds a factory under id. It panics on an empty id, a nil
// factory or a duplicate registration.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// Create builds a new game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q (registered: %v)", id, IDs())
	}

	g := f()
	if g == nil {
		return nil, fmt.Errorf("registry: factory for %q returned nil", id)
	}
	return g, nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}

// IDs returns the registered game IDs in sorted order.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
