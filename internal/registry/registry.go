// Package registry provides a global registry of game variants.
// Variants register themselves in init() functions, so hosts (terminal,
// SSH, window, headless) can look them up by ID without importing the
// game package directly.
package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Game is the interface every playable variant implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this variant (e.g., "breakout").
	// Used for CLI commands and the round journal.
	ID() string

	// Title returns a human-readable name for display (e.g., "Breakout (Touch)").
	Title() string

	// Reset builds a fresh round from the RuntimeConfig (screen size, tick
	// rate, seed). Hosts call it once at start and for a new seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Seeded is implemented by games that can report the RNG seed they run with.
type Seeded interface {
	Seed() int64
}

// Hinted is implemented by games that can describe their controls in a
// few words for menus and listings.
type Hinted interface {
	Hint() string
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
	Hint  string // Empty when the game is not Hinted
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory to the registry. It builds one instance to
// read the metadata and panics if id is taken.
func Register(id string, f Factory) {
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if h, ok := g.(Hinted); ok {
		info.Hint = h.Hint()
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, info: info}
}

// IDs returns the registered IDs, sorted.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	return slices.Sorted(maps.Keys(entries))
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	ids := slices.Sorted(maps.Keys(entries))
	result := make([]GameInfo, len(ids))
	for i, id := range ids {
		result[i] = entries[id].info
	}
	return result
}

// Info returns the metadata of a registered game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
