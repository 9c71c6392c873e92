package dataset

import (
	"fmt"
	"sort"
	"sync"
)

// Builder constructs a dataset rooted at root, with "" meaning the
// default location.
type Builder func(root string) (*Dataset, error)

var (
	registryMu sync.Mutex
	registry   = make(map[string]Builder)
)

// Register makes a dataset loader available to Initialize and List.
// Loader packages call it from init, so a blank import of
// mircorpus/datasets activates every bundled loader. Registering the
// same name twice panics: it can only be a wiring mistake.
func Register(name string, build Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if build == nil {
		panic("dataset: Register with nil builder")
	}
	if _, dup := registry[name]; dup {
		panic("dataset: Register called twice for " + name)
	}
	registry[name] = build
}

// List returns the registered dataset names, sorted.
func List() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Initialize builds the named dataset at root.
func Initialize(name, root string) (*Dataset, error) {
	registryMu.Lock()
	build, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("dataset: unknown dataset %q (registered: %v)", name, List())
	}
	return build(root)
}
