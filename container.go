// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

import "sync"

// Container is a thread-safe registry mapping unique names to elements.
//
// Readers (Find, Names, Len) proceed in parallel; writers (Add, Remove,
// Close) are exclusive. The container owns neither the elements nor their
// release policy: Close takes a release callback so containers holding
// different element types can tear down appropriately.
//
// A pointer returned by Find is valid only for as long as some other
// component guarantees the element's lifetime; the runtime's lifecycle
// discipline (workers are joined before their queues are destroyed)
// provides that guarantee for the two registries built on Container.
type Container[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewContainer creates an empty container.
func NewContainer[T any]() *Container[T] {
	return &Container[T]{items: make(map[string]T)}
}

// Add registers elem under name. Returns false, leaving the existing
// entry untouched, if the name is already present.
func (c *Container[T]) Add(name string, elem T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[name]; ok {
		return false
	}
	c.items[name] = elem
	return true
}

// Remove detaches and returns the element registered under name without
// releasing it. The second return is false if no such entry exists.
func (c *Container[T]) Remove(name string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[name]
	if ok {
		delete(c.items, name)
	}
	return elem, ok
}

// Find returns the element registered under name, if any.
func (c *Container[T]) Find(name string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	elem, ok := c.items[name]
	return elem, ok
}

// Names returns a snapshot of the registered names. The snapshot is a
// copy, usable without holding any lock; it is the only safe way to
// iterate while other goroutines mutate the container.
func (c *Container[T]) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.items))
	for name := range c.items {
		names = append(names, name)
	}
	return names
}

// Len reports the number of registered elements.
func (c *Container[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close releases every element through release (when non-nil) and empties
// the container. The iteration runs under the write lock, so no Add or
// Remove can interleave with the teardown.
func (c *Container[T]) Close(release func(T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if release != nil {
		for _, elem := range c.items {
			release(elem)
		}
	}
	c.items = make(map[string]T)
}
