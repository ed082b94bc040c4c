// Package di provides a minimal dependency injection container with
// typed tokens for cross-module service resolution.
package di

import "sync"

// ServiceRegistry is the read side of the container.
type ServiceRegistry interface {
	// Get resolves a service by name. Factory-registered services are
	// built on first access and cached. Returns nil when unknown.
	Get(name string) any
}

// Container is the write side used during module registration.
type Container interface {
	ServiceRegistry

	// Register stores an already-built value.
	Register(name string, value any)

	// RegisterFactory stores a lazy constructor. The factory runs once,
	// on first Get, and the result is cached.
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

type container struct {
	mu        sync.Mutex
	values    map[string]any
	factories map[string]func(ServiceRegistry) any
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		values:    make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
	}
}

func (c *container) Register(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
}

func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = factory
}

func (c *container) Get(name string) any {
	c.mu.Lock()
	if v, ok := c.values[name]; ok {
		c.mu.Unlock()
		return v
	}
	factory, ok := c.factories[name]
	c.mu.Unlock()

	if !ok {
		return nil
	}

	// Build outside the lock so factories can resolve their own deps.
	v := factory(c)

	c.mu.Lock()
	c.values[name] = v
	c.mu.Unlock()

	return v
}

// Token is a typed handle to a registered service.
type Token[T any] struct {
	name string
}

// NewToken creates a token. The name must be unique across the app;
// the convention is "<context>.<Service>" for public tokens and
// "<context>:<dep>" for private ones.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the registration name of the token.
func (t Token[T]) Name() string { return t.name }

// RegisterToken registers a typed factory under the token's name.
func RegisterToken[T any](c Container, t Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(t.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves a typed service. Panics if the service was never
// registered or was registered with a different type, which is a
// programming error caught at startup.
func GetToken[T any](sr ServiceRegistry, t Token[T]) T {
	v := sr.Get(t.name)
	if v == nil {
		panic("di: service not registered: " + t.name)
	}
	return v.(T)
}
