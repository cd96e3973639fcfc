package container

import (
	"fmt"
	"sync"
)

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

type binding struct {
	factory   Factory
	singleton bool
	once      sync.Once
	instance  any
}

// Container is a small IoC container. It mirrors the parts of Laravel's
// Illuminate\Container\Container this application uses: Bind, Singleton,
// Instance, Alias and Make.
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	aliases  map[string]string
}

// New creates an empty container bound to itself as "container".
func New() *Container {
	c := &Container{
		bindings: make(map[string]*binding),
		aliases:  make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory: every Make builds a new value.
//
//	c.Bind("form.store", func(c *container.Container) any {
//	    return form.NewStore(form.Defaults(), form.InitialTouched())
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.set(abstract, &binding{factory: factory})
}

// Singleton registers a factory whose result is built once, on first Make.
//
//	c.Singleton("metrics", func(*container.Container) any { return metrics.New() })
func (c *Container) Singleton(abstract string, factory Factory) {
	c.set(abstract, &binding{factory: factory, singleton: true})
}

// Instance registers a pre-built value.
func (c *Container) Instance(abstract string, instance any) {
	b := &binding{singleton: true, instance: instance}
	b.once.Do(func() {})
	c.set(abstract, b)
}

// Alias registers an alternative name for an abstract.
func (c *Container) Alias(abstract, alias string) {
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
}

func (c *Container) set(abstract string, b *binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[c.canonical(abstract)] = b
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract. It panics when nothing is registered under it,
// which is a wiring bug caught at boot.
func (c *Container) Make(abstract string) any {
	c.mu.RLock()
	b, ok := c.bindings[c.canonical(abstract)]
	c.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("container: no binding registered for [%s]", abstract))
	}

	if !b.singleton {
		return b.factory(c)
	}
	// Factories may Make their own dependencies, so no container lock is
	// held here; once serialises concurrent first resolutions.
	b.once.Do(func() { b.instance = b.factory(c) })
	return b.instance
}

// Bound returns true if an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[c.canonical(abstract)]
	return ok
}

// Forget removes the registration of an abstract.
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, c.canonical(abstract))
}

// canonical resolves an alias to its canonical key (caller holds mu).
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	cfg := container.Resolve[*config.Config](c, "config")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}
