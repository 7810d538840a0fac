// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"fmt"
	"slices"
	"sync"
)

// Factory builds handles of one instrument type from a route and opaque
// construction arguments.
type Factory struct {
	name   string
	manual string
	init   func(route string, args any) (*Handle, error)
}

// Define registers the constructor of an instrument type. init receives the
// route selecting a construction mode and the arguments decoded into A; it
// should wrap ErrUnknownRoute for routes it does not serve.
func Define[A, E any, T Instrument[E]](name, manual string, init func(route string, args A) (T, error)) *Factory {
	return &Factory{
		name:   name,
		manual: manual,
		init: func(route string, raw any) (*Handle, error) {
			var args A
			if raw != nil {
				var err error
				if args, err = Decode[A](raw); err != nil {
					return nil, err
				}
			}

			inst, err := init(route, args)
			if err != nil {
				return nil, err
			}

			h := New[E](inst)
			h.name = name
			return h, nil
		},
	}
}

func (f *Factory) Name() string { return f.name }

// Manual is the long-form usage text of the instrument.
func (f *Factory) Manual() string { return f.manual }

// Initialize constructs a new instrument. Failures are *ConstructionError.
func (f *Factory) Initialize(route string, args any) (*Handle, error) {
	h, err := f.init(route, args)
	if err != nil {
		return nil, &ConstructionError{Instrument: f.name, Route: route, Err: err}
	}
	return h, nil
}

// Catalog maps instrument names to factories.
type Catalog struct {
	factories map[string]*Factory

	mtx *sync.Mutex
}

func NewCatalog(factories ...*Factory) *Catalog {
	c := &Catalog{
		factories: make(map[string]*Factory),
		mtx:       &sync.Mutex{},
	}
	for _, f := range factories {
		c.Register(f)
	}
	return c
}

// Register adds f, replacing any factory of the same name.
func (c *Catalog) Register(f *Factory) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.factories[f.name] = f
}

func (c *Catalog) Get(name string) (*Factory, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	f, ok := c.factories[name]
	return f, ok
}

// Names lists the registered instruments in sorted order.
func (c *Catalog) Names() []string {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	out := make([]string, 0, len(c.factories))
	for k := range c.factories {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Initialize looks up name and constructs an instrument through it.
func (c *Catalog) Initialize(name, route string, args any) (*Handle, error) {
	f, ok := c.Get(name)
	if !ok {
		return nil, &ConstructionError{
			Instrument: name,
			Route:      route,
			Err:        fmt.Errorf("%w: %q", ErrUnknownInstrument, name),
		}
	}
	return f.Initialize(route, args)
}
