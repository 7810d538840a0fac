// SPDX-License-Identifier: EPL-2.0

package pattern

import (
	"fmt"
	"slices"
)

// Binding maps a trigger string to the events recorded where it matches.
type Binding struct {
	Trigger string `yaml:"trigger"`
	Events  []any  `yaml:"events"`
}

// Bind is shorthand for a Binding.
func Bind(trigger string, events ...any) Binding {
	return Binding{Trigger: trigger, Events: events}
}

// Table configures a Parser. It is either a set of bindings or a single
// repeated event.
type Table interface {
	isTable()
}

type bindingTable []Binding

func (bindingTable) isTable() {}

// Bindings builds a table from bindings. Bindings whose triggers have the
// same length are tried in the order given.
func Bindings(bs ...Binding) Table {
	return bindingTable(slices.Clone(bs))
}

// BindMap builds a table from a trigger to event map. A []any value
// expands to several events. Triggers of equal length are tried in
// lexical order.
func BindMap(m map[string]any) Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	bs := make(bindingTable, 0, len(keys))
	for _, k := range keys {
		switch v := m[k].(type) {
		case []any:
			bs = append(bs, Binding{Trigger: k, Events: v})
		default:
			bs = append(bs, Binding{Trigger: k, Events: []any{v}})
		}
	}
	return bs
}

type repeatTable struct {
	event any
}

func (repeatTable) isTable() {}

// Repeat builds a table that records event at every rune offset.
func Repeat(event any) Table {
	return repeatTable{event: event}
}

type compiled struct {
	trigger []rune
	events  []any
}

func compile(bs bindingTable, longestFirst bool) ([]compiled, error) {
	out := make([]compiled, 0, len(bs))
	for i, b := range bs {
		if b.Trigger == "" {
			return nil, fmt.Errorf("%w: binding %d", ErrEmptyTrigger, i)
		}
		out = append(out, compiled{trigger: []rune(b.Trigger), events: b.Events})
	}

	slices.SortStableFunc(out, func(a, b compiled) int {
		if longestFirst {
			return len(b.trigger) - len(a.trigger)
		}
		return len(a.trigger) - len(b.trigger)
	})
	return out, nil
}
