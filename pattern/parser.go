// SPDX-License-Identifier: EPL-2.0

package pattern

import (
	"log/slog"
	"slices"
)

// Item is an event recorded at a rune offset of the parsed string.
type Item struct {
	Offset int
	Event  any
}

// Parser turns a pattern string into offset and event pairs.
type Parser struct {
	bindings []compiled
	repeat   *repeatTable

	longestFirst bool
	logger       *slog.Logger
}

// Option configures a Parser.
type Option interface {
	apply(*Parser)
}

type longestFirstOption struct{}

func (longestFirstOption) apply(p *Parser) { p.longestFirst = true }

// WithLongestFirst tries longer triggers before shorter ones, so "[[" wins
// over "[" at the same offset. By default shorter triggers go first.
func WithLongestFirst() Option { return longestFirstOption{} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(p *Parser) { p.logger = o.logger }

// WithLogger sets the logger used for match records.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

// New returns a parser without a table. Parse fails until Extend is called.
func New(opts ...Option) *Parser {
	p := &Parser{logger: slog.Default()}
	for _, opt := range opts {
		opt.apply(p)
	}
	return p
}

// Extend replaces the parse table. On error the previous table is kept.
func (p *Parser) Extend(t Table) error {
	switch t := t.(type) {
	case bindingTable:
		bs, err := compile(t, p.longestFirst)
		if err != nil {
			return err
		}
		p.bindings, p.repeat = bs, nil
	case repeatTable:
		p.bindings, p.repeat = nil, &t
	default:
		return ErrNilTable
	}
	return nil
}

// Parse scans s rune by rune. At each offset the first binding whose
// trigger matches records all its events there and the scan resumes after
// the match. Runes no trigger matches are skipped.
func (p *Parser) Parse(s string) ([]Item, error) {
	runes := []rune(s)

	if p.repeat != nil {
		items := make([]Item, len(runes))
		for i := range runes {
			items[i] = Item{Offset: i, Event: p.repeat.event}
		}
		return items, nil
	}
	if p.bindings == nil {
		return nil, ErrNoParseTable
	}

	p.logger.Debug("parsing pattern", "pattern", s, "bindings", len(p.bindings))

	var items []Item
	for read := 0; read < len(runes); {
		b, ok := p.match(runes[read:])
		if !ok {
			read++
			continue
		}

		p.logger.Debug("matched", "trigger", string(b.trigger), "offset", read)
		for _, ev := range b.events {
			items = append(items, Item{Offset: read, Event: ev})
		}
		read += len(b.trigger)
	}
	return items, nil
}

func (p *Parser) match(rest []rune) (compiled, bool) {
	for _, b := range p.bindings {
		if len(b.trigger) <= len(rest) && slices.Equal(rest[:len(b.trigger)], b.trigger) {
			return b, true
		}
	}
	return compiled{}, false
}

// Len returns the number of rune offsets in s, which is the number of grid
// ticks a pattern spans.
func Len(s string) int {
	return len([]rune(s))
}
