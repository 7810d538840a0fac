// SPDX-License-Identifier: EPL-2.0

package instrument_test

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/instrument"
	"github.com/ik5/audsched/internal/audiotest"
)

func TestFactory_Initialize(t *testing.T) {
	t.Parallel()

	f := audiotest.Factory()

	h, err := f.Initialize("finite", map[string]any{"value": 7, "channels": 2, "frames": 1})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if h.Name() != "mock" {
		t.Errorf("Name() = %q, want mock", h.Name())
	}

	s, ok, err := h.NextSample()
	if err != nil || !ok || !s.Equal(audio.S32(7, 7)) {
		t.Errorf("NextSample() = %v, %v, %v; want s32[7 7]", s, ok, err)
	}
	if _, ok, _ := h.NextSample(); ok {
		t.Error("finite instrument kept playing")
	}
}

func TestFactory_NilArgs(t *testing.T) {
	t.Parallel()

	h, err := audiotest.Factory().Initialize("constant", nil)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	s, _, _ := h.NextSample()
	if !s.Equal(audio.S32(0)) {
		t.Errorf("NextSample() = %v, want s32[0]", s)
	}
}

func TestFactory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		route string
		args  any
		want  error
	}{
		{"unknown route", "granular", nil, instrument.ErrUnknownRoute},
		{"bad args", "constant", "loud", instrument.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := audiotest.Factory().Initialize(tt.route, tt.args)

			var ce *instrument.ConstructionError
			if !errors.As(err, &ce) {
				t.Fatalf("Initialize() error = %v, want *ConstructionError", err)
			}
			if ce.Route != tt.route || ce.Instrument != "mock" {
				t.Errorf("ConstructionError = %+v", ce)
			}
			if !errors.Is(err, instrument.ErrConstruction) || !errors.Is(err, tt.want) {
				t.Errorf("Initialize() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	c := instrument.NewCatalog(audiotest.Factory())

	if names := c.Names(); !slices.Equal(names, []string{"mock"}) {
		t.Errorf("Names() = %v", names)
	}
	if _, ok := c.Get("mock"); !ok {
		t.Error("Get(mock) not found")
	}

	if _, err := c.Initialize("mock", "constant", nil); err != nil {
		t.Errorf("Initialize() error = %v", err)
	}

	_, err := c.Initialize("theremin", "open", nil)
	if !errors.Is(err, instrument.ErrUnknownInstrument) || !errors.Is(err, instrument.ErrConstruction) {
		t.Errorf("Initialize(theremin) error = %v, want ErrUnknownInstrument", err)
	}
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := instrument.NewCatalog()

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			c.Register(audiotest.Factory())
			_ = c.Names()
			_, _ = c.Get("mock")
		})
	}
	wg.Wait()

	if len(c.Names()) != 1 {
		t.Errorf("Names() = %v", c.Names())
	}
}
