// SPDX-License-Identifier: EPL-2.0

package audsched_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/audsched"
	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/engine"
	"github.com/ik5/audsched/formats/wav"
	"github.com/ik5/audsched/instrument"
	"github.com/ik5/audsched/internal/audiotest"
)

var quiet = audsched.WithLogger(slog.New(slog.DiscardHandler))

func at(pos int, h *instrument.Handle, v any) engine.Pair {
	return engine.Pair{Position: pos, Event: instrument.Event{Handle: h, Value: v}}
}

func newEngine(t *testing.T, handles []*instrument.Handle, events engine.Stream, interval, duration int) *engine.Engine {
	t.Helper()

	e, err := engine.New(handles, events, interval, duration)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	return e
}

func TestRender_LeadingSilence(t *testing.T) {
	t.Parallel()

	late := audiotest.Handle(audiotest.NewFinite(audio.S16(1), 0))
	e := newEngine(t, nil, engine.Events(at(2, late, audiotest.Play)), 2, 8)

	var buf audsched.Buffer
	res, err := audsched.Render(context.Background(), e, &buf, quiet)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if res.Frames != 8 || res.Channels != 1 || res.Leading != 4 {
		t.Errorf("Result = %+v, want 8 frames, 1 channel, 4 leading", res)
	}
	for i, f := range buf.Frames {
		want := int32(65537)
		if i < 4 {
			want = 0
		}
		if len(f) != 1 || f[0] != want {
			t.Errorf("frame %d = %v, want [%d]", i, f, want)
		}
	}
}

func TestRender_TrailingSilence(t *testing.T) {
	t.Parallel()

	h := audiotest.Handle(audiotest.NewFinite(audio.S16(2, 3), 2))
	e := newEngine(t, []*instrument.Handle{h}, nil, 1, 4)

	var buf audsched.Buffer
	if _, err := audsched.Render(context.Background(), e, &buf, quiet); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := [][]int32{{131074, 196611}, {131074, 196611}, {0, 0}, {0, 0}}
	if len(buf.Frames) != len(want) {
		t.Fatalf("got %d frames, want %d", len(buf.Frames), len(want))
	}
	for i := range want {
		if !slices.Equal(buf.Frames[i], want[i]) {
			t.Errorf("frame %d = %v, want %v", i, buf.Frames[i], want[i])
		}
	}
}

func TestRender_Silent(t *testing.T) {
	t.Parallel()

	h := audiotest.Handle(audiotest.NewFinite(audio.S16(1), 0))

	_, err := audsched.Render(context.Background(), newEngine(t, []*instrument.Handle{h}, nil, 1, 3), &audsched.Buffer{}, quiet)
	if !errors.Is(err, audsched.ErrSilentRender) {
		t.Errorf("Render() error = %v, want ErrSilentRender", err)
	}

	var buf audsched.Buffer
	res, err := audsched.Render(context.Background(), newEngine(t, []*instrument.Handle{h}, nil, 1, 3), &buf,
		quiet, audsched.WithChannels(2))
	if err != nil {
		t.Fatalf("Render(WithChannels) error = %v", err)
	}
	if res.Frames != 3 || buf.Channels != 2 || !slices.Equal(buf.Frames[2], []int32{0, 0}) {
		t.Errorf("Render(WithChannels) = %+v, frames %v", res, buf.Frames)
	}

	_, err = audsched.Render(context.Background(), newEngine(t, nil, nil, 1, 3), &buf, quiet, audsched.WithChannels(-1))
	if !errors.Is(err, audsched.ErrInvalidChannels) {
		t.Errorf("Render(WithChannels(-1)) error = %v, want ErrInvalidChannels", err)
	}
}

func TestRender_Digest(t *testing.T) {
	t.Parallel()

	render := func(value int16) uint64 {
		a := audiotest.Handle(audiotest.NewFinite(audio.S16(value), 3))
		b := audiotest.Handle(audiotest.NewConstant(audio.F32(0.5)))
		events := engine.Events(at(1, b, audiotest.Stop), at(2, a, audiotest.Play))

		res, err := audsched.Render(context.Background(), newEngine(t, []*instrument.Handle{a, b}, events, 3, 12), &audsched.Buffer{}, quiet)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		return res.Digest
	}

	first, second := render(100), render(100)
	if first != second {
		t.Errorf("digests differ: %x vs %x", first, second)
	}
	if other := render(101); other == first {
		t.Errorf("different input rendered the same digest %x", other)
	}
}

func TestRender_DigestCoversSilence(t *testing.T) {
	t.Parallel()

	// one identical produced frame, preceded by one or two silent steps
	render := func(at1 int) uint64 {
		a := audiotest.Handle(audiotest.NewFinite(audio.S16(5), 0))
		events := engine.Events(at(at1, a, audiotest.Play), at(at1+1, a, audiotest.Stop))

		res, err := audsched.Render(context.Background(), newEngine(t, []*instrument.Handle{a}, events, 1, 4), &audsched.Buffer{}, quiet)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if res.Frames != 4 {
			t.Fatalf("Frames = %d, want 4", res.Frames)
		}
		return res.Digest
	}

	if early, late := render(1), render(2); early == late {
		t.Errorf("moving the silence kept digest %x", early)
	}
}

func TestRender_OnceErrors(t *testing.T) {
	t.Parallel()

	build := func() *engine.Engine {
		inst := audiotest.NewConstant(audio.S16(1))
		inst.Errors = map[int]error{2: instrument.OnceError(errors.New("glitch"))}
		return newEngine(t, []*instrument.Handle{audiotest.Handle(inst)}, nil, 1, 4)
	}

	var buf audsched.Buffer
	res, err := audsched.Render(context.Background(), build(), &buf, quiet)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if res.OnceErrors != 1 || res.Frames != 4 || buf.Frames[1][0] != 0 {
		t.Errorf("Result = %+v, frames %v", res, buf.Frames)
	}

	_, err = audsched.Render(context.Background(), build(), &audsched.Buffer{}, quiet, audsched.WithStrict())
	if !instrument.IsOnce(err) {
		t.Errorf("strict Render() error = %v, want the once error", err)
	}
}

func TestRender_FatalError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	inst := audiotest.NewConstant(audio.S16(1))
	inst.Errors = map[int]error{3: boom}

	res, err := audsched.Render(context.Background(),
		newEngine(t, []*instrument.Handle{audiotest.Handle(inst)}, nil, 1, 10), &audsched.Buffer{}, quiet)

	var ee *engine.Error
	if !errors.As(err, &ee) || !errors.Is(err, boom) {
		t.Fatalf("Render() error = %v, want engine error", err)
	}
	if res.Frames != 2 {
		t.Errorf("Frames = %d, want 2", res.Frames)
	}
}

func TestRender_ChannelChange(t *testing.T) {
	t.Parallel()

	mono := audiotest.Handle(audiotest.NewFinite(audio.S16(1), 1))
	stereo := audiotest.Handle(audiotest.NewFinite(audio.S16(1, 1), 0))
	events := engine.Events(at(1, stereo, audiotest.Play))

	_, err := audsched.Render(context.Background(),
		newEngine(t, []*instrument.Handle{mono}, events, 1, 4), &audsched.Buffer{}, quiet)
	if !errors.Is(err, audio.ErrChannelInconsistency) {
		t.Errorf("Render() error = %v, want ErrChannelInconsistency", err)
	}
}

func TestRender_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := audiotest.Handle(audiotest.NewSilent(1))
	res, err := audsched.Render(ctx, newEngine(t, []*instrument.Handle{h}, nil, 1, 100), &audsched.Buffer{}, quiet)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if res.Frames != 0 {
		t.Errorf("Frames = %d, want 0", res.Frames)
	}
}

func TestRenderWAV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	h := audiotest.Handle(audiotest.NewFinite(audio.S16(100, -100), 3))
	res, err := audsched.RenderWAV(context.Background(), newEngine(t, []*instrument.Handle{h}, nil, 2, 4), f, 8000, quiet)
	if err != nil {
		t.Fatalf("RenderWAV() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if res.Frames != 4 || res.Channels != 2 {
		t.Errorf("Result = %+v", res)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	src, err := wav.Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	frames, err := audio.ReadAll(src, 16)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	const v = 100 * 65537
	want := []audio.Sample{audio.S32(v, -v), audio.S32(v, -v), audio.S32(v, -v), audio.S32(0, 0)}
	if len(frames) != len(want) {
		t.Fatalf("decoded %d frames, want %d", len(frames), len(want))
	}
	for i := range want {
		if !frames[i].Equal(want[i]) {
			t.Errorf("frame %d = %v, want %v", i, frames[i], want[i])
		}
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
}

func TestRenderWAV_BadBitDepth(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	h := audiotest.Handle(audiotest.NewSilent(1))
	_, err = audsched.RenderWAV(context.Background(), newEngine(t, []*instrument.Handle{h}, nil, 1, 2), f, 8000,
		quiet, audsched.WithBitDepth(12))
	if !errors.Is(err, wav.ErrUnsupportedBitDepth) {
		t.Errorf("RenderWAV() error = %v, want ErrUnsupportedBitDepth", err)
	}
}
