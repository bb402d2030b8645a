// Package beepaudio plays media through gopxl/beep and its speaker.
package beepaudio

import (
	"fmt"
	"io"
	"io/fs"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/phanxgames/surprise/media"
)

const resampleQuality = 4

// Opener decodes assets and plays them on the shared speaker. Every stream
// is resampled to the speaker rate and mixed.
type Opener struct {
	mu          sync.Mutex
	assets      fs.FS
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
}

// New returns an Opener reading from assets. Init must be called before any
// stream can play.
func New(assets fs.FS, sampleRate int, volume float64) *Opener {
	return &Opener{
		assets: assets,
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Init starts the speaker with a 100ms buffer.
func (o *Opener) Init() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized {
		return nil
	}
	if err := speaker.Init(o.rate, o.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(o.mixer)
	o.initialized = true
	return nil
}

// Close silences every stream.
func (o *Opener) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	o.initialized = false
}

func (o *Opener) ready() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.initialized
}

// Open implements media.Opener.
func (o *Opener) Open(ref string, loop bool) (media.Stream, error) {
	format, err := media.DetectFormat(ref)
	if err != nil {
		return nil, err
	}
	f, err := o.assets.Open(media.AssetPath(ref))
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", ref, err)
	}
	src, sf, err := decode(format, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %q: %w", ref, err)
	}

	var s beep.Streamer = src
	if loop {
		s = beep.Loop(-1, src)
	}
	if sf.SampleRate != o.rate {
		s = beep.Resample(resampleQuality, sf.SampleRate, o.rate, s)
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: true}
	st := &stream{
		owner:  o,
		src:    src,
		format: sf,
		ctrl:   ctrl,
	}
	st.out = &drainWatch{
		Streamer: &effects.Volume{Streamer: ctrl, Base: 2, Volume: gain(o.volume), Silent: o.volume <= 0},
		s:        st,
	}
	return st, nil
}

// drainWatch notices when the mixer is about to drop a finished stream, so
// the next Play adds it back. It runs with the speaker lock held.
type drainWatch struct {
	beep.Streamer
	s *stream
}

func (d *drainWatch) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)
	if !ok {
		d.s.mixed = false
	}
	return n, ok
}

// gain maps a linear volume in (0, 1] to effects.Volume's base-2 exponent.
func gain(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}

func decode(f media.Format, r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	switch f {
	case media.FormatMP3:
		return mp3.Decode(r)
	case media.FormatWAV:
		return wav.Decode(r)
	case media.FormatOGG:
		return vorbis.Decode(r)
	}
	return nil, beep.Format{}, media.ErrUnsupportedFormat
}

type stream struct {
	owner  *Opener
	src    beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	out    beep.Streamer
	// mixed is guarded by the speaker lock.
	mixed  bool
	closed bool
}

// Play unpauses the stream, adding it to the mixer when it is not there yet:
// on the first call, and again after the mixer dropped it at its end.
func (s *stream) Play() error {
	if s.closed {
		return media.ErrClosed
	}
	if !s.owner.ready() {
		return media.ErrNotReady
	}
	speaker.Lock()
	defer speaker.Unlock()
	s.ctrl.Paused = false
	if !s.mixed {
		s.mixed = true
		s.owner.mixer.Add(s.out)
	}
	return nil
}

func (s *stream) Pause() {
	if s.closed {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

func (s *stream) IsPlaying() bool {
	if s.closed {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	if !s.mixed || s.ctrl.Paused {
		return false
	}
	// A finished non-looping source stops at its length.
	return s.src.Position() < s.src.Len()
}

func (s *stream) Position() time.Duration {
	if s.closed {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.format.SampleRate.D(s.src.Position())
}

func (s *stream) Duration() time.Duration {
	return s.format.SampleRate.D(s.src.Len())
}

func (s *stream) Seek(d time.Duration) error {
	if s.closed {
		return media.ErrClosed
	}
	n := s.format.SampleRate.N(d)
	if n > s.src.Len() {
		n = s.src.Len()
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.src.Seek(n)
}

// Close detaches the stream from the speaker and releases the decoder.
func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Lock()
	s.ctrl.Streamer = nil
	s.ctrl.Paused = true
	speaker.Unlock()
	return s.src.Close()
}
