// Package ebitenaudio plays media through Ebitengine's audio package.
package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/phanxgames/surprise/media"
)

// bytesPerFrame is the size of one stereo float32 sample frame.
const bytesPerFrame = 8

// Opener decodes assets from an fs.FS into Ebitengine audio players.
type Opener struct {
	ctx    *audio.Context
	assets fs.FS
	volume float64
}

// New returns an Opener reading from assets. If no audio context exists yet
// one is created at sampleRate; Ebitengine allows only one per process.
func New(assets fs.FS, sampleRate int, volume float64) *Opener {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Opener{ctx: ctx, assets: assets, volume: volume}
}

// Open implements media.Opener.
func (o *Opener) Open(ref string, loop bool) (media.Stream, error) {
	format, err := media.DetectFormat(ref)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(o.assets, media.AssetPath(ref))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", ref, err)
	}
	src, length, err := decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", ref, err)
	}
	var r io.Reader = src
	if loop && length > 0 {
		r = audio.NewInfiniteLoopF32(src, length)
	}
	p, err := o.ctx.NewPlayerF32(r)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", ref, err)
	}
	p.SetVolume(o.volume)
	dur := time.Duration(length) * time.Second / time.Duration(bytesPerFrame*o.ctx.SampleRate())
	return &stream{ctx: o.ctx, player: p, duration: dur}, nil
}

type decoded interface {
	io.ReadSeeker
	Length() int64
}

func decode(f media.Format, data []byte) (io.ReadSeeker, int64, error) {
	r := bytes.NewReader(data)
	var (
		s   decoded
		err error
	)
	switch f {
	case media.FormatMP3:
		s, err = mp3.DecodeF32(r)
	case media.FormatWAV:
		s, err = wav.DecodeF32(r)
	case media.FormatOGG:
		s, err = vorbis.DecodeF32(r)
	default:
		return nil, 0, media.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, 0, err
	}
	return s, s.Length(), nil
}

type stream struct {
	ctx      *audio.Context
	player   *audio.Player
	duration time.Duration
	closed   bool
}

// Play refuses to start until the audio context is ready, which on browsers
// means after the first user gesture.
func (s *stream) Play() error {
	if s.closed {
		return media.ErrClosed
	}
	if !s.ctx.IsReady() {
		return media.ErrNotReady
	}
	s.player.Play()
	return nil
}

func (s *stream) Pause() {
	if !s.closed {
		s.player.Pause()
	}
}

func (s *stream) IsPlaying() bool {
	return !s.closed && s.player.IsPlaying()
}

func (s *stream) Position() time.Duration {
	if s.closed {
		return 0
	}
	pos := s.player.Position()
	if s.duration > 0 && pos > s.duration {
		pos %= s.duration
	}
	return pos
}

func (s *stream) Duration() time.Duration { return s.duration }

func (s *stream) Seek(d time.Duration) error {
	if s.closed {
		return media.ErrClosed
	}
	return s.player.SetPosition(d)
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.player.Close()
}
