// Package mediatest provides in-memory media streams for tests.
package mediatest

import (
	"errors"
	"time"

	"github.com/phanxgames/surprise/media"
)

// Stream is a fake media.Stream. Time only moves through Advance.
type Stream struct {
	Ref     string
	Loop    bool
	Length  time.Duration
	PlayErr error
	SeekErr error
	Playing bool
	Pos     time.Duration
	Closed  bool
	Plays   int
	Pauses  int
}

// Play starts the stream unless PlayErr is set.
func (s *Stream) Play() error {
	if s.Closed {
		return media.ErrClosed
	}
	s.Plays++
	if s.PlayErr != nil {
		s.Playing = false
		return s.PlayErr
	}
	s.Playing = true
	return nil
}

func (s *Stream) Pause() {
	s.Pauses++
	s.Playing = false
}

func (s *Stream) IsPlaying() bool { return s.Playing }

func (s *Stream) Position() time.Duration { return s.Pos }

func (s *Stream) Duration() time.Duration { return s.Length }

func (s *Stream) Seek(d time.Duration) error {
	if s.Closed {
		return media.ErrClosed
	}
	if s.SeekErr != nil {
		return s.SeekErr
	}
	s.Pos = d
	return nil
}

func (s *Stream) Close() error {
	s.Closed = true
	s.Playing = false
	return nil
}

// Advance moves a playing stream forward by d. A non-looping stream stops at
// its end; a looping one wraps.
func (s *Stream) Advance(d time.Duration) {
	if !s.Playing {
		return
	}
	s.Pos += d
	if s.Length <= 0 || s.Pos < s.Length {
		return
	}
	if s.Loop {
		s.Pos %= s.Length
		return
	}
	s.Pos = s.Length
	s.Playing = false
}

// ErrMissing is returned by Opener for references listed in Missing.
var ErrMissing = errors.New("mediatest: missing resource")

// Opener records every stream it opens.
type Opener struct {
	// Length is given to every new stream.
	Length time.Duration
	// PlayErr is given to every new stream, simulating refused playback.
	PlayErr error
	// Missing references fail to open.
	Missing map[string]bool

	Opened []*Stream
}

// Open implements media.Opener.
func (o *Opener) Open(ref string, loop bool) (media.Stream, error) {
	if o.Missing[ref] {
		return nil, ErrMissing
	}
	s := &Stream{Ref: ref, Loop: loop, Length: o.Length, PlayErr: o.PlayErr}
	o.Opened = append(o.Opened, s)
	return s, nil
}

// Last returns the most recently opened stream, or nil.
func (o *Opener) Last() *Stream {
	if len(o.Opened) == 0 {
		return nil
	}
	return o.Opened[len(o.Opened)-1]
}
