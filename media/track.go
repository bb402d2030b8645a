package media

import (
	"fmt"
	"log"
	"time"
)

// Track controls one non-looping media resource, such as the voice note
// attached to a discovered surprise.
type Track struct {
	ref     string
	stream  Stream
	playing bool
	ended   bool
	err     error
	closed  bool
}

// NewTrack opens ref and, if autoPlay is set, tries to start it. A refused
// autoplay is not an error: the track is returned paused with Err set.
func NewTrack(op Opener, ref string, autoPlay bool) (*Track, error) {
	s, err := op.Open(ref, false)
	if err != nil {
		return nil, fmt.Errorf("open track %q: %w", ref, err)
	}
	t := &Track{ref: ref, stream: s}
	if autoPlay {
		t.Play()
	}
	return t, nil
}

// Ref returns the resource reference the track was opened with.
func (t *Track) Ref() string { return t.ref }

// Play starts playback and reports whether it did. A track that reached its
// end starts again from the beginning.
func (t *Track) Play() bool {
	if t.closed {
		return false
	}
	if t.ended {
		if err := t.stream.Seek(0); err != nil {
			t.fail(err)
			return false
		}
		t.ended = false
	}
	if err := t.stream.Play(); err != nil {
		t.fail(err)
		return false
	}
	t.playing = true
	t.err = nil
	return true
}

func (t *Track) fail(err error) {
	t.playing = false
	t.err = err
	log.Printf("surprise: track %q: play: %v", t.ref, err)
}

// Pause stops playback, keeping the position.
func (t *Track) Pause() {
	if t.closed {
		return
	}
	t.stream.Pause()
	t.playing = false
}

// Toggle pauses a playing track or plays a paused one. It returns the new
// playing state.
func (t *Track) Toggle() bool {
	if t.playing {
		t.Pause()
		return false
	}
	return t.Play()
}

// Playing reports whether the track is playing.
func (t *Track) Playing() bool { return t.playing }

// Ended reports whether the track played through to its end.
func (t *Track) Ended() bool { return t.ended }

// Err returns the last playback failure, or nil.
func (t *Track) Err() error { return t.err }

// Seek moves the position to d, clamped to the track length.
func (t *Track) Seek(d time.Duration) error {
	if t.closed {
		return ErrClosed
	}
	if d < 0 {
		d = 0
	}
	if total := t.stream.Duration(); total > 0 && d > total {
		d = total
	}
	if err := t.stream.Seek(d); err != nil {
		return fmt.Errorf("seek track %q: %w", t.ref, err)
	}
	t.ended = false
	return nil
}

// Elapsed returns the current position.
func (t *Track) Elapsed() time.Duration {
	if t.closed {
		return 0
	}
	return t.stream.Position()
}

// Total returns the track length, or 0 if unknown.
func (t *Track) Total() time.Duration {
	if t.closed {
		return 0
	}
	return t.stream.Duration()
}

// Progress returns Elapsed/Total in [0, 1].
func (t *Track) Progress() float64 {
	total := t.Total()
	if total <= 0 {
		return 0
	}
	p := float64(t.Elapsed()) / float64(total)
	if p > 1 {
		p = 1
	}
	return p
}

// Sync is called once per frame. It notices when the stream stopped on its
// own at the end and flips the track to not playing.
func (t *Track) Sync() {
	if t.closed || !t.playing || t.stream.IsPlaying() {
		return
	}
	t.playing = false
	if total := t.stream.Duration(); total > 0 && t.stream.Position() >= total {
		t.ended = true
	}
}

// Close pauses, rewinds and releases the stream. It is safe to call more
// than once.
func (t *Track) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.playing = false
	t.stream.Pause()
	if err := t.stream.Seek(0); err != nil {
		log.Printf("surprise: track %q: rewind: %v", t.ref, err)
	}
	return t.stream.Close()
}
