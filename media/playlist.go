package media

import (
	"fmt"
	"log"
)

// PlaylistOption configures a Playlist.
type PlaylistOption func(*Playlist)

// WithExisting hands an already created stream to the playlist. It is adopted
// as the current track's stream on the first Mount, without pausing or
// rewinding it. Ownership moves to the playlist: the caller must not touch the
// stream afterwards.
func WithExisting(s Stream) PlaylistOption {
	return func(p *Playlist) { p.existing = s }
}

// OnSongChange registers fn to be called with the new index after every
// track change.
func OnSongChange(fn func(index int)) PlaylistOption {
	return func(p *Playlist) { p.onSongChange = fn }
}

// WithStartIndex selects the initial track. Out of range values wrap.
func WithStartIndex(i int) PlaylistOption {
	return func(p *Playlist) { p.index = i }
}

// Playlist plays an ordered, non-empty list of tracks on a loop. Only one
// track is loaded at a time; changing track closes the old stream and opens a
// fresh looped one immediately, inside the calling handler.
//
// The transport state survives a track change: a playing playlist starts the
// new track, a paused one loads it paused.
type Playlist struct {
	opener Opener
	tracks []string
	index  int

	stream   Stream
	existing Stream
	mounted  bool
	playing  bool
	err      error

	onSongChange func(int)
}

// NewPlaylist returns a stopped playlist positioned on the first track.
func NewPlaylist(op Opener, tracks []string, opts ...PlaylistOption) (*Playlist, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyPlaylist
	}
	p := &Playlist{
		opener: op,
		tracks: append([]string(nil), tracks...),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.index = wrap(p.index, len(p.tracks))
	return p, nil
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Mount adopts the stream given with WithExisting, mirroring whether it is
// playing. Only the first call does anything.
func (p *Playlist) Mount() {
	if p.mounted {
		return
	}
	p.mounted = true
	if p.existing == nil {
		return
	}
	p.stream = p.existing
	p.existing = nil
	p.playing = p.stream.IsPlaying()
}

// Len returns the number of tracks.
func (p *Playlist) Len() int { return len(p.tracks) }

// Index returns the current track index.
func (p *Playlist) Index() int { return p.index }

// Track returns the current track reference.
func (p *Playlist) Track() string { return p.tracks[p.index] }

// Tracks returns a copy of the track list.
func (p *Playlist) Tracks() []string { return append([]string(nil), p.tracks...) }

// Label returns the one-based position, e.g. "2/5".
func (p *Playlist) Label() string {
	return fmt.Sprintf("%d/%d", p.index+1, len(p.tracks))
}

// Playing reports whether the current track is playing.
func (p *Playlist) Playing() bool { return p.playing }

// Err returns the last playback failure, or nil.
func (p *Playlist) Err() error { return p.err }

// Next moves to the following track, wrapping after the last. A paused
// playlist loads the new track paused; only a playing one starts it.
func (p *Playlist) Next() {
	p.change(wrap(p.index+1, len(p.tracks)))
}

// Previous moves to the preceding track, wrapping before the first. Like
// Next, it keeps the playlist's playing or paused state.
func (p *Playlist) Previous() {
	p.change(wrap(p.index-1, len(p.tracks)))
}

func (p *Playlist) change(index int) {
	wasPlaying := p.playing
	p.release()
	p.index = index
	if p.onSongChange != nil {
		p.onSongChange(index)
	}
	if !p.open() {
		return
	}
	if wasPlaying {
		p.start()
	}
}

// release stops and closes the current stream.
func (p *Playlist) release() {
	if p.stream == nil {
		return
	}
	p.stream.Pause()
	if err := p.stream.Close(); err != nil {
		log.Printf("surprise: playlist: close %q: %v", p.tracks[p.index], err)
	}
	p.stream = nil
	p.playing = false
}

func (p *Playlist) open() bool {
	s, err := p.opener.Open(p.tracks[p.index], true)
	if err != nil {
		p.fail(err)
		return false
	}
	p.stream = s
	return true
}

func (p *Playlist) start() bool {
	if err := p.stream.Play(); err != nil {
		p.fail(err)
		return false
	}
	p.playing = true
	p.err = nil
	return true
}

func (p *Playlist) fail(err error) {
	p.playing = false
	p.err = err
	log.Printf("surprise: playlist: play %q: %v", p.tracks[p.index], err)
}

// Play starts the current track, opening it first if nothing is loaded. It
// reports whether playback started.
func (p *Playlist) Play() bool {
	if p.stream == nil && !p.open() {
		return false
	}
	return p.start()
}

// Pause pauses the current track.
func (p *Playlist) Pause() {
	if p.stream != nil {
		p.stream.Pause()
	}
	p.playing = false
}

// Toggle pauses when playing and plays otherwise. It returns the new playing
// state.
func (p *Playlist) Toggle() bool {
	if p.playing {
		p.Pause()
		return false
	}
	return p.Play()
}

// Close releases the current stream and any stream still waiting for
// adoption.
func (p *Playlist) Close() error {
	p.release()
	if p.existing != nil {
		err := p.existing.Close()
		p.existing = nil
		return err
	}
	return nil
}
