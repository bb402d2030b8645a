// Package media controls audio playback for the scene: a single Track with
// transport and seek, and a looping Playlist. Both are backend-agnostic and
// talk to audio through the Stream and Opener interfaces.
//
// Playback failures are soft. A Play that is refused (audio output not ready,
// decode error, missing file) is logged, recorded in Err and leaves the
// control in the not-playing state; it never panics and is never returned as
// an error the caller has to handle.
package media

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

var (
	// ErrEmptyPlaylist is returned by NewPlaylist when no tracks are given.
	ErrEmptyPlaylist = errors.New("media: playlist has no tracks")
	// ErrNotReady is returned by Stream.Play when the audio output cannot
	// start yet, for example before the first user gesture.
	ErrNotReady = errors.New("media: audio output not ready")
	// ErrUnsupportedFormat is returned by openers for unknown file types.
	ErrUnsupportedFormat = errors.New("media: unsupported audio format")
	// ErrClosed is returned when using a stream after Close.
	ErrClosed = errors.New("media: stream closed")
)

// Stream is one playable audio resource.
type Stream interface {
	// Play starts or resumes playback.
	Play() error
	Pause()
	IsPlaying() bool
	Position() time.Duration
	// Duration is the total length, or 0 if unknown.
	Duration() time.Duration
	Seek(time.Duration) error
	Close() error
}

// Opener creates streams from resource references. A looped stream restarts
// from the beginning when it reaches its end.
type Opener interface {
	Open(ref string, loop bool) (Stream, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ref string, loop bool) (Stream, error)

// Open calls f.
func (f OpenerFunc) Open(ref string, loop bool) (Stream, error) { return f(ref, loop) }

// Format identifies an encoded audio format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatWAV
	FormatOGG
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatWAV:
		return "wav"
	case FormatOGG:
		return "ogg"
	}
	return "unknown"
}

// DetectFormat picks the format from a reference's file extension.
func DetectFormat(ref string) (Format, error) {
	switch strings.ToLower(path.Ext(ref)) {
	case ".mp3":
		return FormatMP3, nil
	case ".wav":
		return FormatWAV, nil
	case ".ogg":
		return FormatOGG, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ref)
}

// AssetPath turns a reference such as "/song.mp3" into a path usable with
// io/fs.
func AssetPath(ref string) string {
	return strings.TrimPrefix(path.Clean("/"+ref), "/")
}

// FormatTime renders d as minutes and zero-padded seconds, e.g. "3:07".
// Fractions of a second are truncated and negative values render as "0:00".
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}
