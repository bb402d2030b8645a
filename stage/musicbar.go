package stage

import (
	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/media"
)

const (
	musicButtonWidth = 48
	musicBarSpacing  = 8
)

// MusicBar shows previous, play/pause and next buttons for a playlist, with
// an "i/n" track label.
type MusicBar struct {
	playlist *media.Playlist
	node     *surprise.Node
	prev     *button
	toggle   *button
	next     *button
	label    *surprise.Node
}

// NewMusicBar mounts playlist, adopting any stream it was given, and places
// the bar with its top-left corner at (x, y) under parent.
func NewMusicBar(parent *surprise.Node, playlist *media.Playlist, font *surprise.Font, x, y float64) *MusicBar {
	m := &MusicBar{playlist: playlist}
	playlist.Mount()

	m.node = surprise.NewContainer("music_bar")
	m.node.Interactable = true
	m.node.SetPosition(x, y)

	m.prev = newButton("music_prev", "<<", font, musicButtonWidth, rowHeight, colorButton, func() {
		m.playlist.Previous()
		m.refresh()
	})
	m.toggle = newButton("music_toggle", ">", font, musicButtonWidth, rowHeight, colorButton, func() {
		m.playlist.Toggle()
		m.refresh()
	})
	m.next = newButton("music_next", ">>", font, musicButtonWidth, rowHeight, colorButton, func() {
		m.playlist.Next()
		m.refresh()
	})
	for i, b := range []*button{m.prev, m.toggle, m.next} {
		b.node.SetPosition(float64(i)*(musicButtonWidth+musicBarSpacing)+musicButtonWidth/2, rowHeight/2)
		m.node.AddChild(b.node)
	}

	m.label = newLabel("music_label", "", font, 0, surprise.TextAlignLeft)
	m.label.SetPosition(3*(musicButtonWidth+musicBarSpacing), rowHeight/4)
	m.node.AddChild(m.label)

	m.node.OnUpdate = func(float64) { m.refresh() }
	m.refresh()
	parent.AddChild(m.node)
	return m
}

// Node returns the bar's container.
func (m *MusicBar) Node() *surprise.Node { return m.node }

// Playlist returns the controlled playlist.
func (m *MusicBar) Playlist() *media.Playlist { return m.playlist }

func (m *MusicBar) refresh() {
	if m.playlist.Playing() {
		m.toggle.setLabel("||")
	} else {
		m.toggle.setLabel(">")
	}
	m.label.Text.SetContent(m.playlist.Label())
}
