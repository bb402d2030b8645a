package stage

import (
	"log"
	"math"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/media"
	"github.com/phanxgames/surprise/quiz"
	"github.com/phanxgames/surprise/reveal"
)

const (
	overlayFadeSeconds = 0.25
	panelMaxWidth      = 560
	panelPad           = 24
	panelGap           = 12
	rowHeight          = 36
	imageMaxHeight     = 240
	seekBarHeight      = 8
)

// OverlayOption configures an Overlay.
type OverlayOption func(*Overlay)

// WithImages sets the decoded images that payload image references resolve
// against. References missing from the set are skipped.
func WithImages(images ImageSet) OverlayOption {
	return func(o *Overlay) { o.images = images }
}

// WithOpener enables audio payloads. Without an opener audio is skipped.
func WithOpener(op media.Opener) OverlayOption {
	return func(o *Overlay) { o.opener = op }
}

// WithFallbacks overrides the quiz feedback used for options without a
// response.
func WithFallbacks(fb quiz.Fallbacks) OverlayOption {
	return func(o *Overlay) { o.fallbacks = fb }
}

// WithMusic pauses p while a payload's audio is showing and resumes it on
// dismiss if it was playing.
func WithMusic(p *media.Playlist) OverlayOption {
	return func(o *Overlay) { o.music = p }
}

// OnDismiss registers fn to run after the overlay is closed.
func OnDismiss(fn func()) OverlayOption {
	return func(o *Overlay) { o.onDismiss = fn }
}

// Overlay presents the payload of a discovered object on top of the scene:
// its message, optional image, audio controls and quiz. Clicking the backdrop
// or the close button dismisses it.
type Overlay struct {
	scene     *surprise.Scene
	viewport  surprise.Rect
	font      *surprise.Font
	images    ImageSet
	opener    media.Opener
	fallbacks quiz.Fallbacks
	music     *media.Playlist
	onDismiss func()

	root     *surprise.Node
	backdrop *surprise.Node
	panel    *surprise.Node
	body     *surprise.Node
	fade     *surprise.TweenGroup

	payload     reveal.Payload
	visible     bool
	resumeMusic bool

	track    *media.Track
	playBtn  *button
	timeText *surprise.Node
	seekBar  *surprise.Node
	progress *surprise.Node

	quiz     *quiz.Session
	options  []*button
	feedback *surprise.Node
	closeBtn *button
}

// NewOverlay creates a hidden overlay covering viewport and adds it to the
// scene root.
func NewOverlay(scene *surprise.Scene, viewport surprise.Rect, font *surprise.Font, opts ...OverlayOption) *Overlay {
	o := &Overlay{
		scene:     scene,
		viewport:  viewport,
		font:      font,
		fallbacks: quiz.DefaultFallbacks(),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.root = surprise.NewContainer("overlay")
	o.root.Interactable = true
	o.root.Visible = false
	o.root.SetZIndex(zOverlay)
	o.root.OnUpdate = o.update

	o.backdrop = surprise.NewShape("backdrop", surprise.ShapeRect, viewport.Width, viewport.Height, colorBackdrop)
	o.backdrop.SetPivot(0, 0)
	o.backdrop.SetPosition(viewport.X, viewport.Y)
	o.backdrop.Interactable = true
	o.backdrop.OnClick = func(surprise.ClickContext) { o.Dismiss() }
	o.root.AddChild(o.backdrop)

	width := math.Min(panelMaxWidth, viewport.Width*0.8)
	o.panel = surprise.NewShape("panel", surprise.ShapeRect, width, 0, colorPanel)
	// The panel swallows clicks so they do not reach the backdrop.
	o.panel.Interactable = true
	o.root.AddChild(o.panel)

	scene.Root().AddChild(o.root)
	return o
}

// Visible reports whether a payload is showing.
func (o *Overlay) Visible() bool { return o.visible }

// Payload returns the payload last shown.
func (o *Overlay) Payload() reveal.Payload { return o.payload }

// Track returns the audio control of the current payload, or nil.
func (o *Overlay) Track() *media.Track { return o.track }

// Quiz returns the quiz session of the current payload, or nil.
func (o *Overlay) Quiz() *quiz.Session { return o.quiz }

// Root returns the overlay's container node.
func (o *Overlay) Root() *surprise.Node { return o.root }

// Show replaces whatever is showing with p and fades the overlay in.
func (o *Overlay) Show(p reveal.Payload) {
	if o.visible {
		o.clear()
	}
	o.payload = p
	o.visible = true
	o.root.Visible = true

	o.body = surprise.NewContainer("body")
	o.panel.AddChild(o.body)
	o.layout(p)
	o.refresh()

	o.root.SetAlpha(0)
	o.fade = surprise.TweenAlpha(o.root, 1, overlayFadeSeconds, ease.OutQuad)
}

// Dismiss hides the overlay, stops the payload audio and resumes the music
// it interrupted.
func (o *Overlay) Dismiss() {
	if !o.visible {
		return
	}
	o.clear()
	o.visible = false
	o.root.Visible = false
	if o.onDismiss != nil {
		o.onDismiss()
	}
}

// clear releases everything built for the current payload.
func (o *Overlay) clear() {
	if o.track != nil {
		if err := o.track.Close(); err != nil {
			log.Printf("surprise: overlay: close %q: %v", o.track.Ref(), err)
		}
		o.track = nil
	}
	if o.resumeMusic {
		o.resumeMusic = false
		o.music.Play()
	}
	o.quiz = nil
	o.options = nil
	o.playBtn, o.timeText, o.seekBar, o.progress = nil, nil, nil, nil
	o.feedback, o.closeBtn = nil, nil
	o.fade = nil
	if o.body != nil {
		o.body.Dispose()
		o.body = nil
	}
}

func (o *Overlay) lineHeight() float64 {
	if o.font == nil {
		return 18
	}
	return o.font.LineHeight()
}

// text adds a wrapped label at y and returns the y below it.
func (o *Overlay) text(name, content string, y float64) (*surprise.Node, float64) {
	inner := o.panel.Width - 2*panelPad
	n := newLabel(name, content, o.font, inner, surprise.TextAlignCenter)
	_, h := n.Text.Measure()
	n.Y = y
	o.centerText(n)
	o.body.AddChild(n)
	return n, y + math.Max(h, o.lineHeight()) + panelGap
}

// centerText centers a label horizontally in the panel.
func (o *Overlay) centerText(n *surprise.Node) {
	w, _ := n.Text.Measure()
	n.SetPosition((o.panel.Width-w)/2, n.Y)
}

func (o *Overlay) layout(p reveal.Payload) {
	inner := o.panel.Width - 2*panelPad
	y := float64(panelPad)

	_, y = o.text("message", p.Message, y)

	if img := o.images.Get(p.Image); img != nil {
		n := surprise.NewImage("image", img)
		s := math.Min(1, math.Min(inner/n.Width, imageMaxHeight/n.Height))
		n.SetScale(s, s)
		n.SetPosition(panelPad+(inner-n.Width*s)/2, y)
		o.body.AddChild(n)
		y += n.Height*s + panelGap
	}

	if p.HasAudio() {
		y = o.layoutAudio(p.Audio, y)
	}

	if p.HasQuiz() {
		y = o.layoutQuiz(*p.Quiz, y)
	}

	o.closeBtn = newButton("close", "Cerrar", o.font, 140, rowHeight, colorButton, o.Dismiss)
	o.closeBtn.node.SetPosition(o.panel.Width/2, y+rowHeight/2)
	o.body.AddChild(o.closeBtn.node)
	y += rowHeight + panelPad

	o.panel.Height = y
	o.panel.SetPivot(o.panel.Width/2, y/2)
	o.panel.SetPosition(o.viewport.X+o.viewport.Width/2, o.viewport.Y+o.viewport.Height/2)
}

func (o *Overlay) layoutAudio(ref string, y float64) float64 {
	if o.opener == nil {
		log.Printf("surprise: overlay: no audio backend for %q", ref)
		return y
	}
	t, err := media.NewTrack(o.opener, ref, false)
	if err != nil {
		log.Printf("surprise: overlay: %v", err)
		return y
	}
	o.track = t
	if o.music != nil && o.music.Playing() {
		o.music.Pause()
		o.resumeMusic = true
	}
	// Autoplay may be refused; the controls still show and the user can
	// start playback with the button.
	t.Play()

	inner := o.panel.Width - 2*panelPad
	o.playBtn = newButton("audio_toggle", ">", o.font, 48, rowHeight, colorButton, func() {
		o.track.Toggle()
		o.refresh()
	})
	o.playBtn.node.SetPosition(panelPad+24, y+rowHeight/2)
	o.body.AddChild(o.playBtn.node)

	o.timeText = newLabel("audio_time", "", o.font, 0, surprise.TextAlignLeft)
	o.timeText.SetPosition(panelPad+60, y+(rowHeight-o.lineHeight())/2)
	o.body.AddChild(o.timeText)
	y += rowHeight + panelGap/2

	o.seekBar = surprise.NewShape("audio_seek", surprise.ShapeRect, inner, seekBarHeight, colorTrack)
	o.seekBar.SetPivot(0, 0)
	o.seekBar.SetPosition(panelPad, y)
	o.seekBar.Interactable = true
	o.seekBar.CursorPointer = true
	o.seekBar.OnClick = func(ctx surprise.ClickContext) {
		frac := ctx.LocalX / o.seekBar.Width
		if err := o.track.Seek(time.Duration(frac * float64(o.track.Total()))); err != nil {
			log.Printf("surprise: overlay: seek %q: %v", ref, err)
		}
		o.refresh()
	}
	o.progress = surprise.NewShape("audio_progress", surprise.ShapeRect, 0, seekBarHeight, colorProgress)
	o.progress.SetPivot(0, 0)
	o.seekBar.AddChild(o.progress)
	o.body.AddChild(o.seekBar)
	return y + seekBarHeight + panelGap
}

func (o *Overlay) layoutQuiz(def quiz.Definition, y float64) float64 {
	s, err := quiz.NewWithFallbacks(def, o.fallbacks)
	if err != nil {
		log.Printf("surprise: overlay: quiz: %v", err)
		return y
	}
	o.quiz = s
	_, y = o.text("quiz_question", def.Question, y)

	inner := o.panel.Width - 2*panelPad
	for i, opt := range def.Options {
		b := newButton("quiz_option", opt.Text, o.font, inner, rowHeight, colorButton, func() {
			o.quiz.Select(i)
			o.refresh()
		})
		b.node.SetPosition(o.panel.Width/2, y+rowHeight/2)
		o.body.AddChild(b.node)
		o.options = append(o.options, b)
		y += rowHeight + panelGap/2
	}
	y += panelGap / 2
	o.feedback, y = o.text("quiz_feedback", "", y)
	return y
}

// refresh copies track and quiz state onto the widgets.
func (o *Overlay) refresh() {
	if o.track != nil {
		if o.track.Playing() {
			o.playBtn.setLabel("||")
		} else {
			o.playBtn.setLabel(">")
		}
		o.timeText.Text.SetContent(media.FormatTime(o.track.Elapsed()) + " / " + media.FormatTime(o.track.Total()))
		o.progress.Width = o.seekBar.Width * o.track.Progress()
	}
	if o.quiz != nil {
		for i, b := range o.options {
			b.setEnabled(o.quiz.Interactive(i))
			switch o.quiz.OptionState(i) {
			case quiz.Correct:
				b.node.Color = colorCorrect
			case quiz.Incorrect:
				b.node.Color = colorIncorrect
			case quiz.Neutral:
				b.node.Color = colorNeutral
			default:
				b.node.Color = colorButton
			}
		}
		if fb, ok := o.quiz.Feedback(); ok {
			o.feedback.Text.SetContent(fb.Text)
			o.centerText(o.feedback)
			if fb.Correct {
				o.feedback.Color = colorCorrect
			} else {
				o.feedback.Color = colorIncorrect
			}
		}
	}
}

func (o *Overlay) update(dt float64) {
	if !o.visible {
		return
	}
	if o.fade != nil {
		o.fade.Update(float32(dt))
		if o.fade.Done {
			o.fade = nil
		}
	}
	if o.track != nil {
		o.track.Sync()
	}
	o.refresh()
}
