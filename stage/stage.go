package stage

import (
	"fmt"
	"math"

	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/media"
	"github.com/phanxgames/surprise/quiz"
	"github.com/phanxgames/surprise/reveal"
)

// floorY is the height of the ground the objects rest on.
const floorY = -0.2

// Options configures New.
type Options struct {
	Title    string
	Viewport surprise.Rect
	// Eye and LookAt place the camera. FOV is in degrees; zero keeps the
	// projector default.
	Eye, LookAt surprise.Vec3
	FOV         float64
	Objects     []reveal.Config
	Font        *surprise.Font

	// Playlist, if set, gets a music bar and is paused while payload audio
	// plays.
	Playlist *media.Playlist
	// Opener plays payload audio. Nil disables it.
	Opener    media.Opener
	Images    ImageSet
	Fallbacks quiz.Fallbacks
	Tracker   Tracker
	// OnDiscover runs after the overlay shows the discovered payload.
	OnDiscover func(Discovery)
	// Phase, if set, fixes every object's motion phase.
	Phase *float64
}

// Stage is a complete surprise scene: background, objects, counter, music bar
// and payload overlay.
type Stage struct {
	scene    *surprise.Scene
	proj     *surprise.Projector
	composer *Composer
	overlay  *Overlay
	music    *MusicBar
	hud      *surprise.Node
	counter  *surprise.Node
	torn     bool
}

// New builds the stage into scene.
func New(scene *surprise.Scene, opts Options) *Stage {
	s := &Stage{scene: scene}
	s.proj = surprise.NewProjector(opts.Eye, opts.LookAt, opts.Viewport)
	if opts.FOV > 0 {
		s.proj.FOV = opts.FOV * math.Pi / 180
	}
	scene.ClearColor = colorBackground

	s.buildBackground(opts.Viewport)

	fallbacks := opts.Fallbacks
	if fallbacks == (quiz.Fallbacks{}) {
		fallbacks = quiz.DefaultFallbacks()
	}
	overlayOpts := []OverlayOption{
		WithImages(opts.Images),
		WithFallbacks(fallbacks),
	}
	if opts.Opener != nil {
		overlayOpts = append(overlayOpts, WithOpener(opts.Opener))
	}
	if opts.Playlist != nil {
		overlayOpts = append(overlayOpts, WithMusic(opts.Playlist))
	}

	var composerOpts []ComposerOption
	if opts.Tracker != nil {
		composerOpts = append(composerOpts, WithTracker(opts.Tracker))
	}
	if opts.Phase != nil {
		composerOpts = append(composerOpts, WithPhases(*opts.Phase))
	}
	s.composer = NewComposer(scene, s.proj, opts.Objects, func(d Discovery) {
		s.overlay.Show(d.Payload)
		s.refreshCounter()
		if opts.OnDiscover != nil {
			opts.OnDiscover(d)
		}
	}, composerOpts...)

	s.hud = surprise.NewContainer("hud")
	s.hud.Interactable = true
	s.hud.SetZIndex(zHUD)
	scene.Root().AddChild(s.hud)

	if opts.Title != "" {
		title := newLabel("title", opts.Title, opts.Font, 0, surprise.TextAlignCenter)
		w, _ := title.Text.Measure()
		title.SetPosition(opts.Viewport.X+(opts.Viewport.Width-w)/2, opts.Viewport.Y+panelPad)
		s.hud.AddChild(title)
	}
	s.counter = newLabel("counter", "", opts.Font, 0, surprise.TextAlignLeft)
	s.counter.SetPosition(opts.Viewport.X+panelPad, opts.Viewport.Y+opts.Viewport.Height-panelPad-rowHeight)
	s.hud.AddChild(s.counter)
	s.refreshCounter()

	if opts.Playlist != nil {
		width := float64(3*(musicButtonWidth+musicBarSpacing) + 48)
		s.music = NewMusicBar(s.hud, opts.Playlist, opts.Font,
			opts.Viewport.X+opts.Viewport.Width-panelPad-width, opts.Viewport.Y+panelPad)
	}

	s.overlay = NewOverlay(scene, opts.Viewport, opts.Font, overlayOpts...)
	return s
}

// buildBackground draws the floor under the objects.
func (s *Stage) buildBackground(vp surprise.Rect) {
	bg := surprise.NewContainer("background")
	bg.SetZIndex(zBackground)
	s.scene.Root().AddChild(bg)

	pr, ok := s.proj.Project(surprise.Vec3{Y: floorY, Z: 0})
	if !ok {
		return
	}
	w := math.Min(vp.Width*0.95, 7*pr.PixelsPerUnit)
	floor := surprise.NewShape("floor", surprise.ShapeCircle, w, w*0.3, colorFloor)
	floor.SetPosition(pr.X, pr.Y)
	bg.AddChild(floor)
}

func (s *Stage) refreshCounter() {
	s.counter.Text.SetContent(fmt.Sprintf("Sorpresas: %d/%d", s.composer.Found(), s.composer.Len()))
}

// Counter returns the text of the discovered-objects counter.
func (s *Stage) Counter() string { return s.counter.Text.Content }

// Scene returns the scene the stage was built into.
func (s *Stage) Scene() *surprise.Scene { return s.scene }

// Projector returns the camera.
func (s *Stage) Projector() *surprise.Projector { return s.proj }

// Composer returns the object composer.
func (s *Stage) Composer() *Composer { return s.composer }

// Overlay returns the payload overlay.
func (s *Stage) Overlay() *Overlay { return s.overlay }

// MusicBar returns the music bar, or nil without a playlist.
func (s *Stage) MusicBar() *MusicBar { return s.music }

// Teardown stops every object and closes the overlay. The playlist stays
// owned by the caller.
func (s *Stage) Teardown() {
	if s.torn {
		return
	}
	s.torn = true
	s.overlay.Dismiss()
	s.composer.Teardown()
}
