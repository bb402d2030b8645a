package stage

import "github.com/phanxgames/surprise"

// Draw order of the top-level layers under the scene root.
const (
	zBackground = -1_000_000
	zLights     = 1
	zHUD        = 10
	zOverlay    = 100
)

var (
	colorPanel      = surprise.MustHexColor("#1e1430")
	colorBackdrop   = surprise.Color{A: 0.6}
	colorButton     = surprise.MustHexColor("#5b3f8c")
	colorCorrect    = surprise.MustHexColor("#2e8b57")
	colorIncorrect  = surprise.MustHexColor("#c0392b")
	colorNeutral    = surprise.MustHexColor("#4a4458")
	colorTrack      = surprise.MustHexColor("#3b3150")
	colorProgress   = surprise.MustHexColor("#ff69b4")
	colorFloor      = surprise.MustHexColor("#2a1f3d")
	colorBackground = surprise.MustHexColor("#120b1f")
)

// button is a rectangle with a centered label. Its position is its center.
// A disabled button stays hit-testable so clicks do not fall through to
// whatever is behind it.
type button struct {
	node     *surprise.Node
	label    *surprise.Node
	disabled bool
}

func newButton(name, label string, font *surprise.Font, w, h float64, bg surprise.Color, onClick func()) *button {
	b := &button{
		node:  surprise.NewShape(name, surprise.ShapeRect, w, h, bg),
		label: surprise.NewText(name+"_label", label, font),
	}
	b.node.Interactable = true
	b.node.CursorPointer = true
	b.node.AddChild(b.label)
	b.node.OnClick = func(surprise.ClickContext) {
		if !b.disabled {
			onClick()
		}
	}
	b.center()
	return b
}

func (b *button) center() {
	tw, th := b.label.Text.Measure()
	b.label.SetPosition((b.node.Width-tw)/2, (b.node.Height-th)/2)
}

func (b *button) setLabel(s string) {
	b.label.Text.SetContent(s)
	b.center()
}

func (b *button) setEnabled(on bool) {
	b.disabled = !on
	b.node.CursorPointer = on
}

// centerOf returns the world-space center of a node created by NewShape.
func centerOf(n *surprise.Node) (x, y float64) {
	return n.LocalToWorld(n.Width/2, n.Height/2)
}

// newLabel creates a text node that wraps at width and is aligned as given.
func newLabel(name, content string, font *surprise.Font, width float64, align surprise.TextAlign) *surprise.Node {
	n := surprise.NewText(name, content, font)
	n.Text.WrapWidth = width
	n.Text.Align = align
	return n
}
