package reveal

import (
	"errors"
	"math"
	"testing"

	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/quiz"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParseKind(t *testing.T) {
	for _, name := range []string{"heart", "star", "gift", "butterfly", "box"} {
		k, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", name, err)
		}
		if k.String() != name {
			t.Errorf("ParseKind(%q).String() = %q", name, k.String())
		}
	}
	if k, _ := ParseKind(" Heart "); k != KindHeart {
		t.Errorf("ParseKind should ignore case and spaces, got %v", k)
	}
	if _, err := ParseKind("dragon"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(dragon) err = %v, want ErrUnknownKind", err)
	}
	if KindBox.IsEgg() || !KindButterfly.IsEgg() {
		t.Error("IsEgg misclassifies kinds")
	}
}

func TestClickDiscoversOnce(t *testing.T) {
	var got []Payload
	o := New(Config{Kind: KindStar, Payload: Payload{Message: "hola"}}, func(p Payload) {
		got = append(got, p)
	})
	if o.Discovered() {
		t.Fatal("new object already discovered")
	}
	if !o.Click() {
		t.Fatal("first Click should discover")
	}
	if o.Click() {
		t.Error("second Click reported a discovery")
	}
	if len(got) != 1 {
		t.Fatalf("callback fired %d times, want 1", len(got))
	}
	if got[0].Message != "hola" {
		t.Errorf("payload message = %q", got[0].Message)
	}
	if !o.Discovered() {
		t.Error("Discovered = false after Click")
	}
}

func TestDiscoveryIsMonotonic(t *testing.T) {
	o := New(Config{Kind: KindHeart}, nil, WithPhase(0))
	o.Click()
	seq := []func(){o.PointerEnter, o.PointerExit, func() { o.Click() }, o.PointerEnter}
	for i, step := range seq {
		step()
		o.Update(float64(i), 1.0/60)
		if !o.Discovered() {
			t.Fatalf("step %d: object reverted to undiscovered", i)
		}
	}
}

func TestPayloadIsCopied(t *testing.T) {
	def := &quiz.Definition{Question: "q", Options: []quiz.Option{{Text: "a", Correct: true}, {Text: "b"}}}
	o := New(Config{Kind: KindGift, Payload: Payload{Message: "m", Quiz: def}}, nil)
	def.Question = "changed"
	def.Options[0].Text = "changed"

	p := o.Payload()
	if p.Quiz.Question != "q" || p.Quiz.Options[0].Text != "a" {
		t.Errorf("payload shares storage with caller: %+v", p.Quiz)
	}
	if !p.HasQuiz() || p.HasImage() || p.HasAudio() {
		t.Error("Has* helpers disagree with payload contents")
	}
}

func TestHoverAndCursor(t *testing.T) {
	egg := New(Config{Kind: KindHeart}, nil)
	if egg.CursorPointer() {
		t.Error("cursor pointer without hover")
	}
	egg.PointerEnter()
	if !egg.Hovered() || !egg.CursorPointer() {
		t.Error("hovered egg should request the pointer cursor")
	}
	egg.Click()
	if egg.CursorPointer() {
		t.Error("discovered egg should not request the pointer cursor")
	}
	egg.PointerExit()
	if egg.Hovered() {
		t.Error("Hovered = true after PointerExit")
	}

	box := New(Config{Kind: KindBox}, nil)
	box.PointerEnter()
	box.Click()
	if !box.CursorPointer() {
		t.Error("hovered box should keep the pointer cursor after opening")
	}
}

func TestEggMotionIdle(t *testing.T) {
	m := EggMotion{Base: surprise.Vec3{X: 1, Y: 2, Z: 3}, Phase: 0.5}
	tr := m.Compute(1, false, false, 1)
	if !near(tr.Position.Y, 2+math.Sin(1.5)*0.01) {
		t.Errorf("idle Y = %f", tr.Position.Y)
	}
	if !near(tr.Scale, 1+(0.1-1)*0.1) {
		t.Errorf("idle scale = %f, want one smoothing step towards 0.1", tr.Scale)
	}
	if tr.Position.X != 1 || tr.Position.Z != 3 {
		t.Errorf("X/Z moved: %+v", tr.Position)
	}
}

func TestEggMotionHoverConverges(t *testing.T) {
	m := EggMotion{}
	scale := 0.1
	for i := 0; i < 200; i++ {
		scale = m.Compute(float64(i)/60, true, false, scale).Scale
	}
	if math.Abs(scale-0.12) > 1e-6 {
		t.Errorf("hover scale = %f, want ~0.12", scale)
	}
	tr := m.Compute(0.5, true, false, scale)
	if !near(tr.Position.Y, math.Sin(1.5)*0.02) {
		t.Errorf("hover Y = %f", tr.Position.Y)
	}
}

func TestEggMotionDiscovered(t *testing.T) {
	m := EggMotion{Phase: 1}
	tr := m.Compute(2, true, true, 0.1)
	if !near(tr.Position.Y, math.Sin(5)*0.15) {
		t.Errorf("discovered Y = %f", tr.Position.Y)
	}
	if !near(tr.Rotation.Y, 4) {
		t.Errorf("discovered rotY = %f, want 4", tr.Rotation.Y)
	}
	if !near(tr.Scale, (1+math.Sin(8)*0.1)*0.15) {
		t.Errorf("discovered scale = %f", tr.Scale)
	}
}

func TestLidStep(t *testing.T) {
	if got := LidStep(0, 1, 0.1); !near(got, 0.5) {
		t.Errorf("LidStep(0,1,0.1) = %f, want 0.5", got)
	}
	p := 0.0
	for i := 0; i < 300; i++ {
		p = LidStep(p, 1, 1.0/60)
	}
	if math.Abs(p-1) > 1e-3 {
		t.Errorf("lid progress after 5s = %f, want ~1", p)
	}
	pose := LidPoseAt(1, 0.4)
	if !near(pose.Y, 0.4*0.5+0.4*0.8) || !near(pose.RotZ, 0.3) {
		t.Errorf("LidPoseAt(1, 0.4) = %+v", pose)
	}
}

func TestBoxUpdateOpensLid(t *testing.T) {
	o := New(Config{Kind: KindBox, Size: 0.3, Position: surprise.Vec3{Y: 0.15}}, nil, WithPhase(0))
	f := o.Update(0.1, 0.1)
	if f.Lid.Progress != 0 {
		t.Fatalf("closed box lid progress = %f", f.Lid.Progress)
	}
	if !near(f.Lid.Y, 0.15) {
		t.Errorf("closed lid Y = %f, want size/2", f.Lid.Y)
	}
	o.Click()
	f = o.Update(0.2, 0.1)
	if !near(f.Lid.Progress, 0.5) {
		t.Errorf("lid progress = %f, want 0.5", f.Lid.Progress)
	}
	if f.Position.Y != 0.15 {
		t.Errorf("non-floating box moved to %f", f.Position.Y)
	}
}

func TestBoxFloat(t *testing.T) {
	o := New(Config{Kind: KindBox, Float: true}, nil, WithPhase(0))
	f := o.Update(1, 1.0/60)
	if !near(f.Position.Y, math.Sin(2)*0.0005) {
		t.Errorf("float Y = %f", f.Position.Y)
	}
	if !near(f.Rotation.Y, math.Sin(0.5)*0.05) {
		t.Errorf("float rotY = %f", f.Rotation.Y)
	}
}

func TestTeardownFreezesUpdates(t *testing.T) {
	o := New(Config{Kind: KindHeart}, nil, WithPhase(0))
	before := o.Update(1, 1.0/60)
	o.Teardown()
	after := o.Update(5, 1.0/60)
	if after != before {
		t.Errorf("Update after Teardown = %+v, want %+v", after, before)
	}
	if o.Click() {
		t.Error("Click after Teardown discovered the object")
	}
	if !o.TornDown() {
		t.Error("TornDown = false")
	}
}

func TestAppearanceAndLights(t *testing.T) {
	egg := New(Config{Kind: KindButterfly}, nil)
	if a := egg.Appearance().Body; a.Opacity != 0.3 || a.EmissiveIntensity != 0.1 {
		t.Errorf("idle egg material = %+v", a)
	}
	if egg.Lights() != nil {
		t.Error("undiscovered egg has lights")
	}
	egg.Click()
	if a := egg.Appearance().Body; a.Opacity != 1 || a.Color != surprise.MustHexColor("#ff69b4") {
		t.Errorf("discovered egg material = %+v", a)
	}
	if n := len(egg.Lights()); n != 3 {
		t.Errorf("discovered egg has %d lights, want 3", n)
	}

	box := New(Config{Kind: KindBox, Size: 0.4, BoxColor: surprise.MustHexColor("#9370db")}, nil)
	if box.Appearance().Body.EmissiveIntensity != 0 {
		t.Error("box glows without hover")
	}
	box.PointerEnter()
	a := box.Appearance()
	if a.Body.EmissiveIntensity != 0.2 || a.Body.Emissive != box.Config().BoxColor {
		t.Errorf("hovered box material = %+v", a.Body)
	}
	if a.Ribbon.Color != DefaultRibbonColor {
		t.Errorf("ribbon default = %+v", a.Ribbon.Color)
	}
	box.Click()
	lights := box.Lights()
	if len(lights) != 3 || !near(lights[0].Offset.Y, 0.2) || !near(lights[1].Offset.X, 0.12) {
		t.Errorf("box lights = %+v", lights)
	}
}
