package surprise

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff0000", Color{1, 0, 0, 1}, false},
		{"#0f0", Color{0, 1, 0, 1}, false},
		{" 0000ff ", Color{0, 0, 1, 1}, false},
		{"#ffffff00", Color{1, 1, 1, 0}, false},
		{"#12345", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexColorAlpha(t *testing.T) {
	c, err := ParseHexColor("#00000080")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.A-128.0/255) > 1e-9 {
		t.Errorf("A = %v, want %v", c.A, 128.0/255)
	}
}

func TestMustHexColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustHexColor("nope")
}

func TestColorScale(t *testing.T) {
	c := Color{0.5, 0.2, 1, 0.4}.Scale(2)
	if c != (Color{1, 0.4, 2, 0.4}) {
		t.Errorf("Scale = %v", c)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{1, 1, 1, 0.5}.toRGBA()
	want := color.RGBA{127, 127, 127, 127}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
	// Out-of-range components clamp.
	if got := (Color{2, -1, 0, 1}).toRGBA(); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("clamped toRGBA = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(10, 10) || !r.Contains(30, 30) || !r.Contains(20, 15) {
		t.Error("edges and interior should be inside")
	}
	if r.Contains(9, 20) || r.Contains(20, 31) {
		t.Error("points outside reported inside")
	}
}

func TestBlendModeEbitenBlend(t *testing.T) {
	if BlendAdd.EbitenBlend() != ebiten.BlendLighter {
		t.Error("BlendAdd should map to BlendLighter")
	}
	if BlendNormal.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("BlendNormal should map to BlendSourceOver")
	}
}

func TestVec3(t *testing.T) {
	v := Vec3{1, 2, 3}.Add(Vec3{1, 1, 1}).Scale(2)
	if v != (Vec3{4, 6, 8}) {
		t.Errorf("v = %v", v)
	}
}
