package palette

import (
	"testing"

	"cubescan/internal/models"
)

// A palette resembling a cube filmed under warm indoor light
func mutedPalette() models.Palette {
	var p models.Palette
	p[models.Green] = models.NewColor(70, 160, 40)
	p[models.Red] = models.NewColor(40, 30, 170)
	p[models.Blue] = models.NewColor(160, 70, 20)
	p[models.Orange] = models.NewColor(30, 100, 230)
	p[models.White] = models.NewColor(200, 205, 210)
	p[models.Yellow] = models.NewColor(40, 210, 220)
	return p
}

func TestDefaultPalette_IsProminent(t *testing.T) {
	p := DefaultPalette()
	if p[models.Orange] != models.NewColor(0, 165, 255) {
		t.Errorf("Expected orange to be bgr(0,165,255), got %v", p[models.Orange])
	}
	if p[models.Red] != models.NewColor(0, 0, 255) {
		t.Errorf("Expected red to be bgr(0,0,255), got %v", p[models.Red])
	}
	if p[models.Yellow] != models.NewColor(0, 255, 255) {
		t.Errorf("Expected yellow to be bgr(0,255,255), got %v", p[models.Yellow])
	}
}

func TestClosestColor_ExactReference(t *testing.T) {
	for _, p := range []models.Palette{DefaultPalette(), mutedPalette()} {
		c := NewClassifier(p)
		for _, name := range models.AllCubeColors() {
			m := c.ClosestColor(p[name])
			if m.Name != name {
				t.Errorf("Expected %v, got %v", name, m.Name)
			}
			if m.Distance != 0 {
				t.Errorf("Expected zero distance for %v, got %f", name, m.Distance)
			}
			if m.Reference != p[name] {
				t.Errorf("Expected reference %v, got %v", p[name], m.Reference)
			}
		}
	}
}

func TestClosestColor_Perturbed(t *testing.T) {
	c := NewClassifier(mutedPalette())
	tests := []struct {
		sample   models.Color
		expected models.CubeColor
	}{
		{models.NewColor(75, 155, 45), models.Green},
		{models.NewColor(45, 35, 160), models.Red},
		{models.NewColor(150, 75, 25), models.Blue},
		{models.NewColor(35, 105, 225), models.Orange},
		{models.NewColor(195, 200, 200), models.White},
		{models.NewColor(45, 205, 215), models.Yellow},
	}

	for _, tt := range tests {
		if got := c.Resolve(tt.sample); got != tt.expected {
			t.Errorf("Sample %v: expected %v, got %v", tt.sample, tt.expected, got)
		}
	}
}

func TestClosestColor_TieKeepsFirst(t *testing.T) {
	p := mutedPalette()
	p[models.Yellow] = p[models.Green]
	c := NewClassifier(p)
	if got := c.Resolve(p[models.Green]); got != models.Green {
		t.Errorf("Expected tie to resolve to green, got %v", got)
	}
}

func TestInstallPalette_ReplacesWholePalette(t *testing.T) {
	c := NewClassifier(DefaultPalette())
	muted := mutedPalette()
	c.InstallPalette(muted)

	if c.Palette() != muted {
		t.Errorf("Expected installed palette, got %v", c.Palette())
	}
	if got := c.ClosestColor(muted[models.Orange]); got.Distance != 0 {
		t.Errorf("Expected cached Lab values to follow the new palette, got distance %f", got.Distance)
	}
}

func TestProminentColor(t *testing.T) {
	c := NewClassifier(mutedPalette())
	got := c.ProminentColor(models.NewColor(35, 105, 225))
	if got != ProminentFor(models.Orange) {
		t.Errorf("Expected prominent orange, got %v", got)
	}
}

func TestNotationFor(t *testing.T) {
	expected := map[models.CubeColor]byte{
		models.Green:  'F',
		models.White:  'U',
		models.Blue:   'B',
		models.Red:    'R',
		models.Orange: 'L',
		models.Yellow: 'D',
	}
	for name, want := range expected {
		if got := NotationFor(name); got != want {
			t.Errorf("%v: expected %c, got %c", name, want, got)
		}
	}
}
