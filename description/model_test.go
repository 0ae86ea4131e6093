package description

import (
	"testing"

	"github.com/gogpu/tiles3d"
)

func TestNewDefaults(t *testing.T) {
	m := New("asset://tileset/model.glb")
	if m.URI() != "asset://tileset/model.glb" {
		t.Errorf("URI = %q", m.URI())
	}
	if m.ID() == (New("x").ID()) {
		t.Error("each model must get a unique ID")
	}
	if m.Scale() != DefaultScale {
		t.Errorf("Scale = %v, want %v", m.Scale(), DefaultScale)
	}
	if m.MinimumPixelSize() != DefaultMinimumPixelSize {
		t.Errorf("MinimumPixelSize = %v", m.MinimumPixelSize())
	}
	if m.MaximumScale() != DefaultMaximumScale {
		t.Errorf("MaximumScale = %v", m.MaximumScale())
	}
	if !m.Show() || !m.Animate() {
		t.Error("models must default to shown and animated")
	}
	if m.HighlightColor() != tiles3d.White {
		t.Errorf("HighlightColor = %+v, want white", m.HighlightColor())
	}
	if m.ColorBlendAmount() != DefaultColorBlendAmount {
		t.Errorf("ColorBlendAmount = %v", m.ColorBlendAmount())
	}
}

func TestChangeNotification(t *testing.T) {
	m := New("a")
	fired := 0
	m.OnChange(func(*Model) { fired++ })

	m.SetScale(2)
	if fired != 1 {
		t.Fatalf("expected one notification, got %d", fired)
	}

	// Setting the same value again is a no-op.
	m.SetScale(2)
	if fired != 1 {
		t.Errorf("no-op set must not notify, got %d", fired)
	}

	// Explicitly setting the default still counts as a change: the field
	// transitions from unset to set.
	m.SetShow(true)
	if fired != 2 {
		t.Errorf("unset-to-set transition must notify, got %d", fired)
	}
	m.SetShow(true)
	if fired != 2 {
		t.Errorf("repeated set must not notify, got %d", fired)
	}

	m.SetURI("b")
	if fired != 3 {
		t.Errorf("URI change must notify, got %d", fired)
	}
	m.SetHighlightColor(tiles3d.RGB(1, 0, 0))
	if fired != 4 {
		t.Errorf("highlight change must notify, got %d", fired)
	}
	m.SetHighlightColor(tiles3d.RGB(1, 0, 0))
	if fired != 4 {
		t.Errorf("repeated highlight set must not notify, got %d", fired)
	}
}

func TestMergeFillsUnsetOnly(t *testing.T) {
	base := New("")
	base.SetScale(3)

	other := New("fallback.glb")
	other.SetScale(7)
	other.SetMinimumPixelSize(64)
	other.SetShow(false)
	other.SetHighlightColor(tiles3d.RGB(0, 1, 0))

	fired := 0
	base.OnChange(func(*Model) { fired++ })
	base.Merge(other)

	if base.Scale() != 3 {
		t.Errorf("Merge must not overwrite the set scale, got %v", base.Scale())
	}
	if base.URI() != "fallback.glb" {
		t.Errorf("Merge must fill the empty URI, got %q", base.URI())
	}
	if base.MinimumPixelSize() != 64 {
		t.Errorf("Merge must adopt unset fields, got %v", base.MinimumPixelSize())
	}
	if base.Show() {
		t.Error("Merge must adopt the show flag")
	}
	if base.HighlightColor() != tiles3d.RGB(0, 1, 0) {
		t.Errorf("Merge must adopt the highlight color, got %+v", base.HighlightColor())
	}
	if fired != 1 {
		t.Errorf("Merge must fire exactly one notification, got %d", fired)
	}

	// A second merge with the same source adopts nothing.
	base.Merge(other)
	if fired != 1 {
		t.Errorf("no-op merge must not notify, got %d", fired)
	}

	base.Merge(nil)
	if fired != 1 {
		t.Errorf("nil merge must not notify, got %d", fired)
	}
}

func TestClone(t *testing.T) {
	m := New("model.glb")
	m.SetScale(2)
	m.SetAnimate(false)
	m.SetHighlightColor(tiles3d.RGB(0, 0, 1))
	m.OnChange(func(*Model) { t.Error("clone mutation must not notify the original") })

	c := m.Clone()
	if c.ID() == m.ID() {
		t.Error("clone must get a fresh ID")
	}
	if c.URI() != m.URI() || c.Scale() != 2 || c.Animate() {
		t.Error("clone must copy field values")
	}
	if c.HighlightColor() != tiles3d.RGB(0, 0, 1) {
		t.Errorf("clone highlight = %+v", c.HighlightColor())
	}

	// Deep copy: mutating the clone leaves the original untouched and does
	// not run its listeners.
	c.SetScale(9)
	if m.Scale() != 2 {
		t.Errorf("original scale changed to %v", m.Scale())
	}

	// Unset fields stay unset in the clone.
	if got := c.MinimumPixelSize(); got != DefaultMinimumPixelSize {
		t.Errorf("clone MinimumPixelSize = %v", got)
	}
}

func TestSetHighlightColorName(t *testing.T) {
	m := New("a")
	if err := m.SetHighlightColorName("red"); err != nil {
		t.Fatalf("SetHighlightColorName failed: %v", err)
	}
	c := m.HighlightColor()
	if c.R < 0.99 || c.G > 0.01 || c.B > 0.01 || c.A < 0.99 {
		t.Errorf("red = %+v", c)
	}

	if err := m.SetHighlightColorName("not-a-color"); err == nil {
		t.Error("unknown color name must fail")
	}
	if m.HighlightColor() != c {
		t.Error("failed lookup must not change the color")
	}
}
