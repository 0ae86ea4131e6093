package description

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
	"golang.org/x/image/colornames"

	"github.com/gogpu/tiles3d"
)

// Defaults reported by unset fields.
const (
	// DefaultScale is the uniform scale applied to an asset.
	DefaultScale = 1.0

	// DefaultMinimumPixelSize disables the minimum-size clamp.
	DefaultMinimumPixelSize = 0.0

	// DefaultMaximumScale disables the upper scale bound.
	DefaultMaximumScale = 0.0

	// DefaultColorBlendAmount mixes the highlight color halfway into the
	// asset's own colors.
	DefaultColorBlendAmount = 0.5
)

// Model describes how one streamed asset is presented. The zero value is not
// usable; create models with [New]. Models are not safe for concurrent use;
// the host mutates them from its update thread only.
type Model struct {
	id  uuid.UUID
	uri string

	scale            *float64
	minimumPixelSize *float64
	maximumScale     *float64
	show             *bool
	animate          *bool
	highlightColor   *tiles3d.RGBA
	colorBlendAmount *float64

	listeners []func(*Model)
}

// New creates a model for the asset at the given URI with a fresh ID and all
// presentation fields unset.
func New(uri string) *Model {
	return &Model{
		id:  uuid.New(),
		uri: uri,
	}
}

// ID returns the model's unique identifier.
func (m *Model) ID() uuid.UUID { return m.id }

// URI returns the asset URI.
func (m *Model) URI() string { return m.uri }

// SetURI changes the asset URI.
func (m *Model) SetURI(uri string) {
	if m.uri == uri {
		return
	}
	m.uri = uri
	m.notify()
}

// Scale returns the uniform scale, or [DefaultScale] when unset.
func (m *Model) Scale() float64 { return floatOr(m.scale, DefaultScale) }

// SetScale sets the uniform scale applied to the asset.
func (m *Model) SetScale(v float64) { setFloat(m, &m.scale, v) }

// MinimumPixelSize returns the minimum on-screen size in pixels the asset is
// scaled up to, or [DefaultMinimumPixelSize] when unset.
func (m *Model) MinimumPixelSize() float64 {
	return floatOr(m.minimumPixelSize, DefaultMinimumPixelSize)
}

// SetMinimumPixelSize sets the minimum on-screen size in pixels.
func (m *Model) SetMinimumPixelSize(v float64) { setFloat(m, &m.minimumPixelSize, v) }

// MaximumScale returns the upper bound the minimum-pixel-size scaling may
// reach, or [DefaultMaximumScale] (unbounded) when unset.
func (m *Model) MaximumScale() float64 { return floatOr(m.maximumScale, DefaultMaximumScale) }

// SetMaximumScale sets the upper bound for minimum-pixel-size scaling.
func (m *Model) SetMaximumScale(v float64) { setFloat(m, &m.maximumScale, v) }

// Show reports whether the asset is rendered. Unset means shown.
func (m *Model) Show() bool { return boolOr(m.show, true) }

// SetShow toggles rendering of the asset.
func (m *Model) SetShow(v bool) { setBool(m, &m.show, v) }

// Animate reports whether the asset's animations run. Unset means animated.
func (m *Model) Animate() bool { return boolOr(m.animate, true) }

// SetAnimate toggles the asset's animations.
func (m *Model) SetAnimate(v bool) { setBool(m, &m.animate, v) }

// HighlightColor returns the tint applied to the asset's unclassified
// fragments, or [tiles3d.White] (the identity tint) when unset.
func (m *Model) HighlightColor() tiles3d.RGBA {
	if m.highlightColor == nil {
		return tiles3d.White
	}
	return *m.highlightColor
}

// SetHighlightColor sets the unclassified-fragment tint.
func (m *Model) SetHighlightColor(c tiles3d.RGBA) {
	if m.highlightColor != nil && *m.highlightColor == c {
		return
	}
	m.highlightColor = &c
	m.notify()
}

// SetHighlightColorName sets the tint from an SVG 1.1 color name such as
// "cornflowerblue". The name is case-sensitive and lower-case.
func (m *Model) SetHighlightColorName(name string) error {
	c, ok := colornames.Map[name]
	if !ok {
		return fmt.Errorf("description: unknown color name %q", name)
	}
	m.SetHighlightColor(tiles3d.FromColor(color.NRGBA(c)))
	return nil
}

// ColorBlendAmount returns how strongly the highlight color mixes into the
// asset's own colors, in [0, 1], or [DefaultColorBlendAmount] when unset.
func (m *Model) ColorBlendAmount() float64 {
	return floatOr(m.colorBlendAmount, DefaultColorBlendAmount)
}

// SetColorBlendAmount sets the highlight mix factor.
func (m *Model) SetColorBlendAmount(v float64) { setFloat(m, &m.colorBlendAmount, v) }

// OnChange registers a listener invoked after any field of the model
// changes value. Listeners cannot be removed; models are cheap enough to
// replace instead.
func (m *Model) OnChange(fn func(*Model)) {
	m.listeners = append(m.listeners, fn)
}

// Merge adopts every field of other that is set on other but unset on m. The
// URI fills only when m's is empty. Explicitly set fields of m are never
// overwritten. Fires a single change notification when anything was adopted.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	changed := false
	if m.uri == "" && other.uri != "" {
		m.uri = other.uri
		changed = true
	}
	changed = adoptFloat(&m.scale, other.scale) || changed
	changed = adoptFloat(&m.minimumPixelSize, other.minimumPixelSize) || changed
	changed = adoptFloat(&m.maximumScale, other.maximumScale) || changed
	changed = adoptBool(&m.show, other.show) || changed
	changed = adoptBool(&m.animate, other.animate) || changed
	changed = adoptFloat(&m.colorBlendAmount, other.colorBlendAmount) || changed
	if m.highlightColor == nil && other.highlightColor != nil {
		c := *other.highlightColor
		m.highlightColor = &c
		changed = true
	}
	if changed {
		m.notify()
	}
}

// Clone returns a deep copy of the model with a fresh ID and no listeners.
func (m *Model) Clone() *Model {
	c := &Model{
		id:  uuid.New(),
		uri: m.uri,
	}
	c.scale = copyFloat(m.scale)
	c.minimumPixelSize = copyFloat(m.minimumPixelSize)
	c.maximumScale = copyFloat(m.maximumScale)
	c.show = copyBool(m.show)
	c.animate = copyBool(m.animate)
	c.colorBlendAmount = copyFloat(m.colorBlendAmount)
	if m.highlightColor != nil {
		hc := *m.highlightColor
		c.highlightColor = &hc
	}
	return c
}

func (m *Model) notify() {
	for _, fn := range m.listeners {
		fn(m)
	}
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func setFloat(m *Model, field **float64, v float64) {
	if *field != nil && **field == v {
		return
	}
	*field = &v
	m.notify()
}

func setBool(m *Model, field **bool, v bool) {
	if *field != nil && **field == v {
		return
	}
	*field = &v
	m.notify()
}

func adoptFloat(dst **float64, src *float64) bool {
	if *dst != nil || src == nil {
		return false
	}
	v := *src
	*dst = &v
	return true
}

func adoptBool(dst **bool, src *bool) bool {
	if *dst != nil || src == nil {
		return false
	}
	v := *src
	*dst = &v
	return true
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
