package portal

import (
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Color represents an RGBA tint with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default layer tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// WhitePixel is a 1x1 white image used for solid fills (debug borders,
// placeholder layer content).
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Vec2 is a 2D vector used for positions, offsets, and scale factors.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Anchors are Rects expressed in a
// coordinate space shared by every marker under the same container (screen
// space, for an Ebitengine host).
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Role distinguishes the two ends of a portal.
type Role uint8

const (
	RoleSource      Role = iota // the view the layer departs from
	RoleDestination             // the view the layer lands on
)

// String returns "source" or "destination".
func (r Role) String() string {
	if r == RoleDestination {
		return "destination"
	}
	return "source"
}

// RemovalMode controls how the floating layer disappears once a transition
// settles.
type RemovalMode uint8

const (
	RemovalNone RemovalMode = iota // layer vanishes instantly
	RemovalFade                    // layer fades out over the fade duration
)

// CompletionCriteria describes when a transition's completion callback fires.
type CompletionCriteria uint8

const (
	// CriteriaSettled fires as soon as the progress tween reaches its target.
	CriteriaSettled CompletionCriteria = iota
	// CriteriaRemoved fires only after the layer is fully gone, including any
	// RemovalFade fade-out.
	CriteriaRemoved
)

// Animation is a timing curve: a duration in seconds and a gween easing
// function. The zero value means "use DefaultAnimation".
type Animation struct {
	Duration float32
	Ease     ease.TweenFunc
}

// DefaultAnimation is applied to records whose Animation is the zero value.
var DefaultAnimation = Animation{Duration: 0.35, Ease: ease.InOutCubic}

// or returns a, or DefaultAnimation when a is the zero value.
func (a Animation) or() Animation {
	if a.Duration <= 0 || a.Ease == nil {
		return DefaultAnimation
	}
	return a
}

// --- Identity ---

// ID is a boxed hashable portal identifier. Any comparable Go value (string,
// int, uuid, custom struct) can serve as an identifier; boxing lets records
// with heterogeneous identifier types share one registry.
type ID struct {
	value any
}

// NewID boxes v as a portal identifier. Boxing an ID returns it unchanged, so
// NewID(NewID(x)) == NewID(x) and wrapped and unwrapped forms never diverge.
// Panics if v is not comparable, since IDs are used as map keys.
func NewID(v any) ID {
	if id, ok := v.(ID); ok {
		return id
	}
	if v != nil && !reflect.TypeOf(v).Comparable() {
		panic("portal: identifier type is not comparable")
	}
	return ID{value: v}
}

// Value returns the wrapped identifier value.
func (id ID) Value() any {
	return id.value
}

// IsZero reports whether the ID wraps no value.
func (id ID) IsZero() bool {
	return id.value == nil
}

// --- Namespace ---

// namespaceCounter is a plain counter (no atomic — portal is single-threaded).
var namespaceCounter uint32

// Namespace is a scoping token. Two records in different namespaces with the
// same ID never match. The zero value is the shared default namespace.
type Namespace struct {
	id uint32
}

// NewNamespace allocates a fresh namespace token.
func NewNamespace() Namespace {
	namespaceCounter++
	return Namespace{id: namespaceCounter}
}

// --- Key ---

// Key correlates a geometry report with a record. Two keys are equal iff all
// three fields are equal; role is never wildcarded, so the source and
// destination reports for one portal coexist as two distinct map entries.
type Key struct {
	ID        ID
	Role      Role
	Namespace Namespace
}

// toRGBA converts a portal Color to a color.Color value (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
