package portal

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// LayerStyle is the per-frame visual styling of a floating layer.
type LayerStyle struct {
	// Alpha multiplies the layer's opacity. Driven by RemovalFade.
	Alpha float64
	// Tint multiplies the layer's color.
	Tint Color
	// Offset is a constant center offset applied additively to the
	// interpolated position.
	Offset Vec2
}

// Content is the transitional payload drawn on the overlay surface while a
// layer is active.
type Content interface {
	Draw(dst *ebiten.Image, frame Rect, style LayerStyle)
}

// ContentFunc adapts a function to the Content interface.
type ContentFunc func(dst *ebiten.Image, frame Rect, style LayerStyle)

// Draw calls f.
func (f ContentFunc) Draw(dst *ebiten.Image, frame Rect, style LayerStyle) {
	f(dst, frame, style)
}

// ImageContent draws an image scaled into the layer frame.
type ImageContent struct {
	Image *ebiten.Image
}

// NewImageContent wraps img as layer content.
func NewImageContent(img *ebiten.Image) *ImageContent {
	return &ImageContent{Image: img}
}

// Draw scales the image to fill frame, applying the style's tint and alpha.
func (c *ImageContent) Draw(dst *ebiten.Image, frame Rect, style LayerStyle) {
	if c.Image == nil {
		return
	}
	b := c.Image.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 || frame.Width == 0 || frame.Height == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(frame.Width/w, frame.Height/h)
	op.GeoM.Translate(frame.X, frame.Y)
	op.ColorScale.Scale(float32(style.Tint.R), float32(style.Tint.G), float32(style.Tint.B), float32(style.Tint.A))
	op.ColorScale.ScaleAlpha(float32(clamp01(style.Alpha)))
	dst.DrawImage(c.Image, op)
}

// AnimatedLayer produces layer content from the transition's identifier (or
// bound item, for item transitions) and direction. It is the extension point
// for custom per-direction layer rendering; AnimatedLayerFunc is the default
// closure-based implementation.
type AnimatedLayer interface {
	Layer(idOrItem any, active bool) Content
}

// AnimatedLayerFunc adapts a function to the AnimatedLayer interface.
type AnimatedLayerFunc func(idOrItem any, active bool) Content

// Layer calls f.
func (f AnimatedLayerFunc) Layer(idOrItem any, active bool) Content {
	return f(idOrItem, active)
}

// --- Configuration hooks ---

// HookLevel identifies how much control a configuration hook takes over the
// layer.
type HookLevel uint8

const (
	HookLevelNone  HookLevel = iota // no hook configured
	HookLevelStyle                  // styling only; frame stays computed
	HookLevelFrame                  // full size and position control
	HookLevelRaw                    // raw anchors for custom interpolation
)

// StyleContext is handed to style-level hooks.
type StyleContext struct {
	Progress  float64
	Animating bool
	Style     *LayerStyle
}

// FrameContext is handed to frame-level hooks. Frame starts at the computed
// interpolated rectangle and may be replaced outright.
type FrameContext struct {
	Progress  float64
	Animating bool
	Frame     *Rect
	Style     *LayerStyle
}

// RawContext is handed to raw-level hooks, which see both anchors and own the
// interpolation entirely.
type RawContext struct {
	Source      Rect
	Destination Rect
	Progress    float64
	Animating   bool
	Frame       *Rect
	Style       *LayerStyle
}

// Hook restyles or repositions a layer each frame, at one of three escalating
// levels of control. When more than one function is set, only the highest
// level runs.
type Hook struct {
	Style func(StyleContext)
	Frame func(FrameContext)
	Raw   func(RawContext)
}

// Level returns the highest configured level.
func (h Hook) Level() HookLevel {
	switch {
	case h.Raw != nil:
		return HookLevelRaw
	case h.Frame != nil:
		return HookLevelFrame
	case h.Style != nil:
		return HookLevelStyle
	}
	return HookLevelNone
}

func (h Hook) isZero() bool {
	return h.Raw == nil && h.Frame == nil && h.Style == nil
}

// --- Overlay host ---

// OverlayHost owns the shared window-level overlay: a transparent,
// input-transparent surface composited above all game content, so layers can
// render across presentation boundaries without being clipped. It is an
// explicit process-scoped object (create one near the app root and pass it
// down), not a package singleton.
//
// The surface is created lazily on the first draw with at least one active
// container and deallocated when the last container unregisters.
type OverlayHost struct {
	containers []*Container
	surface    *ebiten.Image
	debug      bool
}

// NewOverlayHost creates an empty host.
func NewOverlayHost() *OverlayHost {
	return &OverlayHost{}
}

// SetDebugMode toggles the debug visuals (colored anchor/layer borders and
// labels, per-frame stats logging). Purely observational — never alters
// transition state. Mirrored into a package flag; see globalDebug.
func (h *OverlayHost) SetDebugMode(enabled bool) {
	h.debug = enabled
	globalDebug = enabled
}

// Containers returns the registered containers. MUST NOT be mutated.
func (h *OverlayHost) Containers() []*Container {
	return h.containers
}

// register adds a container's registry to the overlay.
func (h *OverlayHost) register(c *Container) {
	for _, existing := range h.containers {
		if existing == c {
			return
		}
	}
	h.containers = append(h.containers, c)
	logger.Debug("container registered", "containers", len(h.containers))
}

// unregister removes a container; the surface is torn down only when no
// containers remain.
func (h *OverlayHost) unregister(c *Container) {
	for i, existing := range h.containers {
		if existing == c {
			h.containers = append(h.containers[:i], h.containers[i+1:]...)
			break
		}
	}
	if len(h.containers) == 0 && h.surface != nil {
		h.surface.Deallocate()
		h.surface = nil
		logger.Debug("overlay surface deallocated")
	}
}

// Draw renders every active layer from every registered container onto
// screen. Call it after all game content so layers float above everything.
func (h *OverlayHost) Draw(screen *ebiten.Image) {
	if len(h.containers) == 0 {
		return
	}
	h.ensureSurface(screen.Bounds().Dx(), screen.Bounds().Dy())
	h.surface.Clear()

	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}

	layers := 0
	records := 0
	for _, c := range h.containers {
		records += c.registry.Len()
		layers += drawLayers(h.surface, c.registry)
	}
	screen.DrawImage(h.surface, nil)

	if h.debug {
		h.debugDraw(screen)
		h.debugLog(overlayStats{
			drawTime: time.Since(t0),
			records:  records,
			layers:   layers,
		})
	}
}

// ensureSurface (re)allocates the overlay surface to match the screen size.
func (h *OverlayHost) ensureSurface(w, hgt int) {
	if h.surface != nil {
		b := h.surface.Bounds()
		if b.Dx() == w && b.Dy() == hgt {
			return
		}
		h.surface.Deallocate()
	}
	h.surface = ebiten.NewImage(w, hgt)
	logger.Debug("overlay surface allocated", "w", w, "h", hgt)
}

// drawLayers paints every renderable record in reg onto dst and returns how
// many layers were drawn. A record renders only when its layer is showing,
// content is set, and both anchors resolve (live or cached) — anything else
// is a normal pre- or post-transition state, not an error.
func drawLayers(dst *ebiten.Image, reg *Registry) int {
	drawn := 0
	for _, rec := range reg.Records() {
		if !rec.ShowLayer || rec.Content == nil {
			continue
		}
		src, ok := rec.ResolveSource()
		if !ok {
			continue
		}
		dstAnchor, ok := rec.ResolveDestination()
		if !ok {
			continue
		}

		frame, style := layerFrame(rec, src, dstAnchor)
		rec.Content.Draw(dst, frame, style)
		drawn++
	}
	return drawn
}

// layerFrame computes a record's frame and style for the current progress,
// applying the configured hook at its level.
func layerFrame(rec *Record, src, dst Rect) (Rect, LayerStyle) {
	progress := rec.progress
	style := LayerStyle{Alpha: rec.layerAlpha, Tint: ColorWhite}

	if rec.Hook.Level() == HookLevelStyle {
		rec.Hook.Style(StyleContext{Progress: progress, Animating: rec.Animating, Style: &style})
	}
	frame := FrameAtOffset(src, dst, progress, style.Offset)

	switch rec.Hook.Level() {
	case HookLevelRaw:
		rec.Hook.Raw(RawContext{
			Source:      src,
			Destination: dst,
			Progress:    progress,
			Animating:   rec.Animating,
			Frame:       &frame,
			Style:       &style,
		})
	case HookLevelFrame:
		rec.Hook.Frame(FrameContext{
			Progress:  progress,
			Animating: rec.Animating,
			Frame:     &frame,
			Style:     &style,
		})
	}
	return frame, style
}
