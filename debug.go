package portal

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// globalDebug mirrors the most recently set host debug flag so that code
// without a host pointer can check it cheaply. Only valid with a single host;
// multiple hosts with differing debug modes reflect whichever called
// SetDebugMode last.
var globalDebug bool

// overlayStats holds per-frame metrics. Only populated in debug mode.
type overlayStats struct {
	drawTime time.Duration
	records  int
	layers   int
}

// debugLog prints per-frame overlay stats to stderr.
func (h *OverlayHost) debugLog(stats overlayStats) {
	if !h.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[portal] draw: %v | records: %d | layers: %d | containers: %d\n",
		stats.drawTime, stats.records, stats.layers, len(h.containers))
}

// Debug overlay colors: source anchors, destination anchors, live layers.
var (
	debugSourceColor = Color{1, 0.2, 0.2, 1}
	debugDestColor   = Color{0.2, 0.4, 1, 1}
	debugLayerColor  = Color{1, 0.6, 0, 1}
)

const debugBorderWidth = 2.0

// debugDraw paints colored borders and labels for every anchor and live layer
// directly onto screen, above the overlay surface.
func (h *OverlayHost) debugDraw(screen *ebiten.Image) {
	for _, c := range h.containers {
		for _, rec := range c.registry.Records() {
			if rec.SourceAnchor != nil {
				debugDrawBorder(screen, *rec.SourceAnchor, debugSourceColor)
				debugDrawLabel(screen, *rec.SourceAnchor, fmt.Sprintf("%v src", rec.ID.Value()))
			}
			if rec.DestinationAnchor != nil {
				debugDrawBorder(screen, *rec.DestinationAnchor, debugDestColor)
				debugDrawLabel(screen, *rec.DestinationAnchor, fmt.Sprintf("%v dst", rec.ID.Value()))
			}
			if rec.ShowLayer && rec.Content != nil && rec.anchorsResolvable() {
				src, _ := rec.ResolveSource()
				dst, _ := rec.ResolveDestination()
				frame, _ := layerFrame(rec, src, dst)
				debugDrawBorder(screen, frame, debugLayerColor)
				debugDrawLabel(screen, frame, fmt.Sprintf("%v layer %.2f", rec.ID.Value(), rec.progress))
			}
		}
	}
}

// debugDrawBorder strokes a rectangle outline using WhitePixel fills.
func debugDrawBorder(dst *ebiten.Image, r Rect, c Color) {
	w := debugBorderWidth
	debugFill(dst, Rect{r.X, r.Y, r.Width, w}, c)
	debugFill(dst, Rect{r.X, r.Y + r.Height - w, r.Width, w}, c)
	debugFill(dst, Rect{r.X, r.Y, w, r.Height}, c)
	debugFill(dst, Rect{r.X + r.Width - w, r.Y, w, r.Height}, c)
}

// debugFill draws a solid rectangle by scaling WhitePixel.
func debugFill(dst *ebiten.Image, r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	dst.DrawImage(WhitePixel, op)
}

// debugDrawLabel prints a small text label just inside a rectangle's
// top-left corner.
func debugDrawLabel(dst *ebiten.Image, r Rect, text string) {
	ebitenutil.DebugPrintAt(dst, text, int(r.X)+int(debugBorderWidth)+2, int(r.Y)+int(debugBorderWidth))
}
