package cartograph

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom limits and step rates. Wheel zoom is exponential so repeated ticks
// compound evenly in both directions; button zoom uses fixed factors.
const (
	MinZoom = 0.1
	MaxZoom = 5.0

	wheelZoomRate = 0.1
	zoomInFactor  = 1.2
	zoomOutFactor = 0.8
)

// scrollAnim holds active scroll-to tweens for pan X, pan Y, and zoom.
type scrollAnim struct {
	tweenX    *gween.Tween
	tweenY    *gween.Tween
	tweenZoom *gween.Tween
	doneX     bool
	doneY     bool
	doneZoom  bool
}

// Viewport is the pan/zoom state of one canvas: world coordinates map to
// screen coordinates as screen = world*Zoom + pan. Each canvas owns exactly
// one Viewport; the world and floor canvases are independent.
type Viewport struct {
	// X and Y are the pan offset in screen pixels.
	X, Y float64
	// Zoom is the scale factor, clamped to [MinZoom, MaxZoom].
	Zoom float64

	scrollTween *scrollAnim
}

// NewViewport creates a viewport at the origin with zoom 1.
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}

// Reset returns the viewport to the origin at zoom 1 and cancels any
// running scroll animation.
func (v *Viewport) Reset() {
	v.X, v.Y = 0, 0
	v.Zoom = 1
	v.scrollTween = nil
}

// ScreenToWorld converts screen coordinates (relative to the canvas origin)
// to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - v.X) / v.Zoom, (sy - v.Y) / v.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*v.Zoom + v.X, wy*v.Zoom + v.Y
}

// PanBy shifts the pan offset by a screen-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.X += dx
	v.Y += dy
}

// ZoomAt sets the zoom to newZoom (clamped) while keeping the world point
// under the screen point (sx, sy) stationary. The pan recomputation is
// exact, so repeated zooms never drift.
func (v *Viewport) ZoomAt(sx, sy, newZoom float64) {
	z := clampZoom(newZoom)
	v.X = sx - (sx-v.X)*(z/v.Zoom)
	v.Y = sy - (sy-v.Y)*(z/v.Zoom)
	v.Zoom = z
}

// ZoomWheel applies one wheel tick toward the cursor. Positive direction
// zooms in; fractional values from smooth-scrolling devices work too.
func (v *Viewport) ZoomWheel(sx, sy, direction float64) {
	v.ZoomAt(sx, sy, v.Zoom*math.Exp(direction*wheelZoomRate))
}

// ZoomIn applies one button-step zoom in toward the screen point.
func (v *Viewport) ZoomIn(sx, sy float64) {
	v.ZoomAt(sx, sy, v.Zoom*zoomInFactor)
}

// ZoomOut applies one button-step zoom out from the screen point.
func (v *Viewport) ZoomOut(sx, sy float64) {
	v.ZoomAt(sx, sy, v.Zoom*zoomOutFactor)
}

// VisibleBounds returns the world-space rectangle visible in a canvas of the
// given screen size.
func (v *Viewport) VisibleBounds(viewW, viewH float64) Rect {
	x0, y0 := v.ScreenToWorld(0, 0)
	x1, y1 := v.ScreenToWorld(viewW, viewH)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ScrollTo animates the pan so that the world point (wx, wy) ends up at the
// screen point (sx, sy), over duration seconds.
func (v *Viewport) ScrollTo(wx, wy, sx, sy float64, duration float32, easeFn ease.TweenFunc) {
	targetX := sx - wx*v.Zoom
	targetY := sy - wy*v.Zoom
	v.scrollTween = &scrollAnim{
		tweenX:   gween.New(float32(v.X), float32(targetX), duration, easeFn),
		tweenY:   gween.New(float32(v.Y), float32(targetY), duration, easeFn),
		doneZoom: true,
	}
}

// FocusOn animates pan and zoom so that the world rectangle r fills the
// canvas of the given screen size, with a small margin. The target zoom is
// clamped like any other.
func (v *Viewport) FocusOn(r Rect, viewW, viewH float64, duration float32, easeFn ease.TweenFunc) {
	const margin = 0.9
	z := v.Zoom
	if r.Width > 0 && r.Height > 0 {
		z = clampZoom(margin * math.Min(viewW/r.Width, viewH/r.Height))
	}
	targetX := viewW/2 - (r.X+r.Width/2)*z
	targetY := viewH/2 - (r.Y+r.Height/2)*z
	v.scrollTween = &scrollAnim{
		tweenX:    gween.New(float32(v.X), float32(targetX), duration, easeFn),
		tweenY:    gween.New(float32(v.Y), float32(targetY), duration, easeFn),
		tweenZoom: gween.New(float32(v.Zoom), float32(z), duration, easeFn),
	}
}

// Update advances any running scroll animation by dt seconds. Called once
// per frame by the owning canvas.
func (v *Viewport) Update(dt float32) {
	t := v.scrollTween
	if t == nil {
		return
	}
	if !t.doneX {
		val, done := t.tweenX.Update(dt)
		v.X = float64(val)
		t.doneX = done
	}
	if !t.doneY {
		val, done := t.tweenY.Update(dt)
		v.Y = float64(val)
		t.doneY = done
	}
	if !t.doneZoom {
		val, done := t.tweenZoom.Update(dt)
		v.Zoom = clampZoom(float64(val))
		t.doneZoom = done
	}
	if t.doneX && t.doneY && t.doneZoom {
		v.scrollTween = nil
	}
}

// clampZoom restricts z to [MinZoom, MaxZoom].
func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(z, MaxZoom))
}
