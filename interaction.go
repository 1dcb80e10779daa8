package cartograph

import "math"

// GestureState identifies the active pointer gesture.
type GestureState uint8

const (
	StateIdle       GestureState = iota
	StateDragging                // moving an entity body
	StateResizing                // dragging an entity's corner handle
	StatePanning                 // dragging empty canvas
	StateConnecting              // rubber-banding an edge from an entity
	StateCreating                // rubber-banding a new entity rectangle
)

// HitKind classifies what lies under the pointer.
type HitKind uint8

const (
	HitNone   HitKind = iota // empty canvas
	HitBody                  // an entity's rectangle
	HitHandle                // the selected entity's resize handle
)

// Hit describes the entity under a pointer event, produced by HitTest and
// consumed by Engine.PointerDown / Engine.PointerUp.
type Hit struct {
	Kind   HitKind
	ID     string
	Bounds Rect
}

// EntityRect pairs an entity id with its world-space rectangle for hit
// testing, listed in painter order (last drawn on top).
type EntityRect struct {
	ID     string
	Bounds Rect
}

// handleScreenSize is the resize handle's edge length in screen pixels.
// Divided by zoom at hit-test time so the handle stays a constant size on
// screen.
const handleScreenSize = 10.0

// HitTest finds the topmost entity at the screen point (sx, sy), iterating
// rects in reverse painter order. Only the selected entity exposes its
// bottom-right resize handle, and the handle wins over the body.
func HitTest(view *Viewport, rects []EntityRect, selectedID string, sx, sy float64) Hit {
	wx, wy := view.ScreenToWorld(sx, sy)
	hs := handleScreenSize / view.Zoom
	for i := len(rects) - 1; i >= 0; i-- {
		r := rects[i]
		if r.ID == selectedID {
			handle := Rect{
				X:     r.Bounds.X + r.Bounds.Width - hs,
				Y:     r.Bounds.Y + r.Bounds.Height - hs,
				Width: hs, Height: hs,
			}
			if handle.Contains(wx, wy) {
				return Hit{Kind: HitHandle, ID: r.ID, Bounds: r.Bounds}
			}
		}
		if r.Bounds.Contains(wx, wy) {
			return Hit{Kind: HitBody, ID: r.ID, Bounds: r.Bounds}
		}
	}
	return Hit{}
}

// Options parameterizes which gestures a canvas allows and how commits are
// quantized. The world and floor canvases share one Engine implementation
// and differ only here.
type Options struct {
	// SnapToGrid quantizes move and create commits to GridSize. The floor
	// canvas snaps; the world canvas intentionally does not.
	SnapToGrid bool
	// GridSize is the snap cell size in world units. Defaults to
	// DefaultGridSize.
	GridSize float64
	// AllowConnect enables edge drawing with the secondary button.
	AllowConnect bool
	// AllowCreate enables rectangle creation with shift-drag or an active
	// draw tool.
	AllowCreate bool
	// ClickDeselects clears the selection on a sub-threshold click over
	// empty canvas.
	ClickDeselects bool
	// DragThreshold is the screen-space distance in pixels below which a
	// press/release pair is a click, not a drag. Defaults to 3.
	DragThreshold float64
	// MinSize clamps resize and create results. Defaults to MinEntitySize.
	MinSize float64
	// DefaultCreateSize is the entity size for a sub-threshold create
	// click. Defaults to 4×4 grid cells.
	DefaultCreateSize Vec2
}

func (o Options) withDefaults() Options {
	if o.GridSize == 0 {
		o.GridSize = DefaultGridSize
	}
	if o.DragThreshold == 0 {
		o.DragThreshold = 3
	}
	if o.MinSize == 0 {
		o.MinSize = MinEntitySize
	}
	if o.DefaultCreateSize == (Vec2{}) {
		o.DefaultCreateSize = Vec2{X: 4 * o.GridSize, Y: 4 * o.GridSize}
	}
	return o
}

// Engine is the pointer-gesture state machine for one canvas. Feed it
// PointerDown/PointerMove/PointerUp (plus a Hit for down and up) and it
// fires the commit callbacks below on completed gestures. Nothing is
// committed while a gesture is in flight; renderers draw the transient
// ghost from PreviewRect/ConnectLine instead.
//
// The engine keeps handling moves and the final up no matter what is under
// the cursor once a gesture starts, so drags may freely leave the bounds of
// the dragged shape.
type Engine struct {
	view *Viewport
	opts Options

	state       GestureState
	button      MouseButton
	startScreen Vec2
	startWorld  Vec2
	lastWorld   Vec2
	targetID    string
	initial     Rect // target geometry at gesture start
	initialPan  Vec2
	anchor      Vec2 // create anchor, snapped
	moved       bool // displacement passed DragThreshold
	drawTool    bool

	// OnSelect fires when a press lands on an entity body and when a
	// sub-threshold resize reclassifies as a click.
	OnSelect func(id string)
	// OnDeselect fires on a sub-threshold click over empty canvas when
	// Options.ClickDeselects is set.
	OnDeselect func()
	// OnMove commits a drag: the entity's new position.
	OnMove func(id string, x, y float64)
	// OnResize commits a resize: the entity's new size, already clamped.
	OnResize func(id string, w, h float64)
	// OnCreate commits a create: the normalized, snapped rectangle.
	OnCreate func(r Rect)
	// OnConnect commits an edge from sourceID to targetID. Never fires
	// with sourceID == targetID.
	OnConnect func(sourceID, targetID string)
}

// NewEngine creates an engine driving the given viewport.
func NewEngine(view *Viewport, opts Options) *Engine {
	return &Engine{view: view, opts: opts.withDefaults()}
}

// State returns the current gesture state.
func (e *Engine) State() GestureState {
	return e.state
}

// Options returns the engine's effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// SetDrawTool toggles the draw tool: while active, a plain press on empty
// canvas starts a create instead of a pan.
func (e *Engine) SetDrawTool(active bool) {
	e.drawTool = active
}

// SetCreateDefaults overrides the sub-threshold create size, e.g. when the
// toolbar switches entity kinds.
func (e *Engine) SetCreateDefaults(size Vec2) {
	e.opts.DefaultCreateSize = size
}

// PointerDown starts a gesture. hit is the entity under the pointer, from
// HitTest. Presses while a gesture is active are ignored.
func (e *Engine) PointerDown(sx, sy float64, button MouseButton, mods KeyModifiers, hit Hit) {
	if e.state != StateIdle {
		return
	}
	wx, wy := e.view.ScreenToWorld(sx, sy)
	e.button = button
	e.startScreen = Vec2{X: sx, Y: sy}
	e.startWorld = Vec2{X: wx, Y: wy}
	e.lastWorld = e.startWorld
	e.moved = false

	switch {
	case button == MouseButtonRight:
		if e.opts.AllowConnect && hit.Kind == HitBody {
			e.state = StateConnecting
			e.targetID = hit.ID
		}
	case button == MouseButtonMiddle:
		e.state = StatePanning
		e.initialPan = Vec2{X: e.view.X, Y: e.view.Y}
	case hit.Kind == HitHandle:
		e.state = StateResizing
		e.targetID = hit.ID
		e.initial = hit.Bounds
	case hit.Kind == HitBody:
		e.state = StateDragging
		e.targetID = hit.ID
		e.initial = hit.Bounds
		if e.OnSelect != nil {
			e.OnSelect(hit.ID)
		}
	case e.opts.AllowCreate && (mods&ModShift != 0 || e.drawTool):
		e.state = StateCreating
		e.anchor = e.maybeSnap(Vec2{X: wx, Y: wy})
	default:
		e.state = StatePanning
		e.initialPan = Vec2{X: e.view.X, Y: e.view.Y}
	}
}

// PointerMove updates the gesture in flight. Panning takes effect
// immediately; every other state only updates the preview.
func (e *Engine) PointerMove(sx, sy float64) {
	if e.state == StateIdle {
		return
	}
	if !e.moved {
		dx := sx - e.startScreen.X
		dy := sy - e.startScreen.Y
		if math.Hypot(dx, dy) >= e.opts.DragThreshold {
			e.moved = true
		}
	}
	wx, wy := e.view.ScreenToWorld(sx, sy)
	e.lastWorld = Vec2{X: wx, Y: wy}

	if e.state == StatePanning {
		e.view.X = e.initialPan.X + (sx - e.startScreen.X)
		e.view.Y = e.initialPan.Y + (sy - e.startScreen.Y)
	}
}

// PointerUp ends the gesture, committing it if the displacement passed the
// threshold (creates commit regardless, falling back to the default size).
// hit is the entity under the release point; only connects consume it.
func (e *Engine) PointerUp(sx, sy float64, hit Hit) {
	if e.state == StateIdle {
		return
	}
	// A release without any intervening move must still classify correctly.
	e.PointerMove(sx, sy)
	wx, wy := e.view.ScreenToWorld(sx, sy)

	state := e.state
	targetID := e.targetID
	e.state = StateIdle
	e.targetID = ""

	switch state {
	case StateDragging:
		if e.moved && e.OnMove != nil {
			pos := e.maybeSnap(Vec2{
				X: e.initial.X + (wx - e.startWorld.X),
				Y: e.initial.Y + (wy - e.startWorld.Y),
			})
			e.OnMove(targetID, pos.X, pos.Y)
		}
	case StateResizing:
		if !e.moved {
			// Sub-threshold press on the handle is just a click.
			if e.OnSelect != nil {
				e.OnSelect(targetID)
			}
		} else if e.OnResize != nil {
			w := math.Max(e.opts.MinSize, e.initial.Width+(wx-e.startWorld.X))
			h := math.Max(e.opts.MinSize, e.initial.Height+(wy-e.startWorld.Y))
			e.OnResize(targetID, w, h)
		}
	case StatePanning:
		if !e.moved && e.opts.ClickDeselects && e.OnDeselect != nil {
			e.OnDeselect()
		}
	case StateCreating:
		if e.OnCreate != nil {
			e.OnCreate(e.createRect(Vec2{X: wx, Y: wy}))
		}
	case StateConnecting:
		if hit.Kind == HitBody && hit.ID != targetID && e.OnConnect != nil {
			e.OnConnect(targetID, hit.ID)
		}
	}
}

// Cancel discards the gesture in flight without committing anything.
// Panning already applied stays applied.
func (e *Engine) Cancel() {
	e.state = StateIdle
	e.targetID = ""
	e.moved = false
}

// PreviewRect returns the transient ghost rectangle for the gesture in
// flight: the shifted body while dragging, the stretched body while
// resizing, or the rubber-band span while creating.
func (e *Engine) PreviewRect() (Rect, bool) {
	switch e.state {
	case StateDragging:
		pos := e.maybeSnap(Vec2{
			X: e.initial.X + (e.lastWorld.X - e.startWorld.X),
			Y: e.initial.Y + (e.lastWorld.Y - e.startWorld.Y),
		})
		return Rect{X: pos.X, Y: pos.Y, Width: e.initial.Width, Height: e.initial.Height}, true
	case StateResizing:
		return Rect{
			X: e.initial.X, Y: e.initial.Y,
			Width:  math.Max(e.opts.MinSize, e.initial.Width+(e.lastWorld.X-e.startWorld.X)),
			Height: math.Max(e.opts.MinSize, e.initial.Height+(e.lastWorld.Y-e.startWorld.Y)),
		}, true
	case StateCreating:
		return e.createRect(e.lastWorld), true
	}
	return Rect{}, false
}

// ConnectLine returns the world-space rubber-band endpoints while an edge is
// being drawn.
func (e *Engine) ConnectLine() (from, to Vec2, ok bool) {
	if e.state != StateConnecting {
		return Vec2{}, Vec2{}, false
	}
	return e.startWorld, e.lastWorld, true
}

// createRect builds the commit rectangle for a create gesture ending at the
// given world point. Sub-threshold clicks place the default size at the
// anchor, so click-to-place and drag-to-size run through the same state.
func (e *Engine) createRect(end Vec2) Rect {
	if !e.moved {
		return Rect{
			X: e.anchor.X, Y: e.anchor.Y,
			Width:  e.opts.DefaultCreateSize.X,
			Height: e.opts.DefaultCreateSize.Y,
		}
	}
	r := RectBetween(e.anchor, e.maybeSnap(end))
	r.Width = math.Max(e.opts.MinSize, r.Width)
	r.Height = math.Max(e.opts.MinSize, r.Height)
	return r
}

// maybeSnap grid-snaps p when the canvas snaps.
func (e *Engine) maybeSnap(p Vec2) Vec2 {
	if !e.opts.SnapToGrid {
		return p
	}
	return SnapPoint(p, e.opts.GridSize)
}
