package cartograph

import "github.com/hajimehoshi/ebiten/v2"

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// PollInput reads ebiten's mouse state once per frame and feeds the engine:
// press edges become PointerDown, release edges PointerUp, held frames
// PointerMove, and wheel ticks zoom toward the cursor. Because polling is
// global, an active gesture keeps receiving moves and its final release
// even after the cursor leaves the pressed entity.
func (c *Canvas) PollInput() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	pressed := left || right || middle

	var button MouseButton
	switch {
	case left:
		button = MouseButtonLeft
	case right:
		button = MouseButtonRight
	default:
		button = MouseButtonMiddle
	}

	switch {
	case pressed && !c.pointerDown:
		c.pointerDown = true
		c.engine.PointerDown(sx, sy, button, readModifiers(), c.HitTestAt(sx, sy))
	case !pressed && c.pointerDown:
		c.pointerDown = false
		c.engine.PointerUp(sx, sy, c.HitTestAt(sx, sy))
	case pressed:
		c.engine.PointerMove(sx, sy)
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		c.view.ZoomWheel(sx, sy, wheelY)
	}
}
