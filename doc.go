// Package cartograph is the spatial hierarchy editor core for worldbuilding
// tools: a recursively nested world map edited on pan/zoom canvases.
//
// A world is a flat list of [WorldNode]s connected by [Edge]s. Each node
// carries [Floor]s of [Room]s, and a room may carry floors of its own,
// nesting a full building inside a room to any depth. The tree is immutable:
// every edit goes through [UpdateAtPath] (or a convenience mutator built on
// it), which rebuilds only the containers along the addressed path and
// shares every sibling by reference, so renderers always hold a consistent
// snapshot.
//
// # Editing
//
// [Editor] owns the current snapshot, a [Navigator] (which node is open,
// which rooms have been descended into, which floor is active), and two
// [Canvas] instances: the world canvas and the floor canvas. Each canvas
// owns exactly one [Viewport] (pan/zoom with exact zoom-toward-cursor) and
// one [Engine], the pointer-gesture state machine that turns raw
// down/move/up events into drag, resize, pan, connect, and create commits
// with click-versus-drag disambiguation.
//
//	world := cartograph.NewWorld()
//	ed := cartograph.NewEditor(world)
//	ed.OnWorldChange = func(w *cartograph.World) { /* persist */ }
//
// Drive a canvas from an [ebiten.Game]:
//
//	func (g *Game) Update() error {
//		c := g.editor.ActiveCanvas()
//		c.PollInput()
//		c.Update(1.0 / float32(ebiten.TPS()))
//		return nil
//	}
//
// The engine is input-agnostic — feed [Engine.PointerDown],
// [Engine.PointerMove], and [Engine.PointerUp] directly for headless use or
// a different input backend; [Canvas.PollInput] is the ebiten binding.
//
// Rendering is left to the caller: draw from [Canvas.EntityRects], the
// gesture ghost from [Engine.PreviewRect] and [Engine.ConnectLine], and the
// breadcrumb trail from [Editor.Breadcrumbs]. See examples/editor for a
// complete program.
//
// [ebiten.Game]: https://pkg.go.dev/github.com/hajimehoshi/ebiten/v2#Game
package cartograph
