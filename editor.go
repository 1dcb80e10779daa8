package cartograph

// itemSize is the drawn and hit-tested edge length of an item fixture, in
// world units. Items carry only a position; their footprint is one grid cell.
const itemSize = DefaultGridSize

// Editor owns the current world snapshot, the navigator, and the two
// canvases. All commits funnel through here: each one replaces the world
// with a structurally shared copy and notifies OnWorldChange, so a
// persistence collaborator always sees complete snapshots.
type Editor struct {
	world *World
	nav   *Navigator

	worldCanvas *Canvas
	floorCanvas *Canvas

	// OnWorldChange fires with the new snapshot after every commit.
	OnWorldChange func(*World)
	// OnNavigate fires after every navigation change, after selections are
	// cleared.
	OnNavigate func()
}

// NewEditor creates an editor over the given world with a world canvas and
// a floor canvas wired up.
func NewEditor(world *World) *Editor {
	ed := &Editor{world: world, nav: &Navigator{}}
	ed.worldCanvas = newWorldCanvas(ed)
	ed.floorCanvas = newFloorCanvas(ed)
	ed.nav.OnChange = func() {
		ed.worldCanvas.ClearSelection()
		ed.floorCanvas.ClearSelection()
		if ed.OnNavigate != nil {
			ed.OnNavigate()
		}
	}
	return ed
}

// World returns the current immutable snapshot.
func (ed *Editor) World() *World {
	return ed.world
}

// SetWorld replaces the snapshot, e.g. after loading a project.
func (ed *Editor) SetWorld(w *World) {
	ed.world = w
	if ed.OnWorldChange != nil {
		ed.OnWorldChange(w)
	}
}

// Navigator returns the shared navigation controller.
func (ed *Editor) Navigator() *Navigator {
	return ed.nav
}

// WorldCanvas returns the canvas editing the world map.
func (ed *Editor) WorldCanvas() *Canvas {
	return ed.worldCanvas
}

// FloorCanvas returns the canvas editing the open node's floors.
func (ed *Editor) FloorCanvas() *Canvas {
	return ed.floorCanvas
}

// ActiveCanvas returns the floor canvas while a node is open, otherwise the
// world canvas. Only one canvas is active per navigation state.
func (ed *Editor) ActiveCanvas() *Canvas {
	if ed.nav.ActiveNodeID != "" {
		return ed.floorCanvas
	}
	return ed.worldCanvas
}

// Breadcrumbs returns the trail for the navigation UI; nil in the world view.
func (ed *Editor) Breadcrumbs() []Crumb {
	ctx, ok := ed.nav.ResolveContext(ed.world)
	if !ok {
		return nil
	}
	return ctx.Breadcrumbs
}

// OpenBuilding opens a node on the floor canvas.
func (ed *Editor) OpenBuilding(nodeID string) bool {
	return ed.nav.OpenNode(ed.world, nodeID)
}

// EnterRoom descends into a room of the open node.
func (ed *Editor) EnterRoom(roomID string) bool {
	return ed.nav.EnterRoom(ed.world, roomID)
}

// NavigateUp pops one navigation level, or exits to the world view.
func (ed *Editor) NavigateUp() {
	ed.nav.NavigateUp(ed.world)
}

// NavigateUpTo truncates navigation to a breadcrumb depth (0 = node root).
func (ed *Editor) NavigateUpTo(index int) {
	ed.nav.NavigateUpTo(ed.world, index)
}

// activeNode returns the open node, if any.
func (ed *Editor) activeNode() (*WorldNode, bool) {
	return ed.world.Node(ed.nav.ActiveNodeID)
}

// commitNode swaps an updated copy of the open node into the world.
func (ed *Editor) commitNode(node *WorldNode) {
	if w, ok := ed.world.ReplaceNode(node); ok {
		ed.SetWorld(w)
	}
}

// --- Canvas ---

// Canvas is one editing surface: exactly one Engine and one Viewport, plus
// the selection scoped to what the canvas currently shows. Construct via
// Editor; the world and floor canvases differ only in their Options and in
// where commits land (world CRUD vs. path-addressed floor mutators).
type Canvas struct {
	ed     *Editor
	engine *Engine
	view   *Viewport
	floor  bool // floor canvas, as opposed to world canvas

	selection      string
	createNodeKind NodeKind
	createRoomKind RoomKind

	pointerDown bool
}

func newWorldCanvas(ed *Editor) *Canvas {
	view := NewViewport()
	c := &Canvas{
		ed:   ed,
		view: view,
		engine: NewEngine(view, Options{
			AllowConnect:   true,
			AllowCreate:    true,
			ClickDeselects: true,
		}),
	}
	c.SetCreateNodeKind(KindLocation)
	c.engine.OnSelect = func(id string) { c.selection = id }
	c.engine.OnDeselect = func() { c.selection = "" }
	c.engine.OnMove = func(id string, x, y float64) {
		if w, ok := ed.world.MoveNode(id, x, y); ok {
			ed.SetWorld(w)
		}
	}
	c.engine.OnResize = func(id string, w, h float64) {
		if nw, ok := ed.world.ResizeNode(id, w, h); ok {
			ed.SetWorld(nw)
		}
	}
	c.engine.OnCreate = func(r Rect) {
		node := NewWorldNode("Untitled", c.createNodeKind, r.X, r.Y)
		node.W, node.H = r.Width, r.Height
		ed.SetWorld(ed.world.AddNode(node))
		c.selection = node.ID
	}
	c.engine.OnConnect = func(sourceID, targetID string) {
		if w, ok := ed.world.AddEdge(sourceID, targetID, ""); ok {
			ed.SetWorld(w)
		}
	}
	return c
}

func newFloorCanvas(ed *Editor) *Canvas {
	view := NewViewport()
	c := &Canvas{
		ed:    ed,
		view:  view,
		floor: true,
		engine: NewEngine(view, Options{
			SnapToGrid:  true,
			AllowCreate: true,
		}),
		createRoomKind: RoomInterior,
	}
	c.engine.OnSelect = func(id string) { c.selection = id }
	c.engine.OnDeselect = func() { c.selection = "" }
	c.engine.OnMove = c.commitFloorMove
	c.engine.OnResize = func(id string, w, h float64) {
		node, ok := ed.activeNode()
		if !ok {
			return
		}
		if updated, ok := ResizeRoom(node, ed.nav.Stack, id, w, h); ok {
			ed.commitNode(updated)
		}
	}
	c.engine.OnCreate = func(r Rect) {
		node, ok := ed.activeNode()
		if !ok {
			return
		}
		room := NewRoom("Room", c.createRoomKind, r)
		if updated, ok := AddRoom(node, ed.nav.Stack, ed.nav.ActiveFloorID, room); ok {
			ed.commitNode(updated)
			c.selection = room.ID
		}
	}
	return c
}

// commitFloorMove routes a drag commit to the room or item that was dragged.
// Item positions are room-relative, so the absolute drop point is translated
// back into the owning room's space.
func (c *Canvas) commitFloorMove(id string, x, y float64) {
	ed := c.ed
	node, ok := ed.activeNode()
	if !ok {
		return
	}
	if updated, ok := MoveRoom(node, ed.nav.Stack, id, x, y); ok {
		ed.commitNode(updated)
		return
	}
	room, item, ok := c.findItem(id)
	if !ok {
		return
	}
	updated, ok := UpdateItem(node, ed.nav.Stack, room.ID, item.ID, func(it *Item) *Item {
		it.X = x - room.X
		it.Y = y - room.Y
		return it
	})
	if ok {
		ed.commitNode(updated)
	}
}

// findItem locates an item by id among the active floor's rooms.
func (c *Canvas) findItem(id string) (*Room, *Item, bool) {
	floor, ok := c.activeFloor()
	if !ok {
		return nil, nil, false
	}
	for _, room := range floor.Rooms {
		for _, it := range room.Items {
			if it.ID == id {
				return room, it, true
			}
		}
	}
	return nil, nil, false
}

// activeFloor resolves the navigator's active floor within the current
// container.
func (c *Canvas) activeFloor() (*Floor, bool) {
	ctx, ok := c.ed.nav.ResolveContext(c.ed.world)
	if !ok {
		return nil, false
	}
	for _, f := range ctx.Floors {
		if f.ID == c.ed.nav.ActiveFloorID {
			return f, true
		}
	}
	return nil, false
}

// Engine returns the canvas's interaction engine.
func (c *Canvas) Engine() *Engine {
	return c.engine
}

// View returns the canvas's viewport for zoom display and rendering.
func (c *Canvas) View() *Viewport {
	return c.view
}

// Selection returns the selected entity id, or "".
func (c *Canvas) Selection() string {
	return c.selection
}

// ClearSelection drops the selection and cancels any gesture in flight.
func (c *Canvas) ClearSelection() {
	c.selection = ""
	c.engine.Cancel()
}

// SetCreateNodeKind picks the node kind placed by create gestures on the
// world canvas, and with it the sub-threshold default size.
func (c *Canvas) SetCreateNodeKind(kind NodeKind) {
	c.createNodeKind = kind
	w, h := kind.DefaultSize()
	c.engine.SetCreateDefaults(Vec2{X: w, Y: h})
}

// SetCreateRoomKind picks the room kind placed by create gestures on the
// floor canvas.
func (c *Canvas) SetCreateRoomKind(kind RoomKind) {
	c.createRoomKind = kind
}

// EntityRects lists what the canvas currently shows, in painter order, for
// hit testing and rendering. The floor canvas lists the active floor's rooms
// first and their items on top.
func (c *Canvas) EntityRects() []EntityRect {
	if !c.floor {
		rects := make([]EntityRect, 0, len(c.ed.world.Nodes))
		for _, n := range c.ed.world.Nodes {
			rects = append(rects, EntityRect{ID: n.ID, Bounds: n.Bounds()})
		}
		return rects
	}
	floor, ok := c.activeFloor()
	if !ok {
		return nil
	}
	var rects []EntityRect
	for _, room := range floor.Rooms {
		rects = append(rects, EntityRect{ID: room.ID, Bounds: room.Bounds()})
	}
	for _, room := range floor.Rooms {
		for _, it := range room.Items {
			rects = append(rects, EntityRect{
				ID:     it.ID,
				Bounds: Rect{X: room.X + it.X, Y: room.Y + it.Y, Width: itemSize, Height: itemSize},
			})
		}
	}
	return rects
}

// HitTestAt hit-tests the canvas at a screen point.
func (c *Canvas) HitTestAt(sx, sy float64) Hit {
	return HitTest(c.view, c.EntityRects(), c.selection, sx, sy)
}

// Update advances viewport animations by dt seconds. Call once per frame.
func (c *Canvas) Update(dt float32) {
	c.view.Update(dt)
}

// DeleteSelected removes the selected entity: a node (cascading its edges)
// on the world canvas, a room or item on the floor canvas.
func (c *Canvas) DeleteSelected() {
	id := c.selection
	if id == "" {
		return
	}
	ed := c.ed
	if !c.floor {
		if w, ok := ed.world.DeleteNode(id); ok {
			ed.SetWorld(w)
			c.selection = ""
		}
		return
	}
	node, ok := ed.activeNode()
	if !ok {
		return
	}
	if updated, ok := DeleteRoom(node, ed.nav.Stack, id); ok {
		ed.commitNode(updated)
		c.selection = ""
		return
	}
	if room, item, ok := c.findItem(id); ok {
		if updated, ok := DeleteItem(node, ed.nav.Stack, room.ID, item.ID); ok {
			ed.commitNode(updated)
			c.selection = ""
		}
	}
}

// EnterSelected descends into the selected room (floor canvas) or opens the
// selected building (world canvas).
func (c *Canvas) EnterSelected() bool {
	id := c.selection
	if id == "" {
		return false
	}
	if c.floor {
		return c.ed.EnterRoom(id)
	}
	return c.ed.OpenBuilding(id)
}
