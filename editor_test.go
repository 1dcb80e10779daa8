package cartograph

import "testing"

func testEditor() *Editor {
	return NewEditor(NewWorld().AddNode(testNode()))
}

func TestWorldCanvasShiftClickCreatesNode(t *testing.T) {
	ed := NewEditor(NewWorld())
	snapshots := 0
	ed.OnWorldChange = func(*World) { snapshots++ }
	c := ed.WorldCanvas()

	c.Engine().PointerDown(120, 80, MouseButtonLeft, ModShift, Hit{})
	c.Engine().PointerUp(120, 80, Hit{})

	if len(ed.World().Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(ed.World().Nodes))
	}
	n := ed.World().Nodes[0]
	if n.Kind != KindLocation {
		t.Errorf("kind = %v, want KindLocation", n.Kind)
	}
	if n.X != 120 || n.Y != 80 || n.W != 50 || n.H != 40 {
		t.Errorf("geometry = (%f,%f,%f,%f), want (120,80,50,40)", n.X, n.Y, n.W, n.H)
	}
	if c.Selection() != n.ID {
		t.Errorf("selection = %q, want the new node", c.Selection())
	}
	if snapshots != 1 {
		t.Errorf("OnWorldChange fired %d times, want 1", snapshots)
	}
}

func TestWorldCanvasCreateKindControlsDefaults(t *testing.T) {
	ed := NewEditor(NewWorld())
	c := ed.WorldCanvas()
	c.SetCreateNodeKind(KindTerrain)

	c.Engine().PointerDown(0, 0, MouseButtonLeft, ModShift, Hit{})
	c.Engine().PointerUp(0, 0, Hit{})

	n := ed.World().Nodes[0]
	if n.Kind != KindTerrain || n.W != 100 || n.H != 80 {
		t.Errorf("node = %+v, want terrain at its 100x80 default", n)
	}
}

func TestWorldCanvasDragIsUnsnapped(t *testing.T) {
	ed := testEditor()
	c := ed.WorldCanvas()

	// testNode sits at (0,0) with size 60x50.
	c.Engine().PointerDown(10, 10, MouseButtonLeft, 0, c.HitTestAt(10, 10))
	c.Engine().PointerMove(53, 32)
	c.Engine().PointerUp(53, 32, Hit{})

	n, _ := ed.World().Node("n1")
	if n.X != 43 || n.Y != 22 {
		t.Errorf("node at (%f,%f), want unsnapped (43,22)", n.X, n.Y)
	}
}

func TestWorldCanvasConnect(t *testing.T) {
	w := worldWithNodes("a", "b")
	nb, _ := w.Node("b")
	nb.X = 200
	ed := NewEditor(w)
	c := ed.WorldCanvas()

	c.Engine().PointerDown(10, 10, MouseButtonRight, 0, c.HitTestAt(10, 10))
	c.Engine().PointerMove(210, 10)
	c.Engine().PointerUp(210, 10, c.HitTestAt(210, 10))

	if len(ed.World().Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(ed.World().Edges))
	}
	e := ed.World().Edges[0]
	if e.SourceID != "a" || e.TargetID != "b" {
		t.Errorf("edge = %+v, want a -> b", e)
	}
}

func TestWorldCanvasConnectToSelfRejected(t *testing.T) {
	w := worldWithNodes("a")
	ed := NewEditor(w)
	c := ed.WorldCanvas()

	c.Engine().PointerDown(10, 10, MouseButtonRight, 0, c.HitTestAt(10, 10))
	c.Engine().PointerMove(30, 30)
	c.Engine().PointerUp(30, 30, c.HitTestAt(30, 30))

	if len(ed.World().Edges) != 0 {
		t.Errorf("edges = %d, want none for a self connection", len(ed.World().Edges))
	}
}

func TestFloorCanvasDragSnapsRoom(t *testing.T) {
	ed := testEditor()
	ed.OpenBuilding("n1")
	c := ed.FloorCanvas()

	// Room r1 spans (0,0)-(100,80) on the active ground floor.
	c.Engine().PointerDown(75, 45, MouseButtonLeft, 0, c.HitTestAt(75, 45))
	if c.Selection() != "r1" {
		t.Fatalf("selection = %q, want r1", c.Selection())
	}
	c.Engine().PointerMove(118, 67) // screen delta (43,22)
	c.Engine().PointerUp(118, 67, Hit{})

	node, _ := ed.World().Node("n1")
	room, _ := ResolveRoom(node, []string{"r1"})
	if room.X != 40 || room.Y != 20 {
		t.Errorf("room at (%f,%f), want snapped (40,20)", room.X, room.Y)
	}
}

func TestFloorCanvasDragItem(t *testing.T) {
	ed := testEditor()
	ed.OpenBuilding("n1")
	c := ed.FloorCanvas()

	// Item i1 draws on top of its room at absolute (10,20).
	hit := c.HitTestAt(15, 25)
	if hit.ID != "i1" {
		t.Fatalf("hit = %+v, want item i1", hit)
	}
	c.Engine().PointerDown(15, 25, MouseButtonLeft, 0, hit)
	c.Engine().PointerMove(52, 63) // delta (37,38)
	c.Engine().PointerUp(52, 63, Hit{})

	node, _ := ed.World().Node("n1")
	room, _ := ResolveRoom(node, []string{"r1"})
	it := room.Items[0]
	if it.X != 40 || it.Y != 60 {
		t.Errorf("item at (%f,%f), want snapped (40,60)", it.X, it.Y)
	}
}

func TestFloorCanvasCreateRoom(t *testing.T) {
	ed := testEditor()
	ed.OpenBuilding("n1")
	c := ed.FloorCanvas()
	c.SetCreateRoomKind(RoomOutdoor)

	c.Engine().PointerDown(300, 300, MouseButtonLeft, ModShift, Hit{})
	c.Engine().PointerMove(361, 342)
	c.Engine().PointerUp(361, 342, Hit{})

	node, _ := ed.World().Node("n1")
	var created *Room
	for _, r := range node.Floors[0].Rooms {
		if r.Kind == RoomOutdoor {
			created = r
		}
	}
	if created == nil {
		t.Fatal("no room created on the active floor")
	}
	if created.X != 300 || created.Y != 300 || created.W != 60 || created.H != 40 {
		t.Errorf("room = (%f,%f,%f,%f), want (300,300,60,40)", created.X, created.Y, created.W, created.H)
	}
	if c.Selection() != created.ID {
		t.Errorf("selection = %q, want the new room", c.Selection())
	}
}

func TestFloorCanvasResizeRoom(t *testing.T) {
	ed := testEditor()
	ed.OpenBuilding("n1")
	c := ed.FloorCanvas()

	// Select r1, then grab its bottom-right handle.
	c.Engine().PointerDown(50, 40, MouseButtonLeft, 0, c.HitTestAt(50, 40))
	c.Engine().PointerUp(50, 40, Hit{})
	hit := c.HitTestAt(95, 75)
	if hit.Kind != HitHandle {
		t.Fatalf("hit = %+v, want the resize handle", hit)
	}
	c.Engine().PointerDown(95, 75, MouseButtonLeft, 0, hit)
	c.Engine().PointerMove(135, 95)
	c.Engine().PointerUp(135, 95, Hit{})

	node, _ := ed.World().Node("n1")
	room, _ := ResolveRoom(node, []string{"r1"})
	if room.W != 140 || room.H != 100 {
		t.Errorf("room size = (%f,%f), want (140,100)", room.W, room.H)
	}
}

func TestDeleteSelectedRoom(t *testing.T) {
	ed := testEditor()
	ed.OpenBuilding("n1")
	c := ed.FloorCanvas()

	c.Engine().PointerDown(220, 25, MouseButtonLeft, 0, c.HitTestAt(220, 25)) // room ra
	c.Engine().PointerUp(220, 25, Hit{})
	if c.Selection() != "ra" {
		t.Fatalf("selection = %q, want ra", c.Selection())
	}
	c.DeleteSelected()

	node, _ := ed.World().Node("n1")
	if _, ok := ResolveRoom(node, []string{"ra"}); ok {
		t.Error("room still present after delete")
	}
	if c.Selection() != "" {
		t.Errorf("selection = %q, want cleared", c.Selection())
	}
}

func TestDeleteSelectedNodeCascades(t *testing.T) {
	w := worldWithNodes("a", "b")
	w, _ = w.AddEdge("a", "b", "")
	ed := NewEditor(w)
	c := ed.WorldCanvas()

	c.Engine().PointerDown(10, 10, MouseButtonLeft, 0, c.HitTestAt(10, 10))
	c.Engine().PointerUp(10, 10, Hit{})
	c.DeleteSelected()

	if len(ed.World().Nodes) != 1 || len(ed.World().Edges) != 0 {
		t.Errorf("world = %d nodes, %d edges; want 1 and 0",
			len(ed.World().Nodes), len(ed.World().Edges))
	}
}

func TestNavigationClearsSelection(t *testing.T) {
	ed := testEditor()
	ed.OpenBuilding("n1")
	c := ed.FloorCanvas()

	c.Engine().PointerDown(75, 45, MouseButtonLeft, 0, c.HitTestAt(75, 45))
	c.Engine().PointerUp(75, 45, Hit{})
	if c.Selection() != "r1" {
		t.Fatalf("selection = %q, want r1", c.Selection())
	}

	ed.EnterRoom("r1")
	if c.Selection() != "" {
		t.Errorf("selection = %q, want cleared after navigation", c.Selection())
	}
	if ed.Navigator().ActiveFloorID != "sf1" {
		t.Errorf("ActiveFloorID = %q, want sf1", ed.Navigator().ActiveFloorID)
	}
}

func TestEnterSelectedOpensBuilding(t *testing.T) {
	ed := testEditor()
	c := ed.WorldCanvas()
	if ed.ActiveCanvas() != c {
		t.Fatal("world canvas should be active before navigation")
	}

	c.Engine().PointerDown(10, 10, MouseButtonLeft, 0, c.HitTestAt(10, 10))
	c.Engine().PointerUp(10, 10, Hit{})
	if !c.EnterSelected() {
		t.Fatal("EnterSelected failed")
	}

	if ed.Navigator().ActiveNodeID != "n1" {
		t.Errorf("active node = %q, want n1", ed.Navigator().ActiveNodeID)
	}
	if ed.ActiveCanvas() != ed.FloorCanvas() {
		t.Error("floor canvas should be active after opening a building")
	}
	crumbs := ed.Breadcrumbs()
	if len(crumbs) != 1 || crumbs[0].Name != "Keep" {
		t.Errorf("breadcrumbs = %v, want [Keep]", crumbs)
	}
}

func TestFloorCanvasEntityRectsPainterOrder(t *testing.T) {
	ed := testEditor()
	ed.OpenBuilding("n1")
	rects := ed.FloorCanvas().EntityRects()

	// Rooms first, items after, so items hit-test on top.
	if len(rects) != 3 {
		t.Fatalf("rects = %d, want 2 rooms + 1 item", len(rects))
	}
	if rects[0].ID != "r1" || rects[1].ID != "ra" || rects[2].ID != "i1" {
		t.Errorf("order = [%s %s %s], want [r1 ra i1]", rects[0].ID, rects[1].ID, rects[2].ID)
	}
	if rects[2].Bounds != (Rect{10, 20, itemSize, itemSize}) {
		t.Errorf("item bounds = %v, want {10 20 %v %v}", rects[2].Bounds, itemSize, itemSize)
	}
}

func TestFloorCanvasInactiveWithoutOpenNode(t *testing.T) {
	ed := testEditor()
	c := ed.FloorCanvas()
	if rects := c.EntityRects(); rects != nil {
		t.Errorf("rects = %v, want none with no open node", rects)
	}
	// Commits degrade to no-ops rather than panicking.
	c.Engine().PointerDown(10, 10, MouseButtonLeft, ModShift, Hit{})
	c.Engine().PointerUp(10, 10, Hit{})
}
