package cartograph

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// WorldNode is a top-level place on the world map. Buildings carry Floors;
// other kinds usually leave Floors empty but may gain them later.
type WorldNode struct {
	ID     string
	Name   string
	Kind   NodeKind
	X, Y   float64
	W, H   float64
	Tags   []string
	Floors []*Floor
}

// Edge is a labeled connection between two world nodes.
type Edge struct {
	ID       string
	SourceID string
	TargetID string
	Label    string
}

// Floor is an ordered level within a WorldNode or Room. Level 0 is ground;
// negative levels are below grade. Floors are kept sorted by Level.
type Floor struct {
	ID    string
	Name  string
	Level int
	Rooms []*Room
}

// Room is a rectangular sub-area of a floor, positioned relative to it.
// A Room may carry its own SubFloors, nesting a full building inside it;
// path traversal descends through SubFloors exactly as through a node's
// Floors. A Room is not constrained to its parent floor's bounds.
type Room struct {
	ID        string
	Name      string
	Kind      RoomKind
	X, Y      float64
	W, H      float64
	Items     []*Item
	SubFloors []*Floor
}

// Item is a leaf fixture placed inside a room, positioned relative to it.
type Item struct {
	ID   string
	Name string
	Kind ItemKind
	X, Y float64
}

// --- Constructors ---

// NewWorldNode creates a node of the given kind at (x, y) with the kind's
// default size.
func NewWorldNode(name string, kind NodeKind, x, y float64) *WorldNode {
	w, h := kind.DefaultSize()
	return &WorldNode{
		ID:   uuid.New().String(),
		Name: name,
		Kind: kind,
		X:    x, Y: y,
		W: w, H: h,
	}
}

// NewEdge creates an edge between two node ids. Validation happens in
// World.AddEdge, not here.
func NewEdge(sourceID, targetID, label string) *Edge {
	return &Edge{
		ID:       uuid.New().String(),
		SourceID: sourceID,
		TargetID: targetID,
		Label:    label,
	}
}

// NewFloor creates an empty floor at the given level.
func NewFloor(name string, level int) *Floor {
	return &Floor{
		ID:    uuid.New().String(),
		Name:  name,
		Level: level,
	}
}

// NewRoom creates a room covering bounds, clamped to MinEntitySize.
func NewRoom(name string, kind RoomKind, bounds Rect) *Room {
	return &Room{
		ID:   uuid.New().String(),
		Name: name,
		Kind: kind,
		X:    bounds.X, Y: bounds.Y,
		W: math.Max(MinEntitySize, bounds.Width),
		H: math.Max(MinEntitySize, bounds.Height),
	}
}

// NewItem creates an item at (x, y), relative to its future room.
func NewItem(name string, kind ItemKind, x, y float64) *Item {
	return &Item{
		ID:   uuid.New().String(),
		Name: name,
		Kind: kind,
		X:    x, Y: y,
	}
}

// Bounds returns the node's rectangle in world coordinates.
func (n *WorldNode) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.W, Height: n.H}
}

// Bounds returns the room's rectangle in floor coordinates.
func (r *Room) Bounds() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// --- World ---

// World is the root of the spatial tree: the node list plus the edges
// connecting nodes. World values are immutable; every mutator returns a new
// World sharing all untouched nodes and edges by reference.
type World struct {
	Nodes []*WorldNode
	Edges []*Edge
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// Node returns the node with the given id.
func (w *World) Node(id string) (*WorldNode, bool) {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Edge returns the edge with the given id.
func (w *World) Edge(id string) (*Edge, bool) {
	for _, e := range w.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// AddNode returns a world with n appended.
func (w *World) AddNode(n *WorldNode) *World {
	nodes := make([]*WorldNode, len(w.Nodes), len(w.Nodes)+1)
	copy(nodes, w.Nodes)
	return &World{Nodes: append(nodes, n), Edges: w.Edges}
}

// ReplaceNode returns a world with the node of the same id swapped for n.
// Unknown ids leave the world unchanged.
func (w *World) ReplaceNode(n *WorldNode) (*World, bool) {
	for i, old := range w.Nodes {
		if old.ID == n.ID {
			nodes := make([]*WorldNode, len(w.Nodes))
			copy(nodes, w.Nodes)
			nodes[i] = n
			return &World{Nodes: nodes, Edges: w.Edges}, true
		}
	}
	return w, false
}

// MoveNode returns a world with the node repositioned.
func (w *World) MoveNode(id string, x, y float64) (*World, bool) {
	n, ok := w.Node(id)
	if !ok {
		return w, false
	}
	moved := *n
	moved.X, moved.Y = x, y
	return w.ReplaceNode(&moved)
}

// ResizeNode returns a world with the node resized, clamped to MinEntitySize.
func (w *World) ResizeNode(id string, width, height float64) (*World, bool) {
	n, ok := w.Node(id)
	if !ok {
		return w, false
	}
	resized := *n
	resized.W = math.Max(MinEntitySize, width)
	resized.H = math.Max(MinEntitySize, height)
	return w.ReplaceNode(&resized)
}

// DeleteNode returns a world without the node and without any edges
// incident to it.
func (w *World) DeleteNode(id string) (*World, bool) {
	idx := -1
	for i, n := range w.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return w, false
	}
	nodes := make([]*WorldNode, 0, len(w.Nodes)-1)
	nodes = append(nodes, w.Nodes[:idx]...)
	nodes = append(nodes, w.Nodes[idx+1:]...)

	edges := w.Edges
	for _, e := range w.Edges {
		if e.SourceID == id || e.TargetID == id {
			edges = make([]*Edge, 0, len(w.Edges))
			for _, e := range w.Edges {
				if e.SourceID != id && e.TargetID != id {
					edges = append(edges, e)
				}
			}
			break
		}
	}
	return &World{Nodes: nodes, Edges: edges}, true
}

// AddEdge returns a world with a new edge from sourceID to targetID.
// Self-connections and references to missing nodes are rejected.
func (w *World) AddEdge(sourceID, targetID, label string) (*World, bool) {
	if sourceID == targetID {
		return w, false
	}
	if _, ok := w.Node(sourceID); !ok {
		return w, false
	}
	if _, ok := w.Node(targetID); !ok {
		return w, false
	}
	edges := make([]*Edge, len(w.Edges), len(w.Edges)+1)
	copy(edges, w.Edges)
	return &World{Nodes: w.Nodes, Edges: append(edges, NewEdge(sourceID, targetID, label))}, true
}

// DeleteEdge returns a world without the given edge.
func (w *World) DeleteEdge(id string) (*World, bool) {
	for i, e := range w.Edges {
		if e.ID == id {
			edges := make([]*Edge, 0, len(w.Edges)-1)
			edges = append(edges, w.Edges[:i]...)
			edges = append(edges, w.Edges[i+1:]...)
			return &World{Nodes: w.Nodes, Edges: edges}, true
		}
	}
	return w, false
}

// --- Floor ordering ---

// sortFloors returns floors ordered by Level, ascending. The input slice is
// not modified.
func sortFloors(floors []*Floor) []*Floor {
	out := make([]*Floor, len(floors))
	copy(out, floors)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// firstFloorID returns the id of the lowest-level floor, or "" if there are
// no floors.
func firstFloorID(floors []*Floor) string {
	if len(floors) == 0 {
		return ""
	}
	first := floors[0]
	for _, f := range floors[1:] {
		if f.Level < first.Level {
			first = f
		}
	}
	return first.ID
}
