package cartograph

// Crumb is one breadcrumb entry: the WorldNode or a visited Room.
type Crumb struct {
	ID   string
	Name string
}

// Context is the resolved navigation state: the floor list of the container
// currently being edited, and the breadcrumb trail leading to it.
type Context struct {
	Floors      []*Floor
	Breadcrumbs []Crumb
}

// Navigator tracks where the user is in the recursive tree: which node is
// open, the stack of room ids descended into, and which floor is active.
// An empty stack means the node's own root; an empty ActiveNodeID means the
// world view.
//
// Navigation never fails: rooms deleted out from under the stack truncate
// the resolved context instead of erroring.
type Navigator struct {
	ActiveNodeID  string
	Stack         []string
	ActiveFloorID string

	// OnChange fires after every navigation change. Selection is scoped to
	// the visible container, so canvases clear it here.
	OnChange func()
}

// OpenNode opens a world node for floor editing, starting at its root with
// its lowest floor active.
func (n *Navigator) OpenNode(world *World, nodeID string) bool {
	node, ok := world.Node(nodeID)
	if !ok {
		return false
	}
	n.ActiveNodeID = nodeID
	n.Stack = nil
	n.ActiveFloorID = firstFloorID(node.Floors)
	n.fireChange()
	return true
}

// ResolveContext walks the stack from the active node and returns the
// current container's floors plus breadcrumbs from the node down through
// each visited room. If a stacked room no longer exists the walk stops
// there and the breadcrumbs truncate; ok is false only when no node is
// open at all.
func (n *Navigator) ResolveContext(world *World) (Context, bool) {
	node, ok := world.Node(n.ActiveNodeID)
	if !ok {
		return Context{}, false
	}
	ctx := Context{
		Floors:      node.Floors,
		Breadcrumbs: []Crumb{{ID: node.ID, Name: node.Name}},
	}
	for _, id := range n.Stack {
		room, ok := findRoom(ctx.Floors, id)
		if !ok {
			break
		}
		ctx.Floors = room.SubFloors
		ctx.Breadcrumbs = append(ctx.Breadcrumbs, Crumb{ID: room.ID, Name: room.Name})
	}
	return ctx, true
}

// EnterRoom descends into a room of the current container, making its first
// floor active (or none if the room has no floors yet).
func (n *Navigator) EnterRoom(world *World, roomID string) bool {
	ctx, ok := n.ResolveContext(world)
	if !ok {
		return false
	}
	room, ok := findRoom(ctx.Floors, roomID)
	if !ok {
		return false
	}
	n.Stack = append(n.Stack, roomID)
	n.ActiveFloorID = firstFloorID(room.SubFloors)
	n.fireChange()
	return true
}

// NavigateUp pops one level. At the node's root it exits to the world view
// entirely, clearing the active node.
func (n *Navigator) NavigateUp(world *World) {
	if len(n.Stack) == 0 {
		n.ActiveNodeID = ""
		n.ActiveFloorID = ""
		n.fireChange()
		return
	}
	n.truncate(world, len(n.Stack)-1)
}

// NavigateUpTo truncates the stack to the given breadcrumb depth; index 0 is
// the node's root. Out-of-range indices are ignored.
func (n *Navigator) NavigateUpTo(world *World, index int) {
	if index < 0 || index > len(n.Stack) {
		return
	}
	n.truncate(world, index)
}

// SetActiveFloor switches the active floor within the current container.
func (n *Navigator) SetActiveFloor(floorID string) {
	n.ActiveFloorID = floorID
	n.fireChange()
}

func (n *Navigator) truncate(world *World, depth int) {
	n.Stack = n.Stack[:depth]
	if ctx, ok := n.ResolveContext(world); ok {
		n.ActiveFloorID = firstFloorID(ctx.Floors)
	} else {
		n.ActiveFloorID = ""
	}
	n.fireChange()
}

func (n *Navigator) fireChange() {
	if n.OnChange != nil {
		n.OnChange()
	}
}
