package cartograph

import "math"

// A path is an ordered list of room ids describing a descent from a
// WorldNode's own floors into nested rooms: at each step the next id is
// looked up among the current floors' rooms, and traversal continues through
// that room's SubFloors. An empty path addresses the node itself.
//
// All updates are copy-on-write with structural sharing: only the floors and
// rooms along the path are reconstructed; every sibling is reused by
// reference, so a renderer holding the old root always sees a consistent
// snapshot.

// ReadAtPath returns the floor list of the container addressed by path.
// Reports false if any path segment cannot be resolved.
func ReadAtPath(node *WorldNode, path []string) ([]*Floor, bool) {
	floors := node.Floors
	for _, id := range path {
		room, ok := findRoom(floors, id)
		if !ok {
			return nil, false
		}
		floors = room.SubFloors
	}
	return floors, true
}

// ResolveRoom returns the room addressed by the last path segment.
// Reports false for an empty path or an unresolvable segment.
func ResolveRoom(node *WorldNode, path []string) (*Room, bool) {
	if len(path) == 0 {
		return nil, false
	}
	floors := node.Floors
	var room *Room
	for _, id := range path {
		r, ok := findRoom(floors, id)
		if !ok {
			return nil, false
		}
		room = r
		floors = r.SubFloors
	}
	return room, true
}

// UpdateAtPath applies fn to the floor list of the container addressed by
// path and returns a new root with the result spliced in. If any path
// segment cannot be resolved the original node is returned unchanged and ok
// is false, so callers that ignore ok degrade to a no-op.
//
// fn must treat its argument as immutable and return a fresh slice (or the
// argument itself for a no-op).
func UpdateAtPath(node *WorldNode, path []string, fn func([]*Floor) []*Floor) (*WorldNode, bool) {
	floors, ok := updateFloors(node.Floors, path, fn)
	if !ok {
		return node, false
	}
	updated := *node
	updated.Floors = floors
	return &updated, true
}

// findRoom scans every floor's rooms for id. Single container level only.
func findRoom(floors []*Floor, id string) (*Room, bool) {
	for _, f := range floors {
		for _, r := range f.Rooms {
			if r.ID == id {
				return r, true
			}
		}
	}
	return nil, false
}

// updateFloors is the recursive heart of path addressing. It rebuilds the
// spine floor→room→subfloors for the matched segment and shares everything
// else.
func updateFloors(floors []*Floor, path []string, fn func([]*Floor) []*Floor) ([]*Floor, bool) {
	if len(path) == 0 {
		return fn(floors), true
	}
	for fi, f := range floors {
		for ri, r := range f.Rooms {
			if r.ID != path[0] {
				continue
			}
			sub, ok := updateFloors(r.SubFloors, path[1:], fn)
			if !ok {
				return floors, false
			}
			room := *r
			room.SubFloors = sub

			rooms := make([]*Room, len(f.Rooms))
			copy(rooms, f.Rooms)
			rooms[ri] = &room

			floor := *f
			floor.Rooms = rooms

			out := make([]*Floor, len(floors))
			copy(out, floors)
			out[fi] = &floor
			return out, true
		}
	}
	return floors, false
}

// --- Floor mutators ---

// AddFloor inserts a floor into the container at path, keeping floors sorted
// by level.
func AddFloor(node *WorldNode, path []string, floor *Floor) (*WorldNode, bool) {
	return UpdateAtPath(node, path, func(floors []*Floor) []*Floor {
		out := make([]*Floor, len(floors), len(floors)+1)
		copy(out, floors)
		return sortFloors(append(out, floor))
	})
}

// RenameFloor renames the floor with the given id in the container at path.
func RenameFloor(node *WorldNode, path []string, floorID, name string) (*WorldNode, bool) {
	return updateFloor(node, path, floorID, func(f *Floor) *Floor {
		renamed := *f
		renamed.Name = name
		return &renamed
	})
}

// DeleteFloor removes the floor with the given id from the container at path.
func DeleteFloor(node *WorldNode, path []string, floorID string) (*WorldNode, bool) {
	found := false
	updated, ok := UpdateAtPath(node, path, func(floors []*Floor) []*Floor {
		for i, f := range floors {
			if f.ID == floorID {
				found = true
				out := make([]*Floor, 0, len(floors)-1)
				out = append(out, floors[:i]...)
				return append(out, floors[i+1:]...)
			}
		}
		return floors
	})
	return updated, ok && found
}

// updateFloor applies fn to one floor inside the container at path.
func updateFloor(node *WorldNode, path []string, floorID string, fn func(*Floor) *Floor) (*WorldNode, bool) {
	found := false
	updated, ok := UpdateAtPath(node, path, func(floors []*Floor) []*Floor {
		for i, f := range floors {
			if f.ID == floorID {
				found = true
				out := make([]*Floor, len(floors))
				copy(out, floors)
				out[i] = fn(f)
				return out
			}
		}
		return floors
	})
	return updated, ok && found
}

// --- Room mutators ---

// AddRoom appends a room to the floor with the given id in the container at
// path.
func AddRoom(node *WorldNode, path []string, floorID string, room *Room) (*WorldNode, bool) {
	return updateFloor(node, path, floorID, func(f *Floor) *Floor {
		rooms := make([]*Room, len(f.Rooms), len(f.Rooms)+1)
		copy(rooms, f.Rooms)
		updated := *f
		updated.Rooms = append(rooms, room)
		return &updated
	})
}

// UpdateRoom applies fn to the room with the given id, searching every floor
// of the container at path. fn receives a copy it may modify and return.
func UpdateRoom(node *WorldNode, path []string, roomID string, fn func(*Room) *Room) (*WorldNode, bool) {
	found := false
	updated, ok := UpdateAtPath(node, path, func(floors []*Floor) []*Floor {
		for fi, f := range floors {
			for ri, r := range f.Rooms {
				if r.ID != roomID {
					continue
				}
				found = true
				rooms := make([]*Room, len(f.Rooms))
				copy(rooms, f.Rooms)
				copied := *r
				rooms[ri] = fn(&copied)

				floor := *f
				floor.Rooms = rooms
				out := make([]*Floor, len(floors))
				copy(out, floors)
				out[fi] = &floor
				return out
			}
		}
		return floors
	})
	return updated, ok && found
}

// MoveRoom repositions a room within the container at path.
func MoveRoom(node *WorldNode, path []string, roomID string, x, y float64) (*WorldNode, bool) {
	return UpdateRoom(node, path, roomID, func(r *Room) *Room {
		r.X, r.Y = x, y
		return r
	})
}

// ResizeRoom resizes a room, clamped to MinEntitySize.
func ResizeRoom(node *WorldNode, path []string, roomID string, width, height float64) (*WorldNode, bool) {
	return UpdateRoom(node, path, roomID, func(r *Room) *Room {
		r.W = math.Max(MinEntitySize, width)
		r.H = math.Max(MinEntitySize, height)
		return r
	})
}

// DeleteRoom removes a room from whichever floor of the container at path
// holds it.
func DeleteRoom(node *WorldNode, path []string, roomID string) (*WorldNode, bool) {
	found := false
	updated, ok := UpdateAtPath(node, path, func(floors []*Floor) []*Floor {
		for fi, f := range floors {
			for ri, r := range f.Rooms {
				if r.ID != roomID {
					continue
				}
				found = true
				rooms := make([]*Room, 0, len(f.Rooms)-1)
				rooms = append(rooms, f.Rooms[:ri]...)
				rooms = append(rooms, f.Rooms[ri+1:]...)

				floor := *f
				floor.Rooms = rooms
				out := make([]*Floor, len(floors))
				copy(out, floors)
				out[fi] = &floor
				return out
			}
		}
		return floors
	})
	return updated, ok && found
}

// --- Item mutators ---

// AddItem appends an item to the room with the given id in the container at
// path.
func AddItem(node *WorldNode, path []string, roomID string, item *Item) (*WorldNode, bool) {
	return UpdateRoom(node, path, roomID, func(r *Room) *Room {
		items := make([]*Item, len(r.Items), len(r.Items)+1)
		copy(items, r.Items)
		r.Items = append(items, item)
		return r
	})
}

// UpdateItem applies fn to one item of the room with the given id. fn
// receives a copy it may modify and return.
func UpdateItem(node *WorldNode, path []string, roomID, itemID string, fn func(*Item) *Item) (*WorldNode, bool) {
	found := false
	updated, ok := UpdateRoom(node, path, roomID, func(r *Room) *Room {
		for i, it := range r.Items {
			if it.ID == itemID {
				found = true
				items := make([]*Item, len(r.Items))
				copy(items, r.Items)
				copied := *it
				items[i] = fn(&copied)
				r.Items = items
				return r
			}
		}
		return r
	})
	return updated, ok && found
}

// DeleteItem removes an item from the room with the given id.
func DeleteItem(node *WorldNode, path []string, roomID, itemID string) (*WorldNode, bool) {
	found := false
	updated, ok := UpdateRoom(node, path, roomID, func(r *Room) *Room {
		for i, it := range r.Items {
			if it.ID == itemID {
				found = true
				items := make([]*Item, 0, len(r.Items)-1)
				items = append(items, r.Items[:i]...)
				r.Items = append(items, r.Items[i+1:]...)
				return r
			}
		}
		return r
	})
	return updated, ok && found
}
