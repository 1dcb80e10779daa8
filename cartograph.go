package cartograph

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, and deltas
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// RectBetween returns the normalized rectangle spanning two corner points,
// regardless of which corner comes first.
func RectBetween(a, b Vec2) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// --- Grid ---

const (
	// DefaultGridSize is the floor-canvas grid cell size in world units.
	DefaultGridSize = 20.0
	// MinEntitySize is the smallest drawable width or height for rooms and
	// world nodes. Resizes and creates below it are clamped, not rejected.
	MinEntitySize = 20.0
)

// Snap rounds v to the nearest multiple of grid. Snap is idempotent:
// Snap(Snap(v, g), g) == Snap(v, g). A grid of zero or less returns v unchanged.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// SnapPoint snaps both components of p to the grid.
func SnapPoint(p Vec2, grid float64) Vec2 {
	return Vec2{X: Snap(p.X, grid), Y: Snap(p.Y, grid)}
}

// --- Entity kinds ---

// NodeKind classifies a top-level place on the world map.
type NodeKind uint8

const (
	KindLocation NodeKind = iota // generic named place
	KindHub                      // transit hub (station, port, crossroads)
	KindRoad                     // road or route segment
	KindTerrain                  // terrain feature (hill, plateau, chasm)
	KindBuilding                 // standalone building with floors
	KindNatural                  // natural feature (forest, lake, spring)
)

// DefaultSize returns the initial width and height for a newly placed node
// of this kind.
func (k NodeKind) DefaultSize() (w, h float64) {
	switch k {
	case KindHub:
		return 60, 60
	case KindRoad:
		return 80, 20
	case KindTerrain:
		return 100, 80
	case KindBuilding:
		return 60, 50
	case KindNatural:
		return 70, 60
	default:
		return 50, 40
	}
}

// RoomKind classifies a rectangular sub-area of a floor.
type RoomKind uint8

const (
	RoomInterior RoomKind = iota // interior room
	RoomBuilding                 // standalone building drawn on the floor
	RoomOutdoor                  // outdoor area (courtyard, garden)
	RoomWater                    // water area (pool, pond, moat)
)

// ItemKind classifies a leaf fixture placed inside a room.
type ItemKind uint8

const (
	ItemDoor ItemKind = iota
	ItemStairs
	ItemRoad
	ItemWall
	ItemTree
	ItemWater
)

// --- Input ---

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifiers held during a pointer event.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)
