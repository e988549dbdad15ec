package grid_world

import "fmt"

// Position is a (row, col) pair. Rows grow southward and columns grow eastward.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p displaced by one step along o. The result is not wrapped.
func (p Position) Add(o Orientation) Position {
	return Position{Row: p.Row + o.DR, Col: p.Col + o.DC}
}

// Sub returns p displaced by one step against o, the inverse of Add.
func (p Position) Sub(o Orientation) Position {
	return Position{Row: p.Row - o.DR, Col: p.Col - o.DC}
}

// Wrap maps p onto an NxN torus.
func (p Position) Wrap(n int) Position {
	return Position{Row: mod(p.Row, n), Col: mod(p.Col, n)}
}

// Neighbors returns the four orthogonal neighbors of p on an NxN torus,
// in south, east, north, west order. Diagonals are never neighbors.
func (p Position) Neighbors(n int) [4]Position {
	var ns [4]Position
	for i, o := range Orientations {
		ns[i] = p.Add(o).Wrap(n)
	}
	return ns
}

// ManhattanDistance returns the shortest orthogonal step count between p and q
// on an NxN torus.
func ManhattanDistance(p, q Position, n int) int {
	return torusDelta(p.Row, q.Row, n) + torusDelta(p.Col, q.Col, n)
}

func torusDelta(a, b, n int) int {
	d := mod(a-b, n)
	if n-d < d {
		return n - d
	}
	return d
}

func mod(x, n int) int {
	return ((x % n) + n) % n
}

// Orientation is a unit vector along one of the grid axes.
type Orientation struct {
	DR, DC int
}

var (
	SOUTH = Orientation{DR: 1, DC: 0}
	EAST  = Orientation{DR: 0, DC: 1}
	NORTH = Orientation{DR: -1, DC: 0}
	WEST  = Orientation{DR: 0, DC: -1}
)

// Orientations in left-turn order starting from south, the conventional
// initial heading of every character's private frame.
var Orientations = [4]Orientation{SOUTH, EAST, NORTH, WEST}

// Right rotates o clockwise (seen from above): (dr,dc) -> (dc,-dr).
func (o Orientation) Right() Orientation {
	return Orientation{DR: o.DC, DC: -o.DR}
}

// Left rotates o counter-clockwise: (dr,dc) -> (-dc,dr).
func (o Orientation) Left() Orientation {
	return Orientation{DR: -o.DC, DC: o.DR}
}

// Reverse returns the opposite heading.
func (o Orientation) Reverse() Orientation {
	return Orientation{DR: -o.DR, DC: -o.DC}
}

// IsUnit reports whether o is one of the four headings.
func (o Orientation) IsUnit() bool {
	return o.index() >= 0
}

// Glyph is the console arrow for o.
func (o Orientation) Glyph() rune {
	switch o {
	case SOUTH:
		return 'v'
	case EAST:
		return '>'
	case NORTH:
		return '^'
	case WEST:
		return '<'
	}
	return '?'
}

func (o Orientation) String() string {
	switch o {
	case SOUTH:
		return "south"
	case EAST:
		return "east"
	case NORTH:
		return "north"
	case WEST:
		return "west"
	}
	return fmt.Sprintf("(%d,%d)", o.DR, o.DC)
}

// index returns the number of left turns from south to o, or -1.
func (o Orientation) index() int {
	for i, u := range Orientations {
		if u == o {
			return i
		}
	}
	return -1
}

func (o Orientation) rotate(leftTurns int) Orientation {
	return Orientations[mod(o.index()+leftTurns, 4)]
}

func rotate(p Position, leftTurns int) Position {
	for i := 0; i < mod(leftTurns, 4); i++ {
		p = Position{Row: -p.Col, Col: p.Row}
	}
	return p
}

// Frame is a character's private coordinate system: the absolute pose at which
// the character believes it stands at (0,0) facing south. A frame is fixed when
// the character is created and is a rigid transform of the absolute frame.
type Frame struct {
	Origin  Position
	Heading Orientation
}

// ToAbsolute maps a position of the frame onto the absolute NxN grid.
func (f Frame) ToAbsolute(rel Position, n int) Position {
	v := rotate(rel, f.Heading.index())
	return Position{Row: f.Origin.Row + v.Row, Col: f.Origin.Col + v.Col}.Wrap(n)
}

// ToRelative maps an absolute position into the frame.
func (f Frame) ToRelative(abs Position, n int) Position {
	v := Position{Row: abs.Row - f.Origin.Row, Col: abs.Col - f.Origin.Col}
	return rotate(v, -f.Heading.index()).Wrap(n)
}

// HeadingToAbsolute maps a heading of the frame onto the absolute frame.
func (f Frame) HeadingToAbsolute(rel Orientation) Orientation {
	return rel.rotate(f.Heading.index())
}

// Into returns the mapping from positions of f to positions of other,
// both frames living on the same NxN grid.
func (f Frame) Into(other Frame, n int) func(Position) Position {
	return func(p Position) Position {
		return other.ToRelative(f.ToAbsolute(p, n), n)
	}
}
