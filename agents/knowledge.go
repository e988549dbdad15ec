package agents

import (
	"sort"

	"wumpus/grid_world"

	"github.com/zyedidia/generic/mapset"
)

// Tag is a note an agent takes about a cell of its private map.
type Tag string

const (
	VISITED          Tag = "V"
	SAFE             Tag = "L"
	WALL             Tag = "M"
	PIT              Tag = "P"
	MONSTER          Tag = "W"
	POSSIBLE_PIT     Tag = "P?"
	POSSIBLE_MONSTER Tag = "W?"
	BREEZE           Tag = "B"
	STENCH           Tag = "F"
	ENCOUNTERED      Tag = "D"
)

// TruthTag is the tag recording a ground-truth observation of a cell.
func TruthTag(cell grid_world.Cell) Tag {
	switch cell {
	case grid_world.WALL:
		return WALL
	case grid_world.PIT:
		return PIT
	case grid_world.MONSTER:
		return MONSTER
	}
	return SAFE
}

// KnowledgeMap is an agent's private NxN map, indexed in the agent's own
// frame. Each cell holds a set of tags. Positions are wrapped on every access.
type KnowledgeMap struct {
	n     int
	cells [][]mapset.Set[Tag]
}

// NewKnowledgeMap returns an NxN map with no notes.
func NewKnowledgeMap(n int) *KnowledgeMap {
	cells := make([][]mapset.Set[Tag], n)
	for r := range cells {
		cells[r] = make([]mapset.Set[Tag], n)
		for c := range cells[r] {
			cells[r][c] = mapset.New[Tag]()
		}
	}
	return &KnowledgeMap{n: n, cells: cells}
}

// Size returns N.
func (km *KnowledgeMap) Size() int {
	return km.n
}

func (km *KnowledgeMap) at(pos grid_world.Position) mapset.Set[Tag] {
	p := pos.Wrap(km.n)
	return km.cells[p.Row][p.Col]
}

// Has reports whether the cell carries tag.
func (km *KnowledgeMap) Has(pos grid_world.Position, tag Tag) bool {
	return km.at(pos).Has(tag)
}

// HasAny reports whether the cell carries any of the tags.
func (km *KnowledgeMap) HasAny(pos grid_world.Position, tags ...Tag) bool {
	cell := km.at(pos)
	for _, tag := range tags {
		if cell.Has(tag) {
			return true
		}
	}
	return false
}

// Add notes the tags on the cell.
func (km *KnowledgeMap) Add(pos grid_world.Position, tags ...Tag) {
	cell := km.at(pos)
	for _, tag := range tags {
		cell.Put(tag)
	}
}

// Remove erases the tags from the cell, if present.
func (km *KnowledgeMap) Remove(pos grid_world.Position, tags ...Tag) {
	cell := km.at(pos)
	for _, tag := range tags {
		cell.Remove(tag)
	}
}

// Set replaces every tag of the cell.
func (km *KnowledgeMap) Set(pos grid_world.Position, tags ...Tag) {
	km.at(pos).Clear()
	km.Add(pos, tags...)
}

// IsEmpty reports a cell without notes.
func (km *KnowledgeMap) IsEmpty(pos grid_world.Position) bool {
	return km.at(pos).Size() == 0
}

// Tags returns the cell's tags in a stable order.
func (km *KnowledgeMap) Tags(pos grid_world.Position) []Tag {
	tags := []Tag{}
	km.at(pos).Each(func(tag Tag) {
		tags = append(tags, tag)
	})
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Visit visits every cell using the passed function, row by row.
func (km *KnowledgeMap) Visit(fn func(pos grid_world.Position, tags []Tag)) {
	for r := 0; r < km.n; r++ {
		for c := 0; c < km.n; c++ {
			pos := grid_world.Position{Row: r, Col: c}
			fn(pos, km.Tags(pos))
		}
	}
}

// Clone returns a deep copy of the map.
func (km *KnowledgeMap) Clone() *KnowledgeMap {
	clone := NewKnowledgeMap(km.n)
	km.Visit(func(pos grid_world.Position, tags []Tag) {
		clone.Add(pos, tags...)
	})
	return clone
}

// Merge copies every note of src into km, placing the notes of src's cell p
// at km's cell mapping(p). Nothing of src is referenced afterward. Returns the
// number of tags km did not already hold, so merging the same snapshot twice
// reports zero the second time.
func (km *KnowledgeMap) Merge(src *KnowledgeMap, mapping func(grid_world.Position) grid_world.Position) (added int) {
	src.Visit(func(pos grid_world.Position, tags []Tag) {
		dst := mapping(pos)
		for _, tag := range tags {
			if !km.Has(dst, tag) {
				km.Add(dst, tag)
				added++
			}
		}
	})
	return
}

// Snapshot returns the notes of every cell as plain slices, indexed [row][col].
func (km *KnowledgeMap) Snapshot() [][][]Tag {
	rows := make([][][]Tag, km.n)
	for r := range rows {
		rows[r] = make([][]Tag, km.n)
	}
	km.Visit(func(pos grid_world.Position, tags []Tag) {
		rows[pos.Row][pos.Col] = tags
	})
	return rows
}
