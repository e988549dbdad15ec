package grid_world

import (
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// SenseKind enumerates the sensory tags a character may receive.
type SenseKind int

const (
	STENCH SenseKind = iota
	BREEZE
	BUMP
	SCREAM
	ENCOUNTER
)

func (k SenseKind) String() string {
	switch k {
	case STENCH:
		return "stench"
	case BREEZE:
		return "breeze"
	case BUMP:
		return "bump"
	case SCREAM:
		return "scream"
	case ENCOUNTER:
		return "encounter"
	}
	return "unknown"
}

// Sense is a single sensory tag. ID is only set for ENCOUNTER, and carries the
// identity of the character met.
type Sense struct {
	Kind SenseKind
	ID   string
}

var (
	Stench = Sense{Kind: STENCH}
	Breeze = Sense{Kind: BREEZE}
	Bump   = Sense{Kind: BUMP}
	Scream = Sense{Kind: SCREAM}
)

// Encounter returns the sense of meeting the character with the passed id.
func Encounter(id string) Sense {
	return Sense{Kind: ENCOUNTER, ID: id}
}

func (s Sense) String() string {
	if s.Kind == ENCOUNTER {
		return s.Kind.String() + ":" + s.ID
	}
	return s.Kind.String()
}

// Percept is the unordered set of senses available to a character on one turn.
// The world computes it fresh every turn and never stores it.
type Percept struct {
	senses mapset.Set[Sense]
}

// NewPercept returns a percept holding the passed senses; duplicates collapse.
func NewPercept(senses ...Sense) Percept {
	p := Percept{senses: mapset.New[Sense]()}
	for _, s := range senses {
		p.senses.Put(s)
	}
	return p
}

// Has reports whether the percept contains s.
func (p Percept) Has(s Sense) bool {
	return p.senses.Has(s)
}

// Size is the number of distinct senses.
func (p Percept) Size() int {
	return p.senses.Size()
}

// IsEmpty reports a percept with no senses at all.
func (p Percept) IsEmpty() bool {
	return p.Size() == 0
}

// Encounters returns the ids of every character met this turn, sorted.
func (p Percept) Encounters() (ids []string) {
	for _, s := range p.Senses() {
		if s.Kind == ENCOUNTER {
			ids = append(ids, s.ID)
		}
	}
	return
}

// Senses returns the senses ordered by kind, then id.
func (p Percept) Senses() []Sense {
	senses := make([]Sense, 0, p.Size())
	p.senses.Each(func(s Sense) {
		senses = append(senses, s)
	})
	sort.Slice(senses, func(i, j int) bool {
		if senses[i].Kind != senses[j].Kind {
			return senses[i].Kind < senses[j].Kind
		}
		return senses[i].ID < senses[j].ID
	})
	return senses
}

func (p Percept) String() string {
	names := []string{}
	for _, s := range p.Senses() {
		names = append(names, s.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Flags are the transient, per-turn inputs to percept generation.
type Flags struct {
	// Bump is set when the character's last move was blocked by a wall.
	Bump bool
	// Scream is set for the one turn after a monster was killed.
	Scream bool
	// Colocated holds the ids of live characters sharing the cell.
	Colocated []string
}

// Perceive builds the percept for a character at pos by inspecting the four
// toroidal neighbors of pos, plus the passed flags. It never mutates the world.
func (w *World) Perceive(pos Position, flags Flags) Percept {
	p := NewPercept()
	for _, nb := range pos.Neighbors(w.grid.Size()) {
		switch w.grid.CellAt(nb) {
		case MONSTER:
			p.senses.Put(Stench)
		case PIT:
			p.senses.Put(Breeze)
		}
	}
	if flags.Bump {
		p.senses.Put(Bump)
	}
	if flags.Scream {
		p.senses.Put(Scream)
	}
	for _, id := range flags.Colocated {
		p.senses.Put(Encounter(id))
	}
	return p
}
