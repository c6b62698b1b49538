package dic

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Grammar holds the part-of-speech table and the connection cost matrix of
// a dictionary.
//
// The matrix has one row per right-id (the right context of a preceding word)
// and one column per left-id (the left context of a following word). It is
// not copied; lookups read the mapped storage.
type Grammar struct {
	pos      [][]string
	posIndex map[string]int
	numLeft  int    // number of left-ids, i.e. columns
	numRight int    // number of right-ids, i.e. rows
	matrix   []byte // numRight × numLeft int16 costs
}

func loadGrammar(posSection, connSection []byte) (*Grammar, error) {
	g := &Grammar{}
	d := newDecoder(posSection, 0)
	n := int(d.u16())
	g.pos = make([][]string, 0, n)
	g.posIndex = make(map[string]int, n)
	for i := 0; i < n; i++ {
		tuple := make([]string, POSDepth)
		for j := range tuple {
			tuple[j] = d.str()
		}
		if d.err != nil {
			return nil, fmt.Errorf("reading part-of-speech #%d: %w", i, d.err)
		}
		g.pos = append(g.pos, tuple)
		g.posIndex[posKey(tuple)] = i
	}
	if len(connSection) < 4 {
		return nil, fmt.Errorf("%w: connection matrix header missing", ErrCorrupt)
	}
	g.numLeft = int(binary.LittleEndian.Uint16(connSection[0:2]))
	g.numRight = int(binary.LittleEndian.Uint16(connSection[2:4]))
	g.matrix = connSection[4:]
	if len(g.matrix) != 2*g.numLeft*g.numRight {
		return nil, fmt.Errorf("%w: connection matrix of size %d×%d has %d bytes",
			ErrCorrupt, g.numRight, g.numLeft, len(g.matrix))
	}
	tracer().Debugf("grammar: %d parts-of-speech, matrix %d×%d", len(g.pos), g.numRight, g.numLeft)
	return g, nil
}

func posKey(pos []string) string {
	return strings.Join(pos, ",")
}

// POSCount returns the number of parts-of-speech in the table.
func (g *Grammar) POSCount() int {
	return len(g.pos)
}

// POS returns the part-of-speech tuple for an id. The returned slice is a copy.
func (g *Grammar) POS(id int) ([]string, bool) {
	if id < 0 || id >= len(g.pos) {
		return nil, false
	}
	tuple := make([]string, POSDepth)
	copy(tuple, g.pos[id])
	return tuple, true
}

// POSID finds the id of a part-of-speech tuple.
func (g *Grammar) POSID(pos []string) (int, bool) {
	id, ok := g.posIndex[posKey(pos)]
	return id, ok
}

// LeftIDs returns the number of distinct left-ids, i.e. the number of columns of
// the connection matrix.
func (g *Grammar) LeftIDs() int {
	return g.numLeft
}

// RightIDs returns the number of distinct right-ids, i.e. the number of rows of
// the connection matrix.
func (g *Grammar) RightIDs() int {
	return g.numRight
}

// ConnectCost returns the cost of a word with right-id rightID followed by a
// word with left-id leftID. Ids outside the matrix are never connected.
func (g *Grammar) ConnectCost(rightID, leftID uint16) int16 {
	if int(rightID) >= g.numRight || int(leftID) >= g.numLeft {
		return InhibitedConnection
	}
	inx := 2 * (int(rightID)*g.numLeft + int(leftID))
	return int16(binary.LittleEndian.Uint16(g.matrix[inx:])) //nolint:gosec
}
