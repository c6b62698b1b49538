package analysis

import (
	"context"
	"errors"
	"math"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/jmorph/chardef"
	"github.com/npillmayer/jmorph/dic"
)

// ErrNoPath is returned if the end of the text cannot be reached, i.e., all
// paths through the lattice contain an inhibited connection.
var ErrNoPath = errors.New("analysis: no path through lattice")

const noNode = -1

// lnode is a word candidate in the lattice.
type lnode struct {
	begin, end int // folded positions
	leftID     uint16
	rightID    uint16
	cost       int
	wordID     uint32
	oov        bool
	total      int // cost of the best path from BOS up to and including this node
	prev       int // best predecessor, noNode for BOS
	reachable  bool
}

// lattice holds all word candidates of a text. Nodes are kept in a single
// slab and referenced by index.
type lattice struct {
	input  inputText
	folder *chardef.Folder
	nodes  []lnode
	endsAt [][]int // node indices by end position
}

func (l *lattice) reset(size int) {
	l.nodes = l.nodes[:0]
	if cap(l.endsAt) < size+1 {
		l.endsAt = make([][]int, size+1)
	}
	l.endsAt = l.endsAt[:size+1]
	for i := range l.endsAt {
		l.endsAt[i] = l.endsAt[i][:0]
	}
}

func (l *lattice) add(n lnode) {
	n.prev = noNode
	l.nodes = append(l.nodes, n)
	l.endsAt[n.end] = append(l.endsAt[n.end], len(l.nodes)-1)
}

// build fills the lattice with dictionary words and OOV words for the
// prepared input.
func (l *lattice) build(e *Engine) error {
	in := &l.input
	l.reset(in.size())
	for p := 0; p < in.size(); p++ {
		if !in.isBoundary(p) {
			continue
		}
		found := false
		var paramErr error
		err := e.lexicon.CommonPrefixSearch(in.folded, p, func(wordID uint32, end int) {
			if paramErr != nil || !in.isBoundary(end) {
				return
			}
			params, err := e.lexicon.Params(wordID)
			if err != nil {
				paramErr = err
				return
			}
			l.add(lnode{
				begin: p, end: end, wordID: wordID,
				leftID: params.LeftID, rightID: params.RightID, cost: int(params.Cost),
			})
			found = true
		})
		if err == nil {
			err = paramErr
		}
		if err != nil {
			return err
		}
		if !found {
			l.add(lnode{
				begin: p, end: in.candidateEnd(p), oov: true,
				leftID: e.oov.leftID, rightID: e.oov.rightID, cost: int(e.oov.cost),
			})
		}
	}
	tracer().Debugf("lattice: %d nodes for %d bytes", len(l.nodes), in.size())
	return nil
}

// connect computes the best predecessor for every node. Nodes are created
// in order of their begin position, so all predecessors of a node are final
// when the node is visited.
func (l *lattice) connect(g *dic.Grammar) {
	for i := range l.nodes {
		n := &l.nodes[i]
		if n.begin == 0 {
			c := g.ConnectCost(0, n.leftID) // from BOS
			if c != dic.InhibitedConnection {
				n.total, n.reachable = int(c)+n.cost, true
			}
			continue
		}
		best := math.MaxInt
		for _, j := range l.endsAt[n.begin] {
			p := &l.nodes[j]
			if !p.reachable {
				continue
			}
			c := g.ConnectCost(p.rightID, n.leftID)
			if c == dic.InhibitedConnection {
				continue
			}
			if t := p.total + int(c); t < best {
				best, n.prev = t, j
			}
		}
		if n.prev != noNode {
			n.total, n.reachable = best+n.cost, true
		}
	}
}

// bestPath returns the indices of the nodes on the path of least cost, in
// text order.
func (l *lattice) bestPath(g *dic.Grammar) ([]int, error) {
	size := l.input.size()
	if size == 0 {
		return nil, nil
	}
	l.connect(g)
	last, best := noNode, math.MaxInt
	for _, j := range l.endsAt[size] {
		p := &l.nodes[j]
		if !p.reachable {
			continue
		}
		c := g.ConnectCost(p.rightID, 0) // to EOS
		if c == dic.InhibitedConnection {
			continue
		}
		if t := p.total + int(c); t < best {
			last, best = j, t
		}
	}
	if last == noNode {
		return nil, ErrNoPath
	}
	var path []int
	for j := last; j != noNode; j = l.nodes[j].prev {
		path = append(path, j)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// --- Pooling ----------------------------------------------------------

// Lattices are short-lived and carry sizeable buffers. We pool them.
type latticePool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalLatticePool *latticePool

func init() {
	globalLatticePool = &latticePool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &lattice{folder: chardef.NewFolder()}, nil
		})
	globalLatticePool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalLatticePool.opool = pool.NewObjectPool(globalLatticePool.ctx, factory, config)
}

// borrowLattice returns a lattice for exclusive use by the caller.
func borrowLattice() *lattice {
	o, err := globalLatticePool.opool.BorrowObject(globalLatticePool.ctx)
	if err != nil {
		tracer().Errorf("lattice pool: %s", err.Error())
		return &lattice{folder: chardef.NewFolder()}
	}
	return o.(*lattice)
}

// releaseIntoPool clears references to the analyzed text and puts the
// lattice back into the pool.
func (l *lattice) releaseIntoPool() {
	l.input.original = ""
	l.nodes = l.nodes[:0]
	_ = globalLatticePool.opool.ReturnObject(globalLatticePool.ctx, l)
}
