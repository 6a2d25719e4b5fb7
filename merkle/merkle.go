// Package merkle implements a complete binary hash tree over an arbitrary
// digest type, with single-leaf authentication paths and compacted
// authentication structures for opening many leaves at once.
//
// All nodes live in one flat arena indexed by the usual 1-based complete
// binary tree numbering: the root sits at index 1 and the children of node
// i are 2i and 2i+1. Parent/child navigation is index arithmetic, never a
// pointer. A tree is immutable once built; WithLeaf returns an updated
// copy that recomputes only the affected root path.
package merkle

import (
	"errors"
	"runtime"
	"sync"
)

var (
	// ErrEmptyLeaves rejects building a tree with no leaves.
	ErrEmptyLeaves = errors.New("merkle: cannot build a tree from zero leaves")
	// ErrIndexOutOfRange rejects leaf indices at or beyond the leaf count.
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")
	// ErrEmptyQuery rejects authentication structures for an empty index set.
	ErrEmptyQuery = errors.New("merkle: empty query index set")
	// ErrDuplicateIndex rejects query index sets containing repeats.
	ErrDuplicateIndex = errors.New("merkle: duplicate query index")
)

// Hasher is the compression collaborator: a pure two-to-one function on
// digests. The tree treats it as an opaque, deterministic black box.
type Hasher[D comparable] interface {
	HashPair(left, right D) D
}

// Tree is a complete binary hash tree. nodes[0] is unused; leaves occupy
// nodes[n:2n] for the padded leaf count n.
type Tree[D comparable] struct {
	nodes    []D
	numLeafs int
	hasher   Hasher[D]
}

// parallelBuildCutoff is the level width from which tree construction fans
// out across CPUs. Levels are a strict barrier: a level starts only after
// the one below is complete.
const parallelBuildCutoff = 1 << 10

// Build constructs a tree over the given leaf digests. A leaf count that is
// not a power of two is padded up to the next one by repeating the final
// leaf digest; the padding is part of the committed tree, so the same rule
// holds for every rebuild of the same leaves. Fails with ErrEmptyLeaves for
// an empty leaf sequence.
func Build[D comparable](hasher Hasher[D], leaves []D) (*Tree[D], error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyLeaves
	}
	n := paddedCount(len(leaves))
	nodes := make([]D, 2*n)
	copy(nodes[n:], leaves)
	for i := n + len(leaves); i < 2*n; i++ {
		nodes[i] = leaves[len(leaves)-1]
	}
	t := &Tree[D]{nodes: nodes, numLeafs: len(leaves), hasher: hasher}
	for width := n / 2; width >= 1; width /= 2 {
		t.buildLevel(width)
	}
	return t, nil
}

// buildLevel fills nodes[width:2*width] from the completed level below.
// Every node at the level depends only on its own two children, so the
// level splits freely across goroutines.
func (t *Tree[D]) buildLevel(width int) {
	if width < parallelBuildCutoff {
		for i := width; i < 2*width; i++ {
			t.nodes[i] = t.hasher.HashPair(t.nodes[2*i], t.nodes[2*i+1])
		}
		return
	}
	workers := runtime.GOMAXPROCS(0)
	chunk := (width + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := width; lo < 2*width; lo += chunk {
		hi := lo + chunk
		if hi > 2*width {
			hi = 2 * width
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				t.nodes[i] = t.hasher.HashPair(t.nodes[2*i], t.nodes[2*i+1])
			}
		}(lo, hi)
	}
	wg.Wait()
}

// Root returns the root commitment.
func (t *Tree[D]) Root() D { return t.nodes[1] }

// NumLeafs returns the number of leaves the tree was built from, excluding
// padding.
func (t *Tree[D]) NumLeafs() int { return t.numLeafs }

// Height returns the number of levels below the root.
func (t *Tree[D]) Height() int {
	h := 0
	for n := t.paddedLeafs(); n > 1; n >>= 1 {
		h++
	}
	return h
}

// Leaf returns the digest of leaf i.
func (t *Tree[D]) Leaf(i int) (D, error) {
	if i < 0 || i >= t.numLeafs {
		var zero D
		return zero, ErrIndexOutOfRange
	}
	return t.nodes[t.paddedLeafs()+i], nil
}

// WithLeaf returns a copy of the tree with leaf i replaced, recomputing
// only the nodes on the path from that leaf to the root. Padding copies
// made at build time are snapshots and are not re-derived.
func (t *Tree[D]) WithLeaf(i int, digest D) (*Tree[D], error) {
	if i < 0 || i >= t.numLeafs {
		return nil, ErrIndexOutOfRange
	}
	nodes := make([]D, len(t.nodes))
	copy(nodes, t.nodes)
	node := t.paddedLeafs() + i
	nodes[node] = digest
	for node >>= 1; node >= 1; node >>= 1 {
		nodes[node] = t.hasher.HashPair(nodes[2*node], nodes[2*node+1])
	}
	return &Tree[D]{nodes: nodes, numLeafs: t.numLeafs, hasher: t.hasher}, nil
}

func (t *Tree[D]) paddedLeafs() int { return len(t.nodes) / 2 }

func paddedCount(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
