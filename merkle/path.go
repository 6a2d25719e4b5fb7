package merkle

// AuthenticationPath returns the sibling digests on the path from leaf i to
// the root, leaf level first. Its length equals the tree height. Fails with
// ErrIndexOutOfRange for indices at or beyond the leaf count.
func (t *Tree[D]) AuthenticationPath(i int) ([]D, error) {
	if i < 0 || i >= t.numLeafs {
		return nil, ErrIndexOutOfRange
	}
	path := make([]D, 0, t.Height())
	for node := t.paddedLeafs() + i; node > 1; node >>= 1 {
		path = append(path, t.nodes[node^1])
	}
	return path, nil
}

// Authenticate replays a single-leaf path against a claimed root. At each
// level the bit of the leaf index picks the side the supplied sibling
// hashes on. A mismatched root yields (false, nil); only malformed input
// (an index outside the domain implied by the path length) produces an
// error.
func Authenticate[D comparable](hasher Hasher[D], leafIndex int, leaf D, path []D, root D) (bool, error) {
	if leafIndex < 0 || (len(path) < 63 && leafIndex >= 1<<len(path)) {
		return false, ErrIndexOutOfRange
	}
	cur := leaf
	idx := leafIndex
	for _, sibling := range path {
		if idx&1 == 0 {
			cur = hasher.HashPair(cur, sibling)
		} else {
			cur = hasher.HashPair(sibling, cur)
		}
		idx >>= 1
	}
	return cur == root, nil
}
