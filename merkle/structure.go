package merkle

import "fmt"

// AuthenticationStructure computes the minimal sibling set a verifier needs
// to check all queried leaves against the root at once. Every ancestor of a
// queried leaf is derivable by the verifier, so only siblings of derivable
// nodes whose own subtree contains no queried leaf are included. Siblings
// are emitted level by level from the leaves up, ascending node index
// within a level; verification consumes them in the identical order.
//
// Duplicate indices are rejected with ErrDuplicateIndex rather than
// de-duplicated, keeping the emission schedule unambiguous. An empty query
// fails with ErrEmptyQuery and out-of-bounds indices with
// ErrIndexOutOfRange.
func (t *Tree[D]) AuthenticationStructure(leafIndices []int) ([]D, error) {
	n := t.paddedLeafs()
	marked, err := markAncestors(leafIndices, t.numLeafs, n)
	if err != nil {
		return nil, err
	}
	var structure []D
	for width := n; width >= 2; width >>= 1 {
		for node := width; node < 2*width; node++ {
			if marked[node] && !marked[node^1] {
				structure = append(structure, t.nodes[node^1])
			}
		}
	}
	return structure, nil
}

// VerifyAuthenticationStructure replays the generator's level-by-level
// schedule: queried leaves seed the derivable set, structure digests fill
// the unmarked siblings in emission order, and parents are recomputed until
// the root falls out. The result is all-or-nothing; a reconstructed root
// that differs from the claimed one yields (false, nil). Errors are
// reserved for malformed input: bad indices, mismatched slice lengths, or
// a structure of the wrong size.
func VerifyAuthenticationStructure[D comparable](
	hasher Hasher[D],
	numLeafs int,
	leafIndices []int,
	leafDigests []D,
	structure []D,
	root D,
) (bool, error) {
	n := paddedCount(numLeafs)
	marked, err := markAncestors(leafIndices, numLeafs, n)
	if err != nil {
		return false, err
	}
	if len(leafDigests) != len(leafIndices) {
		return false, fmt.Errorf("merkle: %d indices but %d leaf digests", len(leafIndices), len(leafDigests))
	}
	known := make(map[int]D, 2*len(leafIndices))
	for i, idx := range leafIndices {
		known[n+idx] = leafDigests[i]
	}
	next := 0
	for width := n; width >= 2; width >>= 1 {
		for node := width; node < 2*width; node++ {
			if marked[node] && !marked[node^1] {
				if next >= len(structure) {
					return false, fmt.Errorf("merkle: authentication structure truncated at digest %d", next)
				}
				known[node^1] = structure[next]
				next++
			}
		}
		// Both children of a marked parent are now known: the marked child
		// by the invariant, the other either marked as well or just filled.
		for node := width; node < 2*width; node += 2 {
			if marked[node] || marked[node+1] {
				known[node/2] = hasher.HashPair(known[node], known[node+1])
			}
		}
	}
	if next != len(structure) {
		return false, fmt.Errorf("merkle: authentication structure has %d unused digests", len(structure)-next)
	}
	return known[1] == root, nil
}

// markAncestors validates a query index set and returns the set of node
// indices on any path from a queried leaf to the root.
func markAncestors(leafIndices []int, numLeafs, padded int) (map[int]bool, error) {
	if len(leafIndices) == 0 {
		return nil, ErrEmptyQuery
	}
	seen := make(map[int]bool, len(leafIndices))
	marked := make(map[int]bool, 2*len(leafIndices))
	for _, idx := range leafIndices {
		if idx < 0 || idx >= numLeafs {
			return nil, fmt.Errorf("index %d with %d leaves: %w", idx, numLeafs, ErrIndexOutOfRange)
		}
		if seen[idx] {
			return nil, fmt.Errorf("index %d: %w", idx, ErrDuplicateIndex)
		}
		seen[idx] = true
		for node := padded + idx; node >= 1; node >>= 1 {
			marked[node] = true
		}
	}
	return marked, nil
}
