package merkle_test

import (
	"errors"
	"testing"

	"stark-arith/merkle"
	"stark-arith/sampling"
)

func randomLeaves(s *sampling.Sampler, n int) []merkle.ByteDigest {
	h := merkle.Shake256Hasher{}
	out := make([]merkle.ByteDigest, n)
	for i := range out {
		out[i] = h.HashLeaf(s.Bytes(24))
	}
	return out
}

func TestBuildAndRoot(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-build"))
	leaves := randomLeaves(s, 8)
	h := merkle.Shake256Hasher{}
	tree, err := merkle.Build[merkle.ByteDigest](h, leaves)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	again, err := merkle.Build[merkle.ByteDigest](h, leaves)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if tree.Root() != again.Root() {
		t.Fatalf("root not deterministic")
	}
	if tree.Height() != 3 || tree.NumLeafs() != 8 {
		t.Fatalf("height %d leafs %d, want 3 and 8", tree.Height(), tree.NumLeafs())
	}
	if _, err := merkle.Build[merkle.ByteDigest](h, nil); !errors.Is(err, merkle.ErrEmptyLeaves) {
		t.Fatalf("empty build: got %v, want ErrEmptyLeaves", err)
	}
}

func TestPaddingRepeatsLastLeaf(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-padding"))
	leaves := randomLeaves(s, 5)
	h := merkle.Shake256Hasher{}
	tree, err := merkle.Build[merkle.ByteDigest](h, leaves)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tree.Height() != 3 {
		t.Fatalf("5 leaves pad to 8: height %d, want 3", tree.Height())
	}
	// Padding with explicit copies of the last leaf must give the same root.
	padded := append(append([]merkle.ByteDigest(nil), leaves...), leaves[4], leaves[4], leaves[4])
	explicit, err := merkle.Build[merkle.ByteDigest](h, padded)
	if err != nil {
		t.Fatalf("explicit build: %v", err)
	}
	if tree.Root() != explicit.Root() {
		t.Fatalf("padding rule is not repeat-last-leaf")
	}
	if _, err := tree.AuthenticationPath(5); !errors.Is(err, merkle.ErrIndexOutOfRange) {
		t.Fatalf("padded leaves must not be addressable: got %v", err)
	}
}

func TestAuthenticationPathRoundTrip(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-path"))
	h := merkle.Shake256Hasher{}
	leaves := randomLeaves(s, 16)
	tree, err := merkle.Build[merkle.ByteDigest](h, leaves)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := range leaves {
		path, err := tree.AuthenticationPath(i)
		if err != nil {
			t.Fatalf("path %d: %v", i, err)
		}
		if len(path) != tree.Height() {
			t.Fatalf("path length %d, want %d", len(path), tree.Height())
		}
		ok, err := merkle.Authenticate(h, i, leaves[i], path, tree.Root())
		if err != nil || !ok {
			t.Fatalf("leaf %d fails authentication: ok=%v err=%v", i, ok, err)
		}
	}
	if _, err := tree.AuthenticationPath(16); !errors.Is(err, merkle.ErrIndexOutOfRange) {
		t.Fatalf("out-of-range path: got %v, want ErrIndexOutOfRange", err)
	}
	if _, err := tree.AuthenticationPath(-1); !errors.Is(err, merkle.ErrIndexOutOfRange) {
		t.Fatalf("negative index: got %v, want ErrIndexOutOfRange", err)
	}
}

func TestAuthenticateRejectsTampering(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-tamper"))
	h := merkle.Shake256Hasher{}
	leaves := randomLeaves(s, 8)
	tree, _ := merkle.Build[merkle.ByteDigest](h, leaves)
	path, _ := tree.AuthenticationPath(3)

	// Flipping any single bit of any sibling digest must break the proof.
	for level := range path {
		for bit := 0; bit < 8*len(path[level]); bit += 37 {
			tampered := append([]merkle.ByteDigest(nil), path...)
			tampered[level][bit/8] ^= 1 << (bit % 8)
			ok, err := merkle.Authenticate(h, 3, leaves[3], tampered, tree.Root())
			if err != nil {
				t.Fatalf("tampered path errored: %v", err)
			}
			if ok {
				t.Fatalf("accepted proof with flipped bit %d at level %d", bit, level)
			}
		}
	}
	// A tampered leaf fails too.
	badLeaf := leaves[3]
	badLeaf[0] ^= 1
	if ok, _ := merkle.Authenticate(h, 3, badLeaf, path, tree.Root()); ok {
		t.Fatalf("accepted proof for modified leaf")
	}
	// And the right leaf under the wrong index.
	if ok, _ := merkle.Authenticate(h, 5, leaves[3], path, tree.Root()); ok {
		t.Fatalf("accepted proof under wrong index")
	}
	if _, err := merkle.Authenticate(h, 9, leaves[3], path, tree.Root()); !errors.Is(err, merkle.ErrIndexOutOfRange) {
		t.Fatalf("index beyond path domain: got %v, want ErrIndexOutOfRange", err)
	}
}

func TestAuthenticationStructureExample(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-example"))
	h := merkle.Shake256Hasher{}
	leaves := randomLeaves(s, 8)
	tree, _ := merkle.Build[merkle.ByteDigest](h, leaves)

	structure, err := tree.AuthenticationStructure([]int{0, 1})
	if err != nil {
		t.Fatalf("structure: %v", err)
	}
	// The verifier derives the parent of leaves 0 and 1 itself, so the
	// structure holds exactly the {2,3} subtree root and the {4..7} one.
	if len(structure) != 2 {
		t.Fatalf("structure size %d, want 2", len(structure))
	}
	pair23 := h.HashPair(leaves[2], leaves[3])
	if structure[0] != pair23 {
		t.Fatalf("first digest is not the {2,3} subtree root")
	}
	pair45 := h.HashPair(leaves[4], leaves[5])
	pair67 := h.HashPair(leaves[6], leaves[7])
	if structure[1] != h.HashPair(pair45, pair67) {
		t.Fatalf("second digest is not the {4..7} subtree root")
	}
	ok, err := merkle.VerifyAuthenticationStructure(h, 8, []int{0, 1}, leaves[:2], structure, tree.Root())
	if err != nil || !ok {
		t.Fatalf("example structure does not verify: ok=%v err=%v", ok, err)
	}
}

func TestAuthenticationStructureSubsets(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-subsets"))
	h := merkle.Shake256Hasher{}
	leaves := randomLeaves(s, 64)
	tree, _ := merkle.Build[merkle.ByteDigest](h, leaves)
	for trial := 0; trial < 30; trial++ {
		count := 1 + int(s.Uint64()%10)
		indices, err := s.Indices(count, 64)
		if err != nil {
			t.Fatalf("indices: %v", err)
		}
		opened := make([]merkle.ByteDigest, len(indices))
		for i, idx := range indices {
			opened[i] = leaves[idx]
		}
		structure, err := tree.AuthenticationStructure(indices)
		if err != nil {
			t.Fatalf("structure for %v: %v", indices, err)
		}
		if len(structure) > count*tree.Height() {
			t.Fatalf("structure larger than independent paths")
		}
		ok, err := merkle.VerifyAuthenticationStructure(h, 64, indices, opened, structure, tree.Root())
		if err != nil || !ok {
			t.Fatalf("subset %v does not verify: ok=%v err=%v", indices, ok, err)
		}
		// Tampering with any structure digest must flip the verdict.
		if len(structure) > 0 {
			bad := append([]merkle.ByteDigest(nil), structure...)
			bad[trial%len(bad)][0] ^= 1
			ok, err = merkle.VerifyAuthenticationStructure(h, 64, indices, opened, bad, tree.Root())
			if err != nil {
				t.Fatalf("tampered structure errored: %v", err)
			}
			if ok {
				t.Fatalf("accepted tampered structure for %v", indices)
			}
		}
	}
}

func TestAuthenticationStructureSharing(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-sharing"))
	h := merkle.Shake256Hasher{}
	leaves := randomLeaves(s, 32)
	tree, _ := merkle.Build[merkle.ByteDigest](h, leaves)
	// Adjacent indices share every ancestor, so the structure must be
	// strictly smaller than the two independent paths.
	structure, err := tree.AuthenticationStructure([]int{6, 7})
	if err != nil {
		t.Fatalf("structure: %v", err)
	}
	if len(structure) >= 2*tree.Height() {
		t.Fatalf("no sharing: %d digests for two adjacent leaves", len(structure))
	}
	// A lone query degenerates to the single-leaf path.
	structure, err = tree.AuthenticationStructure([]int{11})
	if err != nil {
		t.Fatalf("single query: %v", err)
	}
	path, _ := tree.AuthenticationPath(11)
	if len(structure) != len(path) {
		t.Fatalf("single-leaf structure size %d, want %d", len(structure), len(path))
	}
	for i := range path {
		if structure[i] != path[i] {
			t.Fatalf("single-leaf structure diverges from path at level %d", i)
		}
	}
}

func TestAuthenticationStructureErrors(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-errors"))
	h := merkle.Shake256Hasher{}
	leaves := randomLeaves(s, 8)
	tree, _ := merkle.Build[merkle.ByteDigest](h, leaves)

	if _, err := tree.AuthenticationStructure(nil); !errors.Is(err, merkle.ErrEmptyQuery) {
		t.Fatalf("empty query: got %v, want ErrEmptyQuery", err)
	}
	if _, err := tree.AuthenticationStructure([]int{1, 3, 1}); !errors.Is(err, merkle.ErrDuplicateIndex) {
		t.Fatalf("duplicate index: got %v, want ErrDuplicateIndex", err)
	}
	if _, err := tree.AuthenticationStructure([]int{8}); !errors.Is(err, merkle.ErrIndexOutOfRange) {
		t.Fatalf("out of range: got %v, want ErrIndexOutOfRange", err)
	}

	structure, _ := tree.AuthenticationStructure([]int{2, 5})
	opened := []merkle.ByteDigest{leaves[2], leaves[5]}
	if _, err := merkle.VerifyAuthenticationStructure(h, 8, []int{2, 5}, opened[:1], structure, tree.Root()); err == nil {
		t.Fatalf("mismatched digest count must error")
	}
	if _, err := merkle.VerifyAuthenticationStructure(h, 8, []int{2, 5}, opened, structure[:len(structure)-1], tree.Root()); err == nil {
		t.Fatalf("truncated structure must error")
	}
	extended := append(append([]merkle.ByteDigest(nil), structure...), structure[0])
	if _, err := merkle.VerifyAuthenticationStructure(h, 8, []int{2, 5}, opened, extended, tree.Root()); err == nil {
		t.Fatalf("oversized structure must error")
	}
	// A wrong root is a forged proof, not an error.
	badRoot := tree.Root()
	badRoot[0] ^= 1
	ok, err := merkle.VerifyAuthenticationStructure(h, 8, []int{2, 5}, opened, structure, badRoot)
	if err != nil {
		t.Fatalf("wrong root errored: %v", err)
	}
	if ok {
		t.Fatalf("accepted structure against wrong root")
	}
}

func TestWithLeaf(t *testing.T) {
	s := sampling.MustNew([]byte("merkle-update"))
	h := merkle.Shake256Hasher{}
	leaves := randomLeaves(s, 16)
	tree, _ := merkle.Build[merkle.ByteDigest](h, leaves)

	replacement := h.HashLeaf(s.Bytes(24))
	updated, err := tree.WithLeaf(9, replacement)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Root() == tree.Root() {
		t.Fatalf("root unchanged after leaf update")
	}
	rebuilt := append([]merkle.ByteDigest(nil), leaves...)
	rebuilt[9] = replacement
	want, _ := merkle.Build[merkle.ByteDigest](h, rebuilt)
	if updated.Root() != want.Root() {
		t.Fatalf("incremental update disagrees with full rebuild")
	}
	// The original tree is untouched.
	if got, _ := tree.Leaf(9); got != leaves[9] {
		t.Fatalf("original tree mutated by WithLeaf")
	}
	if _, err := tree.WithLeaf(16, replacement); !errors.Is(err, merkle.ErrIndexOutOfRange) {
		t.Fatalf("out-of-range update: got %v, want ErrIndexOutOfRange", err)
	}
}
