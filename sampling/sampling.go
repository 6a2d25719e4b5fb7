// Package sampling produces deterministic pseudorandom field material from
// a seed: uniform elements, coefficient vectors and distinct index sets.
// All output is a pure function of the seed, which is what tests and the
// analysis harness need to be reproducible.
package sampling

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/tuneinsight/lattigo/v4/utils"

	"stark-arith/field"
)

// Sampler draws from a keyed PRNG stream. Not safe for concurrent use;
// create one per goroutine.
type Sampler struct {
	prng utils.PRNG
}

// New creates a sampler seeded with the given key. An empty key yields a
// fresh unpredictable stream.
func New(seed []byte) (*Sampler, error) {
	if len(seed) == 0 {
		prng, err := utils.NewPRNG()
		if err != nil {
			return nil, err
		}
		return &Sampler{prng: prng}, nil
	}
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, err
	}
	return &Sampler{prng: prng}, nil
}

// MustNew is New for static seeds in tests and benchmarks.
func MustNew(seed []byte) *Sampler {
	s, err := New(seed)
	if err != nil {
		panic(err)
	}
	return s
}

// Uint64 returns the next 8 bytes of the stream as a little-endian word.
func (s *Sampler) Uint64() uint64 {
	var buf [8]byte
	if _, err := s.prng.Read(buf[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// FieldElement returns a uniform element by rejection sampling below the
// modulus; the acceptance probability is overwhelming for this prime.
func (s *Sampler) FieldElement() field.Element {
	for {
		if v := s.Uint64(); v < field.Modulus {
			return field.Element(v)
		}
	}
}

// NonZeroFieldElement returns a uniform non-zero element.
func (s *Sampler) NonZeroFieldElement() field.Element {
	for {
		if e := s.FieldElement(); !e.IsZero() {
			return e
		}
	}
}

// FieldElements returns n independent uniform elements.
func (s *Sampler) FieldElements(n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = s.FieldElement()
	}
	return out
}

// Coefficients returns degree+1 uniform coefficients with a non-zero
// leading one, so the implied polynomial has exactly the requested degree.
func (s *Sampler) Coefficients(degree int) []field.Element {
	out := s.FieldElements(degree + 1)
	out[degree] = s.NonZeroFieldElement()
	return out
}

// Bytes fills and returns a fresh buffer of n stream bytes.
func (s *Sampler) Bytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := s.prng.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// Indices returns count distinct indices in [0, bound), sorted ascending.
func (s *Sampler) Indices(count, bound int) ([]int, error) {
	if count > bound {
		return nil, fmt.Errorf("sampling: cannot draw %d distinct indices below %d", count, bound)
	}
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		idx := int(s.Uint64() % uint64(bound))
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out, nil
}
