package ntt

import (
	"math/bits"
	"sync"

	"stark-arith/field"
)

// domain carries the precomputed state for one transform size: the
// bit-reversal permutation and the first n/2 powers of the forward and
// inverse roots. Domains are built once per size and never mutated.
type domain struct {
	rev       []int
	forward   []field.Element
	inverse   []field.Element
	lengthInv field.Element
}

var (
	domainMu sync.Mutex
	domains  = map[int]*domain{}
)

func lookupDomain(n int) (*domain, error) {
	if n == 0 || n&(n-1) != 0 || uint64(n) > MaxLength {
		return nil, ErrUnsupportedLength
	}
	domainMu.Lock()
	defer domainMu.Unlock()
	if d, ok := domains[n]; ok {
		return d, nil
	}
	d, err := newDomain(n)
	if err != nil {
		return nil, err
	}
	domains[n] = d
	return d, nil
}

func newDomain(n int) (*domain, error) {
	omega, err := field.PrimitiveRoot(uint64(n))
	if err != nil {
		return nil, ErrUnsupportedLength
	}
	omegaInv, err := omega.Inverse()
	if err != nil {
		return nil, err
	}
	nInv, err := field.New(uint64(n)).Inverse()
	if err != nil {
		return nil, err
	}
	d := &domain{
		rev:       bitReversal(n),
		forward:   rootPowers(omega, n/2),
		inverse:   rootPowers(omegaInv, n/2),
		lengthInv: nInv,
	}
	return d, nil
}

func rootPowers(root field.Element, count int) []field.Element {
	if count == 0 {
		return nil
	}
	powers := make([]field.Element, count)
	powers[0] = 1
	for i := 1; i < count; i++ {
		powers[i] = powers[i-1].Mul(root)
	}
	return powers
}

func bitReversal(n int) []int {
	logN := bits.TrailingZeros(uint(n))
	rev := make([]int, n)
	for i := range rev {
		rev[i] = int(bits.Reverse64(uint64(i)) >> (64 - logN))
	}
	return rev
}
