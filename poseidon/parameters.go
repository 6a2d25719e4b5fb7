package poseidon

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/sha3"

	"stark-arith/field"
)

// parameters holds the derived round constants and MDS matrix. Built once
// per process, never mutated afterwards.
type parameters struct {
	roundConstants [fullRounds + partialRounds][Width]field.Element
	mds            [Width][Width]field.Element
}

var (
	paramsOnce sync.Once
	derived    *parameters
)

func params() *parameters {
	paramsOnce.Do(func() {
		p := &parameters{}
		deriveRoundConstants(p)
		deriveMDS(p)
		derived = p
	})
	return derived
}

// deriveRoundConstants draws constants from a SHAKE-256 stream seeded with
// a fixed domain string, rejection-sampling so every constant is a uniform
// canonical residue.
func deriveRoundConstants(p *parameters) {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte("poseidon-goldilocks-w12-r8-rf8-rp22"))
	var buf [8]byte
	for r := range p.roundConstants {
		for i := 0; i < Width; i++ {
			for {
				_, _ = h.Read(buf[:])
				v := binary.LittleEndian.Uint64(buf[:])
				if v < field.Modulus {
					p.roundConstants[r][i] = field.Element(v)
					break
				}
			}
		}
	}
}

// deriveMDS builds a Cauchy matrix m[i][j] = 1/(x_i + y_j) with
// x_i = i and y_j = Width + j. The x values are pairwise distinct, the y
// values likewise, and no sum is zero in this field, so the matrix is MDS.
func deriveMDS(p *parameters) {
	sums := make([]field.Element, 0, Width*Width)
	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			sums = append(sums, field.New(uint64(i)).Add(field.New(uint64(Width+j))))
		}
	}
	inverses, err := field.BatchInverse(sums)
	if err != nil {
		// Unreachable: every sum is in [Width, 3*Width-2], far below p.
		panic(err)
	}
	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			p.mds[i][j] = inverses[i*Width+j]
		}
	}
}
