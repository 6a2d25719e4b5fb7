package field

import (
	"math/big"

	"github.com/holiman/uint256"
)

var modulusBig = new(big.Int).SetUint64(Modulus)

// FromBig returns the element representing v modulo p. Negative inputs map
// to their non-negative residue.
func FromBig(v *big.Int) Element {
	r := new(big.Int).Mod(v, modulusBig)
	return Element(r.Uint64())
}

// Big returns the canonical residue as a big integer.
func (a Element) Big() *big.Int {
	return new(big.Int).SetUint64(uint64(a))
}

// FromUint256 reduces a 256-bit integer modulo p. Limbs are folded from the
// most significant down, each fold multiplying the accumulator by
// 2^64 mod p = epsilon.
func FromUint256(v *uint256.Int) Element {
	var r Element
	for i := 3; i >= 0; i-- {
		r = r.Mul(Element(epsilon)).Add(New(v[i]))
	}
	return r
}

// Uint256 returns the canonical residue widened to 256 bits.
func (a Element) Uint256() *uint256.Int {
	return uint256.NewInt(uint64(a))
}
