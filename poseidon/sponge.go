package poseidon

import "stark-arith/field"

// HashVarlen hashes an arbitrary sequence of field elements in sponge
// mode. The input is padded with a single one followed by zeros up to a
// multiple of the rate, and the final capacity element of the initial
// state is set to one to separate the variable-length domain from the
// fixed-length one. Chunks overwrite the rate portion of the state between
// permutations; the digest is the first DigestLen elements of the final
// state.
func HashVarlen(input []field.Element) Digest {
	padded := make([]field.Element, len(input), len(input)+Rate)
	copy(padded, input)
	padded = append(padded, field.Element(1))
	for len(padded)%Rate != 0 {
		padded = append(padded, 0)
	}
	var state [Width]field.Element
	state[Width-1] = 1
	for start := 0; start < len(padded); start += Rate {
		copy(state[:Rate], padded[start:start+Rate])
		Permute(&state)
	}
	var out Digest
	copy(out[:], state[:DigestLen])
	return out
}

// HashPair compresses two digests into one with a single permutation. The
// eight input elements fill the whole rate, the capacity stays zero
// (fixed-length domain), and no padding is applied.
func HashPair(left, right Digest) Digest {
	var state [Width]field.Element
	copy(state[:DigestLen], left[:])
	copy(state[DigestLen:2*DigestLen], right[:])
	Permute(&state)
	var out Digest
	copy(out[:], state[:DigestLen])
	return out
}

// Hasher adapts the permutation to the Merkle tree's compression
// collaborator interface. The zero value is ready to use.
type Hasher struct{}

// HashPair implements merkle.Hasher over poseidon digests.
func (Hasher) HashPair(left, right Digest) Digest {
	return HashPair(left, right)
}
