package merkle

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"stark-arith/field"
)

// Byte-oriented digests use SHAKE-256 with single-byte domain separation
// between leaf hashing and node compression, so a leaf digest can never
// collide with an internal-node digest.
const (
	leafPrefix byte = 0x00
	nodePrefix byte = 0x01
)

// ByteDigest is the fixed-width digest of the SHAKE-256 hasher.
type ByteDigest [32]byte

// Shake256Hasher compresses digests with SHAKE-256. The zero value is
// ready to use.
type Shake256Hasher struct{}

// HashPair hashes two child digests into their parent.
func (Shake256Hasher) HashPair(left, right ByteDigest) ByteDigest {
	var buf [1 + 2*len(ByteDigest{})]byte
	buf[0] = nodePrefix
	copy(buf[1:], left[:])
	copy(buf[1+len(left):], right[:])
	return shake32(buf[:])
}

// HashLeaf hashes raw leaf bytes into a leaf digest.
func (Shake256Hasher) HashLeaf(data []byte) ByteDigest {
	buf := make([]byte, 1+len(data))
	buf[0] = leafPrefix
	copy(buf[1:], data)
	return shake32(buf)
}

// HashVarlen absorbs a sequence of field elements, 8 bytes little endian
// each, and squeezes a leaf digest. This is the sponge surface callers use
// to turn polynomial evaluations into leaves.
func (h Shake256Hasher) HashVarlen(elements []field.Element) ByteDigest {
	buf := make([]byte, 1+8*len(elements))
	buf[0] = leafPrefix
	for i, e := range elements {
		binary.LittleEndian.PutUint64(buf[1+8*i:], e.Uint64())
	}
	return shake32(buf)
}

func shake32(data []byte) ByteDigest {
	var out ByteDigest
	h := sha3.NewShake256()
	_, _ = h.Write(data)
	_, _ = h.Read(out[:])
	return out
}
