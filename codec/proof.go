package codec

import (
	"encoding/binary"
	"fmt"

	"stark-arith/poseidon"
)

// Opening is the transmissible form of a multi-leaf Merkle opening over
// field-native digests: the queried indices, their leaf digests, and the
// compacted authentication structure.
type Opening struct {
	LeafIndices []int
	LeafDigests []poseidon.Digest
	Structure   []poseidon.Digest
}

// EncodeBytes serializes the opening as three length-prefixed sections.
func (o *Opening) EncodeBytes() []byte {
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(o.LeafIndices)))
	for _, idx := range o.LeafIndices {
		out = binary.LittleEndian.AppendUint32(out, uint32(idx))
	}
	out = appendDigests(out, o.LeafDigests)
	out = appendDigests(out, o.Structure)
	return out
}

// DecodeBytes reverses EncodeBytes, rejecting truncated input and trailing
// garbage.
func (o *Opening) DecodeBytes(b []byte) error {
	if len(b) < 4 {
		return ErrTruncated
	}
	count := int(binary.LittleEndian.Uint32(b))
	b = b[4:]
	if len(b) < 4*count {
		return ErrTruncated
	}
	indices := make([]int, count)
	for i := range indices {
		indices[i] = int(binary.LittleEndian.Uint32(b))
		b = b[4:]
	}
	leafs, b, err := decodeDigests(b)
	if err != nil {
		return err
	}
	structure, b, err := decodeDigests(b)
	if err != nil {
		return err
	}
	if len(b) != 0 {
		return fmt.Errorf("%d trailing bytes: %w", len(b), ErrTruncated)
	}
	o.LeafIndices = indices
	o.LeafDigests = leafs
	o.Structure = structure
	return nil
}

func appendDigests(dst []byte, ds []poseidon.Digest) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(ds)))
	for _, d := range ds {
		for _, e := range d {
			dst = AppendElement(dst, e)
		}
	}
	return dst
}

func decodeDigests(b []byte) ([]poseidon.Digest, []byte, error) {
	if len(b) < 4 {
		return nil, nil, ErrTruncated
	}
	count := int(binary.LittleEndian.Uint32(b))
	b = b[4:]
	out := make([]poseidon.Digest, count)
	for i := range out {
		for j := range out[i] {
			var err error
			out[i][j], b, err = DecodeElement(b)
			if err != nil {
				return nil, nil, err
			}
		}
	}
	return out, b, nil
}
