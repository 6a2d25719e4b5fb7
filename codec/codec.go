// Package codec defines the canonical byte encodings for field elements,
// extension elements, polynomials and authentication material. Every
// encoding is fixed-format little endian, length-prefixed where the length
// is not implied, and round-trip exact: decode(encode(x)) == x and
// non-canonical or truncated input is rejected rather than silently
// reduced.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"stark-arith/field"
	"stark-arith/poly"
	"stark-arith/xfield"
)

const (
	// ElementSize is the byte width of an encoded base-field element.
	ElementSize = 8
	// ExtensionSize is the byte width of an encoded extension element.
	ExtensionSize = 3 * ElementSize
)

var (
	// ErrNonCanonical rejects encoded residues at or above the modulus.
	ErrNonCanonical = errors.New("codec: encoded value is not a canonical residue")
	// ErrTruncated rejects input shorter than its declared contents.
	ErrTruncated = errors.New("codec: truncated input")
)

// BytesEncoder is the contract a type satisfies to serialize itself into
// the canonical format.
type BytesEncoder interface {
	EncodeBytes() []byte
}

// BytesDecoder is the inverse contract; implementations must reject input
// that EncodeBytes could not have produced.
type BytesDecoder interface {
	DecodeBytes([]byte) error
}

// AppendElement appends the 8-byte little-endian encoding of e.
func AppendElement(dst []byte, e field.Element) []byte {
	return binary.LittleEndian.AppendUint64(dst, e.Uint64())
}

// DecodeElement reads one canonical element from the front of b and
// returns the remaining bytes.
func DecodeElement(b []byte) (field.Element, []byte, error) {
	if len(b) < ElementSize {
		return 0, nil, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(b)
	if v >= field.Modulus {
		return 0, nil, ErrNonCanonical
	}
	return field.Element(v), b[ElementSize:], nil
}

// PackElements encodes a sequence of elements back to back, 8 bytes each.
func PackElements(fes []field.Element) []byte {
	out := make([]byte, 0, ElementSize*len(fes))
	for _, e := range fes {
		out = AppendElement(out, e)
	}
	return out
}

// UnpackElements decodes a back-to-back element sequence. The input length
// must be a multiple of ElementSize.
func UnpackElements(b []byte) ([]field.Element, error) {
	if len(b)%ElementSize != 0 {
		return nil, fmt.Errorf("input of %d bytes: %w", len(b), ErrTruncated)
	}
	out := make([]field.Element, 0, len(b)/ElementSize)
	for len(b) > 0 {
		e, rest, err := DecodeElement(b)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		b = rest
	}
	return out, nil
}

// AppendExtension appends the 24-byte encoding of x, coefficients lowest
// power first.
func AppendExtension(dst []byte, x xfield.Element) []byte {
	for _, c := range x.Coefficients() {
		dst = AppendElement(dst, c)
	}
	return dst
}

// DecodeExtension reads one extension element from the front of b and
// returns the remaining bytes.
func DecodeExtension(b []byte) (xfield.Element, []byte, error) {
	if len(b) < ExtensionSize {
		return xfield.Element{}, nil, ErrTruncated
	}
	var coeffs [3]field.Element
	for i := range coeffs {
		var err error
		coeffs[i], b, err = DecodeElement(b)
		if err != nil {
			return xfield.Element{}, nil, err
		}
	}
	return xfield.New(coeffs[0], coeffs[1], coeffs[2]), b, nil
}

// EncodePolynomial encodes a base-field polynomial as a uint32 coefficient
// count followed by the coefficients, lowest degree first. The zero
// polynomial encodes as a zero count.
func EncodePolynomial(p poly.Polynomial[field.Element]) []byte {
	coeffs := p.Coefficients()
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(coeffs)))
	for _, c := range coeffs {
		out = AppendElement(out, c)
	}
	return out
}

// DecodePolynomial reverses EncodePolynomial, rejecting trailing garbage.
func DecodePolynomial(b []byte) (poly.Polynomial[field.Element], error) {
	if len(b) < 4 {
		return poly.Polynomial[field.Element]{}, ErrTruncated
	}
	count := int(binary.LittleEndian.Uint32(b))
	b = b[4:]
	if len(b) != count*ElementSize {
		return poly.Polynomial[field.Element]{}, fmt.Errorf("%d coefficients in %d bytes: %w", count, len(b), ErrTruncated)
	}
	coeffs, err := UnpackElements(b)
	if err != nil {
		return poly.Polynomial[field.Element]{}, err
	}
	return poly.New(coeffs), nil
}
