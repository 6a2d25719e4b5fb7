// Package poseidon implements a Poseidon-style permutation over the base
// field together with the sponge and two-to-one compression modes the
// Merkle tree and leaf hashing consume. State width is 12 field elements
// with a rate of 8; the S-box is x^7, coprime to p-1. Round constants and
// the MDS matrix are derived deterministically at first use and are
// read-only afterwards.
package poseidon

import (
	"stark-arith/field"
)

const (
	// Width is the permutation state size in field elements.
	Width = 12
	// Rate is the number of state elements absorbed or squeezed per call.
	Rate = 8
	// Capacity is the hidden part of the state.
	Capacity = Width - Rate
	// DigestLen is the digest size in field elements.
	DigestLen = 4

	fullRounds    = 8
	partialRounds = 22
)

// Digest is a fixed-width hash output of four field elements.
type Digest [DigestLen]field.Element

// Permute applies the permutation to the state in place: half the full
// rounds, then the partial rounds with a single S-box, then the remaining
// full rounds. Every round adds constants, substitutes, and mixes through
// the MDS matrix.
func Permute(state *[Width]field.Element) {
	p := params()
	round := 0
	for r := 0; r < fullRounds/2; r++ {
		fullRound(state, p, round)
		round++
	}
	for r := 0; r < partialRounds; r++ {
		partialRound(state, p, round)
		round++
	}
	for r := 0; r < fullRounds/2; r++ {
		fullRound(state, p, round)
		round++
	}
}

func fullRound(state *[Width]field.Element, p *parameters, round int) {
	for i := 0; i < Width; i++ {
		state[i] = sbox(state[i].Add(p.roundConstants[round][i]))
	}
	mix(state, p)
}

func partialRound(state *[Width]field.Element, p *parameters, round int) {
	state[0] = sbox(state[0].Add(p.roundConstants[round][0]))
	for i := 1; i < Width; i++ {
		state[i] = state[i].Add(p.roundConstants[round][i])
	}
	mix(state, p)
}

// sbox is x^7: the smallest odd power coprime to p-1 for this field.
func sbox(x field.Element) field.Element {
	x2 := x.Square()
	x3 := x2.Mul(x)
	return x3.Square().Mul(x)
}

func mix(state *[Width]field.Element, p *parameters) {
	var out [Width]field.Element
	for i := 0; i < Width; i++ {
		var acc field.Element
		row := &p.mds[i]
		for j := 0; j < Width; j++ {
			acc = acc.Add(row[j].Mul(state[j]))
		}
		out[i] = acc
	}
	*state = out
}
