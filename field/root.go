package field

import (
	"math/bits"
	"sync"
)

// rootsOfUnity[k] is a primitive 2^k-th root of unity. The table is derived
// once from the fixed generator and is read-only afterwards.
var (
	rootsOnce    sync.Once
	rootsOfUnity [TwoAdicity + 1]Element
)

func initRoots() {
	// 7^((p-1)/2^32) generates the full power-of-two subgroup; squaring
	// halves the order.
	rootsOfUnity[TwoAdicity] = New(Generator).Pow((Modulus - 1) >> TwoAdicity)
	for k := TwoAdicity - 1; k >= 0; k-- {
		rootsOfUnity[k] = rootsOfUnity[k+1].Square()
	}
}

// PrimitiveRoot returns a primitive root of unity of the given order. The
// order must be a power of two between 1 and 2^32; other orders fail with
// ErrUnsupportedOrder.
func PrimitiveRoot(order uint64) (Element, error) {
	if order == 0 || order&(order-1) != 0 || order > 1<<TwoAdicity {
		return 0, ErrUnsupportedOrder
	}
	rootsOnce.Do(initRoots)
	return rootsOfUnity[bits.TrailingZeros64(order)], nil
}
