package imm

import (
	"github.com/consensys/gnark/frontend"
	"github.com/mdehoog/poseidon/circuits/poseidon"
)

func assertEqualIfEnabled(api frontend.API, a, b, enabled frontend.Variable) {
	api.AssertIsEqual(api.Mul(enabled, api.Sub(1, api.IsZero(api.Sub(a, b)))), 0)
}

func assertDifferentIfEnabled(api frontend.API, a, b, enabled frontend.Variable) {
	api.AssertIsEqual(api.Mul(enabled, api.IsZero(api.Sub(a, b))), 0)
}

func leafHash(api frontend.API, key, value, nextKey, nextIndex frontend.Variable) frontend.Variable {
	return poseidon.Hash(api, []frontend.Variable{key, value, nextKey, nextIndex})
}

// climb folds a leaf hash up an authentication path ordered leaf to root.
// Index bits select the leaf's side at each level.
func climb(api frontend.API, leaf, index frontend.Variable, siblings []frontend.Variable) frontend.Variable {
	indexBits := api.ToBinary(index, len(siblings))
	h := leaf
	for i, sibling := range siblings {
		l := api.Select(indexBits[i], sibling, h)
		r := api.Select(indexBits[i], h, sibling)
		h = poseidon.Hash(api, []frontend.Variable{l, r})
	}
	return h
}

// assertGapContains constrains lowKey < key and (lowNextKey == 0 or
// key < lowNextKey), the low-leaf ordering that proves key absent.
func assertGapContains(api frontend.API, lowKey, key, lowNextKey, enabled frontend.Variable) {
	assertDifferentIfEnabled(api, lowKey, key, enabled)
	api.AssertIsLessOrEqual(api.Mul(enabled, lowKey), key)
	assertDifferentIfEnabled(api, key, lowNextKey, enabled)
	nextKeyOverflow := api.Sub(lowNextKey, api.IsZero(lowNextKey))
	api.AssertIsLessOrEqual(api.Mul(enabled, key), nextKeyOverflow)
}
