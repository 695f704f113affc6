package imm

import (
	"math/big"
	"sort"
)

// keyIndex maps keys to leaf indexes and answers predecessor queries. The
// hash map is the exact inverse of leaves[i].Key for occupied slots; the
// sorted slice exists only to make the low-leaf search O(log n) instead of
// a linked-list walk. The zero sentinel key is registered at construction
// and floors every predecessor query.
type keyIndex struct {
	indexes map[string]uint64
	sorted  []*big.Int
}

func newKeyIndex() *keyIndex {
	zero := new(big.Int)
	return &keyIndex{
		indexes: map[string]uint64{zero.String(): 0},
		sorted:  []*big.Int{zero},
	}
}

func (x *keyIndex) get(key *big.Int) (uint64, bool) {
	i, ok := x.indexes[key.String()]
	return i, ok
}

func (x *keyIndex) len() int {
	return len(x.sorted)
}

// insert registers key at the given leaf index. The key must not already be
// present.
func (x *keyIndex) insert(key *big.Int, index uint64) {
	k := new(big.Int).Set(key)
	x.indexes[k.String()] = index
	at := sort.Search(len(x.sorted), func(i int) bool {
		return x.sorted[i].Cmp(k) >= 0
	})
	x.sorted = append(x.sorted, nil)
	copy(x.sorted[at+1:], x.sorted[at:])
	x.sorted[at] = k
}

// predecessor returns the leaf index holding the greatest stored key
// strictly less than key. The sentinel guarantees a result for any key
// greater than zero.
func (x *keyIndex) predecessor(key *big.Int) uint64 {
	at := sort.Search(len(x.sorted), func(i int) bool {
		return x.sorted[i].Cmp(key) >= 0
	})
	if at == 0 {
		return 0
	}
	i, _ := x.get(x.sorted[at-1])
	return i
}
