// Package imm implements an indexed Merkle map: an authenticated key-value
// structure committing to its contents with a single Merkle root, able to
// prove both membership and non-membership of a key, and to emit compact
// witnesses that let a storage-free verifier check a single insert or
// update transition.
//
// Keys and values are field elements represented as *big.Int. The hash
// function is injected as a HashFn; Poseidon is the default and matches
// the circuit gadgets in circuits/imm.
package imm

import (
	"fmt"
	"math/big"
)

// HashFn hashes a list of field elements into a single field element.
type HashFn func([]*big.Int) (*big.Int, error)

// Leaf is one occupied slot of the map. NextKey and NextIndex embed a
// sorted singly-linked list over all present keys: they point at the leaf
// holding the smallest key strictly greater than Key, or carry the zero
// sentinel values when no larger key exists. Because both pointers are part
// of the hashed content, one authentication path proves the key-value
// binding and the absence of any key in (Key, NextKey) at once.
type Leaf struct {
	Key       *big.Int
	Value     *big.Int
	NextKey   *big.Int
	NextIndex uint64
}

// sentinelLeaf is the permanent leaf at index 0. It never holds a value and
// acts as the predecessor of every key.
func sentinelLeaf() Leaf {
	return Leaf{Key: new(big.Int), Value: new(big.Int), NextKey: new(big.Int)}
}

// Hash commits to all four leaf fields.
func (l Leaf) Hash(fn HashFn) (*big.Int, error) {
	return fn([]*big.Int{l.Key, l.Value, l.NextKey, new(big.Int).SetUint64(l.NextIndex)})
}

func (l Leaf) clone() Leaf {
	return Leaf{
		Key:       new(big.Int).Set(l.Key),
		Value:     new(big.Int).Set(l.Value),
		NextKey:   new(big.Int).Set(l.NextKey),
		NextIndex: l.NextIndex,
	}
}

// covers reports whether key falls strictly inside the leaf's successor
// gap, i.e. Key < key and (NextKey == 0 or key < NextKey). For a present
// key this is false for every leaf except none; for an absent key exactly
// one occupied leaf covers it.
func (l Leaf) covers(key *big.Int) bool {
	if l.Key.Cmp(key) >= 0 {
		return false
	}
	return l.NextKey.Sign() == 0 || key.Cmp(l.NextKey) < 0
}

func (l Leaf) String() string {
	return fmt.Sprintf("Leaf{key: %s, value: %s, nextKey: %s, nextIndex: %d}",
		l.Key, l.Value, l.NextKey, l.NextIndex)
}
