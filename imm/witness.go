package imm

import "math/big"

// InsertWitness records one insert transition. LowLeaf and LowPath are the
// pre-mutation contents and path of the low leaf; NewLeafPath is the new
// slot's path after the low leaf was spliced (equivalently, after the whole
// insert, since a leaf's own write never changes its path's siblings).
// Together with the two roots this is sufficient for replay verification
// without the tree.
type InsertWitness struct {
	OldRoot *big.Int
	NewRoot *big.Int
	Key     *big.Int
	Value   *big.Int

	LowLeaf      Leaf
	LowLeafIndex uint64
	LowPath      []*big.Int

	NewLeafIndex uint64
	NewLeafPath  []*big.Int
}

// UpdateWitness records one update transition. The successor pointers are
// carried so the verifier can reconstruct the full leaf on both sides of
// the transition; the path is shared, as only the value field changes.
type UpdateWitness struct {
	OldRoot  *big.Int
	NewRoot  *big.Int
	Key      *big.Int
	OldValue *big.Int
	NewValue *big.Int

	LeafIndex uint64
	NextKey   *big.Int
	NextIndex uint64
	Path      []*big.Int
}
