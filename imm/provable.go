package imm

import "math/big"

// ProvableIndexedMerkleMap re-verifies single insert or update transitions
// from witnesses alone, holding no leaf storage. Its methods are pure and
// deterministic; a single instance may be shared across goroutines. It is
// the native counterpart of the circuit gadgets in circuits/imm.
type ProvableIndexedMerkleMap struct {
	hash HashFn
}

// NewProvable returns a stateless verifier using the given hash function,
// which must match the builder's.
func NewProvable(fn HashFn) *ProvableIndexedMerkleMap {
	return &ProvableIndexedMerkleMap{hash: fn}
}

// Insert checks that the witness describes a valid insert transition from
// OldRoot to NewRoot:
//
//  1. the pre-mutation low leaf climbs to OldRoot (ErrOldRootMismatch),
//  2. the low leaf's successor gap strictly contains the key, which also
//     proves the key was absent (ErrOrderingViolation),
//  3. the spliced low leaf yields an intermediate root in which the new
//     slot is still empty (ErrOldRootMismatch, a pre-state inconsistency),
//  4. writing the new leaf yields NewRoot (ErrNewRootMismatch).
func (p *ProvableIndexedMerkleMap) Insert(w *InsertWitness) error {
	lowHash, err := w.LowLeaf.Hash(p.hash)
	if err != nil {
		return err
	}
	oldRoot, err := climbPath(p.hash, lowHash, w.LowLeafIndex, w.LowPath)
	if err != nil {
		return err
	}
	if oldRoot.Cmp(w.OldRoot) != 0 {
		return ErrOldRootMismatch
	}

	if !w.LowLeaf.covers(w.Key) {
		return ErrOrderingViolation
	}

	spliced := w.LowLeaf.clone()
	spliced.NextKey = new(big.Int).Set(w.Key)
	spliced.NextIndex = w.NewLeafIndex
	splicedHash, err := spliced.Hash(p.hash)
	if err != nil {
		return err
	}
	intermediate, err := climbPath(p.hash, splicedHash, w.LowLeafIndex, w.LowPath)
	if err != nil {
		return err
	}
	// The new slot must read as the empty-leaf hash in the intermediate
	// tree; this also ties NewLeafPath to the state LowPath committed to.
	emptied, err := climbPath(p.hash, new(big.Int), w.NewLeafIndex, w.NewLeafPath)
	if err != nil {
		return err
	}
	if emptied.Cmp(intermediate) != 0 {
		return ErrOldRootMismatch
	}

	newLeaf := Leaf{
		Key:       w.Key,
		Value:     w.Value,
		NextKey:   w.LowLeaf.NextKey,
		NextIndex: w.LowLeaf.NextIndex,
	}
	newHash, err := newLeaf.Hash(p.hash)
	if err != nil {
		return err
	}
	newRoot, err := climbPath(p.hash, newHash, w.NewLeafIndex, w.NewLeafPath)
	if err != nil {
		return err
	}
	if newRoot.Cmp(w.NewRoot) != 0 {
		return ErrNewRootMismatch
	}
	return nil
}

// Update checks that the witness describes a valid update transition: the
// leaf with OldValue climbs to OldRoot, and the same leaf with NewValue
// climbs to NewRoot over the same path.
func (p *ProvableIndexedMerkleMap) Update(w *UpdateWitness) error {
	leaf := Leaf{
		Key:       w.Key,
		Value:     w.OldValue,
		NextKey:   w.NextKey,
		NextIndex: w.NextIndex,
	}
	h, err := leaf.Hash(p.hash)
	if err != nil {
		return err
	}
	oldRoot, err := climbPath(p.hash, h, w.LeafIndex, w.Path)
	if err != nil {
		return err
	}
	if oldRoot.Cmp(w.OldRoot) != 0 {
		return ErrOldRootMismatch
	}

	leaf.Value = w.NewValue
	h, err = leaf.Hash(p.hash)
	if err != nil {
		return err
	}
	newRoot, err := climbPath(p.hash, h, w.LeafIndex, w.Path)
	if err != nil {
		return err
	}
	if newRoot.Cmp(w.NewRoot) != 0 {
		return ErrNewRootMismatch
	}
	return nil
}
