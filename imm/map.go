package imm

import (
	"fmt"
	"iter"
	"math/big"
)

// IndexedMerkleMap is the stateful builder side of the structure: it owns
// the leaf array, the key index and the cached Merkle tree, and is the only
// component that mutates state.
//
// It is single-writer by contract: nothing is synchronized internally, and
// mutations must be externally serialized. Reads (Get, proof generation)
// are safe only while no mutation is in flight.
type IndexedMerkleMap struct {
	height uint64
	hash   HashFn
	leaves []Leaf
	index  *keyIndex
	tree   *tree
}

// New creates a map of the given height, holding only the sentinel leaf.
// The height fixes the capacity at 2^(height-1) leaf slots, one of which
// the sentinel occupies permanently.
func New(height uint64, fn HashFn) (*IndexedMerkleMap, error) {
	if height < 2 {
		return nil, ErrInvalidHeight
	}
	tr, err := newTree(height, fn)
	if err != nil {
		return nil, err
	}
	m := &IndexedMerkleMap{
		height: height,
		hash:   fn,
		leaves: []Leaf{sentinelLeaf()},
		index:  newKeyIndex(),
		tree:   tr,
	}
	if err := m.writeLeaf(0); err != nil {
		return nil, err
	}
	return m, nil
}

// Height returns the tree height the map was created with.
func (m *IndexedMerkleMap) Height() uint64 {
	return m.height
}

// Length returns the number of occupied leaves, including the sentinel.
func (m *IndexedMerkleMap) Length() uint64 {
	return uint64(len(m.leaves))
}

// Capacity returns the total number of leaf slots, 2^(height-1).
func (m *IndexedMerkleMap) Capacity() uint64 {
	return m.tree.capacity()
}

// Root returns the current Merkle root over all leaf slots.
func (m *IndexedMerkleMap) Root() *big.Int {
	return m.tree.root()
}

// Get returns the value stored under key. The zero key resolves to the
// sentinel's zero value.
func (m *IndexedMerkleMap) Get(key *big.Int) (*big.Int, bool) {
	i, ok := m.index.get(key)
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(m.leaves[i].Value), true
}

// MustGet is Get for callers that have already established presence; it
// panics on an absent key.
func (m *IndexedMerkleMap) MustGet(key *big.Int) *big.Int {
	v, ok := m.Get(key)
	if !ok {
		panic(fmt.Sprintf("imm: %v: key %s", ErrKeyNotFound, key))
	}
	return v
}

// SortedLeaves walks the embedded linked list from the sentinel, yielding
// copies of the leaves in ascending key order. Each call restarts from the
// sentinel; the map must not be mutated during a walk.
func (m *IndexedMerkleMap) SortedLeaves() iter.Seq[Leaf] {
	return func(yield func(Leaf) bool) {
		i := uint64(0)
		for {
			l := m.leaves[i]
			if !yield(l.clone()) {
				return
			}
			if l.NextKey.Sign() == 0 {
				return
			}
			i = l.NextIndex
		}
	}
}

// Insert adds a new key. It fails with ErrDuplicateKey if the key is
// already present (the zero key always is, as the sentinel's) and with
// ErrCapacityExceeded when all slots are occupied.
func (m *IndexedMerkleMap) Insert(key, value *big.Int) error {
	_, err := m.insert(key, value, false)
	return err
}

// InsertWithWitness performs the same mutation as Insert and records the
// transition: old and new roots, the low leaf's pre-mutation contents and
// path, and the new slot's path after the splice. The witness is enough
// for a verifier holding only the old root to re-derive the new one.
func (m *IndexedMerkleMap) InsertWithWitness(key, value *big.Int) (*InsertWitness, error) {
	return m.insert(key, value, true)
}

func (m *IndexedMerkleMap) insert(key, value *big.Int, capture bool) (*InsertWitness, error) {
	if _, ok := m.index.get(key); ok {
		return nil, ErrDuplicateKey
	}
	newIndex := m.Length()
	if newIndex >= m.tree.capacity() {
		return nil, ErrCapacityExceeded
	}

	// The low leaf is the unique occupied leaf whose successor gap
	// contains the key.
	lowIndex := m.index.predecessor(key)

	var w *InsertWitness
	if capture {
		lowPath, err := m.tree.pathFor(lowIndex)
		if err != nil {
			return nil, err
		}
		w = &InsertWitness{
			OldRoot:      m.Root(),
			Key:          new(big.Int).Set(key),
			Value:        new(big.Int).Set(value),
			LowLeaf:      m.leaves[lowIndex].clone(),
			LowLeafIndex: lowIndex,
			LowPath:      lowPath,
			NewLeafIndex: newIndex,
		}
	}

	// The new leaf inherits the low leaf's old successor, then the low
	// leaf is spliced to point at it.
	low := m.leaves[lowIndex]
	newLeaf := Leaf{
		Key:       new(big.Int).Set(key),
		Value:     new(big.Int).Set(value),
		NextKey:   new(big.Int).Set(low.NextKey),
		NextIndex: low.NextIndex,
	}
	m.leaves[lowIndex].NextKey = new(big.Int).Set(key)
	m.leaves[lowIndex].NextIndex = newIndex
	if err := m.writeLeaf(lowIndex); err != nil {
		return nil, err
	}

	m.leaves = append(m.leaves, newLeaf)
	if err := m.writeLeaf(newIndex); err != nil {
		return nil, err
	}
	m.index.insert(key, newIndex)

	if capture {
		// A leaf's own write never touches its path's siblings, so this
		// equals the new slot's path right after the splice.
		newPath, err := m.tree.pathFor(newIndex)
		if err != nil {
			return nil, err
		}
		w.NewLeafPath = newPath
		w.NewRoot = m.Root()
	}
	return w, nil
}

// Update replaces the value under an existing key, returning the previous
// value. Keys and successor pointers never change, so the sorted-order
// invariant is untouched.
func (m *IndexedMerkleMap) Update(key, value *big.Int) (*big.Int, error) {
	i, ok := m.index.get(key)
	if !ok || i == 0 {
		// The sentinel resolves through the index but is never reassigned.
		return nil, ErrKeyNotFound
	}
	old := m.leaves[i].Value
	m.leaves[i].Value = new(big.Int).Set(value)
	if err := m.writeLeaf(i); err != nil {
		return nil, err
	}
	return old, nil
}

// UpdateWithWitness performs the same mutation as Update and records the
// transition. Old and new roots share the authentication path, since only
// the leaf's value field changes.
func (m *IndexedMerkleMap) UpdateWithWitness(key, value *big.Int) (*UpdateWitness, error) {
	i, ok := m.index.get(key)
	if !ok || i == 0 {
		return nil, ErrKeyNotFound
	}
	path, err := m.tree.pathFor(i)
	if err != nil {
		return nil, err
	}
	w := &UpdateWitness{
		OldRoot:   m.Root(),
		Key:       new(big.Int).Set(key),
		OldValue:  new(big.Int).Set(m.leaves[i].Value),
		NewValue:  new(big.Int).Set(value),
		LeafIndex: i,
		NextKey:   new(big.Int).Set(m.leaves[i].NextKey),
		NextIndex: m.leaves[i].NextIndex,
		Path:      path,
	}
	m.leaves[i].Value = new(big.Int).Set(value)
	if err := m.writeLeaf(i); err != nil {
		return nil, err
	}
	w.NewRoot = m.Root()
	return w, nil
}

// Set inserts key or updates it in place. It returns the previous value
// for updates and nil for fresh inserts.
func (m *IndexedMerkleMap) Set(key, value *big.Int) (*big.Int, error) {
	if _, ok := m.index.get(key); ok {
		return m.Update(key, value)
	}
	if err := m.Insert(key, value); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *IndexedMerkleMap) writeLeaf(i uint64) error {
	h, err := m.leaves[i].Hash(m.hash)
	if err != nil {
		return err
	}
	return m.tree.setLeaf(i, h)
}
