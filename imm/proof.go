package imm

import "math/big"

// MembershipProof is self-contained evidence that a key is present with a
// given value: the full leaf contents plus its authentication path. It
// never references the live tree and stays valid for the root it was
// generated against.
type MembershipProof struct {
	Leaf      Leaf
	LeafIndex uint64
	Path      []*big.Int
}

// NonMembershipProof is self-contained evidence that a key is absent: the
// low leaf whose successor gap contains the key, plus its authentication
// path. The gap check and the root check together rule out any stored key
// between LowLeaf.Key and its successor.
type NonMembershipProof struct {
	LowLeaf      Leaf
	LowLeafIndex uint64
	Path         []*big.Int
}

// MembershipProof generates a proof for a present key, failing with
// ErrKeyNotFound otherwise.
func (m *IndexedMerkleMap) MembershipProof(key *big.Int) (*MembershipProof, error) {
	i, ok := m.index.get(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	path, err := m.tree.pathFor(i)
	if err != nil {
		return nil, err
	}
	return &MembershipProof{Leaf: m.leaves[i].clone(), LeafIndex: i, Path: path}, nil
}

// NonMembershipProof generates a proof for an absent key, failing with
// ErrKeyPresent if the key is stored (or is the reserved zero key).
func (m *IndexedMerkleMap) NonMembershipProof(key *big.Int) (*NonMembershipProof, error) {
	if _, ok := m.index.get(key); ok {
		return nil, ErrKeyPresent
	}
	lowIndex := m.index.predecessor(key)
	path, err := m.tree.pathFor(lowIndex)
	if err != nil {
		return nil, err
	}
	return &NonMembershipProof{
		LowLeaf:      m.leaves[lowIndex].clone(),
		LowLeafIndex: lowIndex,
		Path:         path,
	}, nil
}

// Verify checks the proof against a claimed root: the leaf must bind key
// to value, and its path must climb back to root. The length argument is
// advisory only, a consistency bound against the path depth; root equality
// is the authoritative check.
func (p *MembershipProof) Verify(fn HashFn, root, key, value *big.Int, length uint64) (bool, error) {
	if p.Leaf.Key.Cmp(key) != 0 || p.Leaf.Value.Cmp(value) != 0 {
		return false, nil
	}
	if !lengthConsistent(length, p.LeafIndex, len(p.Path)) {
		return false, nil
	}
	h, err := p.Leaf.Hash(fn)
	if err != nil {
		return false, err
	}
	candidate, err := climbPath(fn, h, p.LeafIndex, p.Path)
	if err != nil {
		return false, err
	}
	return candidate.Cmp(root) == 0, nil
}

// Verify checks the proof against a claimed root: the low leaf's successor
// gap must strictly contain key, and the low leaf must climb back to root.
func (p *NonMembershipProof) Verify(fn HashFn, root, key *big.Int, length uint64) (bool, error) {
	if !p.LowLeaf.covers(key) {
		return false, nil
	}
	if !lengthConsistent(length, p.LowLeafIndex, len(p.Path)) {
		return false, nil
	}
	h, err := p.LowLeaf.Hash(fn)
	if err != nil {
		return false, err
	}
	candidate, err := climbPath(fn, h, p.LowLeafIndex, p.Path)
	if err != nil {
		return false, err
	}
	return candidate.Cmp(root) == 0, nil
}

// lengthConsistent bounds the claimed occupied-leaf count and the proved
// index by the capacity the path depth implies.
func lengthConsistent(length, index uint64, depth int) bool {
	if depth <= 0 || depth >= 64 {
		return false
	}
	capacity := uint64(1) << depth
	return length >= 1 && length <= capacity && index < capacity
}
