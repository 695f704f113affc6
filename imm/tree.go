package imm

import "math/big"

// tree is the fixed-height Merkle engine over the leaf hash array. Level 0
// holds the 2^(height-1) leaf hashes and level height-1 the single root.
// Rows grow lazily as leaves are appended; slots past the end of a row
// read as the per-level zero-subtree hash, so the root is always the full
// padded commitment. A leaf write refreshes only the height-1 nodes on its
// path.
type tree struct {
	height uint64
	hash   HashFn
	nodes  [][]*big.Int
	zeroes []*big.Int
}

func newTree(height uint64, fn HashFn) (*tree, error) {
	t := &tree{
		height: height,
		hash:   fn,
		nodes:  make([][]*big.Int, height),
		zeroes: make([]*big.Int, height),
	}
	// The canonical empty-leaf hash is the field zero; each level above
	// hashes two copies of the level below.
	t.zeroes[0] = new(big.Int)
	for level := uint64(1); level < height; level++ {
		z, err := fn([]*big.Int{t.zeroes[level-1], t.zeroes[level-1]})
		if err != nil {
			return nil, err
		}
		t.zeroes[level] = z
	}
	return t, nil
}

func (t *tree) capacity() uint64 {
	return 1 << (t.height - 1)
}

func (t *tree) root() *big.Int {
	return new(big.Int).Set(t.node(t.height-1, 0))
}

func (t *tree) node(level, index uint64) *big.Int {
	if row := t.nodes[level]; index < uint64(len(row)) {
		return row[index]
	}
	return t.zeroes[level]
}

func (t *tree) setNode(level, index uint64, h *big.Int) {
	row := t.nodes[level]
	for uint64(len(row)) <= index {
		row = append(row, t.zeroes[level])
	}
	row[index] = h
	t.nodes[level] = row
}

// setLeaf writes a leaf hash and recomputes the internal nodes on its path.
func (t *tree) setLeaf(index uint64, h *big.Int) error {
	if index >= t.capacity() {
		return ErrCapacityExceeded
	}
	t.setNode(0, index, h)
	for level := uint64(0); level+1 < t.height; level++ {
		sibling := t.node(level, index^1)
		var err error
		if index%2 == 0 {
			h, err = t.hash([]*big.Int{h, sibling})
		} else {
			h, err = t.hash([]*big.Int{sibling, h})
		}
		if err != nil {
			return err
		}
		index /= 2
		t.setNode(level+1, index, h)
	}
	return nil
}

// pathFor returns the height-1 sibling hashes for the leaf slot at index,
// ordered leaf to root. The slot need not be occupied. The returned values
// are copies, safe to hold across later mutations.
func (t *tree) pathFor(index uint64) ([]*big.Int, error) {
	if index >= t.capacity() {
		return nil, ErrCapacityExceeded
	}
	siblings := make([]*big.Int, t.height-1)
	for level := uint64(0); level+1 < t.height; level++ {
		siblings[level] = new(big.Int).Set(t.node(level, index^1))
		index /= 2
	}
	return siblings, nil
}

// climbPath folds a leaf hash up an authentication path ordered leaf to
// root, returning the implied root.
func climbPath(fn HashFn, leafHash *big.Int, index uint64, path []*big.Int) (*big.Int, error) {
	h := leafHash
	for _, sibling := range path {
		var err error
		if index%2 == 0 {
			h, err = fn([]*big.Int{h, sibling})
		} else {
			h, err = fn([]*big.Int{sibling, h})
		}
		if err != nil {
			return nil, err
		}
		index /= 2
	}
	return h, nil
}
