package imm

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/mdehoog/poseidon/poseidon"
)

// Poseidon is the default HashFn. It matches the in-circuit Poseidon used
// by the gadgets in circuits/imm, so native roots and circuit roots agree.
func Poseidon(inputs []*big.Int) (*big.Int, error) {
	return poseidon.Hash[*fr.Element](inputs)
}
