package imm

import "github.com/consensys/gnark/frontend"

// Insert constrains one insert transition, mirroring the native stateless
// verifier: the pre-mutation low leaf climbs to OldRoot over LowSiblings,
// the low leaf's gap contains Key, the spliced low leaf yields an
// intermediate root in which the slot at Index is empty, and writing the
// new leaf there yields NewRoot over Siblings.
type Insert struct {
	Enabled      frontend.Variable
	OldRoot      frontend.Variable
	NewRoot      frontend.Variable
	Key          frontend.Variable
	Value        frontend.Variable
	LowKey       frontend.Variable
	LowValue     frontend.Variable
	LowNextKey   frontend.Variable
	LowNextIndex frontend.Variable
	LowIndex     frontend.Variable
	LowSiblings  []frontend.Variable
	Index        frontend.Variable   // the new leaf's index
	Siblings     []frontend.Variable // the new slot's path after the splice
}

func (p Insert) Run(api frontend.API) {
	if len(p.Siblings) != len(p.LowSiblings) {
		panic("sibling length mismatch")
	}

	lowH := leafHash(api, p.LowKey, p.LowValue, p.LowNextKey, p.LowNextIndex)
	assertEqualIfEnabled(api, climb(api, lowH, p.LowIndex, p.LowSiblings), p.OldRoot, p.Enabled)

	assertGapContains(api, p.LowKey, p.Key, p.LowNextKey, p.Enabled)

	splicedH := leafHash(api, p.LowKey, p.LowValue, p.Key, p.Index)
	intermediate := climb(api, splicedH, p.LowIndex, p.LowSiblings)
	assertEqualIfEnabled(api, climb(api, 0, p.Index, p.Siblings), intermediate, p.Enabled)

	// the new leaf inherits the low leaf's old successor
	newH := leafHash(api, p.Key, p.Value, p.LowNextKey, p.LowNextIndex)
	assertEqualIfEnabled(api, climb(api, newH, p.Index, p.Siblings), p.NewRoot, p.Enabled)
}
