package imm

import "github.com/consensys/gnark/frontend"

// Verify constrains a membership or non-membership proof against a root.
// For inclusion, LowKey equals Key and Value/NextKey/NextIndex are the
// proved leaf's fields; for exclusion they are the low leaf's. Inclusion
// selects between the two modes; Enabled gates every constraint.
type Verify struct {
	Enabled   frontend.Variable
	Root      frontend.Variable
	Key       frontend.Variable
	Value     frontend.Variable // exclusion: use the low leaf's value
	NextKey   frontend.Variable // exclusion: use the low leaf's next key
	NextIndex frontend.Variable // exclusion: use the low leaf's next index
	Index     frontend.Variable
	LowKey    frontend.Variable // inclusion: same as Key
	Siblings  []frontend.Variable
	Inclusion frontend.Variable
}

func (v Verify) Run(api frontend.API) {
	prevKeyEqualsKey := api.IsZero(api.Sub(v.LowKey, v.Key))
	assertEqualIfEnabled(api, prevKeyEqualsKey, v.Inclusion, v.Enabled) // inclusion ? key == lowKey : key != lowKey
	assertDifferentIfEnabled(api, v.Key, v.NextKey, v.Enabled)          // key != nextKey

	api.AssertIsLessOrEqual(api.Mul(v.Enabled, v.LowKey), v.Key)        // lowKey <= key
	nextKeyOverflow := api.Sub(v.NextKey, api.IsZero(v.NextKey))        // nextKey == 0 ? nextKey - 1 : nextKey
	api.AssertIsLessOrEqual(api.Mul(v.Enabled, v.Key), nextKeyOverflow) // key <= nextKey

	h := leafHash(api, v.LowKey, v.Value, v.NextKey, v.NextIndex)
	h = climb(api, h, v.Index, v.Siblings)
	assertEqualIfEnabled(api, h, v.Root, v.Enabled)
}
