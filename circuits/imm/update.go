package imm

import "github.com/consensys/gnark/frontend"

// Update constrains one update transition: the leaf with OldValue climbs
// to OldRoot, and the same leaf with NewValue climbs to NewRoot over the
// same path.
type Update struct {
	Enabled   frontend.Variable
	OldRoot   frontend.Variable
	NewRoot   frontend.Variable
	Key       frontend.Variable
	OldValue  frontend.Variable
	NewValue  frontend.Variable
	NextKey   frontend.Variable
	NextIndex frontend.Variable
	Index     frontend.Variable
	Siblings  []frontend.Variable
}

func (p Update) Run(api frontend.API) {
	oldH := leafHash(api, p.Key, p.OldValue, p.NextKey, p.NextIndex)
	assertEqualIfEnabled(api, climb(api, oldH, p.Index, p.Siblings), p.OldRoot, p.Enabled)

	newH := leafHash(api, p.Key, p.NewValue, p.NextKey, p.NextIndex)
	assertEqualIfEnabled(api, climb(api, newH, p.Index, p.Siblings), p.NewRoot, p.Enabled)
}
