package imm

import "github.com/consensys/gnark/frontend"

// Inclusion constrains a membership proof: the leaf binding Key to Value
// at Index climbs to Root.
type Inclusion struct {
	Enabled   frontend.Variable
	Root      frontend.Variable
	Key       frontend.Variable
	Value     frontend.Variable
	NextKey   frontend.Variable
	NextIndex frontend.Variable
	Index     frontend.Variable
	Siblings  []frontend.Variable
}

func (v Inclusion) Run(api frontend.API) {
	Verify{
		Enabled:   v.Enabled,
		Root:      v.Root,
		Key:       v.Key,
		Value:     v.Value,
		NextKey:   v.NextKey,
		NextIndex: v.NextIndex,
		Index:     v.Index,
		LowKey:    v.Key,
		Siblings:  v.Siblings,
		Inclusion: 1,
	}.Run(api)
}
