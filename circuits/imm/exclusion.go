package imm

import "github.com/consensys/gnark/frontend"

// Exclusion constrains a non-membership proof: the low leaf at Index
// climbs to Root and its successor gap strictly contains Key.
type Exclusion struct {
	Enabled      frontend.Variable
	Root         frontend.Variable
	Key          frontend.Variable
	Index        frontend.Variable
	LowKey       frontend.Variable
	LowValue     frontend.Variable
	LowNextKey   frontend.Variable
	LowNextIndex frontend.Variable
	Siblings     []frontend.Variable
}

func (v Exclusion) Run(api frontend.API) {
	Verify{
		Enabled:   v.Enabled,
		Root:      v.Root,
		Key:       v.Key,
		Value:     v.LowValue,
		NextKey:   v.LowNextKey,
		NextIndex: v.LowNextIndex,
		Index:     v.Index,
		LowKey:    v.LowKey,
		Siblings:  v.Siblings,
		Inclusion: 0,
	}.Run(api)
}
