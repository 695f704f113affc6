// Package trace is the JSON glue between the builder and replay CLIs. The
// core library is codec-free; these records only demonstrate shipping
// witnesses across a process boundary.
package trace

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/zkmaps/indexed-merkle-map/imm"
)

type Kind string

const (
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
)

// Op is one command for the builder CLI.
type Op struct {
	Op    string   `json:"op"` // "insert", "update" or "set"
	Key   *big.Int `json:"key"`
	Value *big.Int `json:"value"`
}

// Record is one witnessed transition.
type Record struct {
	Kind   Kind               `json:"kind"`
	Insert *imm.InsertWitness `json:"insert,omitempty"`
	Update *imm.UpdateWitness `json:"update,omitempty"`
}

// Trace is an ordered list of witnessed transitions against a map of the
// given height.
type Trace struct {
	Height  uint64   `json:"height"`
	Records []Record `json:"records"`
}

func ReadOps(path string) ([]Op, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ops []Op
	if err := json.Unmarshal(b, &ops); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ops, nil
}

func Read(path string) (*Trace, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := &Trace{}
	if err := json.Unmarshal(b, t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

func Write(path string, t *Trace) error {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
