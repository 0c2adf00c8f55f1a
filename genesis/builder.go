// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/maia/kv"
	"github.com/vechain/maia/state"
)

var (
	metaBucket = kv.Bucket("g")
	nameKey    = []byte("name")
)

// Builder helper to build the genesis state.
type Builder struct {
	timestamp  uint64
	stateProcs []func(state *state.State) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build runs the state processes over an empty store and writes the result together
// with the genesis name.
func (b *Builder) Build(db kv.Store, name string) error {
	st := state.New(db)
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return errors.Wrap(err, "state process")
		}
	}

	bulk := db.Bulk()
	if err := st.Commit(bulk); err != nil {
		return errors.Wrap(err, "commit state")
	}
	if err := metaBucket.NewPutter(bulk).Put(nameKey, []byte(name)); err != nil {
		return err
	}
	return bulk.Write()
}

// Initialized returns the name of the genesis the store was built with, empty if none.
func Initialized(db kv.Getter) (string, error) {
	name, err := metaBucket.NewGetter(db).Get(nameKey)
	if err != nil {
		if db.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return string(name), nil
}
