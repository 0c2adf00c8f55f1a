// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/maia/kv"
	"github.com/vechain/maia/log"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis to build the initial ledger.
type Genesis struct {
	builder *Builder
	name    string
}

// Build writes the genesis state into db. A store already built by the same genesis
// is left untouched.
func (g *Genesis) Build(db kv.Store) error {
	existing, err := Initialized(db)
	if err != nil {
		return err
	}
	if existing == g.name {
		logger.Debug("genesis already built", "name", g.name)
		return nil
	}
	if existing != "" {
		return errors.Errorf("store holds genesis %q, want %q", existing, g.name)
	}
	if err := g.builder.Build(db, g.name); err != nil {
		return err
	}
	logger.Info("genesis built", "name", g.name, "launchTime", g.builder.timestamp)
	return nil
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the timestamp the ledger starts at.
func (g *Genesis) LaunchTime() uint64 {
	return g.builder.timestamp
}
