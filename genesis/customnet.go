// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vechain/maia/builtin"
	"github.com/vechain/maia/builtin/staking"
	"github.com/vechain/maia/state"
)

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis, opts staking.Options) (*Genesis, error) {
	return newCustom("customnet", gen, opts)
}

func newCustom(name string, gen *CustomGenesis, opts staking.Options) (*Genesis, error) {
	launchTime := gen.LaunchTime

	if gen.Owner.IsZero() {
		return nil, errors.New("owner must be set")
	}
	if len(gen.Accounts) == 0 {
		return nil, errors.New("at least one account")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	supply := new(big.Int)
	for _, a := range gen.Accounts {
		if a.Gold == nil {
			return nil, fmt.Errorf("%s: gold must be set", a.Address)
		}
		if (*big.Int)(a.Gold).Sign() < 1 {
			return nil, fmt.Errorf("%s: gold must be a non-zero integer", a.Address)
		}
		supply.Add(supply, (*big.Int)(a.Gold))
	}

	builder := new(Builder).
		Timestamp(launchTime).
		State(func(state *state.State) error {
			gold := builtin.Gold.WithState(state)
			if err := gold.Initialize(gen.Owner, supply); err != nil {
				return err
			}
			for _, a := range gen.Accounts {
				if a.Address == gen.Owner {
					continue
				}
				if err := gold.Transfer(gen.Owner, a.Address, (*big.Int)(a.Gold)); err != nil {
					return fmt.Errorf("%s: %w", a.Address, err)
				}
			}
			for _, addr := range gen.Gold.Whitelist {
				if err := gold.SetWhitelist(gen.Owner, addr, true); err != nil {
					return err
				}
			}
			if gen.Gold.Treasury != nil {
				if err := gold.SetTreasury(gen.Owner, *gen.Gold.Treasury); err != nil {
					return err
				}
			}
			// tax last, so the allocation above is not charged
			if err := gold.SetTax(gen.Owner, gen.Gold.Tax); err != nil {
				return err
			}

			valar := builtin.Valar.WithState(state)
			if err := valar.Initialize(gen.Owner); err != nil {
				return err
			}
			one := big.NewInt(1)
			for _, a := range gen.Accounts {
				if !a.Member {
					continue
				}
				if err := valar.Mint(gen.Owner, a.Address, one); err != nil {
					return fmt.Errorf("%s: %w", a.Address, err)
				}
			}
			return nil
		}).
		State(func(state *state.State) error {
			engine := builtin.Maia.WithState(state, opts)
			if err := engine.Initialize(gen.Owner); err != nil {
				return err
			}
			for _, p := range gen.Pools {
				if _, err := engine.AddPool(gen.Owner, p.Weight, builtin.Gold.Address, true, p.Slots, launchTime); err != nil {
					return err
				}
			}
			return nil
		})

	return &Genesis{builder, name}, nil
}
