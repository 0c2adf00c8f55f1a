// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/maia/builtin/gold"
	"github.com/vechain/maia/builtin/staking"
	"github.com/vechain/maia/builtin/valar"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

// Builtin contracts binding.
var (
	Gold  = &goldContract{contract{maia.BytesToAddress([]byte("Gold1"))}}
	Valar = &valarContract{contract{maia.BytesToAddress([]byte("Valar"))}}
	Maia  = &maiaContract{contract{maia.BytesToAddress([]byte("Maia"))}}
)

type contract struct {
	Address maia.Address
}

type (
	goldContract  struct{ contract }
	valarContract struct{ contract }
	maiaContract  struct{ contract }
)

func (g *goldContract) WithState(state *state.State) *gold.Gold {
	return gold.New(g.Address, state)
}

func (v *valarContract) WithState(state *state.State) *valar.Valar {
	return valar.New(v.Address, state)
}

// WithState binds the engine to state, with Gold as the only stakeable asset
// and Valar as the membership token.
func (m *maiaContract) WithState(state *state.State, opts staking.Options) *staking.Maia {
	return staking.New(m.Address, state, Tokens(state), Valar.WithState(state), opts)
}

// Tokens resolves the assets a pool can be created for.
func Tokens(state *state.State) staking.TokenResolver {
	return staking.TokenResolverFunc(func(asset maia.Address) (staking.Token, error) {
		if asset == Gold.Address {
			return Gold.WithState(state), nil
		}
		return nil, nil
	})
}
