// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

// Context binds a builtin contract address to the state its storage lives in.
type Context struct {
	address maia.Address
	state   *state.State
}

func NewContext(address maia.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() maia.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
