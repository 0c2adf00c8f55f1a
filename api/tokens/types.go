// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/maia/maia"
)

type Balance struct {
	Address maia.Address          `json:"address"`
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type Supply struct {
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

type Gold struct {
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
	Tax         uint64                `json:"tax"`
	Treasury    maia.Address          `json:"treasury"`
	// Withheld is the tax kept by the staking engine.
	Withheld *math.HexOrDecimal256 `json:"withheld"`
}

type TransferRequest struct {
	Caller maia.Address          `json:"caller"`
	To     maia.Address          `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type ApproveRequest struct {
	Caller  maia.Address          `json:"caller"`
	Spender *maia.Address         `json:"spender,omitempty"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

type Allowance struct {
	Owner     maia.Address          `json:"owner"`
	Spender   maia.Address          `json:"spender"`
	Allowance *math.HexOrDecimal256 `json:"allowance"`
}

type MintRequest struct {
	Caller maia.Address `json:"caller"`
	To     maia.Address `json:"to"`
}

type MoveRequest struct {
	Caller maia.Address `json:"caller"`
	From   maia.Address `json:"from"`
	To     maia.Address `json:"to"`
}
