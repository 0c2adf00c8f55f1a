// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/maia/maia"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	LaunchTime uint64       `json:"launchTime"`
	Owner      maia.Address `json:"owner"`
	Gold       Gold         `json:"gold"`
	Accounts   []Account    `json:"accounts"`
	Pools      []Pool       `json:"pools"`
}

// Gold is the transfer tax setup of the base asset.
type Gold struct {
	Tax       uint64         `json:"tax"`
	Treasury  *maia.Address  `json:"treasury"`
	Whitelist []maia.Address `json:"whitelist"`
}

// Account is the account will set to the genesis state
type Account struct {
	Address maia.Address     `json:"address"`
	Gold    *HexOrDecimal256 `json:"gold"`
	Member  bool             `json:"member"`
}

// Pool is a pool of the base asset created at genesis.
type Pool struct {
	Weight uint64 `json:"weight"`
	Slots  uint32 `json:"slots"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
// Copied from go-ethereum/common/math and implement json. Marshaler
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		if err = (*big.Int)(i).UnmarshalJSON(input); err != nil {
			return err
		}
		return nil
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}
