// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/maia/builtin"
	"github.com/vechain/maia/builtin/staking"
	"github.com/vechain/maia/maia"
)

// DevAccount account for development.
type DevAccount struct {
	Address    maia.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
		"fbb9e7ba5fe9969a71c6599052237b91adeb1e5fc0c96727b66e56ff5d02f9d0",
		"547fb081e73dc2e22b4aae5c60e2970b008ac4fc3073aebc27d41ace9c4f53e9",
		"c8c53657e41a8d669349fc287f57457bd746cb1fcfc38cf94d235deb2cfca81b",
		"87e0eba9c86c494d98353800571089f316740b0cb84c9a7cdf2fe5c9997c7966",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{maia.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevMembers is the number of leading dev accounts holding a membership token.
const DevMembers = 3

// NewDevnet create genesis for solo mode. The first dev account owns every contract,
// each account holds one million gold and the engine starts with a single gold pool.
func NewDevnet(opts staking.Options) *Genesis {
	launchTime := uint64(1526400000) // 'Wed May 16 2018 00:00:00 GMT+0800 (CST)'

	owner := DevAccounts()[0].Address
	gen := &CustomGenesis{
		LaunchTime: launchTime,
		Owner:      owner,
		Gold: Gold{
			Treasury:  &owner,
			Whitelist: []maia.Address{builtin.Maia.Address},
		},
		Pools: []Pool{{Weight: 100}},
	}
	for i, a := range DevAccounts() {
		bal, _ := new(big.Int).SetString("1000000000000000000000000", 10)
		gen.Accounts = append(gen.Accounts, Account{
			Address: a.Address,
			Gold:    (*HexOrDecimal256)(bal),
			Member:  i < DevMembers,
		})
	}

	g, err := newCustom("devnet", gen, opts)
	if err != nil {
		panic(err)
	}
	return g
}
