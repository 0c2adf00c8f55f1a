// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/vechain/maia/maia"
)

func RandomAddress() maia.Address {
	var addr maia.Address

	rand.Read(addr[:])
	return addr
}

// RandomAddresses returns n distinct addresses.
func RandomAddresses(n int) []maia.Address {
	seen := make(map[maia.Address]struct{}, n)
	addrs := make([]maia.Address, 0, n)
	for len(addrs) < n {
		addr := RandomAddress()
		if _, ok := seen[addr]; ok || addr.IsZero() {
			continue
		}
		seen[addr] = struct{}{}
		addrs = append(addrs, addr)
	}
	return addrs
}

func RandomHash() maia.Bytes32 {
	var b32 maia.Bytes32

	rand.Read(b32[:])
	return b32
}
