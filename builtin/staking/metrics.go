// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"
	"math/big"
	"strconv"

	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/metrics"
)

var (
	metricOperations  = metrics.LazyLoadCounterVec("staking_operations_count", []string{"op", "result"})
	metricTotalStaked = metrics.LazyLoadGaugeVec("staking_pool_total_staked", []string{"pool"})
	metricClaimed     = metrics.LazyLoadCounterVec("staking_claims_count", []string{"pool"})
)

func poolLabel(pid maia.PoolID) map[string]string {
	return map[string]string{"pool": strconv.FormatUint(uint64(pid), 10)}
}

func clampInt64(v *big.Int) int64 {
	if v.IsInt64() {
		return v.Int64()
	}
	return math.MaxInt64
}

// observePool refreshes the pool gauges after a committed change.
func (m *Maia) observePool(pid maia.PoolID) {
	p, err := m.poolService.Get(pid)
	if err != nil {
		return
	}
	metricTotalStaked().SetWithLabel(clampInt64(p.TotalStaked), poolLabel(pid))
}
