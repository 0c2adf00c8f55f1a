// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import "github.com/vechain/maia/metrics"

var (
	metricCommitCount    = metrics.LazyLoadCounter("node_commit_count")
	metricCommitDuration = metrics.LazyLoadHistogramVec("node_commit_duration_ms", []string{"result"}, metrics.BucketCommits)
)
