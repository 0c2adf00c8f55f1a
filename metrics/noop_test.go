// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// runs before the prometheus test, which swaps the singleton
func TestNoopMetrics(t *testing.T) {
	assert.Nil(t, HTTPHandler())

	Counter("count1").Add(1)
	CounterVec("countVec1", []string{"pool"}).AddWithLabel(1, map[string]string{"nonsense": "ok"})
	Gauge("gauge1").Set(3)
	GaugeVec("gaugeVec1", []string{"pool"}).SetWithLabel(1, map[string]string{"pool": "0"})
	HistogramVec("hist1", []string{"code"}, nil).ObserveWithLabels(1, nil)

	lazy := LazyLoadCounter("lazy1")
	assert.Same(t, lazy(), lazy())
}
