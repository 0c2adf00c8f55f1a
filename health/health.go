// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type Commits struct {
	Count          uint64     `json:"count"`
	LastCommitTime *time.Time `json:"lastCommitTime"`
	LastError      string     `json:"lastError,omitempty"`
}

type Status struct {
	Healthy bool     `json:"healthy"`
	Commits *Commits `json:"commits"`
	Ready   bool     `json:"ready"`
}

// Health tracks whether the ledger store keeps accepting commits.
type Health struct {
	lock       sync.RWMutex
	lastCommit time.Time
	commits    uint64
	lastErr    error
	ready      bool
}

func New() *Health {
	return &Health{}
}

func (h *Health) Committed() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastCommit = time.Now()
	h.commits++
	h.lastErr = nil
}

func (h *Health) CommitFailed(err error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastErr = err
}

func (h *Health) Ready(ready bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.ready = ready
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	commits := &Commits{Count: h.commits}
	if h.commits > 0 {
		last := h.lastCommit
		commits.LastCommitTime = &last
	}
	if h.lastErr != nil {
		commits.LastError = h.lastErr.Error()
	}

	return &Status{
		Healthy: h.ready && h.lastErr == nil,
		Commits: commits,
		Ready:   h.ready,
	}, nil
}
