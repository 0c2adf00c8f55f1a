// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/maia/builtin/staking"
	"github.com/vechain/maia/builtin/staking/fees"
)

func TestLoadOptions(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		opts, err := loadOptions("")
		require.NoError(t, err)
		assert.Equal(t, staking.DefaultOptions(), opts)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "maia.yaml")
		require.NoError(t, os.WriteFile(path, []byte("top-staker-slots: 5\nfees:\n  lock-mode: reject\n"), 0o600))

		opts, err := loadOptions(path)
		require.NoError(t, err)
		assert.Equal(t, uint32(5), opts.TopStakerSlots)
		assert.Equal(t, fees.LockReject, opts.Fees.LockMode)
		assert.Equal(t, staking.DefaultOptions().Fees.Entry, opts.Fees.Entry)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "maia.yaml")
		require.NoError(t, os.WriteFile(path, []byte("slots: 5\n"), 0o600))

		_, err := loadOptions(path)
		assert.Error(t, err)
	})

	t.Run("invalid policy", func(t *testing.T) {
		opts := staking.DefaultOptions()
		err := decodeOptions(strings.NewReader("top-staker-slots: 0\n"), &opts)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadOptions(filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
	})
}

func TestDumpOptionsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dumpOptions(&buf, staking.DefaultOptions()))

	opts := staking.Options{}
	require.NoError(t, decodeOptions(&buf, &opts))
	assert.Equal(t, staking.DefaultOptions(), opts)
}
