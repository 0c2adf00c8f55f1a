// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/maia/kv"
	"github.com/vechain/maia/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	bucket := kv.Bucket("s")
	putter := bucket.NewPutter(db)
	getter := bucket.NewGetter(db)

	assert.NoError(t, putter.Put([]byte("k"), []byte("v")))

	v, err := getter.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	raw, err := db.Get([]byte("sk"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), raw)

	has, err := getter.Has([]byte("k"))
	assert.NoError(t, err)
	assert.True(t, has)

	assert.NoError(t, putter.Delete([]byte("k")))
	_, err = getter.Get([]byte("k"))
	assert.True(t, getter.IsNotFound(err))
}
