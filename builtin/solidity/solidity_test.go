// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/maia/lvldb"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

type testStruct struct {
	Field1 uint64
	Amount *big.Int
	Addr1  maia.Address
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(maia.Address{1}, state.New(db))
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	mapping := NewMapping[maia.Address, testStruct](ctx, maia.BytesToBytes32([]byte("records")))

	key := maia.Address{9}
	got, err := mapping.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, testStruct{}, got)

	value := testStruct{Field1: 3, Amount: big.NewInt(1000), Addr1: maia.Address{7}}
	assert.NoError(t, mapping.Set(key, value))

	got, err = mapping.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	// distinct base positions never collide
	other := NewMapping[maia.Address, testStruct](ctx, maia.BytesToBytes32([]byte("others")))
	got, err = other.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), got.Field1)

	mapping.Delete(key)
	got, err = mapping.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, testStruct{}, got)
}

func TestMappingPoolIDKey(t *testing.T) {
	ctx := newTestContext(t)
	mapping := NewMapping[maia.PoolID, []maia.Address](ctx, maia.BytesToBytes32([]byte("lists")))

	assert.NoError(t, mapping.Set(maia.PoolID(1), []maia.Address{{1}, {2}}))
	got, err := mapping.Get(maia.PoolID(1))
	assert.NoError(t, err)
	assert.Equal(t, []maia.Address{{1}, {2}}, got)

	got, err = mapping.Get(maia.PoolID(2))
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestValue(t *testing.T) {
	ctx := newTestContext(t)
	value := NewValue[[]maia.PoolID](ctx, maia.BytesToBytes32([]byte("ids")))

	got, err := value.Get()
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, value.Set([]maia.PoolID{0, 3}))
	got, err = value.Get()
	assert.NoError(t, err)
	assert.Equal(t, []maia.PoolID{0, 3}, got)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, maia.BytesToBytes32([]byte("total")))

	v, err := u.Get()
	assert.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	u.Set(big.NewInt(100))
	assert.NoError(t, u.Add(big.NewInt(50)))
	assert.NoError(t, u.Sub(big.NewInt(30)))

	v, err = u.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(120), v)
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, maia.BytesToBytes32([]byte("owner")))

	got, err := a.Get()
	assert.NoError(t, err)
	assert.True(t, got.IsZero())

	owner := maia.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	a.Set(owner)
	got, err = a.Get()
	assert.NoError(t, err)
	assert.Equal(t, owner, got)
}
