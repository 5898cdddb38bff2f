// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/lvldb"
)

func M(a ...interface{}) []interface{} {
	return a
}

func TestAccount(t *testing.T) {
	assert.True(t, emptyAccount().IsEmpty(), "newly constructed account should be empty")
	assert.False(t, (&Account{Balance: big.NewInt(1)}).IsEmpty())
}

func TestAccountStore(t *testing.T) {
	kv, _ := lvldb.NewMem()
	defer kv.Close()

	addr := freyr.BytesToAddress([]byte("account1"))
	assert.Equal(t,
		M(loadAccount(kv, addr)),
		[]interface{}{emptyAccount(), nil},
		"should load an empty account")

	acc1 := &Account{Balance: big.NewInt(1)}
	saveAccount(kv, addr, acc1)
	assert.Equal(t,
		M(loadAccount(kv, addr)),
		[]interface{}{acc1, nil})

	saveAccount(kv, addr, emptyAccount())
	_, err := kv.Get(accountKey(addr))
	assert.True(t, kv.IsNotFound(err), "empty account should be deleted")
}

func TestStorageStore(t *testing.T) {
	kv, _ := lvldb.NewMem()
	defer kv.Close()

	addr := freyr.BytesToAddress([]byte("account1"))
	key := freyr.BytesToBytes32([]byte("key"))
	assert.Equal(t,
		M(loadStorage(kv, addr, key)),
		[]interface{}{rlp.RawValue(nil), nil})

	value, _ := rlp.EncodeToBytes([]byte("value"))
	saveStorage(kv, addr, key, value)
	assert.Equal(t,
		M(loadStorage(kv, addr, key)),
		[]interface{}{rlp.RawValue(value), nil})

	saveStorage(kv, addr, key, nil)
	_, err := kv.Get(slotKey(addr, key))
	assert.True(t, kv.IsNotFound(err), "empty storage value should be deleted")
}
