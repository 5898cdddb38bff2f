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

func TestState(t *testing.T) {
	kv, _ := lvldb.NewMem()
	defer kv.Close()

	state := New(kv)

	addr := freyr.BytesToAddress([]byte("acc1"))
	balance := big.NewInt(10)

	storage := map[freyr.Bytes32]freyr.Bytes32{
		freyr.BytesToBytes32([]byte("s1")): freyr.BytesToBytes32([]byte("v1")),
		freyr.BytesToBytes32([]byte("s2")): freyr.BytesToBytes32([]byte("v2")),
		freyr.BytesToBytes32([]byte("s3")): freyr.BytesToBytes32([]byte("v3"))}

	state.SetBalance(addr, balance)
	for k, v := range storage {
		state.SetStorage(addr, k, v)
	}

	assert.Equal(t, M(state.GetBalance(addr)), []interface{}{balance, nil})
	for k, v := range storage {
		assert.Equal(t, M(state.GetStorage(addr, k)), []interface{}{v, nil})
	}

	assert.Equal(t, M(state.Exists(addr)), []interface{}{true, nil})
	assert.Equal(t, M(state.Exists(freyr.BytesToAddress([]byte("acc2")))), []interface{}{false, nil})
}

func TestCheckpointRevert(t *testing.T) {
	kv, _ := lvldb.NewMem()
	defer kv.Close()

	state := New(kv)

	addr := freyr.BytesToAddress([]byte("acc1"))
	key := freyr.BytesToBytes32([]byte("key"))

	state.SetBalance(addr, big.NewInt(10))

	rev := state.NewCheckpoint()
	state.SetBalance(addr, big.NewInt(20))
	state.SetStorage(addr, key, freyr.BytesToBytes32([]byte("value")))
	assert.Equal(t, M(state.GetBalance(addr)), []interface{}{big.NewInt(20), nil})

	state.RevertTo(rev)

	assert.Equal(t, M(state.GetBalance(addr)), []interface{}{big.NewInt(10), nil},
		"balance should roll back to the checkpoint")
	assert.Equal(t, M(state.GetStorage(addr, key)), []interface{}{freyr.Bytes32{}, nil},
		"storage write should roll back to the checkpoint")
}

func TestStage(t *testing.T) {
	kv, _ := lvldb.NewMem()
	defer kv.Close()

	state := New(kv)

	addr := freyr.BytesToAddress([]byte("acc1"))
	balance := big.NewInt(10)

	storage := map[freyr.Bytes32]freyr.Bytes32{
		freyr.BytesToBytes32([]byte("s1")): freyr.BytesToBytes32([]byte("v1")),
		freyr.BytesToBytes32([]byte("s2")): freyr.BytesToBytes32([]byte("v2")),
		freyr.BytesToBytes32([]byte("s3")): freyr.BytesToBytes32([]byte("v3"))}

	state.SetBalance(addr, balance)
	for k, v := range storage {
		state.SetStorage(addr, k, v)
	}

	stage, err := state.Stage()
	assert.Nil(t, err)
	assert.Nil(t, stage.Commit())

	state = New(kv)

	assert.Equal(t, M(state.GetBalance(addr)), []interface{}{balance, nil})
	for k, v := range storage {
		assert.Equal(t, M(state.GetStorage(addr, k)), []interface{}{v, nil})
	}
}

func TestStorageCodec(t *testing.T) {
	kv, _ := lvldb.NewMem()
	defer kv.Close()

	state := New(kv)

	addr := freyr.BytesToAddress([]byte("acc1"))
	key := freyr.BytesToBytes32([]byte("key"))

	type entry struct {
		Name  string
		Count uint64
	}
	saved := entry{"stake", 7}
	assert.Nil(t, state.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&saved)
	}))

	var loaded entry
	assert.Nil(t, state.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			loaded = entry{}
			return nil
		}
		return rlp.DecodeBytes(raw, &loaded)
	}))
	assert.Equal(t, saved, loaded)

	// structured values read back as the hash of their raw encoding
	raw, err := state.GetRawStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, M(state.GetStorage(addr, key)), []interface{}{freyr.Blake2b(raw), nil})
}
