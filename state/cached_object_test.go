// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/lvldb"
)

func TestCachedObject(t *testing.T) {
	kv, _ := lvldb.NewMem()
	defer kv.Close()

	addr := freyr.BytesToAddress([]byte("account1"))

	storages := []struct {
		k freyr.Bytes32
		v string
	}{
		{freyr.BytesToBytes32([]byte("key1")), "value1"},
		{freyr.BytesToBytes32([]byte("key2")), "value2"},
		{freyr.BytesToBytes32([]byte("key3")), "value3"},
	}

	for _, s := range storages {
		raw, _ := rlp.EncodeToBytes(s.v)
		saveStorage(kv, addr, s.k, raw)
	}

	obj := newCachedObject(kv, addr, emptyAccount())
	for _, s := range storages {
		raw, _ := rlp.EncodeToBytes(s.v)
		assert.Equal(t,
			M(obj.GetStorage(s.k)),
			[]interface{}{rlp.RawValue(raw), nil})
	}

	// loaded values stay cached even after the underlying records are gone
	for _, s := range storages {
		saveStorage(kv, addr, s.k, nil)
	}
	for _, s := range storages {
		raw, _ := rlp.EncodeToBytes(s.v)
		assert.Equal(t,
			M(obj.GetStorage(s.k)),
			[]interface{}{rlp.RawValue(raw), nil})
	}
}
