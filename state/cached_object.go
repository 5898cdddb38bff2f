// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/kv"
)

// cachedObject to cache account data and loaded storage slots.
type cachedObject struct {
	store kv.Getter
	addr  freyr.Address
	data  Account

	cache struct {
		storage map[freyr.Bytes32]rlp.RawValue
	}
}

func newCachedObject(store kv.Getter, addr freyr.Address, data *Account) *cachedObject {
	return &cachedObject{store: store, addr: addr, data: *data}
}

// GetStorage returns storage value for given key.
func (co *cachedObject) GetStorage(key freyr.Bytes32) (rlp.RawValue, error) {
	cache := &co.cache
	// retrieve from storage cache
	if cache.storage != nil {
		if v, ok := cache.storage[key]; ok {
			return v, nil
		}
	} else {
		cache.storage = make(map[freyr.Bytes32]rlp.RawValue)
	}
	// not found in cache

	// load from the main store
	v, err := loadStorage(co.store, co.addr, key)
	if err != nil {
		return nil, err
	}
	// put into cache
	cache.storage[key] = v
	return v, nil
}
