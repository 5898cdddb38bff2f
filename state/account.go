// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/kv"
)

var (
	accountPrefix = []byte("a/")
	slotPrefix    = []byte("s/")
)

// Account is the Freyr representation of an account.
// RLP encoded objects are stored in the main store.
type Account struct {
	Balance *big.Int
}

// IsEmpty returns if an account is empty.
// An empty account has zero balance.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0
}

func emptyAccount() *Account {
	return &Account{Balance: &big.Int{}}
}

func accountKey(addr freyr.Address) []byte {
	return append(append([]byte(nil), accountPrefix...), addr.Bytes()...)
}

func slotKey(addr freyr.Address, key freyr.Bytes32) []byte {
	k := append(append([]byte(nil), slotPrefix...), addr.Bytes()...)
	return append(k, key.Bytes()...)
}

// loadAccount load an account object by address.
// It returns empty account if no account found at the address.
func loadAccount(store kv.Getter, addr freyr.Address) (*Account, error) {
	data, err := store.Get(accountKey(addr))
	if err != nil {
		if store.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount save account at given address into the putter.
// If the given account is empty, the record for given address is deleted.
func saveAccount(putter kv.Putter, addr freyr.Address, a *Account) error {
	if a.IsEmpty() {
		// delete if account is empty
		return putter.Delete(accountKey(addr))
	}

	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return putter.Put(accountKey(addr), data)
}

// loadStorage load storage data for given account key.
func loadStorage(store kv.Getter, addr freyr.Address, key freyr.Bytes32) (rlp.RawValue, error) {
	data, err := store.Get(slotKey(addr, key))
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// saveStorage save value for given account key.
// If the data is zero, the given key will be deleted.
func saveStorage(putter kv.Putter, addr freyr.Address, key freyr.Bytes32, data rlp.RawValue) error {
	if len(data) == 0 {
		return putter.Delete(slotKey(addr, key))
	}
	return putter.Put(slotKey(addr, key), data)
}
