// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"encoding/binary"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/freyrlabs/freyr/freyr"
)

// Array is an append-only slot array. The length lives at basePos and entries
// are RLP encoded at Blake2b(index, basePos). Entries are never removed, which
// keeps insertion order stable and iteration cheap.
type Array[V any] struct {
	context *Context
	basePos freyr.Bytes32
}

func NewArray[V any](context *Context, pos freyr.Bytes32) *Array[V] {
	return &Array[V]{context: context, basePos: pos}
}

func (a *Array[V]) itemPos(index uint64) freyr.Bytes32 {
	var b8 [8]byte
	binary.BigEndian.PutUint64(b8[:], index)
	return freyr.Blake2b(b8[:], a.basePos.Bytes())
}

// Len returns the number of entries.
func (a *Array[V]) Len() (uint64, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.basePos)
	if err != nil {
		return 0, err
	}
	return new(big.Int).SetBytes(storage.Bytes()).Uint64(), nil
}

func (a *Array[V]) setLen(n uint64) {
	storage := freyr.BytesToBytes32(new(big.Int).SetUint64(n).Bytes())
	a.context.state.SetStorage(a.context.address, a.basePos, storage)
}

// Get returns the entry at the given index.
// Reading beyond the length yields the zero value.
func (a *Array[V]) Get(index uint64) (value V, err error) {
	err = a.context.state.DecodeStorage(a.context.address, a.itemPos(index), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Append adds an entry at the tail.
func (a *Array[V]) Append(value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	err = a.context.state.EncodeStorage(a.context.address, a.itemPos(n), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
	if err != nil {
		return err
	}
	a.setLen(n + 1)
	return nil
}

// ForEach walks entries in insertion order until the callback returns false.
func (a *Array[V]) ForEach(callback func(index uint64, value V) bool) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		value, err := a.Get(i)
		if err != nil {
			return err
		}
		if !callback(i, value) {
			break
		}
	}
	return nil
}
