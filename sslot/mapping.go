// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/freyrlabs/freyr/freyr"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction, similar to the mapping in Solidity.
// Values are RLP encoded at Blake2b(key, basePos).
type Mapping[K Key, V any] struct {
	context *Context
	basePos freyr.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos freyr.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Get returns the value stored under key.
// A missing key yields the zero value; pointer kinds are allocated so the
// caller always receives a usable value.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := freyr.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
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

func (m *Mapping[K, V]) Set(key K, value V) error {
	position := freyr.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Has reports whether a value was ever stored under key.
// Unlike Get it distinguishes a missing entry from a stored zero value.
func (m *Mapping[K, V]) Has(key K) (bool, error) {
	position := freyr.Blake2b(key.Bytes(), m.basePos.Bytes())
	raw, err := m.context.state.GetRawStorage(m.context.address, position)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}
