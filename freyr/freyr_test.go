// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package freyr

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	// no 0x prefix
	addr, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)
	assert.False(t, addr.IsZero())

	_, err = ParseAddress("0x7567")
	assert.Error(t, err)

	_, err = ParseAddress("zz67d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	original := `"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"`

	var addr Address
	assert.NoError(t, json.Unmarshal([]byte(original), &addr))

	data, err := json.Marshal(&addr)
	assert.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestBytes32JSON(t *testing.T) {
	original := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b32 Bytes32
	assert.NoError(t, json.Unmarshal([]byte(original), &b32))

	data, err := json.Marshal(&b32)
	assert.NoError(t, err)
	assert.Equal(t, original, string(data))

	assert.False(t, b32.IsZero())
	assert.True(t, Bytes32{}.IsZero())
}

func TestBlake2b(t *testing.T) {
	singleData := []byte("data")
	multipleData := [][]byte{[]byte("multi"), []byte("ple"), []byte("data")}

	singleHash := Blake2b(singleData)
	assert.Len(t, singleHash.Bytes(), 32)

	multiHash := Blake2b(multipleData...)
	assert.Len(t, multiHash.Bytes(), 32)

	assert.NotEqual(t, singleHash, multiHash)
}

func TestBlake2bFn(t *testing.T) {
	h := Blake2bFn(func(w io.Writer) {
		w.Write([]byte("custom writer"))
	})

	assert.Equal(t, Blake2b([]byte("custom writer")), h)
}
