// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
)

// TestLoggingWithVmodule checks that vmodule works.
func TestTerminalHandlerLevels(t *testing.T) {
	out := new(bytes.Buffer)
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := NewLogger(NewTerminalHandlerWithLevel(out, lvl, false))

	logger.Debug("should be dropped")
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %q", out.String())
	}

	logger.Info("visible", "key", "value")
	if !strings.Contains(out.String(), "visible") {
		t.Fatalf("expected message in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "key=value") {
		t.Fatalf("expected attribute in output, got %q", out.String())
	}
}

func TestBigIntFormatting(t *testing.T) {
	out := new(bytes.Buffer)
	logger := NewLogger(NewTerminalHandler(out, false))

	logger.Info("big", "n", big.NewInt(1_000_000), "u", uint256.NewInt(500))
	have := out.String()
	if !strings.Contains(have, "1,000,000") {
		t.Errorf("big.Int not separator-formatted: %q", have)
	}
	if !strings.Contains(have, "u=500") {
		t.Errorf("uint256 not formatted: %q", have)
	}

	var nilPtr *big.Int
	out.Reset()
	logger.Info("nil", "n", nilPtr)
	if !strings.Contains(out.String(), "<nil>") {
		t.Errorf("nil big.Int not handled: %q", out.String())
	}
}

func TestWith(t *testing.T) {
	out := new(bytes.Buffer)
	logger := NewLogger(NewTerminalHandler(out, false)).With("pkg", "pool")

	logger.Info("hello")
	if !strings.Contains(out.String(), "pkg=pool") {
		t.Fatalf("context attribute missing: %q", out.String())
	}
}

func TestWithContextFollowsDefault(t *testing.T) {
	logger := WithContext("pkg", "test")

	out := new(bytes.Buffer)
	old := Root()
	SetDefault(NewLogger(JSONHandler(out)))
	defer SetDefault(old)

	logger.Info("routed")
	if !strings.Contains(out.String(), "routed") {
		t.Fatalf("expected message in swapped root output, got %q", out.String())
	}
	if !strings.Contains(out.String(), `"pkg":"test"`) {
		t.Fatalf("expected bound context in output, got %q", out.String())
	}
}
