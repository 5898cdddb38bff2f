// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

//go:build cgo

package eventdb

import (
	sqlite3 "github.com/mattn/go-sqlite3"
)

func sqliteDriverVersion() string {
	s, _, _ := sqlite3.Version()
	return s
}
