// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package freyr

import "math/big"

// Constants of campaign time keeping.
const (
	SecondsPerHour uint64 = 60 * 60
	SecondsPerDay  uint64 = 24 * 60 * 60
)

// Fixed point scale of the reward accumulator.
// All per-share figures carry this factor and are truncated on division.
var AccScale = big.NewInt(1e18)
