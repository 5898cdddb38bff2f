// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/freyrlabs/freyr/freyr"
)

// EventKind names the observable outcomes of pool operations.
type EventKind string

const (
	EventStaked   EventKind = "staked"
	EventUnstaked EventKind = "unstaked"
	EventClaimed  EventKind = "claimed"
)

// Event describes a single balance movement caused by a pool operation.
// An unstake that carries a reward produces two events, unstaked for the
// principal and claimed for the payout.
type Event struct {
	Kind        EventKind
	Participant freyr.Address
	Amount      *big.Int
	Time        uint64
}
