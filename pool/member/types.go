// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package member

import (
	"math/big"

	"github.com/freyrlabs/freyr/freyr"
)

type (
	// StakerRecord is the per-participant bookkeeping entry.
	StakerRecord struct {
		AmountStaked   *big.Int // tokens currently staked
		RewardDebt     *big.Int // accumulator offset at the last balance change
		RewardClaimed  *big.Int // lifetime rewards paid out
		StakeTimestamp uint64   // unix time of the most recent stake
		Active         bool     // true while AmountStaked > 0
	}
)

// HasStake returns true if the record carries a positive staked balance.
func (r *StakerRecord) HasStake() bool {
	return r.AmountStaked != nil && r.AmountStaked.Sign() > 0
}

// IsEmpty returns true if the record holds no stake and no claim history.
func (r *StakerRecord) IsEmpty() bool {
	return !r.HasStake() &&
		(r.RewardClaimed == nil || r.RewardClaimed.Sign() == 0) &&
		r.StakeTimestamp == 0
}

// PendingAgainst computes the reward entitlement of the record against the
// given accumulator value. The result is floored at zero and is zero for a
// record with no stake.
func (r *StakerRecord) PendingAgainst(accPerShare *big.Int) *big.Int {
	if !r.HasStake() {
		return new(big.Int)
	}
	entitled := new(big.Int).Mul(r.AmountStaked, accPerShare)
	entitled.Quo(entitled, freyr.AccScale)
	pending := entitled.Sub(entitled, r.RewardDebt)
	if pending.Sign() < 0 {
		return new(big.Int)
	}
	return pending
}

// SettleDebt resets the accumulator offset to the record's current
// entitlement, marking all accrued rewards as accounted for.
func (r *StakerRecord) SettleDebt(accPerShare *big.Int) {
	debt := new(big.Int).Mul(r.AmountStaked, accPerShare)
	r.RewardDebt = debt.Quo(debt, freyr.AccScale)
}
