// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"time"

	"github.com/freyrlabs/freyr/metrics"
	"github.com/freyrlabs/freyr/pool/reverts"
)

const (
	opStake   = "stake"
	opUnstake = "unstake"
	opClaim   = "claim"
)

var (
	metricOpCount         = metrics.LazyLoadCounterVec("pool_op_count", []string{"op", "outcome"})
	metricOpDuration      = metrics.LazyLoadHistogramVec("pool_op_duration_ms", []string{"op"}, metrics.Bucket10s)
	metricTotalStaked     = metrics.LazyLoadGauge("pool_total_staked")
	metricActiveCount     = metrics.LazyLoadGauge("pool_active_count")
	metricRemainingBudget = metrics.LazyLoadGauge("pool_remaining_budget")
)

func countOp(op string, err error) {
	outcome := "ok"
	switch {
	case reverts.IsRevertErr(err):
		outcome = "revert"
	case err != nil:
		outcome = "error"
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome})
}

func observeOpDuration(op string, began time.Time) {
	metricOpDuration().ObserveWithLabels(
		time.Since(began).Milliseconds(), map[string]string{"op": op},
	)
}
