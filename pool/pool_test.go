// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/ledger"
	"github.com/freyrlabs/freyr/lvldb"
	"github.com/freyrlabs/freyr/pool/campaign"
	"github.com/freyrlabs/freyr/pool/reverts"
	"github.com/freyrlabs/freyr/state"
	"github.com/freyrlabs/freyr/test/datagen"
)

var start = uint64(1_000_000)

func days(n uint64) uint64 {
	return n * freyr.SecondsPerDay
}

func testConfig() *campaign.Config {
	return &campaign.Config{
		Budget:       big.NewInt(1000),
		DurationDays: 10,
		LockinDays:   0,
		StartTime:    start,
		Asset:        freyr.BytesToBytes32([]byte("FREY")),
	}
}

func newTestPool(cfg *campaign.Config) (*Pool, *ledger.Ledger) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	led := ledger.New(st, Addr, ReserveAddr)

	p := New(Addr, st, led)
	if err := p.Init(cfg); err != nil {
		panic(err)
	}
	if err := led.Mint(ReserveAddr, cfg.Budget); err != nil {
		panic(err)
	}
	return p, led
}

func fund(led *ledger.Ledger, addr freyr.Address, amount int64) {
	if err := led.Mint(addr, big.NewInt(amount)); err != nil {
		panic(err)
	}
}

func TestPool_Init(t *testing.T) {
	cfg := testConfig()
	p, _ := newTestPool(cfg)

	ok, err := p.Initialized()
	assert.NoError(t, err)
	assert.True(t, ok)

	// seeding twice is refused
	assert.Error(t, p.Init(cfg))

	got, err := p.Campaign()
	assert.NoError(t, err)
	assert.Equal(t, cfg, got)

	last, err := p.LastAdvanceTime()
	assert.NoError(t, err)
	assert.Equal(t, start, last)

	hourly, err := p.HourlyEmission()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(4), hourly) // 1000 / 10 days / 24

	remaining, err := p.RemainingBudget()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), remaining)
}

func TestPool_SingleStaker(t *testing.T) {
	p, led := newTestPool(testConfig())
	addr := datagen.RandAddress()
	fund(led, addr, 100)

	events, err := p.Stake(addr, big.NewInt(100), start)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, EventStaked, events[0].Kind)
	assert.Equal(t, big.NewInt(100), events[0].Amount)

	balance, _ := led.Balance(addr)
	assert.Equal(t, "0", balance.String())
	balance, _ = led.Balance(Addr)
	assert.Equal(t, big.NewInt(100), balance)

	// a sole staker owns the full emission: 5 days at 100/day
	pending, err := p.PendingReward(addr, start+days(5))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(500), pending)

	// the projection must not advance the clock
	last, _ := p.LastAdvanceTime()
	assert.Equal(t, start, last)

	events, err = p.Unstake(addr, start+days(10))
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, EventUnstaked, events[0].Kind)
	assert.Equal(t, big.NewInt(100), events[0].Amount)
	assert.Equal(t, EventClaimed, events[1].Kind)
	assert.Equal(t, big.NewInt(1000), events[1].Amount)

	balance, _ = led.Balance(addr)
	assert.Equal(t, big.NewInt(1100), balance)

	paid, _ := p.TotalRewardPaid()
	assert.Equal(t, big.NewInt(1000), paid)
	remaining, _ := p.RemainingBudget()
	assert.Equal(t, "0", remaining.String())
	total, _ := p.TotalStaked()
	assert.Equal(t, "0", total.String())
	count, _ := p.ActiveCount()
	assert.Equal(t, uint64(0), count)

	record, _ := p.GetStaker(addr)
	assert.False(t, record.Active)
	assert.Equal(t, big.NewInt(1000), record.RewardClaimed)
}

func TestPool_TwoEqualStakers(t *testing.T) {
	p, led := newTestPool(testConfig())
	a := datagen.RandAddress()
	b := datagen.RandAddress()
	fund(led, a, 100)
	fund(led, b, 100)

	_, err := p.Stake(a, big.NewInt(100), start)
	assert.NoError(t, err)
	_, err = p.Stake(b, big.NewInt(100), start)
	assert.NoError(t, err)

	total, _ := p.TotalStaked()
	assert.Equal(t, big.NewInt(200), total)
	count, _ := p.ActiveCount()
	assert.Equal(t, uint64(2), count)

	// equal stakes split the budget evenly
	end := start + days(10)
	pending, err := p.PendingReward(a, end)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(500), pending)
	pending, err = p.PendingReward(b, end)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(500), pending)

	events, err := p.Claim(a, end)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, big.NewInt(500), events[0].Amount)
	_, err = p.Claim(b, end)
	assert.NoError(t, err)

	paid, _ := p.TotalRewardPaid()
	assert.Equal(t, big.NewInt(1000), paid)

	// claims leave the stakes in place
	record, _ := p.GetStaker(a)
	assert.True(t, record.Active)
	assert.Equal(t, big.NewInt(100), record.AmountStaked)
}

func TestPool_LateJoiner(t *testing.T) {
	p, led := newTestPool(testConfig())
	a := datagen.RandAddress()
	b := datagen.RandAddress()
	fund(led, a, 100)
	fund(led, b, 100)

	_, err := p.Stake(a, big.NewInt(100), start)
	assert.NoError(t, err)
	_, err = p.Stake(b, big.NewInt(100), start+days(5))
	assert.NoError(t, err)

	// 5 days alone plus 5 days at half share
	end := start + days(10)
	pending, err := p.PendingReward(a, end)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(750), pending)
	pending, err = p.PendingReward(b, end)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(250), pending)
}

func TestPool_ZeroStakerInterval(t *testing.T) {
	p, led := newTestPool(testConfig())
	addr := datagen.RandAddress()
	fund(led, addr, 100)

	// nobody staked for the first half of the campaign
	assert.NoError(t, p.Advance(start+days(5)))
	last, _ := p.LastAdvanceTime()
	assert.Equal(t, start+days(5), last)

	_, err := p.Stake(addr, big.NewInt(100), start+days(5))
	assert.NoError(t, err)

	// the skipped emission is forfeited, not banked
	pending, err := p.PendingReward(addr, start+days(10))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(500), pending)

	_, err = p.Claim(addr, start+days(10))
	assert.NoError(t, err)
	remaining, _ := p.RemainingBudget()
	assert.Equal(t, big.NewInt(500), remaining)
}

func TestPool_EmissionStopsAtEnd(t *testing.T) {
	p, led := newTestPool(testConfig())
	addr := datagen.RandAddress()
	fund(led, addr, 100)

	_, err := p.Stake(addr, big.NewInt(100), start)
	assert.NoError(t, err)

	// a year past the end accrues no further reward
	pending, err := p.PendingReward(addr, start+days(375))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), pending)

	_, err = p.Unstake(addr, start+days(375))
	assert.NoError(t, err)
	paid, _ := p.TotalRewardPaid()
	assert.Equal(t, big.NewInt(1000), paid)
	remaining, _ := p.RemainingBudget()
	assert.Equal(t, "0", remaining.String())
}

func TestPool_NoDoubleClaim(t *testing.T) {
	p, led := newTestPool(testConfig())
	addr := datagen.RandAddress()
	fund(led, addr, 100)

	_, err := p.Stake(addr, big.NewInt(100), start)
	assert.NoError(t, err)

	now := start + days(5)
	_, err = p.Claim(addr, now)
	assert.NoError(t, err)

	// no time elapsed, nothing more is due
	_, err = p.Claim(addr, now)
	assert.ErrorIs(t, err, reverts.ErrNoRewardDue)

	paid, _ := p.TotalRewardPaid()
	assert.Equal(t, big.NewInt(500), paid)
}

func TestPool_LockIn(t *testing.T) {
	cfg := testConfig()
	cfg.LockinDays = 2
	p, led := newTestPool(cfg)
	addr := datagen.RandAddress()
	fund(led, addr, 100)

	_, err := p.Stake(addr, big.NewInt(100), start)
	assert.NoError(t, err)

	_, err = p.Unstake(addr, start+days(2)-1)
	assert.ErrorIs(t, err, reverts.ErrStillLocked)

	// unlocks exactly at the boundary
	_, err = p.Unstake(addr, start+days(2))
	assert.NoError(t, err)
}

func TestPool_DepositWindow(t *testing.T) {
	p, led := newTestPool(testConfig())
	addr := datagen.RandAddress()
	fund(led, addr, 100)

	_, err := p.Stake(addr, big.NewInt(0), start)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
	_, err = p.Stake(addr, big.NewInt(-5), start)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
	_, err = p.Stake(addr, nil, start)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	end := start + days(10)
	_, err = p.Stake(addr, big.NewInt(100), end)
	assert.ErrorIs(t, err, reverts.ErrCampaignClosed)

	_, err = p.Stake(addr, big.NewInt(100), end-1)
	assert.NoError(t, err)
}

func TestPool_WithdrawErrors(t *testing.T) {
	p, _ := newTestPool(testConfig())
	addr := datagen.RandAddress()

	_, err := p.Unstake(addr, start)
	assert.ErrorIs(t, err, reverts.ErrNothingToWithdraw)
	_, err = p.Claim(addr, start)
	assert.ErrorIs(t, err, reverts.ErrNothingToWithdraw)
}

func TestPool_IdempotentAdvance(t *testing.T) {
	p, led := newTestPool(testConfig())
	addr := datagen.RandAddress()
	fund(led, addr, 100)

	_, err := p.Stake(addr, big.NewInt(100), start)
	assert.NoError(t, err)

	now := start + days(3)
	assert.NoError(t, p.Advance(now))
	pending1, _ := p.PendingReward(addr, now)
	last1, _ := p.LastAdvanceTime()

	// the second call with the same timestamp is a no-op
	assert.NoError(t, p.Advance(now))
	pending2, _ := p.PendingReward(addr, now)
	last2, _ := p.LastAdvanceTime()

	assert.Equal(t, pending1, pending2)
	assert.Equal(t, last1, last2)

	// going backwards is also a no-op
	assert.NoError(t, p.Advance(now-100))
	last3, _ := p.LastAdvanceTime()
	assert.Equal(t, last1, last3)
}

func TestPool_RosterHistory(t *testing.T) {
	cfg := testConfig()
	p, led := newTestPool(cfg)
	addr := datagen.RandAddress()
	fund(led, addr, 200)

	_, err := p.Stake(addr, big.NewInt(100), start)
	assert.NoError(t, err)
	_, err = p.Unstake(addr, start+days(1))
	assert.NoError(t, err)
	_, err = p.Stake(addr, big.NewInt(100), start+days(2))
	assert.NoError(t, err)

	// the all-time roster holds the address once
	all, err := p.Participants()
	assert.NoError(t, err)
	assert.Equal(t, []freyr.Address{addr}, all)

	// the activation roster keeps one entry per cycle
	active, err := p.ActiveParticipants()
	assert.NoError(t, err)
	assert.Equal(t, []freyr.Address{addr, addr}, active)

	// liveness comes from the counter, not the roster
	count, err := p.ActiveCount()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestPool_TopUpForfeitsPending(t *testing.T) {
	p, led := newTestPool(testConfig())
	addr := datagen.RandAddress()
	fund(led, addr, 200)

	_, err := p.Stake(addr, big.NewInt(100), start)
	assert.NoError(t, err)

	// topping up without claiming resets the debt against the full new
	// balance, the first five days of accrual are gone
	_, err = p.Stake(addr, big.NewInt(100), start+days(5))
	assert.NoError(t, err)

	pending, err := p.PendingReward(addr, start+days(5))
	assert.NoError(t, err)
	assert.Equal(t, "0", pending.String())

	pending, err = p.PendingReward(addr, start+days(10))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(500), pending)
}

type flakyLedger struct {
	inner    TokenLedger
	failPull bool
	failPush bool
	failPay  bool
}

func (f *flakyLedger) Pull(from freyr.Address, amount *big.Int) error {
	if f.failPull {
		return errors.New("ledger offline")
	}
	return f.inner.Pull(from, amount)
}

func (f *flakyLedger) Push(to freyr.Address, amount *big.Int) error {
	if f.failPush {
		return errors.New("ledger offline")
	}
	return f.inner.Push(to, amount)
}

func (f *flakyLedger) PayReward(to freyr.Address, amount *big.Int) error {
	if f.failPay {
		return errors.New("ledger offline")
	}
	return f.inner.PayReward(to, amount)
}

func TestPool_TransferFailureRollsBack(t *testing.T) {
	cfg := testConfig()
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	led := ledger.New(st, Addr, ReserveAddr)
	flaky := &flakyLedger{inner: led}

	p := New(Addr, st, flaky)
	assert.NoError(t, p.Init(cfg))
	assert.NoError(t, led.Mint(ReserveAddr, cfg.Budget))

	addr := datagen.RandAddress()
	fund(led, addr, 100)

	flaky.failPull = true
	_, err := p.Stake(addr, big.NewInt(100), start)
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)

	// nothing moved, nothing recorded
	total, _ := p.TotalStaked()
	assert.Equal(t, "0", total.String())
	count, _ := p.ActiveCount()
	assert.Equal(t, uint64(0), count)
	all, _ := p.Participants()
	assert.Empty(t, all)
	record, _ := p.GetStaker(addr)
	assert.True(t, record.IsEmpty())
	balance, _ := led.Balance(addr)
	assert.Equal(t, big.NewInt(100), balance)

	flaky.failPull = false
	_, err = p.Stake(addr, big.NewInt(100), start)
	assert.NoError(t, err)

	flaky.failPush = true
	_, err = p.Unstake(addr, start+days(5))
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)

	// the position survives the failed withdrawal intact
	record, _ = p.GetStaker(addr)
	assert.True(t, record.Active)
	assert.Equal(t, big.NewInt(100), record.AmountStaked)
	total, _ = p.TotalStaked()
	assert.Equal(t, big.NewInt(100), total)
	pending, _ := p.PendingReward(addr, start+days(5))
	assert.Equal(t, big.NewInt(500), pending)

	flaky.failPush = false
	flaky.failPay = true
	_, err = p.Claim(addr, start+days(5))
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)
	paid, _ := p.TotalRewardPaid()
	assert.Equal(t, "0", paid.String())
}

func TestPool_PreStartStake(t *testing.T) {
	cfg := testConfig()
	p, led := newTestPool(cfg)
	addr := datagen.RandAddress()
	fund(led, addr, 100)

	// deposits before the start are accepted but accrue nothing until
	// the campaign opens
	_, err := p.Stake(addr, big.NewInt(100), start-days(1))
	assert.NoError(t, err)

	pending, err := p.PendingReward(addr, start)
	assert.NoError(t, err)
	assert.Equal(t, "0", pending.String())

	pending, err = p.PendingReward(addr, start+days(1))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(100), pending)
}
