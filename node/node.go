// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node runs the live engine. It binds the pool to its backing store,
// serializes every mutating operation behind a single writer lock, commits
// staged writes after each successful operation and fans committed events out
// to the journal and the subscription feed. Read-only queries share a read
// lock and always observe the last committed state.
package node

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/freyrlabs/freyr/co"
	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/kv"
	"github.com/freyrlabs/freyr/ledger"
	"github.com/freyrlabs/freyr/log"
	"github.com/freyrlabs/freyr/pool"
	"github.com/freyrlabs/freyr/pool/campaign"
	"github.com/freyrlabs/freyr/pool/member"
	"github.com/freyrlabs/freyr/state"
)

var logger = log.WithContext("pkg", "node")

// Clock supplies the campaign time line in unix seconds. The node clamps
// regressions, so a briefly misbehaving source never rewinds the pool.
type Clock interface {
	Now() uint64
}

// SystemClock reads the operating system time.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Allocation is an opening token balance credited at setup.
type Allocation struct {
	Address freyr.Address
	Balance *big.Int
}

// Summary is a point-in-time view of the whole pool.
type Summary struct {
	Campaign        *campaign.Config
	TotalStaked     *big.Int
	TotalRewardPaid *big.Int
	RemainingBudget *big.Int
	HourlyEmission  *big.Int
	AccPerShare     *big.Int
	LastAdvanceTime uint64
	ActiveCount     uint64
}

// StakerDetail is a participant's record plus the projected entitlement.
type StakerDetail struct {
	Address       freyr.Address
	AmountStaked  *big.Int
	RewardClaimed *big.Int
	Pending       *big.Int
	StakeTime     uint64
	Active        bool
}

// Node serializes pool operations over one store.
type Node struct {
	store  kv.GetPutter
	events *eventdb.EventDB
	clock  Clock

	mu      sync.RWMutex
	lastNow uint64
	feed    co.Signal
	choes   *co.Choes
}

// New create a node over the given store and event journal.
func New(store kv.GetPutter, events *eventdb.EventDB, clock Clock) *Node {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Node{
		store:  store,
		events: events,
		clock:  clock,
		choes:  co.NewChoes(),
	}
}

// open binds a fresh pool to the current committed state.
func (n *Node) open() (*pool.Pool, *state.State) {
	st := state.New(n.store)
	led := ledger.New(st, pool.Addr, pool.ReserveAddr)
	return pool.New(pool.Addr, st, led), st
}

// now reads the clock, clamped so successive calls never go backwards.
// Callers must hold the write lock.
func (n *Node) now() uint64 {
	now := n.clock.Now()
	if now < n.lastNow {
		logger.Warn("clock regressed, clamping", "now", now, "last", n.lastNow)
		return n.lastNow
	}
	n.lastNow = now
	return now
}

// Setup seeds the campaign definition, mints the reward budget into the
// reserve and credits opening balances. It is a no-op on an already
// initialized store, where it only verifies the stored campaign matches.
func (n *Node) Setup(cfg *campaign.Config, allocs []Allocation) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	p, st := n.open()
	initialized, err := p.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		stored, err := p.Campaign()
		if err != nil {
			return err
		}
		if stored.Budget.Cmp(cfg.Budget) != 0 ||
			stored.DurationDays != cfg.DurationDays ||
			stored.LockinDays != cfg.LockinDays ||
			stored.StartTime != cfg.StartTime ||
			stored.Asset != cfg.Asset {
			return errors.New("store already holds a different campaign")
		}
		n.lastNow, err = p.LastAdvanceTime()
		if err != nil {
			return err
		}
		logger.Info("resuming campaign", "start", stored.StartTime, "budget", stored.Budget)
		return nil
	}

	if err := p.Init(cfg); err != nil {
		return err
	}
	led := ledger.New(st, pool.Addr, pool.ReserveAddr)
	if err := led.Mint(pool.ReserveAddr, cfg.Budget); err != nil {
		return err
	}
	for _, alloc := range allocs {
		if err := led.Mint(alloc.Address, alloc.Balance); err != nil {
			return errors.WithMessagef(err, "allocation %v", alloc.Address)
		}
	}
	stage, err := st.Stage()
	if err != nil {
		return err
	}
	if err := stage.Commit(); err != nil {
		return err
	}
	n.lastNow = cfg.StartTime
	logger.Info("campaign initialized", "start", cfg.StartTime, "budget", cfg.Budget, "allocations", len(allocs))
	return nil
}

// Run starts the housekeeping routines and blocks until ctx is done.
func (n *Node) Run(ctx context.Context) error {
	n.choes.Go(n.houseKeeping)

	<-ctx.Done()
	n.choes.Stop()
	n.choes.Wait()
	return nil
}

// EventFeed returns the signal raised after every committed operation.
func (n *Node) EventFeed() *co.Signal {
	return &n.feed
}

// EventDB exposes the journal for query surfaces.
func (n *Node) EventDB() *eventdb.EventDB {
	return n.events
}

//
// Mutating operations
//

// Stake locks amount of the participant's tokens into the pool.
func (n *Node) Stake(participant freyr.Address, amount *big.Int) ([]*pool.Event, error) {
	return n.write(opStake, func(p *pool.Pool, now uint64) ([]*pool.Event, error) {
		return p.Stake(participant, amount, now)
	})
}

// Unstake closes the participant's position, returning principal plus any
// pending reward.
func (n *Node) Unstake(participant freyr.Address) ([]*pool.Event, error) {
	return n.write(opUnstake, func(p *pool.Pool, now uint64) ([]*pool.Event, error) {
		return p.Unstake(participant, now)
	})
}

// Claim pays out the participant's pending reward.
func (n *Node) Claim(participant freyr.Address) ([]*pool.Event, error) {
	return n.write(opClaim, func(p *pool.Pool, now uint64) ([]*pool.Event, error) {
		return p.Claim(participant, now)
	})
}

// write runs one mutating operation to completion under the writer lock.
// On success the staged writes are committed in one batch, then the events
// are journalled and broadcast. On any error nothing reaches the store.
func (n *Node) write(op string, fn func(*pool.Pool, uint64) ([]*pool.Event, error)) ([]*pool.Event, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	began := time.Now()
	p, st := n.open()
	events, err := fn(p, n.now())
	if err != nil {
		countOp(op, err)
		return nil, err
	}
	stage, err := st.Stage()
	if err != nil {
		countOp(op, err)
		return nil, err
	}
	if err := stage.Commit(); err != nil {
		countOp(op, err)
		return nil, errors.WithMessage(err, "commit")
	}

	// The store is the source of truth. A journal failure after commit is
	// logged, not surfaced, so a flaky sqlite file cannot fail settled
	// operations.
	if err := n.events.Write(events); err != nil {
		logger.Error("failed to journal events", "op", op, "err", err)
	}
	n.feed.Broadcast()

	countOp(op, nil)
	observeOpDuration(op, began)
	return events, nil
}

//
// Read-only queries
//

// Summary reports campaign parameters and live totals.
func (n *Node) Summary() (*Summary, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	p, _ := n.open()
	cfg, err := p.Campaign()
	if err != nil {
		return nil, err
	}
	totalStaked, err := p.TotalStaked()
	if err != nil {
		return nil, err
	}
	totalPaid, err := p.TotalRewardPaid()
	if err != nil {
		return nil, err
	}
	remaining, err := p.RemainingBudget()
	if err != nil {
		return nil, err
	}
	acc, err := p.AccPerShare()
	if err != nil {
		return nil, err
	}
	last, err := p.LastAdvanceTime()
	if err != nil {
		return nil, err
	}
	count, err := p.ActiveCount()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Campaign:        cfg,
		TotalStaked:     totalStaked,
		TotalRewardPaid: totalPaid,
		RemainingBudget: remaining,
		HourlyEmission:  cfg.HourlyEmission(),
		AccPerShare:     acc,
		LastAdvanceTime: last,
		ActiveCount:     count,
	}, nil
}

// StakerDetail reports the participant's record and projected entitlement.
func (n *Node) StakerDetail(participant freyr.Address) (*StakerDetail, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	p, _ := n.open()
	record, err := p.GetStaker(participant)
	if err != nil {
		return nil, err
	}
	pending, err := p.PendingReward(participant, n.queryNow())
	if err != nil {
		return nil, err
	}
	return &StakerDetail{
		Address:       participant,
		AmountStaked:  record.AmountStaked,
		RewardClaimed: record.RewardClaimed,
		Pending:       pending,
		StakeTime:     record.StakeTimestamp,
		Active:        record.Active,
	}, nil
}

// PendingReward projects the participant's entitlement at the current time.
func (n *Node) PendingReward(participant freyr.Address) (*big.Int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	p, _ := n.open()
	return p.PendingReward(participant, n.queryNow())
}

// Participants lists every address that ever staked.
func (n *Node) Participants() ([]freyr.Address, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	p, _ := n.open()
	return p.Participants()
}

// ActiveParticipants lists the activation roster, duplicates preserved.
func (n *Node) ActiveParticipants() ([]freyr.Address, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	p, _ := n.open()
	return p.ActiveParticipants()
}

// GetStaker returns the raw stored record.
func (n *Node) GetStaker(participant freyr.Address) (*member.StakerRecord, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	p, _ := n.open()
	return p.GetStaker(participant)
}

// Balance returns the participant's free token balance.
func (n *Node) Balance(participant freyr.Address) (*big.Int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	st := state.New(n.store)
	return ledger.New(st, pool.Addr, pool.ReserveAddr).Balance(participant)
}

// queryNow reads the clock for a projection without moving the guard.
// Callers must hold at least the read lock.
func (n *Node) queryNow() uint64 {
	if now := n.clock.Now(); now > n.lastNow {
		return now
	}
	return n.lastNow
}
