// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the staking campaign engine. A fixed reward budget
// is released linearly over the campaign window and split pro rata among the
// participants staked at each instant, using a scaled per-share accumulator.
package pool

import (
	"math/big"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/log"
	"github.com/freyrlabs/freyr/pool/campaign"
	"github.com/freyrlabs/freyr/pool/member"
	"github.com/freyrlabs/freyr/pool/reverts"
	"github.com/freyrlabs/freyr/pool/stats"
	"github.com/freyrlabs/freyr/sslot"
	"github.com/freyrlabs/freyr/state"
)

var (
	logger = log.WithContext("pkg", "pool")

	// Addr anchors the pool's slot storage and holds the staked principal.
	Addr = freyr.BytesToAddress([]byte("freyr-pool"))
	// ReserveAddr holds the not yet distributed reward budget.
	ReserveAddr = freyr.BytesToAddress([]byte("freyr-reserve"))
)

// TokenLedger moves tokens between the pool, its reserve and participants.
type TokenLedger interface {
	// Pull transfers staked principal from the participant into the pool.
	Pull(from freyr.Address, amount *big.Int) error
	// Push returns principal from the pool to the participant.
	Push(to freyr.Address, amount *big.Int) error
	// PayReward pays out rewards from the reserve to the participant.
	PayReward(to freyr.Address, amount *big.Int) error
}

// Pool exposes the campaign operations over slot storage.
type Pool struct {
	addr   freyr.Address
	state  *state.State
	ledger TokenLedger

	campaignService *campaign.Service
	statsService    *stats.Service
	memberService   *member.Service
}

// New create a new instance bound to the given storage address.
func New(addr freyr.Address, state *state.State, ledger TokenLedger) *Pool {
	sctx := sslot.NewContext(addr, state)

	return &Pool{
		addr:   addr,
		state:  state,
		ledger: ledger,

		campaignService: campaign.New(sctx),
		statsService:    stats.New(sctx),
		memberService:   member.New(sctx),
	}
}

// Init seeds the campaign definition and arms the emission clock at the
// campaign start. It must be called exactly once.
func (p *Pool) Init(cfg *campaign.Config) error {
	if err := p.campaignService.Seed(cfg); err != nil {
		return err
	}
	p.statsService.SetLastAdvanceTime(cfg.StartTime)

	logger.Info("campaign seeded",
		"budget", cfg.Budget,
		"duration", cfg.DurationDays,
		"lockin", cfg.LockinDays,
		"start", cfg.StartTime,
	)
	return nil
}

// Initialized reports whether the campaign has been seeded.
func (p *Pool) Initialized() (bool, error) {
	return p.campaignService.Seeded()
}

//
// Getters - no state change
//

// Campaign returns the seeded campaign definition.
func (p *Pool) Campaign() (*campaign.Config, error) {
	return p.campaignService.Get()
}

// HourlyEmission returns the reward quantity released per hour.
func (p *Pool) HourlyEmission() (*big.Int, error) {
	cfg, err := p.campaignService.Get()
	if err != nil {
		return nil, err
	}
	return cfg.HourlyEmission(), nil
}

// RemainingBudget returns the budget share not yet paid out.
func (p *Pool) RemainingBudget() (*big.Int, error) {
	cfg, err := p.campaignService.Get()
	if err != nil {
		return nil, err
	}
	paid, err := p.statsService.TotalRewardPaid()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Sub(cfg.Budget, paid), nil
}

// TotalStaked returns the principal currently held by the pool.
func (p *Pool) TotalStaked() (*big.Int, error) {
	return p.statsService.TotalStaked()
}

// TotalRewardPaid returns the lifetime reward payout.
func (p *Pool) TotalRewardPaid() (*big.Int, error) {
	return p.statsService.TotalRewardPaid()
}

// ActiveCount returns the number of participants with a live stake.
func (p *Pool) ActiveCount() (uint64, error) {
	return p.statsService.ActiveCount()
}

// LastAdvanceTime returns the instant the accumulator was last rolled to.
func (p *Pool) LastAdvanceTime() (uint64, error) {
	return p.statsService.LastAdvanceTime()
}

// AccPerShare returns the scaled reward-per-unit-staked accumulator.
func (p *Pool) AccPerShare() (*big.Int, error) {
	return p.statsService.AccPerShare()
}

// Participants lists every address that ever staked, in enrollment order.
func (p *Pool) Participants() ([]freyr.Address, error) {
	return p.memberService.AllParticipants()
}

// ActiveParticipants lists the activation roster in append order. An address
// appears once per activation, the roster is history not a set.
func (p *Pool) ActiveParticipants() ([]freyr.Address, error) {
	return p.memberService.ActiveParticipants()
}

// GetStaker returns the participant's record, zeroed if never seen.
func (p *Pool) GetStaker(participant freyr.Address) (*member.StakerRecord, error) {
	return p.memberService.GetRecord(participant)
}

// PendingReward projects the participant's entitlement at the given time
// without touching state.
func (p *Pool) PendingReward(participant freyr.Address, now uint64) (*big.Int, error) {
	acc, err := p.projectedAccPerShare(now)
	if err != nil {
		return nil, err
	}
	record, err := p.memberService.GetRecord(participant)
	if err != nil {
		return nil, err
	}
	return record.PendingAgainst(acc), nil
}

// projectedAccPerShare returns the accumulator as it would stand after an
// advance to now, leaving storage untouched.
func (p *Pool) projectedAccPerShare(now uint64) (*big.Int, error) {
	acc, err := p.statsService.AccPerShare()
	if err != nil {
		return nil, err
	}
	last, err := p.statsService.LastAdvanceTime()
	if err != nil {
		return nil, err
	}
	if now <= last {
		return acc, nil
	}
	total, err := p.statsService.TotalStaked()
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return acc, nil
	}
	cfg, err := p.campaignService.Get()
	if err != nil {
		return nil, err
	}
	accrued := accruedBetween(cfg, last, now)
	if accrued.Sign() > 0 {
		delta := new(big.Int).Mul(accrued, freyr.AccScale)
		acc.Add(acc, delta.Quo(delta, total))
	}
	return acc, nil
}

// accruedBetween returns the reward emitted over (from, to]. Emission is
// clamped to the campaign window so that lifetime payouts never exceed the
// budget.
func accruedBetween(cfg *campaign.Config, from, to uint64) *big.Int {
	if end := cfg.EndTime(); to > end {
		to = end
	}
	if from >= to {
		return new(big.Int)
	}
	accrued := new(big.Int).Mul(cfg.DailyRate(), new(big.Int).SetUint64(to-from))
	return accrued.Quo(accrued, new(big.Int).SetUint64(freyr.SecondsPerDay))
}

//
// Setters - state change
//

// Advance rolls the accumulator forward to the given time. Calls at or
// before the last advance are no-ops. An interval with no stakers moves the
// clock without emitting, that share of the budget is forfeited.
func (p *Pool) Advance(now uint64) error {
	rev := p.state.NewCheckpoint()
	if err := p.advance(now); err != nil {
		p.state.RevertTo(rev)
		return err
	}
	return nil
}

func (p *Pool) advance(now uint64) error {
	last, err := p.statsService.LastAdvanceTime()
	if err != nil {
		return err
	}
	if now <= last {
		return nil
	}
	total, err := p.statsService.TotalStaked()
	if err != nil {
		return err
	}
	if total.Sign() > 0 {
		cfg, err := p.campaignService.Get()
		if err != nil {
			return err
		}
		accrued := accruedBetween(cfg, last, now)
		if accrued.Sign() > 0 {
			delta := new(big.Int).Mul(accrued, freyr.AccScale)
			if err := p.statsService.AddAccPerShare(delta.Quo(delta, total)); err != nil {
				return err
			}
		}
	}
	p.statsService.SetLastAdvanceTime(now)
	return nil
}

// Stake locks the participant's tokens into the pool.
func (p *Pool) Stake(participant freyr.Address, amount *big.Int, now uint64) ([]*Event, error) {
	logger.Debug("staking", "participant", participant, "amount", amount, "now", now)

	rev := p.state.NewCheckpoint()
	events, err := p.stake(participant, amount, now)
	if err != nil {
		p.state.RevertTo(rev)
		logger.Info("stake failed", "participant", participant, "error", err)
		return nil, err
	}

	logger.Info("staked", "participant", participant, "amount", amount)
	return events, nil
}

func (p *Pool) stake(participant freyr.Address, amount *big.Int, now uint64) ([]*Event, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.ErrInvalidAmount
	}
	cfg, err := p.campaignService.Get()
	if err != nil {
		return nil, err
	}
	if !cfg.DepositWindowOpen(now) {
		return nil, reverts.ErrCampaignClosed
	}
	if err := p.advance(now); err != nil {
		return nil, err
	}

	record, err := p.memberService.GetRecord(participant)
	if err != nil {
		return nil, err
	}
	enrolled, err := p.memberService.IsEnrolled(participant)
	if err != nil {
		return nil, err
	}
	wasActive := record.HasStake()

	if err := p.ledger.Pull(participant, amount); err != nil {
		logger.Debug("ledger pull failed", "participant", participant, "error", err)
		return nil, reverts.ErrTransferFailed
	}

	acc, err := p.statsService.AccPerShare()
	if err != nil {
		return nil, err
	}
	record.AmountStaked = new(big.Int).Add(record.AmountStaked, amount)
	// Settling against the increased balance folds any unclaimed entitlement
	// into the offset. Rewards accrued before a top-up are forfeited unless
	// claimed first.
	record.SettleDebt(acc)
	record.StakeTimestamp = now
	record.Active = true
	if err := p.memberService.SaveRecord(participant, record); err != nil {
		return nil, err
	}

	if !enrolled {
		if err := p.memberService.EnrollParticipant(participant); err != nil {
			return nil, err
		}
	}
	if !wasActive {
		if err := p.memberService.MarkActive(participant); err != nil {
			return nil, err
		}
		if err := p.statsService.IncActiveCount(); err != nil {
			return nil, err
		}
	}
	if err := p.statsService.AddStaked(amount); err != nil {
		return nil, err
	}

	return []*Event{{
		Kind:        EventStaked,
		Participant: participant,
		Amount:      new(big.Int).Set(amount),
		Time:        now,
	}}, nil
}

// Unstake returns the participant's full principal and pays out any pending
// reward in the same operation.
func (p *Pool) Unstake(participant freyr.Address, now uint64) ([]*Event, error) {
	logger.Debug("unstaking", "participant", participant, "now", now)

	rev := p.state.NewCheckpoint()
	events, err := p.unstake(participant, now)
	if err != nil {
		p.state.RevertTo(rev)
		logger.Info("unstake failed", "participant", participant, "error", err)
		return nil, err
	}

	logger.Info("unstaked", "participant", participant)
	return events, nil
}

func (p *Pool) unstake(participant freyr.Address, now uint64) ([]*Event, error) {
	record, err := p.memberService.GetRecord(participant)
	if err != nil {
		return nil, err
	}
	if !record.HasStake() {
		return nil, reverts.ErrNothingToWithdraw
	}
	cfg, err := p.campaignService.Get()
	if err != nil {
		return nil, err
	}
	if now < record.StakeTimestamp+cfg.LockinSeconds() {
		return nil, reverts.ErrStillLocked
	}
	if err := p.advance(now); err != nil {
		return nil, err
	}

	acc, err := p.statsService.AccPerShare()
	if err != nil {
		return nil, err
	}
	pending := record.PendingAgainst(acc)
	principal := new(big.Int).Set(record.AmountStaked)

	if err := p.ledger.Push(participant, principal); err != nil {
		logger.Debug("ledger push failed", "participant", participant, "error", err)
		return nil, reverts.ErrTransferFailed
	}
	if pending.Sign() > 0 {
		if err := p.ledger.PayReward(participant, pending); err != nil {
			logger.Debug("ledger payout failed", "participant", participant, "error", err)
			return nil, reverts.ErrTransferFailed
		}
		if err := p.statsService.AddRewardPaid(pending); err != nil {
			return nil, err
		}
		record.RewardClaimed = new(big.Int).Add(record.RewardClaimed, pending)
	}

	record.AmountStaked = new(big.Int)
	record.RewardDebt = new(big.Int)
	record.Active = false
	if err := p.memberService.SaveRecord(participant, record); err != nil {
		return nil, err
	}

	if err := p.statsService.SubStaked(principal); err != nil {
		return nil, err
	}
	if err := p.statsService.DecActiveCount(); err != nil {
		return nil, err
	}

	events := []*Event{{
		Kind:        EventUnstaked,
		Participant: participant,
		Amount:      principal,
		Time:        now,
	}}
	if pending.Sign() > 0 {
		events = append(events, &Event{
			Kind:        EventClaimed,
			Participant: participant,
			Amount:      pending,
			Time:        now,
		})
	}
	return events, nil
}

// Claim pays out the participant's pending reward, leaving the stake in
// place.
func (p *Pool) Claim(participant freyr.Address, now uint64) ([]*Event, error) {
	logger.Debug("claiming", "participant", participant, "now", now)

	rev := p.state.NewCheckpoint()
	events, err := p.claim(participant, now)
	if err != nil {
		p.state.RevertTo(rev)
		logger.Info("claim failed", "participant", participant, "error", err)
		return nil, err
	}

	logger.Info("claimed", "participant", participant)
	return events, nil
}

func (p *Pool) claim(participant freyr.Address, now uint64) ([]*Event, error) {
	record, err := p.memberService.GetRecord(participant)
	if err != nil {
		return nil, err
	}
	if !record.HasStake() {
		return nil, reverts.ErrNothingToWithdraw
	}
	if err := p.advance(now); err != nil {
		return nil, err
	}

	acc, err := p.statsService.AccPerShare()
	if err != nil {
		return nil, err
	}
	pending := record.PendingAgainst(acc)
	if pending.Sign() == 0 {
		return nil, reverts.ErrNoRewardDue
	}

	if err := p.ledger.PayReward(participant, pending); err != nil {
		logger.Debug("ledger payout failed", "participant", participant, "error", err)
		return nil, reverts.ErrTransferFailed
	}

	record.SettleDebt(acc)
	record.RewardClaimed = new(big.Int).Add(record.RewardClaimed, pending)
	if err := p.memberService.SaveRecord(participant, record); err != nil {
		return nil, err
	}
	if err := p.statsService.AddRewardPaid(pending); err != nil {
		return nil, err
	}

	return []*Event{{
		Kind:        EventClaimed,
		Participant: participant,
		Amount:      pending,
		Time:        now,
	}}, nil
}
