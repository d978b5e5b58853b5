package mining

import (
	"time"

	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

// SettleResult describes a settled epoch.
type SettleResult struct {
	Epoch    idx.Epoch // the epoch which was closed
	Value    uint64    // lottery draw
	Producer native.AccountID
	Expired  []native.TokenID
}

// settleContext is threaded through the settlement steps.
type settleContext struct {
	caller native.AccountID
	block  idx.Block
	state  *native.EpochState
	res    SettleResult
}

type settleStep struct {
	name string
	run  func(ctx *settleContext) error
}

func (e *Engine) settleSteps() []settleStep {
	return []settleStep{
		{"guard", e.settleGuard},
		{"random-draw", e.settleRandomDraw},
		{"producer", e.settleProducer},
		{"advance", e.settleAdvance},
		{"power-expiry", e.settlePowerExpiry},
		{"pools", e.settlePools},
		{"failures", e.settleFailures},
	}
}

// SettleEpoch closes the current epoch: draws the block producer weighted by
// hash-power, advances the epoch and switches off the miners whose power ran out.
func (e *Engine) SettleEpoch(caller native.AccountID) (SettleResult, error) {
	var res SettleResult
	start := time.Now()
	err := e.execState("settle", func(st *native.EpochState) error {
		ctx := &settleContext{
			caller: caller,
			block:  e.chain.BlockHeight(),
			state:  st,
		}
		for _, step := range e.settleSteps() {
			if err := step.run(ctx); err != nil {
				return errors.WithMessagef(err, "settlement step %s", step.name)
			}
		}
		res = ctx.res
		return nil
	})
	if err != nil {
		return SettleResult{}, err
	}
	settleTimer.Observe(time.Since(start).Seconds())
	expiredCounter.Add(float64(len(res.Expired)))
	e.Log.Info("Epoch is settled", "epoch", res.Epoch, "producer", res.Producer, "value", res.Value, "expired", len(res.Expired))
	return res, nil
}

func (e *Engine) settleGuard(ctx *settleContext) error {
	if err := e.checkSettlement(ctx.state, ctx.caller, ctx.block); err != nil {
		return err
	}
	ctx.state.EpochStartAt = ctx.block
	return nil
}

func (e *Engine) settleRandomDraw(ctx *settleContext) error {
	value, err := drawValue(e.chain.RandomSeed(), ctx.state.TotalThash)
	if err != nil {
		return err
	}
	ctx.res.Value = value
	e.emit(Event{
		Type:  EventRandomDraw,
		Epoch: ctx.state.Epoch,
		Value: value,
	})
	return nil
}

func (e *Engine) settleProducer(ctx *settleContext) error {
	entries := e.ledger(ctx.state).entries()
	ctx.res.Producer = selectProducer(entries, ctx.res.Value, ctx.state.Owner)
	e.emit(Event{
		Type:    EventProducer,
		Epoch:   ctx.state.Epoch,
		Account: ctx.res.Producer,
		Value:   ctx.res.Value,
	})
	return nil
}

func (e *Engine) settleAdvance(ctx *settleContext) error {
	ctx.res.Epoch = ctx.state.Epoch
	e.emit(Event{
		Type:     EventReward,
		Epoch:    ctx.state.Epoch,
		Account:  ctx.res.Producer,
		Receiver: ctx.caller,
		Amount:   ctx.state.Copy().RewardPerEpoch,
	})
	ctx.state.Epoch++
	return nil
}

// settlePowerExpiry switches off every miner scheduled at the new epoch. Power isn't refunded.
func (e *Engine) settlePowerExpiry(ctx *settleContext) error {
	epoch := ctx.state.Epoch
	ids := e.scheduler().drain(epoch)
	l := e.ledger(ctx.state)
	for _, id := range ids {
		t := e.store.GetToken(id)
		if t == nil {
			return errors.Wrapf(ErrInternal, "scheduled miner %s doesn't exist", id)
		}
		if t.Switch != native.PowerOn || t.PowerDeadline != epoch {
			return errors.Wrapf(ErrInternal, "scheduled miner %s is %s with deadline %d", id, t.Switch, t.PowerDeadline)
		}
		mt := e.store.GetMinerType(t.MinerMetadataID)
		if mt == nil {
			return errors.Wrapf(ErrInternal, "no miner type %s of %s", t.MinerMetadataID, id)
		}
		t.Switch = native.PowerOff
		e.store.SetToken(t)
		if err := l.decrease(t.Owner, mt.Thash); err != nil {
			return err
		}
		e.emit(Event{
			Type:    EventPowerExpired,
			Epoch:   epoch,
			Account: t.Owner,
			Token:   id,
		})
	}
	ctx.res.Expired = ids
	return nil
}

func (e *Engine) settlePools(ctx *settleContext) error {
	e.Log.Trace("Pool settlement is under construction", "epoch", ctx.state.Epoch)
	return nil
}

func (e *Engine) settleFailures(ctx *settleContext) error {
	e.Log.Trace("Random failures settlement is under construction", "epoch", ctx.state.Epoch)
	return nil
}
