package mining

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

// PowerOn switches the miner on, spending whole epochs of its stored power.
func (e *Engine) PowerOn(caller native.AccountID, id native.TokenID) error {
	return e.execState("power-on", func(st *native.EpochState) error {
		return e.powerOn(st, caller, id)
	})
}

// PowerOff switches the miner off and refunds the power of the remaining epochs.
func (e *Engine) PowerOff(caller native.AccountID, id native.TokenID) error {
	return e.execState("power-off", func(st *native.EpochState) error {
		return e.powerOff(st, caller, id)
	})
}

// BatchPowerOn powers the miners on one by one. See batch for the failure semantics.
func (e *Engine) BatchPowerOn(caller native.AccountID, ids []native.TokenID) ([]native.TokenID, error) {
	return batch(ids, func(id native.TokenID) error {
		return e.PowerOn(caller, id)
	})
}

// BatchPowerOff powers the miners off one by one. See batch for the failure semantics.
func (e *Engine) BatchPowerOff(caller native.AccountID, ids []native.TokenID) ([]native.TokenID, error) {
	return batch(ids, func(id native.TokenID) error {
		return e.PowerOff(caller, id)
	})
}

func (e *Engine) controlledToken(caller native.AccountID, id native.TokenID) (*native.Token, error) {
	t, err := e.getToken(id)
	if err != nil {
		return nil, err
	}
	if t.Owner != caller || t.Owner != t.Operator {
		return nil, errors.Wrapf(ErrForbidden, "%s by %s", id, caller)
	}
	return t, nil
}

func (e *Engine) powerOn(st *native.EpochState, caller native.AccountID, id native.TokenID) error {
	t, err := e.controlledToken(caller, id)
	if err != nil {
		return err
	}
	if t.Status != native.StatusNormal || t.Switch == native.PowerOn {
		return nil
	}
	mt, err := e.getMinerType(t)
	if err != nil {
		return err
	}
	if mt.W == 0 {
		return errors.Wrapf(ErrInternal, "zero power rate of miner type %s", t.MinerMetadataID)
	}

	hours := t.PowerLeft / mt.W
	if hours == 0 {
		return errors.Wrapf(ErrInsufficientPower, "%s has %d, needs %d", id, t.PowerLeft, mt.W)
	}
	if uint64(st.Epoch)+uint64(hours) > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidArgument, "power deadline of %s overflows", id)
	}

	t.Switch = native.PowerOn
	t.PowerLeft -= hours * mt.W
	t.PowerDeadline = st.Epoch + idx.Epoch(hours)

	if err := e.ledger(st).increase(t.Owner, mt.Thash); err != nil {
		return err
	}
	e.scheduler().schedule(id, t.PowerDeadline)
	e.store.SetToken(t)

	e.emit(Event{
		Type:    EventPowerOn,
		Epoch:   st.Epoch,
		Account: t.Owner,
		Token:   id,
		Value:   uint64(t.PowerDeadline),
	})
	return nil
}

func (e *Engine) powerOff(st *native.EpochState, caller native.AccountID, id native.TokenID) error {
	t, err := e.controlledToken(caller, id)
	if err != nil {
		return err
	}
	if t.Switch == native.PowerOff {
		return nil
	}
	mt, err := e.getMinerType(t)
	if err != nil {
		return err
	}
	if t.PowerDeadline < st.Epoch {
		return errors.Wrapf(ErrInternal, "%s is on past its deadline %d", id, t.PowerDeadline)
	}
	refund := uint64(t.PowerDeadline-st.Epoch) * uint64(mt.W)
	if uint64(t.PowerLeft)+refund > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidArgument, "power of %s overflows", id)
	}

	if err := e.ledger(st).decrease(t.Owner, mt.Thash); err != nil {
		return err
	}
	if err := e.scheduler().unschedule(id, t.PowerDeadline); err != nil {
		return err
	}
	t.Switch = native.PowerOff
	t.PowerLeft += uint32(refund)
	e.store.SetToken(t)

	e.emit(Event{
		Type:    EventPowerOff,
		Epoch:   st.Epoch,
		Account: t.Owner,
		Token:   id,
		Value:   refund,
	})
	return nil
}
