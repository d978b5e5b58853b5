package mining

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/findsatoshi/go-fst/native"
)

// RegisterMinerType creates a miner type. Miner types are immutable.
func (e *Engine) RegisterMinerType(caller native.AccountID, id native.MinerTypeID, mt native.MinerType) error {
	return e.execState("register-miner-type", func(st *native.EpochState) error {
		if err := e.checkOwner(st, caller, "register miner type"); err != nil {
			return err
		}
		if id == "" {
			return errors.Wrap(ErrInvalidArgument, "empty miner type id")
		}
		if mt.W == 0 {
			return errors.Wrapf(ErrInvalidArgument, "miner type %s has zero power rate", id)
		}
		if e.store.GetMinerType(id) != nil {
			return errors.Wrapf(ErrAlreadyExists, "miner type %s", id)
		}
		e.store.SetMinerType(id, &mt)
		e.emit(Event{Type: EventMinerType, Epoch: st.Epoch, Account: caller, Memo: string(id)})
		return nil
	})
}

// MintMiners creates quantity switched-off miners meta#0..meta#quantity-1 of the miner type.
func (e *Engine) MintMiners(caller, owner native.AccountID, meta native.MetadataID, typeID native.MinerTypeID, quantity uint32) ([]native.TokenID, error) {
	var ids []native.TokenID
	err := e.execState("mint", func(st *native.EpochState) error {
		if err := e.checkOwner(st, caller, "mint"); err != nil {
			return err
		}
		if owner == "" || quantity == 0 {
			return errors.Wrap(ErrInvalidArgument, "nothing to mint")
		}
		if e.store.GetMinerType(typeID) == nil {
			return errors.Wrapf(ErrNotFound, "miner type %s", typeID)
		}
		ids = make([]native.TokenID, 0, quantity)
		for sn := uint32(0); sn < quantity; sn++ {
			t := &native.Token{
				SN:              strconv.FormatUint(uint64(sn), 10),
				Owner:           owner,
				MetadataID:      meta,
				MinerMetadataID: typeID,
				Operator:        owner,
				Status:          native.StatusNormal,
				Switch:          native.PowerOff,
			}
			id := t.ID()
			if e.store.HasToken(id) {
				return errors.Wrapf(ErrAlreadyExists, "token %s", id)
			}
			e.store.SetToken(t)
			e.index().add(owner, meta, id)
			ids = append(ids, id)
			e.emit(Event{Type: EventMint, Epoch: st.Epoch, Account: owner, Token: id})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Charge adds stored power to the miner.
func (e *Engine) Charge(caller native.AccountID, id native.TokenID, units uint32) error {
	return e.execState("charge", func(st *native.EpochState) error {
		if err := e.checkOwner(st, caller, "charge"); err != nil {
			return err
		}
		t, err := e.getToken(id)
		if err != nil {
			return err
		}
		if uint64(t.PowerLeft)+uint64(units) > math.MaxUint32 {
			return errors.Wrapf(ErrInvalidArgument, "power of %s overflows", id)
		}
		t.PowerLeft += units
		e.store.SetToken(t)
		e.emit(Event{Type: EventCharge, Epoch: st.Epoch, Account: t.Owner, Token: id, Value: uint64(units)})
		return nil
	})
}

// SetStatus marks the miner normal or malfunctioning. Power is left as is.
func (e *Engine) SetStatus(caller native.AccountID, id native.TokenID, status native.Status) error {
	return e.execState("set-status", func(st *native.EpochState) error {
		if err := e.checkOwner(st, caller, "set status"); err != nil {
			return err
		}
		if status != native.StatusNormal && status != native.StatusMalfunction {
			return errors.Wrapf(ErrInvalidArgument, "status %d", status)
		}
		t, err := e.getToken(id)
		if err != nil {
			return err
		}
		if t.Status == status {
			return nil
		}
		t.Status = status
		e.store.SetToken(t)
		e.emit(Event{Type: EventStatus, Epoch: st.Epoch, Account: t.Owner, Token: id, Memo: status.String()})
		return nil
	})
}
