package mining

import (
	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/minerstore"
	"github.com/findsatoshi/go-fst/native"
)

// powerScheduler maps an epoch to the miners whose power runs out at it.
type powerScheduler struct {
	store *minerstore.Store
}

func (ps powerScheduler) schedule(id native.TokenID, epoch idx.Epoch) {
	ids := ps.store.GetPowerEvent(epoch)
	for _, x := range ids {
		if x == id {
			return
		}
	}
	ps.store.SetPowerEvent(epoch, append(ids, id))
}

func (ps powerScheduler) unschedule(id native.TokenID, epoch idx.Epoch) error {
	ids := ps.store.GetPowerEvent(epoch)
	if ids == nil {
		return errors.Wrapf(ErrInternal, "no power event at epoch %d", epoch)
	}
	n := len(ids)
	ids = removeTokenID(ids, id)
	if len(ids) == n {
		return errors.Wrapf(ErrInternal, "%s isn't scheduled at epoch %d", id, epoch)
	}
	ps.store.SetPowerEvent(epoch, ids)
	return nil
}

func (ps powerScheduler) drain(epoch idx.Epoch) []native.TokenID {
	ids := ps.store.GetPowerEvent(epoch)
	if ids != nil {
		ps.store.SetPowerEvent(epoch, nil)
	}
	return ids
}

func removeTokenID(ids []native.TokenID, id native.TokenID) []native.TokenID {
	res := ids[:0]
	for _, x := range ids {
		if x != id {
			res = append(res, x)
		}
	}
	return res
}
