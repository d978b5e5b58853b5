package mining

import (
	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

type MinerTypeEntry struct {
	ID native.MinerTypeID
	native.MinerType
}

// page returns the [from, from+limit) bounds within n items.
func page(n int, from, limit uint64) (int, int) {
	if from >= uint64(n) {
		return n, n
	}
	end := uint64(n)
	if limit != 0 && limit < end-from {
		end = from + limit
	}
	return int(from), int(end)
}

// State returns the epoch state.
func (e *Engine) State() (native.EpochState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.store.GetEpochState()
	if st == nil {
		return native.EpochState{}, ErrNoGenesis
	}
	return *st, nil
}

// Token returns the token.
func (e *Engine) Token(id native.TokenID) (native.Token, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.getToken(id)
	if err != nil {
		return native.Token{}, err
	}
	return *t, nil
}

// MinerType returns the miner type.
func (e *Engine) MinerType(id native.MinerTypeID) (native.MinerType, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	mt := e.store.GetMinerType(id)
	if mt == nil {
		return native.MinerType{}, errors.Wrapf(ErrNotFound, "miner type %s", id)
	}
	return *mt, nil
}

// HashPowerOf returns the owner's hash-power.
func (e *Engine) HashPowerOf(owner native.AccountID) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, _ := e.store.GetHashPower(owner)
	return v
}

// HashPowerTable returns the non-zero hash-power entries in lottery order.
func (e *Engine) HashPowerTable() []LedgerEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return hashPowerLedger{store: e.store}.entries()
}

// PowerEventAt returns the miners whose power runs out at the epoch.
func (e *Engine) PowerEventAt(epoch idx.Epoch) []native.TokenID {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.GetPowerEvent(epoch)
}

// ListMinerTypes pages through the miner types in id order.
func (e *Engine) ListMinerTypes(from, limit uint64) []MinerTypeEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res []MinerTypeEntry
	var i uint64
	e.store.ForEachMinerType("", func(id native.MinerTypeID, mt *native.MinerType) bool {
		if i >= from {
			res = append(res, MinerTypeEntry{ID: id, MinerType: *mt})
		}
		i++
		return limit == 0 || uint64(len(res)) < limit
	})
	return res
}

// ListMinerTypesByOwner pages through the metadata ids the owner holds, in insertion order.
func (e *Engine) ListMinerTypesByOwner(owner native.AccountID, from, limit uint64) []native.MetadataID {
	e.mu.Lock()
	defer e.mu.Unlock()

	metas := e.store.GetOwnerTypes(owner)
	start, end := page(len(metas), from, limit)
	return metas[start:end]
}

// ListMinersByOwnerAndType pages through the owner's miners of the metadata, in insertion order.
func (e *Engine) ListMinersByOwnerAndType(owner native.AccountID, meta native.MetadataID, from, limit uint64) []native.Token {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := e.store.GetOwnerTokens(owner, meta)
	start, end := page(len(ids), from, limit)
	return e.tokens(ids[start:end])
}

// ListMinersByOwner pages through all the owner's miners.
func (e *Engine) ListMinersByOwner(owner native.AccountID, from, limit uint64) []native.Token {
	e.mu.Lock()
	defer e.mu.Unlock()

	var ids []native.TokenID
	for _, meta := range e.store.GetOwnerTypes(owner) {
		ids = append(ids, e.store.GetOwnerTokens(owner, meta)...)
	}
	start, end := page(len(ids), from, limit)
	return e.tokens(ids[start:end])
}

// CountMinersByOwner returns the number of the owner's miners.
func (e *Engine) CountMinersByOwner(owner native.AccountID) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.CountOwnerTokens(owner)
}

func (e *Engine) tokens(ids []native.TokenID) []native.Token {
	res := make([]native.Token, 0, len(ids))
	for _, id := range ids {
		t := e.store.GetToken(id)
		if t == nil {
			e.Log.Error("Indexed token doesn't exist", "id", id)
			continue
		}
		res = append(res, *t)
	}
	return res
}
