package mining

import (
	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

type indexEntry struct {
	Owner native.AccountID
	Meta  native.MetadataID
	ID    native.TokenID
}

type scheduleEntry struct {
	Epoch idx.Epoch
	ID    native.TokenID
}

// Verify checks the cross-table invariants of the whole ledger:
// the owner index matches the tokens, the hash-power ledger matches the powered-on
// miners, the scheduler matches their deadlines and no empty container is kept.
func (e *Engine) Verify() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.store.GetEpochState()
	if st == nil {
		return ErrNoGenesis
	}

	var fault error
	faultf := func(format string, args ...interface{}) bool {
		fault = errors.Wrapf(ErrInternal, format, args...)
		return false
	}

	wantIndex := mapset.NewSet()
	wantSched := mapset.NewSet()
	wantPower := map[native.AccountID]uint64{}
	var wantTotal uint64

	e.store.ForEachToken(func(t *native.Token) bool {
		wantIndex.Add(indexEntry{t.Owner, t.MetadataID, t.ID()})
		if t.Switch != native.PowerOn {
			return true
		}
		mt := e.store.GetMinerType(t.MinerMetadataID)
		if mt == nil {
			return faultf("no miner type %s of %s", t.MinerMetadataID, t.ID())
		}
		if t.PowerDeadline <= st.Epoch {
			return faultf("%s is on past its deadline %d", t.ID(), t.PowerDeadline)
		}
		wantSched.Add(scheduleEntry{t.PowerDeadline, t.ID()})
		wantPower[t.Owner] += uint64(mt.Thash)
		wantTotal += uint64(mt.Thash)
		return true
	})
	if fault != nil {
		return fault
	}

	gotIndex := mapset.NewSet()
	leafMetas := map[native.AccountID]mapset.Set{}
	e.store.ForEachOwnerTokens(func(owner native.AccountID, meta native.MetadataID, ids []native.TokenID) bool {
		if len(ids) == 0 {
			return faultf("empty leaf %s/%s", owner, meta)
		}
		for _, id := range ids {
			if !gotIndex.Add(indexEntry{owner, meta, id}) {
				return faultf("%s is indexed twice", id)
			}
		}
		if leafMetas[owner] == nil {
			leafMetas[owner] = mapset.NewSet()
		}
		leafMetas[owner].Add(meta)
		return true
	})
	if fault != nil {
		return fault
	}
	if !gotIndex.Equal(wantIndex) {
		return errors.Wrapf(ErrInconsistentIndex, "unindexed %v, stale %v",
			wantIndex.Difference(gotIndex).ToSlice(), gotIndex.Difference(wantIndex).ToSlice())
	}

	owners := 0
	e.store.ForEachOwnerTypes(func(owner native.AccountID, list []native.MetadataID) bool {
		owners++
		metas := mapset.NewSet()
		for _, m := range list {
			metas.Add(m)
		}
		if metas.Cardinality() != len(list) || leafMetas[owner] == nil || !metas.Equal(leafMetas[owner]) {
			fault = errors.Wrapf(ErrInconsistentIndex, "metadata list of %s is %v", owner, list)
			return false
		}
		return true
	})
	if fault != nil {
		return fault
	}
	if owners != len(leafMetas) {
		return errors.Wrapf(ErrInconsistentIndex, "%d owners listed, %d indexed", owners, len(leafMetas))
	}

	var total uint64
	entries := 0
	e.store.ForEachHashPower(func(owner native.AccountID, v uint64) bool {
		entries++
		total += v
		if v == 0 || v != wantPower[owner] {
			return faultf("hash-power of %s is %d, expected %d", owner, v, wantPower[owner])
		}
		return true
	})
	if fault != nil {
		return fault
	}
	if entries != len(wantPower) {
		return errors.Wrapf(ErrInternal, "%d hash-power entries, expected %d", entries, len(wantPower))
	}
	if total != st.TotalThash || wantTotal != st.TotalThash {
		return errors.Wrapf(ErrInternal, "total hash-power is %d, entries sum to %d", st.TotalThash, total)
	}

	gotSched := mapset.NewSet()
	e.store.ForEachPowerEvent(func(epoch idx.Epoch, ids []native.TokenID) bool {
		if len(ids) == 0 {
			return faultf("empty power event at %d", epoch)
		}
		for _, id := range ids {
			gotSched.Add(scheduleEntry{epoch, id})
		}
		return true
	})
	if fault != nil {
		return fault
	}
	if !gotSched.Equal(wantSched) {
		return errors.Wrapf(ErrInternal, "unscheduled %v, stale %v",
			wantSched.Difference(gotSched).ToSlice(), gotSched.Difference(wantSched).ToSlice())
	}
	return nil
}
