package mining

import (
	"math"

	"github.com/pkg/errors"

	"github.com/findsatoshi/go-fst/minerstore"
	"github.com/findsatoshi/go-fst/native"
)

// hashPowerLedger keeps per-owner hash-power of powered-on miners and its total.
type hashPowerLedger struct {
	store *minerstore.Store
	state *native.EpochState
}

func (l hashPowerLedger) increase(owner native.AccountID, amount native.Thash) error {
	v, _ := l.store.GetHashPower(owner)
	if v > math.MaxUint64-uint64(amount) || l.state.TotalThash > math.MaxUint64-uint64(amount) {
		return errors.Wrapf(ErrInternal, "hash-power overflow of %s", owner)
	}
	l.store.SetHashPower(owner, v+uint64(amount))
	l.state.TotalThash += uint64(amount)
	return nil
}

func (l hashPowerLedger) decrease(owner native.AccountID, amount native.Thash) error {
	v, ok := l.store.GetHashPower(owner)
	if !ok {
		return errors.Wrapf(ErrInternal, "no mining entity %s", owner)
	}
	if v < uint64(amount) || l.state.TotalThash < uint64(amount) {
		return errors.Wrapf(ErrInternal, "hash-power underflow of %s", owner)
	}
	l.store.SetHashPower(owner, v-uint64(amount))
	l.state.TotalThash -= uint64(amount)
	return nil
}

// LedgerEntry is the non-zero hash-power of an owner.
type LedgerEntry struct {
	Owner native.AccountID
	Thash uint64
}

// entries returns the ledger in bytewise order of account ids.
func (l hashPowerLedger) entries() []LedgerEntry {
	var res []LedgerEntry
	l.store.ForEachHashPower(func(owner native.AccountID, v uint64) bool {
		res = append(res, LedgerEntry{owner, v})
		return true
	})
	sortEntries(res)
	return res
}
