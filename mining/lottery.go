package mining

import (
	"sort"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/findsatoshi/go-fst/native"
)

const seedWidth = 16 // bytes of the random seed used by the draw

// drawValue maps the seed onto [0, total): seed * total / 2^128, where the seed
// is the first 16 bytes of the random seed read as a big-endian integer.
func drawValue(seed []byte, total uint64) (uint64, error) {
	if len(seed) < seedWidth {
		return 0, errors.Wrapf(ErrInternal, "random seed is %d bytes, need %d", len(seed), seedWidth)
	}
	v := new(uint256.Int).SetBytes(seed[:seedWidth])
	v.Mul(v, uint256.NewInt(total))
	v.Rsh(v, 8*seedWidth)
	return v.Uint64(), nil
}

// sortEntries orders the ledger bytewise by account id.
func sortEntries(entries []LedgerEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Owner < entries[j].Owner
	})
}

// selectProducer returns the first owner whose cumulative hash-power exceeds the value.
func selectProducer(entries []LedgerEntry, value uint64, fallback native.AccountID) native.AccountID {
	var border uint64
	for _, e := range entries {
		border += e.Thash
		if border > value {
			return e.Owner
		}
	}
	return fallback
}
