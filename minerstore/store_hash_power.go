package minerstore

import (
	"github.com/findsatoshi/go-fst/native"
)

// GetHashPower returns the owner's ledger entry.
func (s *Store) GetHashPower(owner native.AccountID) (uint64, bool) {
	v, _ := s.get(s.table.HashPower, []byte(owner), new(uint64)).(*uint64)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// SetHashPower stores the owner's ledger entry. Zero removes the entry.
func (s *Store) SetHashPower(owner native.AccountID, v uint64) {
	if v == 0 {
		s.delete(s.table.HashPower, []byte(owner))
		return
	}
	s.set(s.table.HashPower, []byte(owner), v)
}

// ForEachHashPower iterates ledger entries in bytewise account order.
func (s *Store) ForEachHashPower(fn func(owner native.AccountID, v uint64) bool) {
	s.forEach(s.table.HashPower, nil, func(key, val []byte) bool {
		var v uint64
		s.decode(s.table.HashPower, val, &v)
		return fn(native.AccountID(key), v)
	})
}
