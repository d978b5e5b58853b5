package minerstore

import (
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

// GetPowerEvent returns the tokens whose power runs out at the epoch.
func (s *Store) GetPowerEvent(epoch idx.Epoch) []native.TokenID {
	list, _ := s.get(s.table.PowerEvents, epoch.Bytes(), &[]native.TokenID{}).(*[]native.TokenID)
	if list == nil {
		return nil
	}
	return *list
}

// SetPowerEvent stores the epoch's token set. An empty set removes the entry.
func (s *Store) SetPowerEvent(epoch idx.Epoch, ids []native.TokenID) {
	if len(ids) == 0 {
		s.delete(s.table.PowerEvents, epoch.Bytes())
		return
	}
	s.set(s.table.PowerEvents, epoch.Bytes(), ids)
}

// ForEachPowerEvent iterates the scheduled epochs in ascending order.
func (s *Store) ForEachPowerEvent(fn func(epoch idx.Epoch, ids []native.TokenID) bool) {
	s.forEach(s.table.PowerEvents, nil, func(key, val []byte) bool {
		var ids []native.TokenID
		s.decode(s.table.PowerEvents, val, &ids)
		return fn(idx.BytesToEpoch(key), ids)
	})
}
