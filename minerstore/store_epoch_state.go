package minerstore

import (
	"github.com/findsatoshi/go-fst/native"
)

var epochStateKey = []byte("e")

// SetEpochState stores the settlement scalars.
func (s *Store) SetEpochState(es native.EpochState) {
	s.set(s.table.Scalars, epochStateKey, &es)

	cp := es.Copy()
	s.cache.EpochState = &cp
}

// GetEpochState returns the settlement scalars, or nil before genesis.
func (s *Store) GetEpochState() *native.EpochState {
	if s.cache.EpochState != nil {
		cp := s.cache.EpochState.Copy()
		return &cp
	}

	es, _ := s.get(s.table.Scalars, epochStateKey, &native.EpochState{}).(*native.EpochState)
	if es == nil {
		return nil
	}

	cp := es.Copy()
	s.cache.EpochState = &cp
	return es
}
