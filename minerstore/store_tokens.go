package minerstore

import (
	"github.com/findsatoshi/go-fst/native"
)

// SetToken stores the token under its id.
func (s *Store) SetToken(t *native.Token) {
	id := t.ID()
	s.set(s.table.Tokens, []byte(id), t)

	s.cache.Tokens.Add(id, t.Copy())
}

// GetToken returns a copy of the stored token, or nil.
func (s *Store) GetToken(id native.TokenID) *native.Token {
	if c, ok := s.cache.Tokens.Get(id); ok {
		t := c.(native.Token).Copy()
		return &t
	}

	t, _ := s.get(s.table.Tokens, []byte(id), &native.Token{}).(*native.Token)
	if t == nil {
		return nil
	}

	s.cache.Tokens.Add(id, t.Copy())
	return t
}

func (s *Store) HasToken(id native.TokenID) bool {
	if s.cache.Tokens.Contains(id) {
		return true
	}
	return s.has(s.table.Tokens, []byte(id))
}

// ForEachToken iterates all the tokens in id order.
func (s *Store) ForEachToken(fn func(t *native.Token) bool) {
	s.forEach(s.table.Tokens, nil, func(_, val []byte) bool {
		t := &native.Token{}
		s.decode(s.table.Tokens, val, t)
		return fn(t)
	})
}

// SetMinerType stores the miner type.
func (s *Store) SetMinerType(id native.MinerTypeID, mt *native.MinerType) {
	s.set(s.table.MinerTypes, []byte(id), mt)

	s.cache.MinerTypes.Add(id, *mt)
}

// GetMinerType returns the miner type, or nil.
func (s *Store) GetMinerType(id native.MinerTypeID) *native.MinerType {
	if c, ok := s.cache.MinerTypes.Get(id); ok {
		mt := c.(native.MinerType)
		return &mt
	}

	mt, _ := s.get(s.table.MinerTypes, []byte(id), &native.MinerType{}).(*native.MinerType)
	if mt == nil {
		return nil
	}

	s.cache.MinerTypes.Add(id, *mt)
	return mt
}

// ForEachMinerType iterates miner types in id order, starting from the given id.
func (s *Store) ForEachMinerType(from native.MinerTypeID, fn func(id native.MinerTypeID, mt *native.MinerType) bool) {
	s.forEach(s.table.MinerTypes, []byte(from), func(key, val []byte) bool {
		mt := &native.MinerType{}
		s.decode(s.table.MinerTypes, val, mt)
		return fn(native.MinerTypeID(key), mt)
	})
}
