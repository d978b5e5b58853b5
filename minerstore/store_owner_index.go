package minerstore

import (
	"encoding/binary"

	"github.com/findsatoshi/go-fst/native"
)

// ownerTokensKey is len(owner) as big-endian uint16, the owner, then the metadata id.
func ownerTokensKey(owner native.AccountID, meta native.MetadataID) []byte {
	key := make([]byte, 0, 2+len(owner)+len(meta))
	key = append(key, byte(len(owner)>>8), byte(len(owner)))
	key = append(key, owner...)
	return append(key, meta...)
}

func ownerPrefix(owner native.AccountID) []byte {
	return ownerTokensKey(owner, "")
}

func parseOwnerTokensKey(key []byte) (native.AccountID, native.MetadataID, bool) {
	if len(key) < 2 {
		return "", "", false
	}
	n := int(binary.BigEndian.Uint16(key))
	if len(key) < 2+n {
		return "", "", false
	}
	return native.AccountID(key[2 : 2+n]), native.MetadataID(key[2+n:]), true
}

// GetOwnerTypes returns the metadata ids the owner holds tokens of, in insertion order.
func (s *Store) GetOwnerTypes(owner native.AccountID) []native.MetadataID {
	list, _ := s.get(s.table.OwnerTypes, []byte(owner), &[]native.MetadataID{}).(*[]native.MetadataID)
	if list == nil {
		return nil
	}
	return *list
}

// SetOwnerTypes stores the owner's metadata ids. An empty list removes the owner.
func (s *Store) SetOwnerTypes(owner native.AccountID, list []native.MetadataID) {
	if len(list) == 0 {
		s.delete(s.table.OwnerTypes, []byte(owner))
		return
	}
	s.set(s.table.OwnerTypes, []byte(owner), list)
}

// ForEachOwnerTypes iterates owners in account order.
func (s *Store) ForEachOwnerTypes(fn func(owner native.AccountID, list []native.MetadataID) bool) {
	s.forEach(s.table.OwnerTypes, nil, func(key, val []byte) bool {
		var list []native.MetadataID
		s.decode(s.table.OwnerTypes, val, &list)
		return fn(native.AccountID(key), list)
	})
}

// GetOwnerTokens returns the owner's tokens of the metadata, in insertion order.
func (s *Store) GetOwnerTokens(owner native.AccountID, meta native.MetadataID) []native.TokenID {
	list, _ := s.get(s.table.OwnerTokens, ownerTokensKey(owner, meta), &[]native.TokenID{}).(*[]native.TokenID)
	if list == nil {
		return nil
	}
	return *list
}

// SetOwnerTokens stores the leaf set. An empty set removes the leaf.
func (s *Store) SetOwnerTokens(owner native.AccountID, meta native.MetadataID, ids []native.TokenID) {
	key := ownerTokensKey(owner, meta)
	if len(ids) == 0 {
		s.delete(s.table.OwnerTokens, key)
		return
	}
	s.set(s.table.OwnerTokens, key, ids)
}

// ForEachOwnerTokens iterates all the leaf sets.
func (s *Store) ForEachOwnerTokens(fn func(owner native.AccountID, meta native.MetadataID, ids []native.TokenID) bool) {
	s.forEach(s.table.OwnerTokens, nil, func(key, val []byte) bool {
		owner, meta, ok := parseOwnerTokensKey(key)
		if !ok {
			s.Log.Error("Malformed owner index key", "key", key)
			return true
		}
		var ids []native.TokenID
		s.decode(s.table.OwnerTokens, val, &ids)
		return fn(owner, meta, ids)
	})
}

// CountOwnerTokens returns the number of the owner's tokens over all the metadata ids.
func (s *Store) CountOwnerTokens(owner native.AccountID) int {
	n := 0
	prefix := ownerPrefix(owner)
	it := s.table.OwnerTokens.NewIterator(prefix, nil)
	defer it.Release()
	for it.Next() {
		var ids []native.TokenID
		s.decode(s.table.OwnerTokens, it.Value(), &ids)
		n += len(ids)
	}
	if err := it.Error(); err != nil {
		s.fault(s.table.OwnerTokens, err)
	}
	return n
}
