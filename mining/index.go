package mining

import (
	"github.com/pkg/errors"

	"github.com/findsatoshi/go-fst/minerstore"
	"github.com/findsatoshi/go-fst/native"
)

// ownerIndex maps owner -> metadata id -> token ids.
// Empty leaves and owners are pruned.
type ownerIndex struct {
	store *minerstore.Store
}

func (ix ownerIndex) add(owner native.AccountID, meta native.MetadataID, id native.TokenID) {
	ids := ix.store.GetOwnerTokens(owner, meta)
	if len(ids) == 0 {
		ix.store.SetOwnerTypes(owner, append(ix.store.GetOwnerTypes(owner), meta))
	}
	for _, x := range ids {
		if x == id {
			return
		}
	}
	ix.store.SetOwnerTokens(owner, meta, append(ids, id))
}

func (ix ownerIndex) remove(owner native.AccountID, meta native.MetadataID, id native.TokenID) error {
	ids := ix.store.GetOwnerTokens(owner, meta)
	left := removeTokenID(append([]native.TokenID(nil), ids...), id)
	if len(left) == len(ids) {
		return errors.Wrapf(ErrInconsistentIndex, "token %s should be owned by %s", id, owner)
	}
	ix.store.SetOwnerTokens(owner, meta, left)
	if len(left) != 0 {
		return nil
	}

	metas := ix.store.GetOwnerTypes(owner)
	rest := make([]native.MetadataID, 0, len(metas))
	for _, m := range metas {
		if m != meta {
			rest = append(rest, m)
		}
	}
	ix.store.SetOwnerTypes(owner, rest)
	return nil
}
