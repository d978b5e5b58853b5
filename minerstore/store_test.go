package minerstore

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unicornultrafoundation/go-helios/native/idx"
	"github.com/unicornultrafoundation/go-helios/u2udb/memorydb"

	"github.com/findsatoshi/go-fst/logger"
	"github.com/findsatoshi/go-fst/native"
)

func TestStoreTokens(t *testing.T) {
	logger.SetTestMode(t)
	require := require.New(t)
	s := NewMemStore()

	tok := &native.Token{SN: "0", Owner: "alice", MetadataID: "m", MinerMetadataID: "s9", Operator: "alice"}
	require.Nil(s.GetToken(tok.ID()))
	require.False(s.HasToken(tok.ID()))

	s.SetToken(tok)
	require.True(s.HasToken("m#0"))

	got := s.GetToken("m#0")
	require.Equal(native.AccountID("alice"), got.Owner)

	// returned tokens are copies
	got.Owner = "bob"
	got.Approve("carol")
	again := s.GetToken("m#0")
	require.Equal(native.AccountID("alice"), again.Owner)
	require.Empty(again.ApprovedAccounts)

	s.SetMinerType("s9", &native.MinerType{Thash: 10, W: 3})
	s.SetMinerType("a1", &native.MinerType{Thash: 20, W: 5})
	mt := s.GetMinerType("s9")
	require.Equal(native.Thash(10), mt.Thash)

	var ids []native.MinerTypeID
	s.ForEachMinerType("", func(id native.MinerTypeID, _ *native.MinerType) bool {
		ids = append(ids, id)
		return true
	})
	require.Equal([]native.MinerTypeID{"a1", "s9"}, ids)
}

func TestStoreOwnerIndex(t *testing.T) {
	require := require.New(t)
	s := NewMemStore()

	s.SetOwnerTokens("ab", "c", []native.TokenID{"c#1", "c#0"})
	s.SetOwnerTokens("abc", "", []native.TokenID{"#7"})
	s.SetOwnerTypes("ab", []native.MetadataID{"c"})

	require.Equal([]native.TokenID{"c#1", "c#0"}, s.GetOwnerTokens("ab", "c"))
	require.Equal(2, s.CountOwnerTokens("ab"))
	require.Equal(1, s.CountOwnerTokens("abc"))

	type leaf struct {
		owner native.AccountID
		meta  native.MetadataID
	}
	var leaves []leaf
	s.ForEachOwnerTokens(func(owner native.AccountID, meta native.MetadataID, _ []native.TokenID) bool {
		leaves = append(leaves, leaf{owner, meta})
		return true
	})
	require.ElementsMatch([]leaf{{"ab", "c"}, {"abc", ""}}, leaves)

	s.SetOwnerTokens("ab", "c", nil)
	s.SetOwnerTypes("ab", nil)
	require.Nil(s.GetOwnerTokens("ab", "c"))
	require.Nil(s.GetOwnerTypes("ab"))
}

func TestStoreHashPowerAndEvents(t *testing.T) {
	require := require.New(t)
	s := NewMemStore()

	s.SetHashPower("bob", 700)
	s.SetHashPower("alice", 300)
	s.SetHashPower("carol", 0)

	v, ok := s.GetHashPower("alice")
	require.True(ok)
	require.Equal(uint64(300), v)
	_, ok = s.GetHashPower("carol")
	require.False(ok)

	var owners []native.AccountID
	s.ForEachHashPower(func(owner native.AccountID, _ uint64) bool {
		owners = append(owners, owner)
		return true
	})
	require.Equal([]native.AccountID{"alice", "bob"}, owners)

	s.SetPowerEvent(idx.Epoch(300), []native.TokenID{"m#1"})
	s.SetPowerEvent(idx.Epoch(2), []native.TokenID{"m#0"})
	var epochs []idx.Epoch
	s.ForEachPowerEvent(func(e idx.Epoch, _ []native.TokenID) bool {
		epochs = append(epochs, e)
		return true
	})
	require.Equal([]idx.Epoch{2, 300}, epochs)

	s.SetPowerEvent(idx.Epoch(2), nil)
	require.Nil(s.GetPowerEvent(2))
}

func TestStoreCommitRollback(t *testing.T) {
	require := require.New(t)
	db := memorydb.New()
	s := NewStore(db, func(err error) { panic(err) }, LiteStoreConfig())

	s.SetEpochState(native.EpochState{Epoch: 1, MinInterval: 3600, RewardPerEpoch: big.NewInt(2500000000), Owner: "root"})
	require.True(s.IsDirty())
	require.NoError(s.Commit())
	require.False(s.IsDirty())

	es := s.GetEpochState()
	es.Epoch = 2
	s.SetEpochState(*es)
	s.SetHashPower("alice", 10)
	require.Equal(idx.Epoch(2), s.GetEpochState().Epoch)

	s.Rollback()
	require.Equal(idx.Epoch(1), s.GetEpochState().Epoch)
	require.Equal(0, big.NewInt(2500000000).Cmp(s.GetEpochState().RewardPerEpoch))
	_, ok := s.GetHashPower("alice")
	require.False(ok)

	// a second store over the same db sees only committed data
	s2 := NewStore(db, func(err error) { panic(err) }, LiteStoreConfig())
	require.Equal(idx.Epoch(1), s2.GetEpochState().Epoch)
}

func TestStoreFaultNamesTable(t *testing.T) {
	logger.SetTestMode(t)
	require := require.New(t)
	var faults []error
	s := NewStore(memorydb.New(), func(err error) {
		faults = append(faults, err)
	}, LiteStoreConfig())

	// truncated RLP list
	require.NoError(s.table.MinerTypes.Put([]byte("s9"), []byte{0xff, 0xff}))
	s.GetMinerType("s9")
	require.Len(faults, 1)
	require.Contains(faults[0].Error(), `table "m"`)

	require.NoError(s.table.HashPower.Put([]byte("alice"), []byte{0xff, 0xff}))
	s.ForEachHashPower(func(native.AccountID, uint64) bool { return true })
	require.Len(faults, 2)
	require.Contains(faults[1].Error(), `table "h"`)
}
