package integration

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/logger"
	"github.com/findsatoshi/go-fst/minerstore"
	"github.com/findsatoshi/go-fst/mining"
	"github.com/findsatoshi/go-fst/mining/mock"
	"github.com/findsatoshi/go-fst/native"
)

func testConfigs() Configs {
	cfg := Configs{
		Mining: mining.DefaultConfig(),
		Store:  minerstore.LiteStoreConfig(),
		DBs:    LiteDBsConfig(),
	}
	cfg.Mining.Owner = "root"
	return cfg
}

func testChain(t *testing.T, height idx.Block) mining.Chain {
	ctrl := gomock.NewController(t)
	chain := mock.NewMockChain(ctrl)
	chain.EXPECT().BlockHeight().Return(height).AnyTimes()
	chain.EXPECT().RandomSeed().Return(make([]byte, 32)).AnyTimes()
	return chain
}

func crit(t *testing.T) func(error) {
	return func(err error) {
		t.Fatal(err)
	}
}

func TestDbCacheFdlimit(t *testing.T) {
	require := require.New(t)

	cacher := DbCacheFdlimit(DBsCacheConfig{Table: map[string]DBCacheConfig{
		LedgerDBName: {Cache: 100, Fdlimit: 10},
		"":           {Cache: 1, Fdlimit: 2},
	}})
	cache, fdlimit := cacher(LedgerDBName)
	require.Equal(100, cache)
	require.Equal(10, fdlimit)
	cache, fdlimit = cacher("other")
	require.Equal(1, cache)
	require.Equal(2, fdlimit)

	cache, fdlimit = DbCacheFdlimit(DBsCacheConfig{})("other")
	require.Equal(0, cache)
	require.Equal(0, fdlimit)
}

func TestMakeEngineInMemory(t *testing.T) {
	require := require.New(t)
	logger.SetTestMode(t)

	engine, closeDBs, err := MakeEngine(InMemory, testConfigs(), testChain(t, 7), crit(t))
	require.NoError(err)
	defer closeDBs()

	st, err := engine.State()
	require.NoError(err)
	require.Equal(idx.Block(7), st.EpochStartAt)
	require.Equal(native.AccountID("root"), st.Owner)
	require.False(IsInitialized(InMemory))
}

func TestMakeEngineReopen(t *testing.T) {
	require := require.New(t)
	logger.SetTestMode(t)
	datadir := t.TempDir()
	cfg := testConfigs()

	require.False(IsInitialized(datadir))
	engine, closeDBs, err := MakeEngine(datadir, cfg, testChain(t, 10), crit(t))
	require.NoError(err)
	require.NoError(engine.RegisterMinerType("root", "s19", native.MinerType{Thash: 95, W: 3}))
	ids, err := engine.MintMiners("root", "alice", "gold", "s19", 2)
	require.NoError(err)
	require.NoError(engine.Charge("root", ids[0], 9))
	require.NoError(engine.PowerOn("alice", ids[0]))
	require.NoError(closeDBs())
	require.True(IsInitialized(datadir))

	// the genesis isn't re-applied at another height
	engine, closeDBs, err = MakeEngine(datadir, cfg, testChain(t, 5000), crit(t))
	require.NoError(err)
	defer closeDBs()

	st, err := engine.State()
	require.NoError(err)
	require.Equal(idx.Block(10), st.EpochStartAt)
	require.Equal(uint64(95), st.TotalThash)
	require.Equal(2, engine.CountMinersByOwner("alice"))
	tok, err := engine.Token(ids[0])
	require.NoError(err)
	require.Equal(native.PowerOn, tok.Switch)
	require.Equal(idx.Epoch(3), tok.PowerDeadline)
	require.NoError(engine.Verify())

	res, err := engine.SettleEpoch("root")
	require.NoError(err)
	require.Equal(native.AccountID("alice"), res.Producer)
}
