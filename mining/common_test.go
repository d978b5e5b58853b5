package mining

import (
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/logger"
	"github.com/findsatoshi/go-fst/minerstore"
	"github.com/findsatoshi/go-fst/mining/mock"
	"github.com/findsatoshi/go-fst/native"
)

const testOwner = native.AccountID("root")

type testEnv struct {
	*Engine
	store  *minerstore.Store
	height idx.Block
	seed   []byte
	events chan []Event
}

func newTestEnv(t *testing.T, mods ...func(*Config)) *testEnv {
	logger.SetTestMode(t)

	ctrl := gomock.NewController(t)
	chain := mock.NewMockChain(ctrl)

	env := &testEnv{
		store:  minerstore.NewMemStore(),
		height: 100,
		seed:   make([]byte, 32),
		events: make(chan []Event, 1000),
	}
	chain.EXPECT().BlockHeight().
		DoAndReturn(func() idx.Block { return env.height }).
		AnyTimes()
	chain.EXPECT().RandomSeed().
		DoAndReturn(func() []byte { return env.seed }).
		AnyTimes()

	cfg := DefaultConfig()
	cfg.Owner = testOwner
	for _, mod := range mods {
		mod(&cfg)
	}
	env.Engine = New(cfg, env.store, chain)
	require.NoError(t, env.Genesis())

	sub := env.SubscribeEvents(env.events)
	t.Cleanup(sub.Unsubscribe)

	return env
}

// takeEvents returns the events published so far.
func (env *testEnv) takeEvents() []Event {
	var res []Event
	for {
		select {
		case evs := <-env.events:
			res = append(res, evs...)
		default:
			return res
		}
	}
}

func eventTypes(evs []Event) []EventType {
	res := make([]EventType, len(evs))
	for i, ev := range evs {
		res[i] = ev.Type
	}
	return res
}

func (env *testEnv) addMinerType(t *testing.T, id native.MinerTypeID, thash native.Thash, w uint32) {
	require.NoError(t, env.RegisterMinerType(testOwner, id, native.MinerType{
		Producer: "bitmain",
		Category: "asic",
		Thash:    thash,
		W:        w,
	}))
}

// mint creates charged miners.
func (env *testEnv) mint(t *testing.T, owner native.AccountID, meta native.MetadataID, typeID native.MinerTypeID, quantity, power uint32) []native.TokenID {
	ids, err := env.MintMiners(testOwner, owner, meta, typeID, quantity)
	require.NoError(t, err)
	if power != 0 {
		for _, id := range ids {
			require.NoError(t, env.Charge(testOwner, id, power))
		}
	}
	env.takeEvents()
	return ids
}

func (env *testEnv) token(t *testing.T, id native.TokenID) native.Token {
	tok, err := env.Token(id)
	require.NoError(t, err)
	return tok
}

// settle waits for the settlement interval and settles the epoch.
func (env *testEnv) settle(t *testing.T) SettleResult {
	st, err := env.State()
	require.NoError(t, err)
	env.height = st.EpochStartAt + st.MinInterval
	res, err := env.SettleEpoch(testOwner)
	require.NoError(t, err)
	env.verify(t)
	return res
}

func (env *testEnv) verify(t *testing.T) {
	if err := env.Verify(); err != nil {
		t.Fatalf("%v\n%s", err, env.dump())
	}
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// dump renders every table of the store.
func (env *testEnv) dump() string {
	type leaf struct {
		Owner native.AccountID
		Meta  native.MetadataID
		IDs   []native.TokenID
	}
	var state struct {
		Epoch       native.EpochState
		Tokens      []native.Token
		MinerTypes  map[native.MinerTypeID]native.MinerType
		OwnerTypes  map[native.AccountID][]native.MetadataID
		OwnerTokens []leaf
		HashPower   map[native.AccountID]uint64
		PowerEvents map[idx.Epoch][]native.TokenID
	}
	state.MinerTypes = map[native.MinerTypeID]native.MinerType{}
	state.OwnerTypes = map[native.AccountID][]native.MetadataID{}
	state.HashPower = map[native.AccountID]uint64{}
	state.PowerEvents = map[idx.Epoch][]native.TokenID{}

	s := env.store
	if es := s.GetEpochState(); es != nil {
		state.Epoch = *es
	}
	s.ForEachToken(func(t *native.Token) bool {
		state.Tokens = append(state.Tokens, *t)
		return true
	})
	s.ForEachMinerType("", func(id native.MinerTypeID, mt *native.MinerType) bool {
		state.MinerTypes[id] = *mt
		return true
	})
	s.ForEachOwnerTypes(func(owner native.AccountID, list []native.MetadataID) bool {
		state.OwnerTypes[owner] = list
		return true
	})
	s.ForEachOwnerTokens(func(owner native.AccountID, meta native.MetadataID, ids []native.TokenID) bool {
		state.OwnerTokens = append(state.OwnerTokens, leaf{owner, meta, ids})
		return true
	})
	s.ForEachHashPower(func(owner native.AccountID, v uint64) bool {
		state.HashPower[owner] = v
		return true
	})
	s.ForEachPowerEvent(func(epoch idx.Epoch, ids []native.TokenID) bool {
		state.PowerEvents[epoch] = ids
		return true
	})
	return dumper.Sdump(state)
}

// requireRejected checks the operation failed with the expected error without any effect.
func (env *testEnv) requireRejected(t *testing.T, expected error, op func() error) {
	before := env.dump()
	err := op()
	require.ErrorIs(t, err, expected)
	require.Empty(t, env.takeEvents())
	require.Equal(t, before, env.dump())
}

// seedFor returns the random seed which draws the value out of total.
func seedFor(value, total uint64) []byte {
	num := new(big.Int).Lsh(new(big.Int).SetUint64(value), 8*seedWidth)
	den := new(big.Int).SetUint64(total)
	num.Add(num, new(big.Int).Sub(den, big.NewInt(1)))
	num.Div(num, den)

	seed := make([]byte, 32)
	num.FillBytes(seed[:seedWidth])
	return seed
}
