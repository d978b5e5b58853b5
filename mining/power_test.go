package mining

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

func TestPowerScenario(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	env.addMinerType(t, "M", 100, 10)
	x := env.mint(t, "alice", "gold", "M", 1, 35)[0]

	require.NoError(env.PowerOn("alice", x))
	env.verify(t)

	tok := env.token(t, x)
	require.Equal(native.PowerOn, tok.Switch)
	require.Equal(uint32(5), tok.PowerLeft)
	require.Equal(idx.Epoch(3), tok.PowerDeadline)
	require.Equal(uint64(100), env.HashPowerOf("alice"))
	require.Equal([]native.TokenID{x}, env.PowerEventAt(3))
	st, err := env.State()
	require.NoError(err)
	require.Equal(uint64(100), st.TotalThash)

	evs := env.takeEvents()
	require.Len(evs, 1)
	require.Equal(EventPowerOn, evs[0].Type)
	require.Equal(x, evs[0].Token)
	require.Equal(uint64(3), evs[0].Value)

	for epoch := idx.Epoch(0); epoch < 2; epoch++ {
		res := env.settle(t)
		require.Equal(epoch, res.Epoch)
		require.Equal(native.AccountID("alice"), res.Producer)
		require.Empty(res.Expired)
		require.Equal(native.PowerOn, env.token(t, x).Switch)
	}

	res := env.settle(t)
	require.Equal(idx.Epoch(2), res.Epoch)
	require.Equal([]native.TokenID{x}, res.Expired)

	tok = env.token(t, x)
	require.Equal(native.PowerOff, tok.Switch)
	require.Equal(uint32(5), tok.PowerLeft)
	require.Equal(uint64(0), env.HashPowerOf("alice"))
	require.Empty(env.HashPowerTable())
	require.Nil(env.PowerEventAt(3))
	st, err = env.State()
	require.NoError(err)
	require.Equal(idx.Epoch(3), st.Epoch)
	require.Equal(uint64(0), st.TotalThash)

	var expired []Event
	for _, ev := range env.takeEvents() {
		if ev.Type == EventPowerExpired {
			expired = append(expired, ev)
		}
	}
	require.Len(expired, 1)
	require.Equal(x, expired[0].Token)
	require.Equal(idx.Epoch(3), expired[0].Epoch)

	// nothing is powered, the fallback produces
	res = env.settle(t)
	require.Equal(testOwner, res.Producer)

	// what's left isn't enough for an epoch
	env.requireRejected(t, ErrInsufficientPower, func() error {
		return env.PowerOn("alice", x)
	})
}

func TestPowerRoundTrip(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	env.addMinerType(t, "M", 100, 10)

	for i, p := range []uint32{10, 35, 40, 99, 1000} {
		id := env.mint(t, "alice", native.MetadataID(string(rune('a'+i))), "M", 1, p)[0]
		require.NoError(env.PowerOn("alice", id))
		require.NoError(env.PowerOff("alice", id))
		env.verify(t)

		tok := env.token(t, id)
		require.Equal(p, tok.PowerLeft)
		require.Equal(native.PowerOff, tok.Switch)
	}
	require.Empty(env.HashPowerTable())
	require.Equal([]EventType{EventPowerOn, EventPowerOff}, eventTypes(env.takeEvents())[:2])
}

func TestPowerOffRefund(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	env.addMinerType(t, "M", 100, 10)
	x := env.mint(t, "alice", "gold", "M", 1, 35)[0]

	require.NoError(env.PowerOn("alice", x))
	env.settle(t)
	env.takeEvents()

	require.NoError(env.PowerOff("alice", x))
	env.verify(t)

	// two whole epochs are left
	require.Equal(uint32(25), env.token(t, x).PowerLeft)
	require.Nil(env.PowerEventAt(3))

	evs := env.takeEvents()
	require.Len(evs, 1)
	require.Equal(EventPowerOff, evs[0].Type)
	require.Equal(uint64(20), evs[0].Value)
}

func TestPowerChecks(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	env.addMinerType(t, "M", 100, 10)
	ids := env.mint(t, "alice", "gold", "M", 3, 35)
	weak := env.mint(t, "alice", "weak", "M", 1, 9)[0]

	env.requireRejected(t, ErrNotFound, func() error {
		return env.PowerOn("alice", "gold#7")
	})
	env.requireRejected(t, ErrForbidden, func() error {
		return env.PowerOn("bob", ids[0])
	})
	env.requireRejected(t, ErrInsufficientPower, func() error {
		return env.PowerOn("alice", weak)
	})
	env.requireRejected(t, ErrNotFound, func() error {
		return env.PowerOff("alice", "gold#7")
	})
	env.requireRejected(t, ErrForbidden, func() error {
		return env.PowerOff("bob", ids[0])
	})

	// switched off already
	require.NoError(env.PowerOff("alice", ids[0]))
	require.Empty(env.takeEvents())

	// switched on already
	require.NoError(env.PowerOn("alice", ids[0]))
	require.Len(env.takeEvents(), 1)
	require.NoError(env.PowerOn("alice", ids[0]))
	require.Empty(env.takeEvents())
	require.Equal(uint32(5), env.token(t, ids[0]).PowerLeft)

	// malfunctioning miners can't be switched on, but can be switched off
	require.NoError(env.SetStatus(testOwner, ids[1], native.StatusMalfunction))
	require.NoError(env.SetStatus(testOwner, ids[0], native.StatusMalfunction))
	env.takeEvents()
	require.NoError(env.PowerOn("alice", ids[1]))
	require.Empty(env.takeEvents())
	require.Equal(native.PowerOff, env.token(t, ids[1]).Switch)
	require.NoError(env.PowerOff("alice", ids[0]))
	require.Equal(native.PowerOff, env.token(t, ids[0]).Switch)

	// a delegated miner is controlled by neither the owner nor the operator alone
	tok := env.store.GetToken(ids[2])
	tok.Operator = "pool"
	env.store.SetToken(tok)
	require.NoError(env.store.Commit())
	env.requireRejected(t, ErrForbidden, func() error {
		return env.PowerOn("alice", ids[2])
	})
	env.requireRejected(t, ErrForbidden, func() error {
		return env.PowerOn("pool", ids[2])
	})

	env.verify(t)
}

func TestBatchPower(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	env.addMinerType(t, "M", 100, 10)
	ids := env.mint(t, "alice", "gold", "M", 2, 35)

	done, err := env.BatchPowerOn("alice", []native.TokenID{ids[0], "gold#9", ids[1]})
	require.ErrorIs(err, ErrNotFound)
	require.Equal([]native.TokenID{ids[0]}, done)
	require.Equal(native.PowerOn, env.token(t, ids[0]).Switch)
	require.Equal(native.PowerOff, env.token(t, ids[1]).Switch)
	env.verify(t)

	done, err = env.BatchPowerOn("alice", ids)
	require.NoError(err)
	require.Equal(ids, done)
	require.Equal(uint64(200), env.HashPowerOf("alice"))
	require.Equal(ids, env.PowerEventAt(3))

	done, err = env.BatchPowerOff("alice", ids)
	require.NoError(err)
	require.Equal(ids, done)
	require.Empty(env.HashPowerTable())
	env.verify(t)
}
