package mining

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

func TestSettleGuard(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	env.height = 100 + 3600
	env.requireRejected(t, ErrNotAuthorized, func() error {
		_, err := env.SettleEpoch("alice")
		return err
	})

	env.height = 100 + 3599
	env.requireRejected(t, ErrTooSoon, func() error {
		_, err := env.SettleEpoch(testOwner)
		return err
	})

	env.height = 99
	env.requireRejected(t, ErrTooSoon, func() error {
		_, err := env.SettleEpoch(testOwner)
		return err
	})

	env.height = 100 + 3600
	res, err := env.SettleEpoch(testOwner)
	require.NoError(err)
	require.Equal(idx.Epoch(0), res.Epoch)
	require.Equal(testOwner, res.Producer)

	st, err := env.State()
	require.NoError(err)
	require.Equal(idx.Epoch(1), st.Epoch)
	require.Equal(idx.Block(3700), st.EpochStartAt)

	evs := env.takeEvents()
	require.Equal([]EventType{EventRandomDraw, EventProducer, EventReward}, eventTypes(evs))
	reward := evs[2]
	require.Equal(testOwner, reward.Account)
	require.Equal(idx.Epoch(0), reward.Epoch)
	require.Equal(0, big.NewInt(2500000000).Cmp(reward.Amount))
	require.Equal("Send 2500000000 vBTC to root in epoch 0.", reward.String())

	// the interval counts from the last settlement
	env.requireRejected(t, ErrTooSoon, func() error {
		_, err := env.SettleEpoch(testOwner)
		return err
	})
}

func TestSettlePermissionless(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, func(cfg *Config) {
		cfg.Permissionless = true
		cfg.MinInterval = 10
	})

	env.height = 110
	_, err := env.SettleEpoch("keeper")
	require.NoError(err)

	evs := env.takeEvents()
	require.Len(evs, 3)
	require.Equal(native.AccountID("keeper"), evs[2].Receiver)

	env.height = 115
	_, err = env.SettleEpoch("keeper")
	require.ErrorIs(err, ErrTooSoon)
}

func TestSettleLottery(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	env.addMinerType(t, "A300", 300, 1)
	env.addMinerType(t, "B700", 700, 1)
	a := env.mint(t, "alice", "a", "A300", 1, 100)[0]
	b := env.mint(t, "bob", "b", "B700", 1, 100)[0]
	require.NoError(env.PowerOn("alice", a))
	require.NoError(env.PowerOn("bob", b))
	env.takeEvents()

	for _, c := range []struct {
		value    uint64
		producer native.AccountID
	}{
		{250, "alice"},
		{650, "bob"},
		{0, "alice"},
		{299, "alice"},
		{300, "bob"},
		{999, "bob"},
	} {
		env.seed = seedFor(c.value, 1000)
		res := env.settle(t)
		require.Equal(c.value, res.Value)
		require.Equal(c.producer, res.Producer, c.value)

		evs := env.takeEvents()
		require.Equal(EventRandomDraw, evs[0].Type)
		require.Equal(c.value, evs[0].Value)
		require.Equal(EventProducer, evs[1].Type)
		require.Equal(c.producer, evs[1].Account)
		require.Equal(c.producer, evs[2].Account)
	}
}

func TestSettleDrainsWholeEpoch(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	env.addMinerType(t, "M", 5, 10)
	alice := env.mint(t, "alice", "gold", "M", 3, 10)
	bob := env.mint(t, "bob", "silver", "M", 2, 20)

	_, err := env.BatchPowerOn("alice", alice)
	require.NoError(err)
	_, err = env.BatchPowerOn("bob", bob)
	require.NoError(err)
	require.Equal(uint64(15), env.HashPowerOf("alice"))
	require.Equal(uint64(10), env.HashPowerOf("bob"))

	res := env.settle(t)
	require.ElementsMatch(alice, res.Expired)
	require.Equal(uint64(0), env.HashPowerOf("alice"))
	require.Equal(uint64(10), env.HashPowerOf("bob"))

	res = env.settle(t)
	require.ElementsMatch(bob, res.Expired)
	require.Empty(env.HashPowerTable())
}

func TestSettleShortSeed(t *testing.T) {
	env := newTestEnv(t)
	env.seed = []byte{1, 2, 3}
	env.height = 100 + 3600

	env.requireRejected(t, ErrInternal, func() error {
		_, err := env.SettleEpoch(testOwner)
		return err
	})
}
