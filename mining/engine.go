package mining

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/findsatoshi/go-fst/logger"
	"github.com/findsatoshi/go-fst/minerstore"
	"github.com/findsatoshi/go-fst/native"
)

// Engine is the miner ledger: token ownership, power accounting and epoch settlement.
// Every public operation is atomic: it either commits all of its writes and
// publishes its events, or leaves the store untouched and publishes nothing.
type Engine struct {
	cfg   Config
	store *minerstore.Store
	chain Chain

	mu      sync.Mutex
	pending []Event

	feed  event.Feed
	scope event.SubscriptionScope

	logger.Instance
}

// New creates the engine over the store.
func New(cfg Config, store *minerstore.Store, chain Chain) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		chain:    chain,
		Instance: logger.New("mining"),
	}
}

// SubscribeEvents subscribes to the events of committed operations.
// Events are delivered while the engine is locked, so batches arrive in commit order
// and every operation waits until all the subscribers have received its batch.
// A slow subscriber stalls the whole ledger; drain the channel promptly or buffer it.
// The subscriber must not call the engine from the receiving goroutine.
func (e *Engine) SubscribeEvents(ch chan<- []Event) event.Subscription {
	return e.scope.Track(e.feed.Subscribe(ch))
}

// Close unsubscribes all the subscribers.
func (e *Engine) Close() {
	e.scope.Close()
}

// Genesis writes the initial epoch state unless it's written already.
func (e *Engine) Genesis() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	return e.exec("genesis", func() error {
		if e.store.GetEpochState() != nil {
			return nil
		}
		e.store.SetEpochState(native.EpochState{
			Epoch:          0,
			EpochStartAt:   e.chain.BlockHeight(),
			MinInterval:    e.cfg.MinInterval,
			RewardPerEpoch: new(big.Int).SetUint64(e.cfg.RewardPerEpoch),
			Owner:          e.cfg.Owner,
		})
		return nil
	})
}

// exec runs the operation as a single atomic unit.
func (e *Engine) exec(op string, fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = nil
	err := fn()
	if err == nil {
		err = e.store.Commit()
		if err != nil {
			err = errors.Wrapf(ErrInternal, "commit: %v", err)
		}
	}
	if err != nil {
		e.store.Rollback()
		e.pending = nil
		e.onFailure(op, err)
		return err
	}

	events := e.pending
	e.pending = nil
	e.onSuccess(op)
	if len(events) != 0 {
		// blocks until every subscriber takes the batch
		e.feed.Send(events)
	}
	return nil
}

// execState runs the operation over the epoch state, which is written back on success.
func (e *Engine) execState(op string, fn func(st *native.EpochState) error) error {
	return e.exec(op, func() error {
		st := e.store.GetEpochState()
		if st == nil {
			return ErrNoGenesis
		}
		if err := fn(st); err != nil {
			return err
		}
		e.store.SetEpochState(*st)
		return nil
	})
}

func (e *Engine) emit(ev Event) {
	e.pending = append(e.pending, ev)
}

func (e *Engine) onSuccess(op string) {
	opsCounter.WithLabelValues(op).Inc()
	if st := e.store.GetEpochState(); st != nil {
		epochGauge.Set(float64(st.Epoch))
		totalThashGauge.Set(float64(st.TotalThash))
	}
}

func (e *Engine) onFailure(op string, err error) {
	class := errorClass(err)
	failuresCounter.WithLabelValues(op, class).Inc()
	if class == "internal" {
		e.Log.Error("Ledger invariant violated", "op", op, "err", err)
		logger.ReportFault("mining", err, logrus.Fields{"op": op})
		return
	}
	e.Log.Debug("Operation rejected", "op", op, "err", err)
}

// checkOwner fails unless the caller is the contract owner.
func (e *Engine) checkOwner(st *native.EpochState, caller native.AccountID, op string) error {
	if caller != st.Owner {
		e.Log.Debug("Caller is not the contract owner", "caller", caller, "owner", st.Owner, "op", op)
		return errors.Wrapf(ErrNotAuthorized, "%s by %s", op, caller)
	}
	return nil
}

func (e *Engine) ledger(st *native.EpochState) hashPowerLedger {
	return hashPowerLedger{store: e.store, state: st}
}

func (e *Engine) scheduler() powerScheduler {
	return powerScheduler{store: e.store}
}

func (e *Engine) index() ownerIndex {
	return ownerIndex{store: e.store}
}

func (e *Engine) getToken(id native.TokenID) (*native.Token, error) {
	t := e.store.GetToken(id)
	if t == nil {
		return nil, errors.Wrapf(ErrNotFound, "token %s", id)
	}
	return t, nil
}

func (e *Engine) getMinerType(t *native.Token) (*native.MinerType, error) {
	mt := e.store.GetMinerType(t.MinerMetadataID)
	if mt == nil {
		return nil, errors.Wrapf(ErrNotFound, "miner type %s of %s", t.MinerMetadataID, t.ID())
	}
	return mt, nil
}

// batch applies op to each id as a separate atomic unit and stops at the first failure.
// It returns the ids processed successfully.
func batch(ids []native.TokenID, op func(id native.TokenID) error) ([]native.TokenID, error) {
	done := make([]native.TokenID, 0, len(ids))
	for _, id := range ids {
		if err := op(id); err != nil {
			return done, err
		}
		done = append(done, id)
	}
	return done, nil
}
