package integration

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/findsatoshi/go-fst/minerstore"
	"github.com/findsatoshi/go-fst/mining"
)

// LedgerDBName is the name of the database holding all the ledger tables.
const LedgerDBName = "fst"

type Configs struct {
	Mining mining.Config
	Store  minerstore.StoreConfig
	DBs    DBsConfig
}

// MakeStore opens the ledger store under the datadir.
func MakeStore(datadir string, cfg Configs, crit func(error)) (*minerstore.Store, func() error, error) {
	if err := MakeDBDirs(datadir); err != nil {
		return nil, nil, err
	}
	producer := SupportedDB(datadir, cfg.DBs.RuntimeCache)
	db, err := producer.OpenDB(LedgerDBName)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open %s database", LedgerDBName)
	}
	store := minerstore.NewStore(db, crit, cfg.Store)
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	log.Debug("Ledger store is opened", "datadir", datadir)
	return store, store.Close, nil
}

// MakeEngine opens the store and builds the engine over it.
// The genesis epoch state is written if the ledger is blank.
func MakeEngine(datadir string, cfg Configs, chain mining.Chain, crit func(error)) (*mining.Engine, func() error, error) {
	store, closeDB, err := MakeStore(datadir, cfg, crit)
	if err != nil {
		return nil, nil, err
	}
	engine := mining.New(cfg.Mining, store, chain)
	if store.GetEpochState() == nil {
		if err := engine.Genesis(); err != nil {
			engine.Close()
			_ = closeDB()
			return nil, nil, errors.WithMessage(err, "failed to apply genesis")
		}
		log.Info("Applied genesis", "owner", cfg.Mining.Owner)
	}
	return engine, func() error {
		engine.Close()
		return closeDB()
	}, nil
}
