package minerstore

import (
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/u2udb"
	"github.com/unicornultrafoundation/go-helios/u2udb/flushable"
	"github.com/unicornultrafoundation/go-helios/u2udb/memorydb"
	"github.com/unicornultrafoundation/go-helios/u2udb/table"

	"github.com/findsatoshi/go-fst/logger"
	"github.com/findsatoshi/go-fst/native"
)

// Store is the miner ledger persistent storage working over a key-value database.
// All writes land in an in-memory overlay until Commit is called.
type Store struct {
	cfg  StoreConfig
	crit func(error)

	mainDB u2udb.Store
	dirty  *flushable.Flushable

	table struct {
		Tokens      u2udb.Store `table:"t"`
		MinerTypes  u2udb.Store `table:"m"`
		OwnerTypes  u2udb.Store `table:"o"`
		OwnerTokens u2udb.Store `table:"l"`
		PowerEvents u2udb.Store `table:"p"`
		HashPower   u2udb.Store `table:"h"`
		Scalars     u2udb.Store `table:"s"`
		Version     u2udb.Store `table:"v"`
	}

	cache struct {
		Tokens     *lru.Cache `cache:"-"` // store by value
		MinerTypes *lru.Cache `cache:"-"` // store by value
		EpochState *native.EpochState
	}

	logger.Instance
}

// NewStore creates store over key-value db.
func NewStore(mainDB u2udb.Store, crit func(error), cfg StoreConfig) *Store {
	s := &Store{
		cfg:      cfg,
		crit:     crit,
		mainDB:   mainDB,
		dirty:    flushable.Wrap(mainDB),
		Instance: logger.New("miner-store"),
	}

	table.MigrateTables(&s.table, s.dirty)

	s.initCache()

	return s
}

// NewMemStore creates store over memory map.
// Store is always blank.
func NewMemStore() *Store {
	crit := func(err error) {
		panic(err)
	}
	return NewStore(memorydb.New(), crit, LiteStoreConfig())
}

func (s *Store) initCache() {
	s.cache.Tokens = s.makeCache(s.cfg.Cache.TokensNum)
	s.cache.MinerTypes = s.makeCache(s.cfg.Cache.MinerTypesNum)
}

func (s *Store) purgeCache() {
	s.cache.Tokens.Purge()
	s.cache.MinerTypes.Purge()
	s.cache.EpochState = nil
}

// Commit flushes all the pending changes into the underlying database.
func (s *Store) Commit() error {
	return s.dirty.Flush()
}

// Rollback drops all the pending changes.
func (s *Store) Rollback() {
	s.dirty.DropNotFlushed()
	s.purgeCache()
}

// IsDirty reports whether there are changes not committed yet.
func (s *Store) IsDirty() bool {
	return s.dirty.NotFlushedSizeEst() != 0
}

// Close leaves underlying database.
func (s *Store) Close() error {
	s.Rollback()
	table.MigrateTables(&s.table, nil)
	return s.mainDB.Close()
}

/*
 * Utils:
 */

// set RLP value
func (s *Store) set(table u2udb.Store, key []byte, val interface{}) {
	buf, err := rlp.EncodeToBytes(val)
	if err != nil {
		s.fault(table, err)
	}

	if err := table.Put(key, buf); err != nil {
		s.fault(table, err)
	}
}

// get RLP value
func (s *Store) get(table u2udb.Store, key []byte, to interface{}) interface{} {
	buf, err := table.Get(key)
	if err != nil {
		s.fault(table, err)
	}
	if buf == nil {
		return nil
	}

	s.decode(table, buf, to)
	return to
}

func (s *Store) has(table u2udb.Store, key []byte) bool {
	ok, err := table.Has(key)
	if err != nil {
		s.fault(table, err)
	}
	return ok
}

func (s *Store) delete(table u2udb.Store, key []byte) {
	if err := table.Delete(key); err != nil {
		s.fault(table, err)
	}
}

// forEach iterates the table in key order until fn returns false.
func (s *Store) forEach(table u2udb.Store, start []byte, fn func(key, val []byte) bool) {
	it := table.NewIterator(nil, start)
	defer it.Release()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	if err := it.Error(); err != nil {
		s.fault(table, err)
	}
}

func (s *Store) decode(table u2udb.Store, buf []byte, to interface{}) {
	if err := rlp.DecodeBytes(buf, to); err != nil {
		s.fault(table, err)
	}
}

// fault passes the error of the table to the crit callback.
func (s *Store) fault(table u2udb.Store, err error) {
	s.crit(errors.Wrapf(err, "table %q", s.tableName(table)))
}

func (s *Store) tableName(table u2udb.Store) string {
	switch table {
	case s.table.Tokens:
		return "t"
	case s.table.MinerTypes:
		return "m"
	case s.table.OwnerTypes:
		return "o"
	case s.table.OwnerTokens:
		return "l"
	case s.table.PowerEvents:
		return "p"
	case s.table.HashPower:
		return "h"
	case s.table.Scalars:
		return "s"
	case s.table.Version:
		return "v"
	}
	return "?"
}

func (s *Store) makeCache(size int) *lru.Cache {
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New(size)
	if err != nil {
		s.crit(err)
	}
	return cache
}
