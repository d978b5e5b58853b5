package integration

import (
	"io"
	"os"
	"path"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/u2udb"
	"github.com/unicornultrafoundation/go-helios/u2udb/leveldb"
	"github.com/unicornultrafoundation/go-helios/u2udb/memorydb"
)

// InMemory is the datadir value which keeps all the databases in memory.
const InMemory = "inmemory"

type DBCacheConfig struct {
	Cache   uint64
	Fdlimit uint64
}

type DBsCacheConfig struct {
	Table map[string]DBCacheConfig
}

type DBsConfig struct {
	RuntimeCache DBsCacheConfig
}

// SupportedDB returns the producer of the ledger databases under the datadir.
func SupportedDB(datadir string, cfg DBsCacheConfig) u2udb.IterableDBProducer {
	if datadir == InMemory || datadir == "" {
		return memorydb.NewProducer("")
	}
	return leveldb.NewProducer(path.Join(datadir, "leveldb"), DbCacheFdlimit(cfg))
}

// DbCacheFdlimit returns the cache and handles of each database, the "" entry is the default.
func DbCacheFdlimit(cfg DBsCacheConfig) func(string) (int, int) {
	return func(name string) (int, int) {
		if cache, ok := cfg.Table[name]; ok {
			return int(cache.Cache), int(cache.Fdlimit)
		}
		return int(cfg.Table[""].Cache), int(cfg.Table[""].Fdlimit)
	}
}

// MakeDBDirs creates the datadir layout.
func MakeDBDirs(datadir string) error {
	if datadir == InMemory || datadir == "" {
		return nil
	}
	if err := os.MkdirAll(path.Join(datadir, "leveldb"), 0700); err != nil {
		return errors.Wrap(err, "failed to create leveldb directory")
	}
	return nil
}

func isEmpty(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return true
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	return err == io.EOF
}

// IsInitialized reports whether the datadir holds a ledger.
func IsInitialized(datadir string) bool {
	if datadir == InMemory || datadir == "" {
		return false
	}
	initialized := !isEmpty(path.Join(datadir, "leveldb"))
	log.Debug("Checked datadir", "path", datadir, "initialized", initialized)
	return initialized
}
