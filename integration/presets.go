package integration

import (
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/unicornultrafoundation/go-helios/utils/cachescale"
)

// DefaultDBsConfig is the runtime leveldb setup of the ledger.
func DefaultDBsConfig(scale func(uint64) uint64, fdlimit uint64) DBsConfig {
	return DBsConfig{
		RuntimeCache: DBsCacheConfig{
			Table: map[string]DBCacheConfig{
				LedgerDBName: {
					Cache:   scale(128 * opt.MiB),
					Fdlimit: fdlimit*90/100 + 1,
				},
				"": {
					Cache:   scale(16 * opt.MiB),
					Fdlimit: fdlimit*10/100 + 1,
				},
			},
		},
	}
}

// LiteDBsConfig is for tests and short-lived commands.
func LiteDBsConfig() DBsConfig {
	return DefaultDBsConfig(cachescale.Ratio{Base: 10, Target: 1}.U64, 32)
}
