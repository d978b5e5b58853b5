package minerstore

import (
	"github.com/unicornultrafoundation/go-helios/utils/cachescale"
)

type (
	// StoreCacheConfig is a config for the store caches.
	StoreCacheConfig struct {
		// Cache size for tokens (number of records).
		TokensNum int
		// Cache size for miner types (number of records).
		MinerTypesNum int
	}
	// StoreConfig is a config for the miner store.
	StoreConfig struct {
		Cache StoreCacheConfig
	}
)

// DefaultStoreConfig for product.
func DefaultStoreConfig(scale cachescale.Func) StoreConfig {
	return StoreConfig{
		Cache: StoreCacheConfig{
			TokensNum:     scale.I(20000),
			MinerTypesNum: scale.I(500),
		},
	}
}

// LiteStoreConfig is for tests or inmemory.
func LiteStoreConfig() StoreConfig {
	return DefaultStoreConfig(cachescale.Ratio{Base: 10, Target: 1})
}
