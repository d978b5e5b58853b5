package mining

import (
	"github.com/unicornultrafoundation/go-helios/native/idx"
)

// Chain is the ledger the engine is executed by.
type Chain interface {
	// BlockHeight returns the height of the block being executed.
	BlockHeight() idx.Block
	// RandomSeed returns the unpredictable seed of the block being executed.
	// At least 16 bytes are required.
	RandomSeed() []byte
}
