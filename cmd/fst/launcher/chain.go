package launcher

import (
	"crypto/rand"

	"github.com/ethereum/go-ethereum/common"
	"github.com/unicornultrafoundation/go-helios/native/idx"
	"gopkg.in/urfave/cli.v1"

	"github.com/findsatoshi/go-fst/cmd/utils"
)

// cliChain stands for the host ledger, the block height and seed come from flags.
type cliChain struct {
	height idx.Block
	seed   []byte
}

func makeChain(ctx *cli.Context) *cliChain {
	c := &cliChain{
		height: idx.Block(ctx.Uint64(BlockFlag.Name)),
	}
	if hex := ctx.String(SeedFlag.Name); hex != "" {
		c.seed = common.FromHex(hex)
		if len(c.seed) == 0 {
			utils.Fatalf("Invalid seed %q", hex)
		}
	}
	return c
}

func (c *cliChain) BlockHeight() idx.Block {
	return c.height
}

func (c *cliChain) RandomSeed() []byte {
	if c.seed == nil {
		c.seed = make([]byte, 32)
		if _, err := rand.Read(c.seed); err != nil {
			utils.Fatalf("Failed to read random seed: %v", err)
		}
	}
	return c.seed
}
