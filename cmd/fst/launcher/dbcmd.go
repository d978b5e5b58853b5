package launcher

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/findsatoshi/go-fst/cmd/utils"
)

var (
	dbCommand = cli.Command{
		Name:        "db",
		Usage:       "A set of commands related to leveldb database",
		Category:    "DB COMMANDS",
		Description: "",
		Subcommands: []cli.Command{
			{
				Name:      "check",
				Usage:     "Check the ledger invariants",
				ArgsUsage: "",
				Action:    utils.MigrateFlags(checkDB),
				Category:  "DB COMMANDS",
				Flags: []cli.Flag{
					DataDirFlag,
				},
				Description: `
fst db check
walks all the ledger tables and checks that the owner index, the hash-power
ledger and the power scheduler agree with the miners.
`,
			},
		},
	}
)

func checkDB(ctx *cli.Context) error {
	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	if err := engine.Verify(); err != nil {
		log.Error("Ledger is inconsistent", "err", err)
		return err
	}
	fmt.Fprintln(ctx.App.Writer, "Ledger is consistent")
	return nil
}
