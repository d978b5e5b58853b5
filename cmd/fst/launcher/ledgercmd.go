package launcher

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/findsatoshi/go-fst/cmd/utils"
	"github.com/findsatoshi/go-fst/integration"
	"github.com/findsatoshi/go-fst/mining"
	"github.com/findsatoshi/go-fst/native"
)

var (
	initCommand = cli.Command{
		Action:    utils.MigrateFlags(initLedger),
		Name:      "init",
		Usage:     "Initialize a blank ledger",
		ArgsUsage: "",
		Flags: []cli.Flag{
			OwnerFlag,
			IntervalFlag,
			PermissionlessFlag,
			BlockFlag,
		},
		Category: "LEDGER COMMANDS",
		Description: `
fst init --mining.owner <account> [--mining.interval <blocks>] [--block <height>]
writes the first epoch state into the datadir. The epoch starts at the block.
`,
	}
	minerTypeCommand = cli.Command{
		Name:     "minertype",
		Usage:    "Manage miner types",
		Category: "LEDGER COMMANDS",
		Subcommands: []cli.Command{
			{
				Action:    utils.MigrateFlags(addMinerType),
				Name:      "add",
				Usage:     "Register a miner type",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					FromFlag,
					ProducerFlag,
					CategoryFlag,
					ThashFlag,
					WFlag,
				},
			},
			{
				Action: utils.MigrateFlags(listMinerTypes),
				Name:   "list",
				Usage:  "List miner types",
				Flags: []cli.Flag{
					FromIndexFlag,
					LimitFlag,
				},
			},
		},
	}
	mintCommand = cli.Command{
		Action:    utils.MigrateFlags(mint),
		Name:      "mint",
		Usage:     "Mint switched-off miners",
		ArgsUsage: "<owner> <metadata id> <miner type>",
		Flags: []cli.Flag{
			FromFlag,
			QuantityFlag,
		},
		Category: "LEDGER COMMANDS",
	}
	chargeCommand = cli.Command{
		Action:    utils.MigrateFlags(charge),
		Name:      "charge",
		Usage:     "Add power to a miner",
		ArgsUsage: "<token id> <units>",
		Flags: []cli.Flag{
			FromFlag,
		},
		Category: "LEDGER COMMANDS",
	}
	setStatusCommand = cli.Command{
		Action:    utils.MigrateFlags(setStatus),
		Name:      "setstatus",
		Usage:     "Mark a miner normal or malfunctioning",
		ArgsUsage: "<token id> <normal|malfunction>",
		Flags: []cli.Flag{
			FromFlag,
		},
		Category: "LEDGER COMMANDS",
	}
	transferCommand = cli.Command{
		Action:    utils.MigrateFlags(transfer),
		Name:      "transfer",
		Usage:     "Transfer miners",
		ArgsUsage: "<receiver> <token id> [<token id>...]",
		Flags: []cli.Flag{
			FromFlag,
			EnforceOwnerFlag,
			MemoFlag,
		},
		Category: "LEDGER COMMANDS",
		Description: `
fst transfer --from <sender> <receiver> <token id>...
transfers the miners one by one and stops at the first failure.
--enforce-owner and --memo are accepted for a single miner only.
`,
	}
	approveCommand = cli.Command{
		Action:    utils.MigrateFlags(approve),
		Name:      "approve",
		Usage:     "Allow an account to transfer a miner",
		ArgsUsage: "<token id> <account>",
		Flags: []cli.Flag{
			FromFlag,
		},
		Category: "LEDGER COMMANDS",
	}
	revokeCommand = cli.Command{
		Action:    utils.MigrateFlags(revoke),
		Name:      "revoke",
		Usage:     "Revoke a transfer approval",
		ArgsUsage: "<token id> <account>",
		Flags: []cli.Flag{
			FromFlag,
		},
		Category: "LEDGER COMMANDS",
	}
	powerCommand = cli.Command{
		Name:     "power",
		Usage:    "Switch miners on and off",
		Category: "LEDGER COMMANDS",
		Subcommands: []cli.Command{
			{
				Action:    utils.MigrateFlags(powerOn),
				Name:      "on",
				Usage:     "Power miners on",
				ArgsUsage: "<token id> [<token id>...]",
				Flags: []cli.Flag{
					FromFlag,
				},
			},
			{
				Action:    utils.MigrateFlags(powerOff),
				Name:      "off",
				Usage:     "Power miners off and refund the unused power",
				ArgsUsage: "<token id> [<token id>...]",
				Flags: []cli.Flag{
					FromFlag,
				},
			},
		},
	}
	settleCommand = cli.Command{
		Action:    utils.MigrateFlags(settle),
		Name:      "settle",
		Usage:     "Settle the current epoch",
		ArgsUsage: "",
		Flags: []cli.Flag{
			FromFlag,
			BlockFlag,
			SeedFlag,
		},
		Category: "LEDGER COMMANDS",
	}
	statusCommand = cli.Command{
		Action:    utils.MigrateFlags(status),
		Name:      "status",
		Usage:     "Show the epoch state and the hash-power of owners, or a miner",
		ArgsUsage: "[<token id>]",
		Category:  "LEDGER COMMANDS",
	}
	minersCommand = cli.Command{
		Action: utils.MigrateFlags(listMiners),
		Name:   "miners",
		Usage:  "List miners of an owner",
		Flags: []cli.Flag{
			AccountFlag,
			TypeFlag,
			FromIndexFlag,
			LimitFlag,
		},
		Category: "LEDGER COMMANDS",
	}
)

func caller(ctx *cli.Context) (native.AccountID, error) {
	from := ctx.String(FromFlag.Name)
	if from == "" {
		return "", errors.New("--from is required")
	}
	return native.AccountID(from), nil
}

func uint32Arg(ctx *cli.Context, i int, name string) (uint32, error) {
	v, err := strconv.ParseUint(ctx.Args().Get(i), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return uint32(v), nil
}

func tokenArgs(ctx *cli.Context, from int) ([]native.TokenID, error) {
	if ctx.NArg() <= from {
		return nil, errors.New("no token id given")
	}
	ids := make([]native.TokenID, 0, ctx.NArg()-from)
	for _, arg := range ctx.Args()[from:] {
		ids = append(ids, native.TokenID(arg))
	}
	return ids, nil
}

func initLedger(ctx *cli.Context) error {
	cfg := makeAllConfigs(ctx)
	if err := cfg.Mining.Validate(); err != nil {
		return err
	}
	if integration.IsInitialized(cfg.DataDir) {
		return fmt.Errorf("ledger at %s is already initialized", cfg.DataDir)
	}

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	st, err := engine.State()
	if err != nil {
		return err
	}
	printState(ctx.App.Writer, st)
	return nil
}

func addMinerType(ctx *cli.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return errors.New("miner type id is required")
	}
	thash, w := ctx.Uint64(ThashFlag.Name), ctx.Uint64(WFlag.Name)
	if thash > math.MaxUint32 || w > math.MaxUint32 {
		return errors.New("thash and w are 32-bit")
	}

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	return engine.RegisterMinerType(from, native.MinerTypeID(ctx.Args().First()), native.MinerType{
		Producer: ctx.String(ProducerFlag.Name),
		Category: ctx.String(CategoryFlag.Name),
		Thash:    native.Thash(thash),
		W:        uint32(w),
	})
}

func listMinerTypes(ctx *cli.Context) error {
	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	printMinerTypes(ctx.App.Writer, engine.ListMinerTypes(ctx.Uint64(FromIndexFlag.Name), ctx.Uint64(LimitFlag.Name)))
	return nil
}

func mint(ctx *cli.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 3 {
		return errors.New("owner, metadata id and miner type are required")
	}
	quantity := ctx.Uint64(QuantityFlag.Name)
	if quantity > math.MaxUint32 {
		return errors.New("too many miners")
	}

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	args := ctx.Args()
	_, err = engine.MintMiners(from, native.AccountID(args.Get(0)), native.MetadataID(args.Get(1)), native.MinerTypeID(args.Get(2)), uint32(quantity))
	return err
}

func charge(ctx *cli.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 2 {
		return errors.New("token id and units are required")
	}
	units, err := uint32Arg(ctx, 1, "units")
	if err != nil {
		return err
	}

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	return engine.Charge(from, native.TokenID(ctx.Args().First()), units)
}

func setStatus(ctx *cli.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 2 {
		return errors.New("token id and status are required")
	}
	var st native.Status
	switch ctx.Args().Get(1) {
	case native.StatusNormal.String():
		st = native.StatusNormal
	case native.StatusMalfunction.String():
		st = native.StatusMalfunction
	default:
		return fmt.Errorf("unknown status %q", ctx.Args().Get(1))
	}

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	return engine.SetStatus(from, native.TokenID(ctx.Args().First()), st)
}

func transfer(ctx *cli.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return err
	}
	ids, err := tokenArgs(ctx, 1)
	if err != nil {
		return err
	}
	receiver := native.AccountID(ctx.Args().First())
	enforced := native.AccountID(ctx.String(EnforceOwnerFlag.Name))
	memo := ctx.String(MemoFlag.Name)

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	if len(ids) == 1 {
		return engine.Transfer(from, receiver, ids[0], enforced, memo)
	}
	if enforced != "" || memo != "" {
		return errors.New("--enforce-owner and --memo need a single token")
	}
	done, err := engine.BatchTransfer(from, receiver, ids)
	return batchError(err, done, ids)
}

func approve(ctx *cli.Context) error {
	return approval(ctx, (*mining.Engine).Approve)
}

func revoke(ctx *cli.Context) error {
	return approval(ctx, (*mining.Engine).Revoke)
}

func approval(ctx *cli.Context, op func(*mining.Engine, native.AccountID, native.TokenID, native.AccountID) error) error {
	from, err := caller(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 2 {
		return errors.New("token id and account are required")
	}

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	return op(engine, from, native.TokenID(ctx.Args().Get(0)), native.AccountID(ctx.Args().Get(1)))
}

func powerOn(ctx *cli.Context) error {
	return power(ctx, (*mining.Engine).BatchPowerOn)
}

func powerOff(ctx *cli.Context) error {
	return power(ctx, (*mining.Engine).BatchPowerOff)
}

func power(ctx *cli.Context, op func(*mining.Engine, native.AccountID, []native.TokenID) ([]native.TokenID, error)) error {
	from, err := caller(ctx)
	if err != nil {
		return err
	}
	ids, err := tokenArgs(ctx, 0)
	if err != nil {
		return err
	}

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	done, err := op(engine, from, ids)
	return batchError(err, done, ids)
}

// batchError names the failed item and how many were processed before it.
func batchError(err error, done, ids []native.TokenID) error {
	if err == nil {
		return nil
	}
	return errors.WithMessagef(err, "%s (processed %d of %d)", ids[len(done)], len(done), len(ids))
}

func settle(ctx *cli.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return err
	}

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	_, err = engine.SettleEpoch(from)
	return err
}

func status(ctx *cli.Context) error {
	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	if ctx.NArg() > 0 {
		t, err := engine.Token(native.TokenID(ctx.Args().First()))
		if err != nil {
			return err
		}
		printTokens(ctx.App.Writer, []native.Token{t})
		return nil
	}

	st, err := engine.State()
	if err != nil {
		return err
	}
	printState(ctx.App.Writer, st)
	printHashPower(ctx.App.Writer, engine.HashPowerTable())
	return nil
}

func listMiners(ctx *cli.Context) error {
	owner := native.AccountID(ctx.String(AccountFlag.Name))
	if owner == "" {
		return errors.New("--owner is required")
	}
	from, limit := ctx.Uint64(FromIndexFlag.Name), ctx.Uint64(LimitFlag.Name)

	engine, closeEngine := makeEngine(ctx, makeChain(ctx))
	defer closeEngine()

	var tokens []native.Token
	if meta := ctx.String(TypeFlag.Name); meta != "" {
		tokens = engine.ListMinersByOwnerAndType(owner, native.MetadataID(meta), from, limit)
	} else {
		tokens = engine.ListMinersByOwner(owner, from, limit)
	}
	printTokens(ctx.App.Writer, tokens)
	fmt.Fprintf(ctx.App.Writer, "%d of %d miners\n", len(tokens), engine.CountMinersByOwner(owner))
	return nil
}
