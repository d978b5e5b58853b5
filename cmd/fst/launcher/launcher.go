package launcher

import (
	"io"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/findsatoshi/go-fst/cmd/utils"
	"github.com/findsatoshi/go-fst/integration"
	"github.com/findsatoshi/go-fst/logger"
	"github.com/findsatoshi/go-fst/mining"
	"github.com/findsatoshi/go-fst/monitoring"
	"github.com/findsatoshi/go-fst/utils/errlock"
)

var (
	// Git SHA1 commit hash of the release (set via linker flags).
	gitCommit = ""
	gitDate   = ""
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "fst"
	app.Usage = "the miner ledger command line interface"
	app.Version = "0.1.0"
	if gitCommit != "" {
		app.Version += "-" + gitCommit
	}
	app.Commands = []cli.Command{
		// See config.go:
		dumpConfigCommand,
		checkConfigCommand,
		// See ledgercmd.go:
		initCommand,
		minerTypeCommand,
		mintCommand,
		chargeCommand,
		setStatusCommand,
		statusCommand,
		transferCommand,
		approveCommand,
		revokeCommand,
		powerCommand,
		settleCommand,
		minersCommand,
		// See dbcmd.go:
		dbCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = append(app.Flags, globalFlags...)

	app.Before = func(ctx *cli.Context) error {
		setupLogging(ctx)
		return nil
	}
	return app
}

// Launch runs the CLI with the arguments.
func Launch(args []string) error {
	return newApp().Run(args)
}

func setupLogging(ctx *cli.Context) {
	usecolor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	output := io.Writer(os.Stderr)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	handler := log.StreamHandler(output, log.TerminalFormat(usecolor))
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(ctx.GlobalInt(VerbosityFlag.Name)), handler))
}

// makeEngine opens the ledger of the datadir.
// The returned function closes it and prints the events published in between.
func makeEngine(ctx *cli.Context, chain mining.Chain) (*mining.Engine, func()) {
	cfg := makeAllConfigs(ctx)

	if err := logger.SetupTelemetry(cfg.Telemetry); err != nil {
		utils.Fatalf("Failed to set up telemetry: %v", err)
	}
	if ctx.GlobalBool(MetricsEnabledFlag.Name) {
		monitoring.SetupPrometheus(cfg.Monitoring, cfg.DataDir)
	}

	// check errlock file
	lock := errlock.New(cfg.DataDir)
	if err := lock.Check(); err != nil {
		utils.Fatalf("Ledger isn't allowed to open: %v", err)
	}

	engine, closeDBs, err := integration.MakeEngine(cfg.DataDir, cfg.AppConfigs(), chain, lock.Permanent(integration.LedgerDBName))
	if err != nil {
		utils.Fatalf("Failed to open the ledger: %v", err)
	}
	stopPrinting := printEvents(ctx.App.Writer, engine)

	return engine, func() {
		stopPrinting()
		if err := closeDBs(); err != nil {
			log.Error("Failed to close the ledger", "err", err)
		}
	}
}

// printEvents writes the committed events until stopped.
func printEvents(w io.Writer, engine *mining.Engine) func() {
	ch := make(chan []mining.Event, 16)
	sub := engine.SubscribeEvents(ch)
	done := make(chan struct{})

	write := func(evs []mining.Event) {
		for _, ev := range evs {
			_, _ = io.WriteString(w, ev.String()+"\n")
		}
	}
	go func() {
		defer close(done)
		for {
			select {
			case evs := <-ch:
				write(evs)
			case <-sub.Err():
				for {
					select {
					case evs := <-ch:
						write(evs)
					default:
						return
					}
				}
			}
		}
	}()

	return func() {
		sub.Unsubscribe()
		<-done
	}
}
