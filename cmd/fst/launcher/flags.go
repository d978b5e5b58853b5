package launcher

import (
	"os"
	"path/filepath"

	"gopkg.in/urfave/cli.v1"

	"github.com/findsatoshi/go-fst/integration"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}

	// DataDirFlag defines directory to store the ledger databases
	DataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the databases ('inmemory' keeps nothing on disk)",
		Value: DefaultDataDir(),
	}

	CacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "Megabytes of memory allocated to internal caching",
		Value: DefaultCacheSize,
	}

	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}

	MetricsEnabledFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "Enable metrics collection and reporting",
	}
	MetricsAddrFlag = cli.StringFlag{
		Name:  "metrics.addr",
		Usage: "Enable stand-alone metrics HTTP server listening interface",
	}

	OwnerFlag = cli.StringFlag{
		Name:  "mining.owner",
		Usage: "Contract owner account, the fallback block producer",
	}
	IntervalFlag = cli.Uint64Flag{
		Name:  "mining.interval",
		Usage: "Minimum number of blocks between epoch settlements",
	}
	PermissionlessFlag = cli.BoolFlag{
		Name:  "mining.permissionless",
		Usage: "Allow any account to settle epochs",
	}

	// per-command flags

	FromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "Calling account",
	}
	BlockFlag = cli.Uint64Flag{
		Name:  "block",
		Usage: "Current block height of the host ledger",
	}
	SeedFlag = cli.StringFlag{
		Name:  "seed",
		Usage: "Hex random seed of the host ledger (random if not set)",
	}
	ProducerFlag = cli.StringFlag{
		Name:  "producer",
		Usage: "Miner producer",
	}
	CategoryFlag = cli.StringFlag{
		Name:  "category",
		Usage: "Miner category",
	}
	ThashFlag = cli.Uint64Flag{
		Name:  "thash",
		Usage: "Hash-power of a miner in Thash",
	}
	WFlag = cli.Uint64Flag{
		Name:  "w",
		Usage: "Power units a miner spends per epoch",
	}
	QuantityFlag = cli.Uint64Flag{
		Name:  "quantity",
		Usage: "Number of miners to mint",
		Value: 1,
	}
	EnforceOwnerFlag = cli.StringFlag{
		Name:  "enforce-owner",
		Usage: "Fail unless the token is owned by the account",
	}
	MemoFlag = cli.StringFlag{
		Name:  "memo",
		Usage: "Transfer memo",
	}
	AccountFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "Account to list",
	}
	TypeFlag = cli.StringFlag{
		Name:  "type",
		Usage: "Token metadata id to list",
	}
	FromIndexFlag = cli.Uint64Flag{
		Name:  "offset",
		Usage: "Index of the first listed item",
	}
	LimitFlag = cli.Uint64Flag{
		Name:  "limit",
		Usage: "Maximum number of listed items (0 is unlimited)",
	}
)

var globalFlags = []cli.Flag{
	DataDirFlag,
	configFileFlag,
	CacheFlag,
	VerbosityFlag,
	MetricsEnabledFlag,
	MetricsAddrFlag,
	OwnerFlag,
	IntervalFlag,
	PermissionlessFlag,
}

// DefaultDataDir is ~/.fst, or memory if there is no home directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return integration.InMemory
	}
	return filepath.Join(home, ".fst")
}
