package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/ethereum/go-ethereum/log"
	"github.com/naoina/toml"
	"github.com/unicornultrafoundation/go-helios/native/idx"
	"github.com/unicornultrafoundation/go-helios/utils/cachescale"
	"gopkg.in/urfave/cli.v1"

	"github.com/findsatoshi/go-fst/cmd/utils"
	"github.com/findsatoshi/go-fst/integration"
	"github.com/findsatoshi/go-fst/logger"
	"github.com/findsatoshi/go-fst/minerstore"
	"github.com/findsatoshi/go-fst/mining"
	"github.com/findsatoshi/go-fst/monitoring"
	"github.com/findsatoshi/go-fst/native"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      utils.MigrateFlags(dumpConfig),
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Flags:       globalFlags,
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows configuration values.`,
	}
	checkConfigCommand = cli.Command{
		Action:      utils.MigrateFlags(checkConfig),
		Name:        "checkconfig",
		Usage:       "Checks configuration file",
		ArgsUsage:   "",
		Flags:       globalFlags,
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The checkconfig checks configuration file.`,
	}
)

const (
	// DefaultCacheSize is calculated as memory consumption in a worst case scenario with default configuration
	// Average memory consumption might be 3-5 times lower than the maximum
	DefaultCacheSize  = 512
	ConstantCacheSize = 64
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type config struct {
	DataDir    string
	Mining     mining.Config
	Store      minerstore.StoreConfig
	DBs        integration.DBsConfig
	Monitoring monitoring.Config
	Telemetry  logger.TelemetryConfig
}

func (c *config) AppConfigs() integration.Configs {
	return integration.Configs{
		Mining: c.Mining,
		Store:  c.Store,
		DBs:    c.DBs,
	}
}

func loadAllConfigs(file string, cfg *config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err != nil {
		return fmt.Errorf("TOML config file error: %v.\n"+
			"Use 'dumpconfig' command to get an example config file.", err)
	}
	return err
}

func cacheScaler(ctx *cli.Context) cachescale.Func {
	if !ctx.GlobalIsSet(CacheFlag.Name) {
		return cachescale.Identity
	}
	targetCache := ctx.GlobalInt(CacheFlag.Name)
	baseSize := DefaultCacheSize
	if targetCache < baseSize {
		log.Crit("Invalid flag", "flag", CacheFlag.Name, "err", fmt.Sprintf("minimum cache size is %d MB", baseSize))
	}
	return cachescale.Ratio{
		Base:   uint64(baseSize - ConstantCacheSize),
		Target: uint64(targetCache - ConstantCacheSize),
	}
}

func miningConfigWithFlags(ctx *cli.Context, cfg mining.Config) mining.Config {
	if ctx.GlobalIsSet(OwnerFlag.Name) {
		cfg.Owner = native.AccountID(ctx.GlobalString(OwnerFlag.Name))
	}
	if ctx.GlobalIsSet(IntervalFlag.Name) {
		cfg.MinInterval = idx.Block(ctx.GlobalUint64(IntervalFlag.Name))
	}
	if ctx.GlobalIsSet(PermissionlessFlag.Name) {
		cfg.Permissionless = ctx.GlobalBool(PermissionlessFlag.Name)
	}
	return cfg
}

func mayMakeAllConfigs(ctx *cli.Context) (*config, error) {
	// Defaults (low priority)
	cacheRatio := cacheScaler(ctx)
	cfg := config{
		DataDir:    DefaultDataDir(),
		Mining:     mining.DefaultConfig(),
		Store:      minerstore.DefaultStoreConfig(cacheRatio),
		Monitoring: monitoring.DefaultConfig,
	}

	// Load config file (medium priority)
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadAllConfigs(file, &cfg); err != nil {
			return &cfg, err
		}
	}
	// apply default for DB config if it wasn't touched by config file
	if len(cfg.DBs.RuntimeCache.Table) == 0 {
		cfg.DBs = integration.DefaultDBsConfig(cacheRatio.U64, 256)
	}

	// Apply flags (high priority)
	if ctx.GlobalIsSet(DataDirFlag.Name) {
		cfg.DataDir = ctx.GlobalString(DataDirFlag.Name)
	}
	cfg.Mining = miningConfigWithFlags(ctx, cfg.Mining)
	if addr := ctx.GlobalString(MetricsAddrFlag.Name); addr != "" {
		cfg.Monitoring.HTTP = addr
	}
	if cfg.DataDir == "" {
		return nil, errors.New("empty datadir")
	}

	return &cfg, nil
}

func makeAllConfigs(ctx *cli.Context) *config {
	cfg, err := mayMakeAllConfigs(ctx)
	if err != nil {
		utils.Fatalf("%v", err)
	}
	return cfg
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := mayMakeAllConfigs(ctx)
	if err != nil {
		return err
	}

	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}

func checkConfig(ctx *cli.Context) error {
	_, err := mayMakeAllConfigs(ctx)
	return err
}
