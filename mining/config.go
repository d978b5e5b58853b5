package mining

import (
	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

type Config struct {
	// Owner is the contract owner and the fallback block producer.
	Owner native.AccountID
	// MinInterval is the minimum number of blocks between settlements.
	MinInterval idx.Block
	// RewardPerEpoch is the vBTC amount paid to the producer of each epoch.
	RewardPerEpoch uint64
	// Permissionless allows any account to settle epochs.
	Permissionless bool
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		MinInterval:    3600,
		RewardPerEpoch: 2500000000,
	}
}

// Validate checks the config.
func (c Config) Validate() error {
	if c.Owner == "" {
		return errors.Wrap(ErrInvalidArgument, "contract owner isn't set")
	}
	return nil
}
