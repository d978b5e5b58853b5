package native

import (
	"math/big"

	"github.com/unicornultrafoundation/go-helios/native/idx"
)

type EpochState struct {
	Epoch        idx.Epoch
	EpochStartAt idx.Block
	MinInterval  idx.Block
	// TotalThash is the sum of all hash-power ledger entries.
	TotalThash     uint64
	RewardPerEpoch *big.Int
	// Owner is the contract owner. It is also the fallback block producer.
	Owner AccountID
}

func (es EpochState) Copy() EpochState {
	cp := es
	if es.RewardPerEpoch != nil {
		cp.RewardPerEpoch = new(big.Int).Set(es.RewardPerEpoch)
	}
	return cp
}
