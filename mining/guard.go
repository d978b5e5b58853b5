package mining

import (
	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

// checkSettlement gates epoch settlement by caller and by the number of blocks since the last one.
func (e *Engine) checkSettlement(st *native.EpochState, caller native.AccountID, block idx.Block) error {
	if !e.cfg.Permissionless {
		if err := e.checkOwner(st, caller, "settlement"); err != nil {
			return err
		}
	}
	if block < st.EpochStartAt || block-st.EpochStartAt < st.MinInterval {
		return errors.Wrapf(ErrTooSoon, "block %d, last settlement at %d, interval %d", block, st.EpochStartAt, st.MinInterval)
	}
	return nil
}
