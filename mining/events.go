package mining

import (
	"fmt"
	"math/big"

	"github.com/unicornultrafoundation/go-helios/native/idx"

	"github.com/findsatoshi/go-fst/native"
)

type EventType string

const (
	EventTransfer     EventType = "transfer"
	EventMemo         EventType = "memo"
	EventApprove      EventType = "approve"
	EventRevoke       EventType = "revoke"
	EventMinerType    EventType = "miner_type"
	EventMint         EventType = "mint"
	EventCharge       EventType = "charge"
	EventStatus       EventType = "status"
	EventPowerOn      EventType = "power_on"
	EventPowerOff     EventType = "power_off"
	EventRandomDraw   EventType = "random_draw"
	EventProducer     EventType = "producer"
	EventReward       EventType = "reward"
	EventPowerExpired EventType = "power_expired"
)

// Event is an observable log record. Events of an operation are published
// only after the operation is committed.
type Event struct {
	Type  EventType
	Epoch idx.Epoch

	Account  native.AccountID // actor, token owner or producer
	Receiver native.AccountID // transfer receiver, approved account or settler
	Token    native.TokenID

	Value  uint64
	Amount *big.Int
	Memo   string
}

func (ev Event) String() string {
	switch ev.Type {
	case EventTransfer:
		return fmt.Sprintf("Transfer %s from @%s to @%s", ev.Token, ev.Account, ev.Receiver)
	case EventMemo:
		return fmt.Sprintf("Memo: %s", ev.Memo)
	case EventApprove:
		return fmt.Sprintf("Approve %s to @%s", ev.Token, ev.Receiver)
	case EventRevoke:
		return fmt.Sprintf("Revoke %s from @%s", ev.Token, ev.Receiver)
	case EventMinerType:
		return fmt.Sprintf("Miner type %s created", ev.Memo)
	case EventMint:
		return fmt.Sprintf("Mint %s to @%s", ev.Token, ev.Account)
	case EventCharge:
		return fmt.Sprintf("Charge %s with %d power", ev.Token, ev.Value)
	case EventStatus:
		return fmt.Sprintf("Status of %s is %s", ev.Token, ev.Memo)
	case EventPowerOn:
		return fmt.Sprintf("Power on %s until epoch %d", ev.Token, ev.Value)
	case EventPowerOff:
		return fmt.Sprintf("Power off %s, refund %d", ev.Token, ev.Value)
	case EventRandomDraw:
		return fmt.Sprintf("Random number is %d in epoch %d.", ev.Value, ev.Epoch)
	case EventProducer:
		return fmt.Sprintf("%s produced rbtc block in %d.", ev.Account, ev.Epoch)
	case EventReward:
		return fmt.Sprintf("Send %s vBTC to %s in epoch %d.", ev.Amount, ev.Account, ev.Epoch)
	case EventPowerExpired:
		return fmt.Sprintf("Power of %s ran out in epoch %d", ev.Token, ev.Epoch)
	default:
		return string(ev.Type)
	}
}
