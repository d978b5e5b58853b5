package mining

import (
	"github.com/pkg/errors"

	"github.com/findsatoshi/go-fst/native"
)

// Transfer moves the token from its owner to the receiver. The sender must be the owner
// or an approved account. requiredOwner and memo are optional (empty means absent).
func (e *Engine) Transfer(sender, receiver native.AccountID, id native.TokenID, requiredOwner native.AccountID, memo string) error {
	return e.execState("transfer", func(st *native.EpochState) error {
		return e.transfer(st, sender, receiver, id, requiredOwner, memo)
	})
}

// BatchTransfer transfers the tokens one by one. See batch for the failure semantics.
func (e *Engine) BatchTransfer(sender, receiver native.AccountID, ids []native.TokenID) ([]native.TokenID, error) {
	return batch(ids, func(id native.TokenID) error {
		return e.Transfer(sender, receiver, id, "", "")
	})
}

func (e *Engine) transfer(st *native.EpochState, sender, receiver native.AccountID, id native.TokenID, requiredOwner native.AccountID, memo string) error {
	t, err := e.getToken(id)
	if err != nil {
		return err
	}
	if sender != t.Owner && !t.IsApproved(sender) {
		return errors.Wrapf(ErrUnauthorized, "%s by %s", id, sender)
	}
	if requiredOwner != "" && requiredOwner != t.Owner {
		return errors.Wrapf(ErrOwnerMismatch, "%s is owned by %s, not %s", id, t.Owner, requiredOwner)
	}
	if receiver == "" {
		return errors.Wrap(ErrInvalidArgument, "empty receiver")
	}
	if t.Owner == receiver {
		return errors.Wrapf(ErrSelfTransfer, "%s to %s", id, receiver)
	}
	from := t.Owner

	if err := e.index().remove(from, t.MetadataID, id); err != nil {
		return err
	}
	e.index().add(receiver, t.MetadataID, id)

	// the ledger is keyed by the current owner
	if t.Switch == native.PowerOn {
		mt := e.store.GetMinerType(t.MinerMetadataID)
		if mt == nil {
			return errors.Wrapf(ErrInternal, "no miner type %s of powered %s", t.MinerMetadataID, id)
		}
		l := e.ledger(st)
		if err := l.decrease(from, mt.Thash); err != nil {
			return err
		}
		if err := l.increase(receiver, mt.Thash); err != nil {
			return err
		}
	}

	if t.Operator == from {
		t.Operator = receiver
	}
	t.Owner = receiver
	t.ClearApprovals()
	e.store.SetToken(t)

	e.emit(Event{
		Type:     EventTransfer,
		Epoch:    st.Epoch,
		Account:  from,
		Receiver: receiver,
		Token:    id,
	})
	if memo != "" {
		e.emit(Event{
			Type:  EventMemo,
			Epoch: st.Epoch,
			Token: id,
			Memo:  memo,
		})
	}
	return nil
}

// Approve allows the account to transfer the token.
func (e *Engine) Approve(caller native.AccountID, id native.TokenID, account native.AccountID) error {
	return e.execState("approve", func(st *native.EpochState) error {
		t, err := e.getToken(id)
		if err != nil {
			return err
		}
		if t.Owner != caller {
			return errors.Wrapf(ErrUnauthorized, "approve %s by %s", id, caller)
		}
		if account == "" {
			return errors.Wrap(ErrInvalidArgument, "empty account")
		}
		if account == t.Owner {
			return errors.Wrap(ErrInvalidArgument, "owner can't be approved")
		}
		if !t.Approve(account) {
			return nil
		}
		e.store.SetToken(t)
		e.emit(Event{Type: EventApprove, Epoch: st.Epoch, Account: caller, Receiver: account, Token: id})
		return nil
	})
}

// Revoke removes the account from the token's approved accounts.
func (e *Engine) Revoke(caller native.AccountID, id native.TokenID, account native.AccountID) error {
	return e.execState("revoke", func(st *native.EpochState) error {
		t, err := e.getToken(id)
		if err != nil {
			return err
		}
		if t.Owner != caller {
			return errors.Wrapf(ErrUnauthorized, "revoke %s by %s", id, caller)
		}
		if !t.Revoke(account) {
			return nil
		}
		e.store.SetToken(t)
		e.emit(Event{Type: EventRevoke, Epoch: st.Epoch, Account: caller, Receiver: account, Token: id})
		return nil
	})
}
