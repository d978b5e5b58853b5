package native

import (
	"sort"

	"github.com/unicornultrafoundation/go-helios/native/idx"
)

// Status is the operational state of a miner.
type Status uint8

const (
	StatusNormal Status = iota
	StatusMalfunction
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusMalfunction:
		return "malfunction"
	default:
		return "unknown"
	}
}

// Switch is the power switch of a miner.
type Switch uint8

const (
	PowerOff Switch = iota
	PowerOn
)

func (s Switch) String() string {
	if s == PowerOn {
		return "on"
	}
	return "off"
}

// Token is a miner NFT.
type Token struct {
	SN              string
	Owner           AccountID
	MetadataID      MetadataID
	MinerMetadataID MinerTypeID
	Operator        AccountID

	Status Status
	Switch Switch

	PowerLeft     uint32
	PowerDeadline idx.Epoch

	ApprovedAccounts []AccountID // sorted, no duplicates
}

// ID returns the token id.
func (t *Token) ID() TokenID {
	return MakeTokenID(t.MetadataID, t.SN)
}

func (t Token) Copy() Token {
	cp := t
	if t.ApprovedAccounts != nil {
		cp.ApprovedAccounts = make([]AccountID, len(t.ApprovedAccounts))
		copy(cp.ApprovedAccounts, t.ApprovedAccounts)
	}
	return cp
}

func (t *Token) approvedIdx(a AccountID) (int, bool) {
	i := sort.Search(len(t.ApprovedAccounts), func(i int) bool {
		return t.ApprovedAccounts[i] >= a
	})
	return i, i < len(t.ApprovedAccounts) && t.ApprovedAccounts[i] == a
}

// IsApproved reports whether the account may transfer the token on behalf of the owner.
func (t *Token) IsApproved(a AccountID) bool {
	_, ok := t.approvedIdx(a)
	return ok
}

// Approve adds the account to the approved set. Returns false if already present.
func (t *Token) Approve(a AccountID) bool {
	i, ok := t.approvedIdx(a)
	if ok {
		return false
	}
	t.ApprovedAccounts = append(t.ApprovedAccounts, "")
	copy(t.ApprovedAccounts[i+1:], t.ApprovedAccounts[i:])
	t.ApprovedAccounts[i] = a
	return true
}

// Revoke removes the account from the approved set. Returns false if absent.
func (t *Token) Revoke(a AccountID) bool {
	i, ok := t.approvedIdx(a)
	if !ok {
		return false
	}
	t.ApprovedAccounts = append(t.ApprovedAccounts[:i], t.ApprovedAccounts[i+1:]...)
	return true
}

func (t *Token) ClearApprovals() {
	t.ApprovedAccounts = nil
}

// MinerType is the immutable miner metadata shared by tokens of the same type.
type MinerType struct {
	Producer string
	Category string
	Thash    Thash
	W        uint32 // power units consumed per epoch
}
