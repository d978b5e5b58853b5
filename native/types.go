package native

import (
	"strings"
)

type (
	// AccountID is an opaque ledger account identifier.
	AccountID string
	// MetadataID identifies token metadata. It prefixes the token id.
	MetadataID string
	// MinerTypeID identifies a miner type (miner metadata).
	MinerTypeID string
	// TokenID is MetadataID#SN.
	TokenID string

	// Thash is the hash-power contributed by a single powered-on miner.
	Thash uint32
)

const tokenIDSeparator = "#"

// MakeTokenID builds the id of the sn-th token of the given metadata.
func MakeTokenID(metadata MetadataID, sn string) TokenID {
	return TokenID(string(metadata) + tokenIDSeparator + sn)
}

// Split returns the metadata id and the serial number of the token.
func (id TokenID) Split() (MetadataID, string, bool) {
	i := strings.LastIndex(string(id), tokenIDSeparator)
	if i < 0 {
		return "", "", false
	}
	return MetadataID(id[:i]), string(id[i+1:]), true
}

func (id TokenID) String() string {
	return string(id)
}

func (a AccountID) String() string {
	return string(a)
}
