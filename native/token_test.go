package native

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestRlp(t *testing.T) {
	require := require.New(t)

	mt := MinerType{
		Producer: "a",
		Category: "b",
		Thash:    10,
		W:        2,
	}
	b, err := rlp.EncodeToBytes(mt)
	require.NoError(err)
	require.Equal("c461620a02", common.Bytes2Hex(b))

	tok := Token{
		SN:              "1",
		Owner:           "a",
		MetadataID:      "m",
		MinerMetadataID: "t",
		Operator:        "a",
		Status:          StatusNormal,
		Switch:          PowerOn,
		PowerLeft:       35,
		PowerDeadline:   3,
	}
	b, err = rlp.EncodeToBytes(tok)
	require.NoError(err)
	require.Equal("ca31616d746180012303c0", common.Bytes2Hex(b))

	var got Token
	require.NoError(rlp.DecodeBytes(b, &got))
	require.Equal(tok.ID(), got.ID())
	require.Equal(PowerOn, got.Switch)
	require.Empty(got.ApprovedAccounts)
}

func TestTokenID(t *testing.T) {
	require := require.New(t)

	id := MakeTokenID("gold#v2", "17")
	require.Equal(TokenID("gold#v2#17"), id)

	meta, sn, ok := id.Split()
	require.True(ok)
	require.Equal(MetadataID("gold#v2"), meta)
	require.Equal("17", sn)

	_, _, ok = TokenID("plain").Split()
	require.False(ok)
}

func TestApprovals(t *testing.T) {
	require := require.New(t)

	tok := Token{}
	require.True(tok.Approve("carol"))
	require.True(tok.Approve("alice"))
	require.False(tok.Approve("carol"))
	require.True(tok.Approve("bob"))
	require.Equal([]AccountID{"alice", "bob", "carol"}, tok.ApprovedAccounts)
	require.True(tok.IsApproved("bob"))

	cp := tok.Copy()
	require.True(tok.Revoke("bob"))
	require.False(tok.Revoke("bob"))
	require.False(tok.IsApproved("bob"))
	require.True(cp.IsApproved("bob"))

	tok.ClearApprovals()
	require.Empty(tok.ApprovedAccounts)
}
