package launcher

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/findsatoshi/go-fst/mining"
	"github.com/findsatoshi/go-fst/native"
)

func printState(w io.Writer, st native.EpochState) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Epoch", "Started at", "Interval", "Total Thash", "Reward", "Owner"})
	table.Append([]string{
		strconv.FormatUint(uint64(st.Epoch), 10),
		strconv.FormatUint(uint64(st.EpochStartAt), 10),
		strconv.FormatUint(uint64(st.MinInterval), 10),
		strconv.FormatUint(st.TotalThash, 10),
		st.RewardPerEpoch.String(),
		st.Owner.String(),
	})
	table.Render()
}

func printHashPower(w io.Writer, entries []mining.LedgerEntry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Owner", "Thash"})
	for _, e := range entries {
		table.Append([]string{e.Owner.String(), strconv.FormatUint(e.Thash, 10)})
	}
	table.Render()
}

func printMinerTypes(w io.Writer, types []mining.MinerTypeEntry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Producer", "Category", "Thash", "W"})
	for _, mt := range types {
		table.Append([]string{
			string(mt.ID),
			mt.Producer,
			mt.Category,
			strconv.FormatUint(uint64(mt.Thash), 10),
			strconv.FormatUint(uint64(mt.W), 10),
		})
	}
	table.Render()
}

func printTokens(w io.Writer, tokens []native.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Owner", "Type", "Operator", "Status", "Switch", "Power", "Deadline", "Approved"})
	for i := range tokens {
		t := &tokens[i]
		approved := make([]string, len(t.ApprovedAccounts))
		for j, a := range t.ApprovedAccounts {
			approved[j] = a.String()
		}
		deadline := "-"
		if t.Switch == native.PowerOn {
			deadline = strconv.FormatUint(uint64(t.PowerDeadline), 10)
		}
		table.Append([]string{
			t.ID().String(),
			t.Owner.String(),
			string(t.MinerMetadataID),
			t.Operator.String(),
			t.Status.String(),
			t.Switch.String(),
			fmt.Sprint(t.PowerLeft),
			deadline,
			strings.Join(approved, ","),
		})
	}
	table.Render()
}
