// Package terminal formats chain data for terminal output
package terminal

import (
	"fmt"

	"github.com/anyswap/steem-client/crypto"
	"github.com/anyswap/steem-client/types"
	"github.com/fatih/color"
)

// Flag output flags
type Flag uint32

// output flags
const (
	Indent Flag = 1 << iota
	DoubleIndent

	ShowBlockNum
	ShowTransactionID
)

// Default no flags
var Default Flag

var (
	blockStyle     = color.New(color.FgRed, color.Underline)
	opStyle        = color.New(color.FgGreen)
	virtualOpStyle = color.New(color.FgYellow)
	txStyle        = color.New(color.FgCyan)
	keyLabelStyle  = color.New(color.FgMagenta, color.Bold)
	warnStyle      = color.New(color.FgRed, color.Bold)
	infoStyle      = color.New(color.FgWhite)
)

// Key labelled key pair, Private may be nil
type Key struct {
	Label   string
	Private *crypto.PrivateKey
	Public  *crypto.PublicKey
}

type bundle struct {
	color  *color.Color
	format string
	values []interface{}
	flag   Flag
}

// BoolSymbol renders a check mark
func BoolSymbol(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}

func opSummary(op types.Operation) (format string, values []interface{}) {
	format = "%-24s "
	values = []interface{}{op.Name()}
	switch data := op.Data.(type) {
	case *types.VoteOperation:
		format += "%-16s => %s/%s %d"
		values = append(values, data.Voter, data.Author, data.Permlink, data.Weight)
	case *types.CommentOperation:
		format += "%-16s %s"
		values = append(values, data.Author, data.Permlink)
	case *types.TransferOperation:
		format += "%-16s => %-16s %s %q"
		values = append(values, data.From, data.To, data.Amount, data.Memo)
	case *types.TransferToVestingOperation:
		format += "%-16s => %-16s %s"
		values = append(values, data.From, data.To, data.Amount)
	case *types.DelegateVestingSharesOperation:
		format += "%-16s => %-16s %s"
		values = append(values, data.Delegator, data.Delegatee, data.VestingShares)
	case *types.CustomJSONOperation:
		format += "%-16s %s"
		values = append(values, data.ID, data.JSON)
	case *types.AccountWitnessVoteOperation:
		format += "%-16s => %-16s %s"
		values = append(values, data.Account, data.Witness, BoolSymbol(data.Approve))
	case *types.WitnessSetPropertiesOperation:
		format += "%-16s %d props"
		values = append(values, data.Owner, len(data.Props))
	case *types.UnknownOperation:
		format += "%s"
		values = append(values, string(data.Payload))
	}
	return format, values
}

func newOpBundle(op *types.AppliedOperation, flag Flag) *bundle {
	format, values := opSummary(op.Op)
	style := opStyle
	if op.VirtualOp > 0 {
		style = virtualOpStyle
	}
	if flag&ShowTransactionID > 0 {
		format = "%-40s " + format
		values = append([]interface{}{op.TrxID}, values...)
	}
	if flag&ShowBlockNum > 0 {
		format = "%-9d " + format
		values = append([]interface{}{op.Block}, values...)
	}
	return &bundle{color: style, format: format, values: values, flag: flag}
}

func newBundle(value interface{}, flag Flag) (*bundle, error) {
	switch v := value.(type) {
	case *types.SignedBlock:
		return &bundle{
			color:  blockStyle,
			format: "Block %s by %-16s at %s with %d transactions",
			values: []interface{}{v.BlockID, v.Witness, v.Timestamp, len(v.Transactions)},
			flag:   flag,
		}, nil
	case *types.AppliedOperation:
		return newOpBundle(v, flag), nil
	case types.Operation:
		format, values := opSummary(v)
		return &bundle{color: opStyle, format: format, values: values, flag: flag}, nil
	case *types.SignedTransaction:
		return &bundle{
			color:  txStyle,
			format: "Transaction ref %d/%d expires %s with %d operations and %d signatures",
			values: []interface{}{v.RefBlockNum, v.RefBlockPrefix, v.Expiration, len(v.Operations), len(v.Signatures)},
			flag:   flag,
		}, nil
	case *types.TransactionConfirmation:
		style := txStyle
		if v.Expired {
			style = warnStyle
		}
		return &bundle{
			color:  style,
			format: "Transaction %s in block %d at %d expired %s",
			values: []interface{}{v.ID, v.BlockNum, v.TrxNum, BoolSymbol(v.Expired)},
			flag:   flag,
		}, nil
	case *Key:
		if v.Public == nil {
			return nil, fmt.Errorf("key %v has no public key", v.Label)
		}
		format := "%-8s %s"
		values := []interface{}{keyLabelStyle.Sprint(v.Label), v.Public}
		if v.Private != nil {
			format += " %s"
			values = append(values, v.Private.Wif())
		}
		return &bundle{color: infoStyle, format: format, values: values, flag: flag}, nil
	default:
		return &bundle{
			color:  infoStyle,
			format: "%v",
			values: []interface{}{v},
			flag:   flag,
		}, nil
	}
}

func indent(flag Flag) string {
	switch {
	case flag&Indent > 0:
		return "    "
	case flag&DoubleIndent > 0:
		return "        "
	default:
		return ""
	}
}

func println(value interface{}, flag Flag) (int, error) {
	b, err := newBundle(value, flag)
	if err != nil {
		return 0, err
	}
	return b.color.Printf(indent(flag)+b.format+"\n", b.values...)
}

// Println prints value in its style
func Println(value interface{}, flag Flag) {
	if _, err := println(value, flag); err != nil {
		_, _ = warnStyle.Println(err.Error())
	}
}

// Sprint formats value in its style
func Sprint(value interface{}, flag Flag) string {
	b, err := newBundle(value, flag)
	if err != nil {
		return fmt.Sprintf("Cannot format: %+v", value)
	}
	return b.color.SprintfFunc()(indent(flag)+b.format, b.values...)
}
