package serializer

import (
	"fmt"

	"github.com/anyswap/steem-client/types"
)

// SerializeOperation returns canonical bytes of one operation
func SerializeOperation(op types.Operation) ([]byte, error) {
	b := NewBuffer()
	b.WriteOperation(op)
	data, err := b.Bytes()
	if err != nil {
		return nil, wrapError(op.Name(), err)
	}
	return data, nil
}

// WriteOperation writes varint discriminant and fields in schema order
func (b *Buffer) WriteOperation(op types.Operation) {
	if b.err != nil {
		return
	}
	if op.Data == nil {
		b.Fail(&SerializationError{Cause: ErrNilOperation})
		return
	}
	if unknown, ok := op.Data.(*types.UnknownOperation); ok {
		b.Fail(&SerializationError{Op: unknown.Name, Cause: ErrUnknownOperation})
		return
	}
	b.WriteVarint(uint64(op.Data.Type()))
	if err := b.writeOperationData(op.Data); err != nil {
		b.Fail(err)
	}
	if b.err != nil {
		b.err = wrapError(op.Name(), b.err)
	}
}

// nolint:gocyclo,funlen // allow big simple switch
func (b *Buffer) writeOperationData(data types.OperationData) error {
	switch op := data.(type) {
	case *types.VoteOperation:
		b.WriteString(op.Voter)
		b.WriteString(op.Author)
		b.WriteString(op.Permlink)
		b.WriteInt16(op.Weight)
	case *types.CommentOperation:
		b.WriteString(op.ParentAuthor)
		b.WriteString(op.ParentPermlink)
		b.WriteString(op.Author)
		b.WriteString(op.Permlink)
		b.WriteString(op.Title)
		b.WriteString(op.Body)
		b.WriteString(op.JSONMetadata)
	case *types.TransferOperation:
		b.WriteString(op.From)
		b.WriteString(op.To)
		b.WriteAsset(op.Amount)
		b.WriteString(op.Memo)
	case *types.TransferToVestingOperation:
		b.WriteString(op.From)
		b.WriteString(op.To)
		b.WriteAsset(op.Amount)
	case *types.WithdrawVestingOperation:
		b.WriteString(op.Account)
		b.WriteAsset(op.VestingShares)
	case *types.LimitOrderCreateOperation:
		b.WriteString(op.Owner)
		b.WriteUint32(op.OrderID)
		b.WriteAsset(op.AmountToSell)
		b.WriteAsset(op.MinToReceive)
		b.WriteBool(op.FillOrKill)
		b.WriteDate(op.Expiration)
	case *types.LimitOrderCancelOperation:
		b.WriteString(op.Owner)
		b.WriteUint32(op.OrderID)
	case *types.FeedPublishOperation:
		b.WriteString(op.Publisher)
		b.WritePrice(op.ExchangeRate)
	case *types.ConvertOperation:
		b.WriteString(op.Owner)
		b.WriteUint32(op.RequestID)
		b.WriteAsset(op.Amount)
	case *types.AccountCreateOperation:
		b.WriteAsset(op.Fee)
		b.WriteString(op.Creator)
		b.WriteString(op.NewAccountName)
		b.WriteAuthority(op.Owner)
		b.WriteAuthority(op.Active)
		b.WriteAuthority(op.Posting)
		b.WritePublicKey(op.MemoKey)
		b.WriteString(op.JSONMetadata)
	case *types.AccountUpdateOperation:
		b.WriteString(op.Account)
		b.WriteOptionalAuthority(op.Owner)
		b.WriteOptionalAuthority(op.Active)
		b.WriteOptionalAuthority(op.Posting)
		b.WritePublicKey(op.MemoKey)
		b.WriteString(op.JSONMetadata)
	case *types.WitnessUpdateOperation:
		b.WriteString(op.Owner)
		b.WriteString(op.URL)
		b.WritePublicKey(op.BlockSigningKey)
		b.WriteAsset(op.Props.AccountCreationFee)
		b.WriteUint32(op.Props.MaximumBlockSize)
		b.WriteUint16(op.Props.SBDInterestRate)
		b.WriteAsset(op.Fee)
	case *types.AccountWitnessVoteOperation:
		b.WriteString(op.Account)
		b.WriteString(op.Witness)
		b.WriteBool(op.Approve)
	case *types.AccountWitnessProxyOperation:
		b.WriteString(op.Account)
		b.WriteString(op.Proxy)
	case *types.CustomOperation:
		b.WriteStrings(op.RequiredAuths)
		b.WriteUint16(op.ID)
		b.WriteBytes(op.Data)
	case *types.DeleteCommentOperation:
		b.WriteString(op.Author)
		b.WriteString(op.Permlink)
	case *types.CustomJSONOperation:
		b.WriteStrings(op.RequiredAuths)
		b.WriteStrings(op.RequiredPostingAuths)
		b.WriteString(op.ID)
		b.WriteString(op.JSON)
	case *types.CommentOptionsOperation:
		b.WriteString(op.Author)
		b.WriteString(op.Permlink)
		b.WriteAsset(op.MaxAcceptedPayout)
		b.WriteUint16(op.PercentSteemDollars)
		b.WriteBool(op.AllowVotes)
		b.WriteBool(op.AllowCurationRewards)
		b.writeCommentOptionsExtensions(op.Extensions)
	case *types.SetWithdrawVestingRouteOperation:
		b.WriteString(op.FromAccount)
		b.WriteString(op.ToAccount)
		b.WriteUint16(op.Percent)
		b.WriteBool(op.AutoVest)
	case *types.LimitOrderCreate2Operation:
		b.WriteString(op.Owner)
		b.WriteUint32(op.OrderID)
		b.WriteAsset(op.AmountToSell)
		b.WritePrice(op.ExchangeRate)
		b.WriteBool(op.FillOrKill)
		b.WriteDate(op.Expiration)
	case *types.ClaimAccountOperation:
		b.WriteString(op.Creator)
		b.WriteAsset(op.Fee)
		b.WriteFutureExtensions(op.Extensions)
	case *types.CreateClaimedAccountOperation:
		b.WriteString(op.Creator)
		b.WriteString(op.NewAccountName)
		b.WriteAuthority(op.Owner)
		b.WriteAuthority(op.Active)
		b.WriteAuthority(op.Posting)
		b.WritePublicKey(op.MemoKey)
		b.WriteString(op.JSONMetadata)
		b.WriteFutureExtensions(op.Extensions)
	case *types.RequestAccountRecoveryOperation:
		b.WriteString(op.RecoveryAccount)
		b.WriteString(op.AccountToRecover)
		b.WriteAuthority(op.NewOwnerAuthority)
		b.WriteFutureExtensions(op.Extensions)
	case *types.RecoverAccountOperation:
		b.WriteString(op.AccountToRecover)
		b.WriteAuthority(op.NewOwnerAuthority)
		b.WriteAuthority(op.RecentOwnerAuthority)
		b.WriteFutureExtensions(op.Extensions)
	case *types.ChangeRecoveryAccountOperation:
		b.WriteString(op.AccountToRecover)
		b.WriteString(op.NewRecoveryAccount)
		b.WriteFutureExtensions(op.Extensions)
	case *types.EscrowTransferOperation:
		b.WriteString(op.From)
		b.WriteString(op.To)
		b.WriteString(op.Agent)
		b.WriteUint32(op.EscrowID)
		b.WriteAsset(op.SBDAmount)
		b.WriteAsset(op.SteemAmount)
		b.WriteAsset(op.Fee)
		b.WriteDate(op.RatificationDeadline)
		b.WriteDate(op.EscrowExpiration)
		b.WriteString(op.JSONMeta)
	case *types.EscrowDisputeOperation:
		b.WriteString(op.From)
		b.WriteString(op.To)
		b.WriteString(op.Agent)
		b.WriteString(op.Who)
		b.WriteUint32(op.EscrowID)
	case *types.EscrowReleaseOperation:
		b.WriteString(op.From)
		b.WriteString(op.To)
		b.WriteString(op.Agent)
		b.WriteString(op.Who)
		b.WriteString(op.Receiver)
		b.WriteUint32(op.EscrowID)
		b.WriteAsset(op.SBDAmount)
		b.WriteAsset(op.SteemAmount)
	case *types.EscrowApproveOperation:
		b.WriteString(op.From)
		b.WriteString(op.To)
		b.WriteString(op.Agent)
		b.WriteString(op.Who)
		b.WriteUint32(op.EscrowID)
		b.WriteBool(op.Approve)
	case *types.TransferToSavingsOperation:
		b.WriteString(op.From)
		b.WriteString(op.To)
		b.WriteAsset(op.Amount)
		b.WriteString(op.Memo)
	case *types.TransferFromSavingsOperation:
		b.WriteString(op.From)
		b.WriteUint32(op.RequestID)
		b.WriteString(op.To)
		b.WriteAsset(op.Amount)
		b.WriteString(op.Memo)
	case *types.CancelTransferFromSavingsOperation:
		b.WriteString(op.From)
		b.WriteUint32(op.RequestID)
	case *types.CustomBinaryOperation:
		b.WriteStrings(op.RequiredOwnerAuths)
		b.WriteStrings(op.RequiredActiveAuths)
		b.WriteStrings(op.RequiredPostingAuths)
		b.WriteLength(len(op.RequiredAuths))
		for _, auth := range op.RequiredAuths {
			b.WriteAuthority(auth)
		}
		b.WriteString(op.ID)
		b.WriteBytes(op.Data)
	case *types.DeclineVotingRightsOperation:
		b.WriteString(op.Account)
		b.WriteBool(op.Decline)
	case *types.ResetAccountOperation:
		b.WriteString(op.ResetAccount)
		b.WriteString(op.AccountToReset)
		b.WriteAuthority(op.NewOwnerAuthority)
	case *types.SetResetAccountOperation:
		b.WriteString(op.Account)
		b.WriteString(op.CurrentResetAccount)
		b.WriteString(op.ResetAccount)
	case *types.ClaimRewardBalanceOperation:
		b.WriteString(op.Account)
		b.WriteAsset(op.RewardSteem)
		b.WriteAsset(op.RewardSBD)
		b.WriteAsset(op.RewardVests)
	case *types.DelegateVestingSharesOperation:
		b.WriteString(op.Delegator)
		b.WriteString(op.Delegatee)
		b.WriteAsset(op.VestingShares)
	case *types.AccountCreateWithDelegationOperation:
		b.WriteAsset(op.Fee)
		b.WriteAsset(op.Delegation)
		b.WriteString(op.Creator)
		b.WriteString(op.NewAccountName)
		b.WriteAuthority(op.Owner)
		b.WriteAuthority(op.Active)
		b.WriteAuthority(op.Posting)
		b.WritePublicKey(op.MemoKey)
		b.WriteString(op.JSONMetadata)
		b.WriteFutureExtensions(op.Extensions)
	case *types.WitnessSetPropertiesOperation:
		b.WriteString(op.Owner)
		b.WriteLength(len(op.Props))
		for _, prop := range op.Props {
			b.WriteString(prop.Key)
			b.WriteBytes(prop.Value)
		}
		b.WriteFutureExtensions(op.Extensions)
	case *types.AccountUpdate2Operation:
		b.WriteString(op.Account)
		b.WriteOptionalAuthority(op.Owner)
		b.WriteOptionalAuthority(op.Active)
		b.WriteOptionalAuthority(op.Posting)
		b.WriteOptionalPublicKey(op.MemoKey)
		b.WriteString(op.JSONMetadata)
		b.WriteString(op.PostingJSONMetadata)
		b.WriteFutureExtensions(op.Extensions)
	case *types.CreateProposalOperation:
		b.WriteString(op.Creator)
		b.WriteString(op.Receiver)
		b.WriteDate(op.StartDate)
		b.WriteDate(op.EndDate)
		b.WriteAsset(op.DailyPay)
		b.WriteString(op.Subject)
		b.WriteString(op.Permlink)
		b.WriteFutureExtensions(op.Extensions)
	case *types.UpdateProposalVotesOperation:
		b.WriteString(op.Voter)
		b.writeProposalIDs(op.ProposalIDs)
		b.WriteBool(op.Approve)
		b.WriteFutureExtensions(op.Extensions)
	case *types.RemoveProposalOperation:
		b.WriteString(op.ProposalOwner)
		b.writeProposalIDs(op.ProposalIDs)
		b.WriteFutureExtensions(op.Extensions)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownOperation, data)
	}
	return nil
}

// comment_options extensions are StaticVariant, tag 0 is the beneficiary list
func (b *Buffer) writeCommentOptionsExtensions(exts []types.CommentOptionsExtension) {
	b.WriteLength(len(exts))
	for _, ext := range exts {
		b.WriteVarint(0)
		b.WriteLength(len(ext.Beneficiaries))
		for _, beneficiary := range ext.Beneficiaries {
			b.WriteString(beneficiary.Account)
			b.WriteUint16(beneficiary.Weight)
		}
	}
}

func (b *Buffer) writeProposalIDs(ids []int64) {
	b.WriteLength(len(ids))
	for _, id := range ids {
		b.WriteInt64(id)
	}
}
