package types

import (
	"encoding/json"
	"fmt"

	"github.com/anyswap/steem-client/common"
	"github.com/anyswap/steem-client/crypto"
)

// FutureExtensions reserved extension list, must be empty when signing
type FutureExtensions []json.RawMessage

// ChainProperties witness voted chain parameters
type ChainProperties struct {
	AccountCreationFee Asset  `json:"account_creation_fee"`
	MaximumBlockSize   uint32 `json:"maximum_block_size"`
	SBDInterestRate    uint16 `json:"sbd_interest_rate"`
}

// Beneficiary comment reward route
type Beneficiary struct {
	Account string `json:"account"`
	Weight  uint16 `json:"weight"`
}

// CommentOptionsExtension static variant, tag 0 is the only known type
type CommentOptionsExtension struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}

// MarshalJSON renders [0, {beneficiaries}]
func (e CommentOptionsExtension) MarshalJSON() ([]byte, error) {
	type plain CommentOptionsExtension
	return json.Marshal([]interface{}{0, plain(e)})
}

// UnmarshalJSON decodes [tag, payload]
func (e *CommentOptionsExtension) UnmarshalJSON(input []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(input, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("comment options extension want 2 elements, got %v", len(pair))
	}
	var tag uint64
	if err := json.Unmarshal(pair[0], &tag); err != nil {
		return err
	}
	if tag != 0 {
		return fmt.Errorf("%w: comment options extension %v", ErrUnknownExtensionType, tag)
	}
	type plain CommentOptionsExtension
	return json.Unmarshal(pair[1], (*plain)(e))
}

// WitnessProp [name, serialized value] pair of witness_set_properties
type WitnessProp struct {
	Key   string
	Value common.HexBytes
}

// MarshalJSON implements json.Marshaler
func (p WitnessProp) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{p.Key, p.Value})
}

// UnmarshalJSON implements json.Unmarshaler
func (p *WitnessProp) UnmarshalJSON(input []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(input, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("witness prop want 2 elements, got %v", len(pair))
	}
	if err := json.Unmarshal(pair[0], &p.Key); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &p.Value)
}

type VoteOperation struct {
	Voter    string `json:"voter"`
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
	Weight   int16  `json:"weight"`
}

type CommentOperation struct {
	ParentAuthor   string `json:"parent_author"`
	ParentPermlink string `json:"parent_permlink"`
	Author         string `json:"author"`
	Permlink       string `json:"permlink"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	JSONMetadata   string `json:"json_metadata"`
}

type TransferOperation struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Asset  `json:"amount"`
	Memo   string `json:"memo"`
}

type TransferToVestingOperation struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Asset  `json:"amount"`
}

type WithdrawVestingOperation struct {
	Account       string `json:"account"`
	VestingShares Asset  `json:"vesting_shares"`
}

type LimitOrderCreateOperation struct {
	Owner        string `json:"owner"`
	OrderID      uint32 `json:"orderid"`
	AmountToSell Asset  `json:"amount_to_sell"`
	MinToReceive Asset  `json:"min_to_receive"`
	FillOrKill   bool   `json:"fill_or_kill"`
	Expiration   Time   `json:"expiration"`
}

type LimitOrderCancelOperation struct {
	Owner   string `json:"owner"`
	OrderID uint32 `json:"orderid"`
}

type FeedPublishOperation struct {
	Publisher    string `json:"publisher"`
	ExchangeRate Price  `json:"exchange_rate"`
}

type ConvertOperation struct {
	Owner     string `json:"owner"`
	RequestID uint32 `json:"requestid"`
	Amount    Asset  `json:"amount"`
}

type AccountCreateOperation struct {
	Fee            Asset             `json:"fee"`
	Creator        string            `json:"creator"`
	NewAccountName string            `json:"new_account_name"`
	Owner          *Authority        `json:"owner"`
	Active         *Authority        `json:"active"`
	Posting        *Authority        `json:"posting"`
	MemoKey        *crypto.PublicKey `json:"memo_key"`
	JSONMetadata   string            `json:"json_metadata"`
}

type AccountUpdateOperation struct {
	Account      string            `json:"account"`
	Owner        *Authority        `json:"owner,omitempty"`
	Active       *Authority        `json:"active,omitempty"`
	Posting      *Authority        `json:"posting,omitempty"`
	MemoKey      *crypto.PublicKey `json:"memo_key"`
	JSONMetadata string            `json:"json_metadata"`
}

type WitnessUpdateOperation struct {
	Owner           string            `json:"owner"`
	URL             string            `json:"url"`
	BlockSigningKey *crypto.PublicKey `json:"block_signing_key"`
	Props           ChainProperties   `json:"props"`
	Fee             Asset             `json:"fee"`
}

type AccountWitnessVoteOperation struct {
	Account string `json:"account"`
	Witness string `json:"witness"`
	Approve bool   `json:"approve"`
}

type AccountWitnessProxyOperation struct {
	Account string `json:"account"`
	Proxy   string `json:"proxy"`
}

type CustomOperation struct {
	RequiredAuths []string        `json:"required_auths"`
	ID            uint16          `json:"id"`
	Data          common.HexBytes `json:"data"`
}

type DeleteCommentOperation struct {
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
}

type CustomJSONOperation struct {
	RequiredAuths        []string `json:"required_auths"`
	RequiredPostingAuths []string `json:"required_posting_auths"`
	ID                   string   `json:"id"`
	JSON                 string   `json:"json"`
}

type CommentOptionsOperation struct {
	Author               string                    `json:"author"`
	Permlink             string                    `json:"permlink"`
	MaxAcceptedPayout    Asset                     `json:"max_accepted_payout"`
	PercentSteemDollars  uint16                    `json:"percent_steem_dollars"`
	AllowVotes           bool                      `json:"allow_votes"`
	AllowCurationRewards bool                      `json:"allow_curation_rewards"`
	Extensions           []CommentOptionsExtension `json:"extensions"`
}

type SetWithdrawVestingRouteOperation struct {
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account"`
	Percent     uint16 `json:"percent"`
	AutoVest    bool   `json:"auto_vest"`
}

type LimitOrderCreate2Operation struct {
	Owner        string `json:"owner"`
	OrderID      uint32 `json:"orderid"`
	AmountToSell Asset  `json:"amount_to_sell"`
	ExchangeRate Price  `json:"exchange_rate"`
	FillOrKill   bool   `json:"fill_or_kill"`
	Expiration   Time   `json:"expiration"`
}

type ClaimAccountOperation struct {
	Creator    string           `json:"creator"`
	Fee        Asset            `json:"fee"`
	Extensions FutureExtensions `json:"extensions"`
}

type CreateClaimedAccountOperation struct {
	Creator        string            `json:"creator"`
	NewAccountName string            `json:"new_account_name"`
	Owner          *Authority        `json:"owner"`
	Active         *Authority        `json:"active"`
	Posting        *Authority        `json:"posting"`
	MemoKey        *crypto.PublicKey `json:"memo_key"`
	JSONMetadata   string            `json:"json_metadata"`
	Extensions     FutureExtensions  `json:"extensions"`
}

type RequestAccountRecoveryOperation struct {
	RecoveryAccount   string           `json:"recovery_account"`
	AccountToRecover  string           `json:"account_to_recover"`
	NewOwnerAuthority *Authority       `json:"new_owner_authority"`
	Extensions        FutureExtensions `json:"extensions"`
}

type RecoverAccountOperation struct {
	AccountToRecover     string           `json:"account_to_recover"`
	NewOwnerAuthority    *Authority       `json:"new_owner_authority"`
	RecentOwnerAuthority *Authority       `json:"recent_owner_authority"`
	Extensions           FutureExtensions `json:"extensions"`
}

type ChangeRecoveryAccountOperation struct {
	AccountToRecover   string           `json:"account_to_recover"`
	NewRecoveryAccount string           `json:"new_recovery_account"`
	Extensions         FutureExtensions `json:"extensions"`
}

type EscrowTransferOperation struct {
	From                 string `json:"from"`
	To                   string `json:"to"`
	Agent                string `json:"agent"`
	EscrowID             uint32 `json:"escrow_id"`
	SBDAmount            Asset  `json:"sbd_amount"`
	SteemAmount          Asset  `json:"steem_amount"`
	Fee                  Asset  `json:"fee"`
	RatificationDeadline Time   `json:"ratification_deadline"`
	EscrowExpiration     Time   `json:"escrow_expiration"`
	JSONMeta             string `json:"json_meta"`
}

type EscrowDisputeOperation struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Agent    string `json:"agent"`
	Who      string `json:"who"`
	EscrowID uint32 `json:"escrow_id"`
}

type EscrowReleaseOperation struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Agent       string `json:"agent"`
	Who         string `json:"who"`
	Receiver    string `json:"receiver"`
	EscrowID    uint32 `json:"escrow_id"`
	SBDAmount   Asset  `json:"sbd_amount"`
	SteemAmount Asset  `json:"steem_amount"`
}

type EscrowApproveOperation struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Agent    string `json:"agent"`
	Who      string `json:"who"`
	EscrowID uint32 `json:"escrow_id"`
	Approve  bool   `json:"approve"`
}

type TransferToSavingsOperation struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Asset  `json:"amount"`
	Memo   string `json:"memo"`
}

type TransferFromSavingsOperation struct {
	From      string `json:"from"`
	RequestID uint32 `json:"request_id"`
	To        string `json:"to"`
	Amount    Asset  `json:"amount"`
	Memo      string `json:"memo"`
}

type CancelTransferFromSavingsOperation struct {
	From      string `json:"from"`
	RequestID uint32 `json:"request_id"`
}

type CustomBinaryOperation struct {
	RequiredOwnerAuths   []string        `json:"required_owner_auths"`
	RequiredActiveAuths  []string        `json:"required_active_auths"`
	RequiredPostingAuths []string        `json:"required_posting_auths"`
	RequiredAuths        []*Authority    `json:"required_auths"`
	ID                   string          `json:"id"`
	Data                 common.HexBytes `json:"data"`
}

type DeclineVotingRightsOperation struct {
	Account string `json:"account"`
	Decline bool   `json:"decline"`
}

type ResetAccountOperation struct {
	ResetAccount      string     `json:"reset_account"`
	AccountToReset    string     `json:"account_to_reset"`
	NewOwnerAuthority *Authority `json:"new_owner_authority"`
}

type SetResetAccountOperation struct {
	Account             string `json:"account"`
	CurrentResetAccount string `json:"current_reset_account"`
	ResetAccount        string `json:"reset_account"`
}

type ClaimRewardBalanceOperation struct {
	Account     string `json:"account"`
	RewardSteem Asset  `json:"reward_steem"`
	RewardSBD   Asset  `json:"reward_sbd"`
	RewardVests Asset  `json:"reward_vests"`
}

type DelegateVestingSharesOperation struct {
	Delegator     string `json:"delegator"`
	Delegatee     string `json:"delegatee"`
	VestingShares Asset  `json:"vesting_shares"`
}

type AccountCreateWithDelegationOperation struct {
	Fee            Asset             `json:"fee"`
	Delegation     Asset             `json:"delegation"`
	Creator        string            `json:"creator"`
	NewAccountName string            `json:"new_account_name"`
	Owner          *Authority        `json:"owner"`
	Active         *Authority        `json:"active"`
	Posting        *Authority        `json:"posting"`
	MemoKey        *crypto.PublicKey `json:"memo_key"`
	JSONMetadata   string            `json:"json_metadata"`
	Extensions     FutureExtensions  `json:"extensions"`
}

// WitnessSetPropertiesOperation props must be sorted by key, see WitnessProps
type WitnessSetPropertiesOperation struct {
	Owner      string           `json:"owner"`
	Props      []WitnessProp    `json:"props"`
	Extensions FutureExtensions `json:"extensions"`
}

type AccountUpdate2Operation struct {
	Account             string            `json:"account"`
	Owner               *Authority        `json:"owner,omitempty"`
	Active              *Authority        `json:"active,omitempty"`
	Posting             *Authority        `json:"posting,omitempty"`
	MemoKey             *crypto.PublicKey `json:"memo_key,omitempty"`
	JSONMetadata        string            `json:"json_metadata"`
	PostingJSONMetadata string            `json:"posting_json_metadata"`
	Extensions          FutureExtensions  `json:"extensions"`
}

type CreateProposalOperation struct {
	Creator    string           `json:"creator"`
	Receiver   string           `json:"receiver"`
	StartDate  Time             `json:"start_date"`
	EndDate    Time             `json:"end_date"`
	DailyPay   Asset            `json:"daily_pay"`
	Subject    string           `json:"subject"`
	Permlink   string           `json:"permlink"`
	Extensions FutureExtensions `json:"extensions"`
}

type UpdateProposalVotesOperation struct {
	Voter       string           `json:"voter"`
	ProposalIDs []int64          `json:"proposal_ids"`
	Approve     bool             `json:"approve"`
	Extensions  FutureExtensions `json:"extensions"`
}

type RemoveProposalOperation struct {
	ProposalOwner string           `json:"proposal_owner"`
	ProposalIDs   []int64          `json:"proposal_ids"`
	Extensions    FutureExtensions `json:"extensions"`
}

func (*VoteOperation) Type() OpType                        { return VoteOpType }
func (*CommentOperation) Type() OpType                     { return CommentOpType }
func (*TransferOperation) Type() OpType                    { return TransferOpType }
func (*TransferToVestingOperation) Type() OpType           { return TransferToVestingOpType }
func (*WithdrawVestingOperation) Type() OpType             { return WithdrawVestingOpType }
func (*LimitOrderCreateOperation) Type() OpType            { return LimitOrderCreateOpType }
func (*LimitOrderCancelOperation) Type() OpType            { return LimitOrderCancelOpType }
func (*FeedPublishOperation) Type() OpType                 { return FeedPublishOpType }
func (*ConvertOperation) Type() OpType                     { return ConvertOpType }
func (*AccountCreateOperation) Type() OpType               { return AccountCreateOpType }
func (*AccountUpdateOperation) Type() OpType               { return AccountUpdateOpType }
func (*WitnessUpdateOperation) Type() OpType               { return WitnessUpdateOpType }
func (*AccountWitnessVoteOperation) Type() OpType          { return AccountWitnessVoteOpType }
func (*AccountWitnessProxyOperation) Type() OpType         { return AccountWitnessProxyOpType }
func (*CustomOperation) Type() OpType                      { return CustomOpType }
func (*DeleteCommentOperation) Type() OpType               { return DeleteCommentOpType }
func (*CustomJSONOperation) Type() OpType                  { return CustomJSONOpType }
func (*CommentOptionsOperation) Type() OpType              { return CommentOptionsOpType }
func (*SetWithdrawVestingRouteOperation) Type() OpType     { return SetWithdrawVestingRouteOpType }
func (*LimitOrderCreate2Operation) Type() OpType           { return LimitOrderCreate2OpType }
func (*ClaimAccountOperation) Type() OpType                { return ClaimAccountOpType }
func (*CreateClaimedAccountOperation) Type() OpType        { return CreateClaimedAccountOpType }
func (*RequestAccountRecoveryOperation) Type() OpType      { return RequestAccountRecoveryOpType }
func (*RecoverAccountOperation) Type() OpType              { return RecoverAccountOpType }
func (*ChangeRecoveryAccountOperation) Type() OpType       { return ChangeRecoveryAccountOpType }
func (*EscrowTransferOperation) Type() OpType              { return EscrowTransferOpType }
func (*EscrowDisputeOperation) Type() OpType               { return EscrowDisputeOpType }
func (*EscrowReleaseOperation) Type() OpType               { return EscrowReleaseOpType }
func (*EscrowApproveOperation) Type() OpType               { return EscrowApproveOpType }
func (*TransferToSavingsOperation) Type() OpType           { return TransferToSavingsOpType }
func (*TransferFromSavingsOperation) Type() OpType         { return TransferFromSavingsOpType }
func (*CancelTransferFromSavingsOperation) Type() OpType   { return CancelTransferFromSavingsOpType }
func (*CustomBinaryOperation) Type() OpType                { return CustomBinaryOpType }
func (*DeclineVotingRightsOperation) Type() OpType         { return DeclineVotingRightsOpType }
func (*ResetAccountOperation) Type() OpType                { return ResetAccountOpType }
func (*SetResetAccountOperation) Type() OpType             { return SetResetAccountOpType }
func (*ClaimRewardBalanceOperation) Type() OpType          { return ClaimRewardBalanceOpType }
func (*DelegateVestingSharesOperation) Type() OpType       { return DelegateVestingSharesOpType }
func (*AccountCreateWithDelegationOperation) Type() OpType { return AccountCreateWithDelegationOpType }
func (*WitnessSetPropertiesOperation) Type() OpType        { return WitnessSetPropertiesOpType }
func (*AccountUpdate2Operation) Type() OpType              { return AccountUpdate2OpType }
func (*CreateProposalOperation) Type() OpType              { return CreateProposalOpType }
func (*UpdateProposalVotesOperation) Type() OpType         { return UpdateProposalVotesOpType }
func (*RemoveProposalOperation) Type() OpType              { return RemoveProposalOpType }
