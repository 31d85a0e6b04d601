package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// OpType operation discriminant on the wire
type OpType uint16

// OpType values come from steemd "steem_operations.hpp"
const (
	VoteOpType                        OpType = 0
	CommentOpType                     OpType = 1
	TransferOpType                    OpType = 2
	TransferToVestingOpType           OpType = 3
	WithdrawVestingOpType             OpType = 4
	LimitOrderCreateOpType            OpType = 5
	LimitOrderCancelOpType            OpType = 6
	FeedPublishOpType                 OpType = 7
	ConvertOpType                     OpType = 8
	AccountCreateOpType               OpType = 9
	AccountUpdateOpType               OpType = 10
	WitnessUpdateOpType               OpType = 11
	AccountWitnessVoteOpType          OpType = 12
	AccountWitnessProxyOpType         OpType = 13
	CustomOpType                      OpType = 15
	DeleteCommentOpType               OpType = 17
	CustomJSONOpType                  OpType = 18
	CommentOptionsOpType              OpType = 19
	SetWithdrawVestingRouteOpType     OpType = 20
	LimitOrderCreate2OpType           OpType = 21
	ClaimAccountOpType                OpType = 22
	CreateClaimedAccountOpType        OpType = 23
	RequestAccountRecoveryOpType      OpType = 24
	RecoverAccountOpType              OpType = 25
	ChangeRecoveryAccountOpType       OpType = 26
	EscrowTransferOpType              OpType = 27
	EscrowDisputeOpType               OpType = 28
	EscrowReleaseOpType               OpType = 29
	EscrowApproveOpType               OpType = 31
	TransferToSavingsOpType           OpType = 32
	TransferFromSavingsOpType         OpType = 33
	CancelTransferFromSavingsOpType   OpType = 34
	CustomBinaryOpType                OpType = 35
	DeclineVotingRightsOpType         OpType = 36
	ResetAccountOpType                OpType = 37
	SetResetAccountOpType             OpType = 38
	ClaimRewardBalanceOpType          OpType = 39
	DelegateVestingSharesOpType       OpType = 40
	AccountCreateWithDelegationOpType OpType = 41
	WitnessSetPropertiesOpType        OpType = 42
	AccountUpdate2OpType              OpType = 43
	CreateProposalOpType              OpType = 44
	UpdateProposalVotesOpType         OpType = 45
	RemoveProposalOpType              OpType = 46
)

var opTypeNames = [...]string{
	VoteOpType:                        "vote",
	CommentOpType:                     "comment",
	TransferOpType:                    "transfer",
	TransferToVestingOpType:           "transfer_to_vesting",
	WithdrawVestingOpType:             "withdraw_vesting",
	LimitOrderCreateOpType:            "limit_order_create",
	LimitOrderCancelOpType:            "limit_order_cancel",
	FeedPublishOpType:                 "feed_publish",
	ConvertOpType:                     "convert",
	AccountCreateOpType:               "account_create",
	AccountUpdateOpType:               "account_update",
	WitnessUpdateOpType:               "witness_update",
	AccountWitnessVoteOpType:          "account_witness_vote",
	AccountWitnessProxyOpType:         "account_witness_proxy",
	CustomOpType:                      "custom",
	DeleteCommentOpType:               "delete_comment",
	CustomJSONOpType:                  "custom_json",
	CommentOptionsOpType:              "comment_options",
	SetWithdrawVestingRouteOpType:     "set_withdraw_vesting_route",
	LimitOrderCreate2OpType:           "limit_order_create2",
	ClaimAccountOpType:                "claim_account",
	CreateClaimedAccountOpType:        "create_claimed_account",
	RequestAccountRecoveryOpType:      "request_account_recovery",
	RecoverAccountOpType:              "recover_account",
	ChangeRecoveryAccountOpType:       "change_recovery_account",
	EscrowTransferOpType:              "escrow_transfer",
	EscrowDisputeOpType:               "escrow_dispute",
	EscrowReleaseOpType:               "escrow_release",
	EscrowApproveOpType:               "escrow_approve",
	TransferToSavingsOpType:           "transfer_to_savings",
	TransferFromSavingsOpType:         "transfer_from_savings",
	CancelTransferFromSavingsOpType:   "cancel_transfer_from_savings",
	CustomBinaryOpType:                "custom_binary",
	DeclineVotingRightsOpType:         "decline_voting_rights",
	ResetAccountOpType:                "reset_account",
	SetResetAccountOpType:             "set_reset_account",
	ClaimRewardBalanceOpType:          "claim_reward_balance",
	DelegateVestingSharesOpType:       "delegate_vesting_shares",
	AccountCreateWithDelegationOpType: "account_create_with_delegation",
	WitnessSetPropertiesOpType:        "witness_set_properties",
	AccountUpdate2OpType:              "account_update2",
	CreateProposalOpType:              "create_proposal",
	UpdateProposalVotesOpType:         "update_proposal_votes",
	RemoveProposalOpType:              "remove_proposal",
}

var opFactory = [...]func() OperationData{
	VoteOpType:                        func() OperationData { return &VoteOperation{} },
	CommentOpType:                     func() OperationData { return &CommentOperation{} },
	TransferOpType:                    func() OperationData { return &TransferOperation{} },
	TransferToVestingOpType:           func() OperationData { return &TransferToVestingOperation{} },
	WithdrawVestingOpType:             func() OperationData { return &WithdrawVestingOperation{} },
	LimitOrderCreateOpType:            func() OperationData { return &LimitOrderCreateOperation{} },
	LimitOrderCancelOpType:            func() OperationData { return &LimitOrderCancelOperation{} },
	FeedPublishOpType:                 func() OperationData { return &FeedPublishOperation{} },
	ConvertOpType:                     func() OperationData { return &ConvertOperation{} },
	AccountCreateOpType:               func() OperationData { return &AccountCreateOperation{} },
	AccountUpdateOpType:               func() OperationData { return &AccountUpdateOperation{} },
	WitnessUpdateOpType:               func() OperationData { return &WitnessUpdateOperation{} },
	AccountWitnessVoteOpType:          func() OperationData { return &AccountWitnessVoteOperation{} },
	AccountWitnessProxyOpType:         func() OperationData { return &AccountWitnessProxyOperation{} },
	CustomOpType:                      func() OperationData { return &CustomOperation{} },
	DeleteCommentOpType:               func() OperationData { return &DeleteCommentOperation{} },
	CustomJSONOpType:                  func() OperationData { return &CustomJSONOperation{} },
	CommentOptionsOpType:              func() OperationData { return &CommentOptionsOperation{} },
	SetWithdrawVestingRouteOpType:     func() OperationData { return &SetWithdrawVestingRouteOperation{} },
	LimitOrderCreate2OpType:           func() OperationData { return &LimitOrderCreate2Operation{} },
	ClaimAccountOpType:                func() OperationData { return &ClaimAccountOperation{} },
	CreateClaimedAccountOpType:        func() OperationData { return &CreateClaimedAccountOperation{} },
	RequestAccountRecoveryOpType:      func() OperationData { return &RequestAccountRecoveryOperation{} },
	RecoverAccountOpType:              func() OperationData { return &RecoverAccountOperation{} },
	ChangeRecoveryAccountOpType:       func() OperationData { return &ChangeRecoveryAccountOperation{} },
	EscrowTransferOpType:              func() OperationData { return &EscrowTransferOperation{} },
	EscrowDisputeOpType:               func() OperationData { return &EscrowDisputeOperation{} },
	EscrowReleaseOpType:               func() OperationData { return &EscrowReleaseOperation{} },
	EscrowApproveOpType:               func() OperationData { return &EscrowApproveOperation{} },
	TransferToSavingsOpType:           func() OperationData { return &TransferToSavingsOperation{} },
	TransferFromSavingsOpType:         func() OperationData { return &TransferFromSavingsOperation{} },
	CancelTransferFromSavingsOpType:   func() OperationData { return &CancelTransferFromSavingsOperation{} },
	CustomBinaryOpType:                func() OperationData { return &CustomBinaryOperation{} },
	DeclineVotingRightsOpType:         func() OperationData { return &DeclineVotingRightsOperation{} },
	ResetAccountOpType:                func() OperationData { return &ResetAccountOperation{} },
	SetResetAccountOpType:             func() OperationData { return &SetResetAccountOperation{} },
	ClaimRewardBalanceOpType:          func() OperationData { return &ClaimRewardBalanceOperation{} },
	DelegateVestingSharesOpType:       func() OperationData { return &DelegateVestingSharesOperation{} },
	AccountCreateWithDelegationOpType: func() OperationData { return &AccountCreateWithDelegationOperation{} },
	WitnessSetPropertiesOpType:        func() OperationData { return &WitnessSetPropertiesOperation{} },
	AccountUpdate2OpType:              func() OperationData { return &AccountUpdate2Operation{} },
	CreateProposalOpType:              func() OperationData { return &CreateProposalOperation{} },
	UpdateProposalVotesOpType:         func() OperationData { return &UpdateProposalVotesOperation{} },
	RemoveProposalOpType:              func() OperationData { return &RemoveProposalOperation{} },
}

var opTypesByName = func() map[string]OpType {
	m := make(map[string]OpType, len(opTypeNames))
	for i, name := range opTypeNames {
		if name != "" {
			m[name] = OpType(i)
		}
	}
	return m
}()

// String returns operation name
func (t OpType) String() string {
	if int(t) < len(opTypeNames) && opTypeNames[t] != "" {
		return opTypeNames[t]
	}
	return fmt.Sprintf("unknown_operation_%d", uint16(t))
}

// OpTypeFromName returns the discriminant of a known operation name
func OpTypeFromName(name string) (OpType, bool) {
	t, ok := opTypesByName[name]
	return t, ok
}

// OperationData payload of an operation
type OperationData interface {
	Type() OpType
}

// Operation tagged union, json form is [name, payload]
type Operation struct {
	Data OperationData
}

// NewOperation wraps payload
func NewOperation(data OperationData) Operation {
	return Operation{Data: data}
}

// Name returns operation name
func (op Operation) Name() string {
	if unknown, ok := op.Data.(*UnknownOperation); ok {
		return unknown.Name
	}
	if op.Data == nil {
		return ""
	}
	return op.Data.Type().String()
}

// MarshalJSON implements json.Marshaler
func (op Operation) MarshalJSON() ([]byte, error) {
	if op.Data == nil {
		return nil, errors.New("operation without payload")
	}
	var payload interface{} = op.Data
	if unknown, ok := op.Data.(*UnknownOperation); ok {
		payload = unknown.Payload
	}
	return json.Marshal([]interface{}{op.Name(), payload})
}

// UnmarshalJSON decodes [name, payload], unknown names keep the raw payload
func (op *Operation) UnmarshalJSON(input []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(input, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("operation want 2 elements, got %v", len(pair))
	}
	var name string
	if err := json.Unmarshal(pair[0], &name); err != nil {
		return fmt.Errorf("operation name: %w", err)
	}
	opType, ok := OpTypeFromName(name)
	if !ok {
		op.Data = &UnknownOperation{Name: name, Payload: append(json.RawMessage(nil), pair[1]...)}
		return nil
	}
	data := opFactory[opType]()
	if err := json.Unmarshal(pair[1], data); err != nil {
		return fmt.Errorf("operation %v: %w", name, err)
	}
	op.Data = data
	return nil
}

// UnknownOperation keeps an operation this package has no schema for.
// It can be decoded and re-encoded as json but never serialized for signing.
type UnknownOperation struct {
	Name    string
	Payload json.RawMessage
}

// Type returns an out of range discriminant
func (op *UnknownOperation) Type() OpType {
	return OpType(len(opTypeNames))
}
