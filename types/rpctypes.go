package types

import (
	"encoding/json"

	"github.com/anyswap/steem-client/crypto"
)

// DynamicGlobalProperties subset of condenser_api.get_dynamic_global_properties
type DynamicGlobalProperties struct {
	HeadBlockNumber          uint32 `json:"head_block_number"`
	HeadBlockID              string `json:"head_block_id"`
	Time                     Time   `json:"time"`
	CurrentWitness           string `json:"current_witness"`
	LastIrreversibleBlockNum uint32 `json:"last_irreversible_block_num"`
	CurrentSupply            Asset  `json:"current_supply"`
	CurrentSBDSupply         Asset  `json:"current_sbd_supply"`
	TotalVestingFundSteem    Asset  `json:"total_vesting_fund_steem"`
	TotalVestingShares       Asset  `json:"total_vesting_shares"`
}

// BlockHeader block header
type BlockHeader struct {
	Previous              string            `json:"previous"`
	Timestamp             Time              `json:"timestamp"`
	Witness               string            `json:"witness"`
	TransactionMerkleRoot string            `json:"transaction_merkle_root"`
	Extensions            []json.RawMessage `json:"extensions"`
}

// SignedBlock full block of condenser_api.get_block
type SignedBlock struct {
	BlockHeader
	WitnessSignature string              `json:"witness_signature"`
	Transactions     []SignedTransaction `json:"transactions"`
	BlockID          string              `json:"block_id"`
	SigningKey       string              `json:"signing_key"`
	TransactionIDs   []string            `json:"transaction_ids"`
}

// AppliedOperation operation with its position in chain
type AppliedOperation struct {
	TrxID      string    `json:"trx_id"`
	Block      uint32    `json:"block"`
	TrxInBlock uint32    `json:"trx_in_block"`
	OpInTrx    uint32    `json:"op_in_trx"`
	VirtualOp  uint32    `json:"virtual_op"`
	Timestamp  Time      `json:"timestamp"`
	Op         Operation `json:"op"`
}

// ChainConfig subset of condenser_api.get_config
type ChainConfig struct {
	ChainID       string `json:"STEEM_CHAIN_ID"`
	AddressPrefix string `json:"STEEM_ADDRESS_PREFIX"`
	BlockInterval uint32 `json:"STEEM_BLOCK_INTERVAL"`
}

// Account subset of condenser_api.get_accounts
type Account struct {
	ID                uint64            `json:"id"`
	Name              string            `json:"name"`
	Owner             *Authority        `json:"owner"`
	Active            *Authority        `json:"active"`
	Posting           *Authority        `json:"posting"`
	MemoKey           *crypto.PublicKey `json:"memo_key"`
	JSONMetadata      string            `json:"json_metadata"`
	Balance           Asset             `json:"balance"`
	SavingsBalance    Asset             `json:"savings_balance"`
	SBDBalance        Asset             `json:"sbd_balance"`
	VestingShares     Asset             `json:"vesting_shares"`
	DelegatedVesting  Asset             `json:"delegated_vesting_shares"`
	ReceivedVesting   Asset             `json:"received_vesting_shares"`
	RecoveryAccount   string            `json:"recovery_account"`
	LastAccountUpdate Time              `json:"last_account_update"`
}
