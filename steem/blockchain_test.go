package steem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anyswap/steem-client/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectNums(t *testing.T, nums <-chan uint32, errc <-chan error) []uint32 {
	t.Helper()
	var result []uint32
	timeout := time.After(5 * time.Second)
	for {
		select {
		case num, ok := <-nums:
			if !ok {
				require.NoError(t, <-errc)
				return result
			}
			result = append(result, num)
		case <-timeout:
			t.Fatalf("stream not finished, got %v", result)
		}
	}
}

func TestParseBlockMode(t *testing.T) {
	mode, err := ParseBlockMode("latest")
	require.NoError(t, err)
	assert.Equal(t, Latest, mode)
	mode, err = ParseBlockMode("")
	require.NoError(t, err)
	assert.Equal(t, Irreversible, mode)
	assert.Equal(t, "irreversible", mode.String())
	_, err = ParseBlockMode("head")
	assert.Error(t, err)
}

func TestGetCurrentBlockNum(t *testing.T) {
	transport := newFakeTransport()
	transport.handle("condenser_api.get_dynamic_global_properties", propsSequence(1234500))
	chain := newTestClient(transport).Blockchain()

	num, err := chain.GetCurrentBlockNum(context.Background(), Irreversible)
	require.NoError(t, err)
	assert.Equal(t, uint32(1234500), num)
	num, err = chain.GetCurrentBlockNum(context.Background(), Latest)
	require.NoError(t, err)
	assert.Equal(t, uint32(1234567), num)
}

func TestGetBlockNumbersRange(t *testing.T) {
	transport := newFakeTransport()
	transport.handle("condenser_api.get_dynamic_global_properties", propsSequence(10))
	chain := newTestClient(transport).Blockchain()

	nums, errc := chain.GetBlockNumbers(context.Background(), StreamOptions{From: 5, To: 8})
	assert.Equal(t, []uint32{5, 6, 7, 8}, collectNums(t, nums, errc))
}

func TestGetBlockNumbersWaitsForHead(t *testing.T) {
	transport := newFakeTransport()
	transport.handle("condenser_api.get_dynamic_global_properties", propsSequence(3, 3, 5))
	chain := newTestClient(transport).Blockchain()

	nums, errc := chain.GetBlockNumbers(context.Background(), StreamOptions{To: 5})
	assert.Equal(t, []uint32{3, 4, 5}, collectNums(t, nums, errc))
	assert.Equal(t, 3, transport.callCount("condenser_api.get_dynamic_global_properties"))
}

func TestGetBlockNumbersInvalidRange(t *testing.T) {
	transport := newFakeTransport()
	transport.handle("condenser_api.get_dynamic_global_properties", propsSequence(10))
	chain := newTestClient(transport).Blockchain()

	for _, opts := range []StreamOptions{{From: 11}, {From: 8, To: 5}} {
		nums, errc := chain.GetBlockNumbers(context.Background(), opts)
		for range nums {
			t.Fatal("unexpected block number")
		}
		assert.True(t, errors.Is(<-errc, ErrInvalidBlockRange), "%+v", opts)
	}
}

func TestGetBlockNumbersCancel(t *testing.T) {
	transport := newFakeTransport()
	transport.handle("condenser_api.get_dynamic_global_properties", propsSequence(10))
	chain := newTestClient(transport).Blockchain()

	ctx, cancel := context.WithCancel(context.Background())
	nums, errc := chain.GetBlockNumbers(ctx, StreamOptions{From: 9})
	assert.Equal(t, uint32(9), <-nums)
	assert.Equal(t, uint32(10), <-nums)
	cancel()
	for range nums {
	}
	assert.NoError(t, <-errc)
}

func TestGetBlocksCheckpoint(t *testing.T) {
	transport := newFakeTransport()
	transport.handle("condenser_api.get_dynamic_global_properties", propsSequence(10))
	transport.handle("condenser_api.get_block", func(params interface{}) (interface{}, error) {
		num := blockNumParam(params)
		return map[string]interface{}{
			"previous":  fmt.Sprintf("%08x", num-1),
			"timestamp": "2018-03-21T12:00:00",
			"witness":   "gtg",
			"block_id":  fmt.Sprintf("%08x", num),
		}, nil
	})
	chain := newTestClient(transport).Blockchain()

	checkpoint := NewMemoryCheckpoint()
	require.NoError(t, checkpoint.Save("blocks", 6))

	blocks, errc := chain.GetBlocks(context.Background(), StreamOptions{To: 8, Checkpoint: checkpoint, Name: "blocks"})
	var ids []string
	for block := range blocks {
		ids = append(ids, block.BlockID)
	}
	require.NoError(t, <-errc)
	assert.Equal(t, []string{"00000007", "00000008"}, ids)

	saved, exist, err := checkpoint.Load("blocks")
	require.NoError(t, err)
	assert.True(t, exist)
	assert.Equal(t, uint32(8), saved)

	// finished range resumes to nothing
	blocks, errc = chain.GetBlocks(context.Background(), StreamOptions{To: 8, Checkpoint: checkpoint, Name: "blocks"})
	for range blocks {
		t.Fatal("unexpected block")
	}
	require.NoError(t, <-errc)
}

func TestGetBlocksNotFound(t *testing.T) {
	transport := newFakeTransport()
	transport.handle("condenser_api.get_dynamic_global_properties", propsSequence(10))
	transport.handle("condenser_api.get_block", func(interface{}) (interface{}, error) {
		return nil, nil
	})
	chain := newTestClient(transport).Blockchain()

	blocks, errc := chain.GetBlocks(context.Background(), StreamOptions{From: 10})
	for range blocks {
		t.Fatal("unexpected block")
	}
	assert.True(t, errors.Is(<-errc, ErrBlockNotFound))
}

func TestGetOperations(t *testing.T) {
	transport := newFakeTransport()
	transport.handle("condenser_api.get_dynamic_global_properties", propsSequence(10))
	transport.handle("condenser_api.get_ops_in_block", func(params interface{}) (interface{}, error) {
		args := params.([]interface{})
		num := args[0].(uint32)
		if args[1].(bool) {
			return nil, errors.New("want all operations")
		}
		return json.RawMessage(fmt.Sprintf(`[
			{"trx_id": "aa", "block": %[1]d, "trx_in_block": 0, "op_in_trx": 0, "virtual_op": 0,
			 "timestamp": "2018-03-21T12:00:00", "op": ["vote", {"voter": "foo", "author": "bar", "permlink": "baz", "weight": 100}]},
			{"trx_id": "0000000000000000000000000000000000000000", "block": %[1]d, "trx_in_block": 4294967295,
			 "op_in_trx": 0, "virtual_op": 1, "timestamp": "2018-03-21T12:00:00",
			 "op": ["producer_reward", {"producer": "gtg", "vesting_shares": "1.000000 VESTS"}]}
		]`, num)), nil
	})
	chain := newTestClient(transport).Blockchain()

	ops, errc := chain.GetOperations(context.Background(), StreamOptions{From: 9, To: 10})
	var got []*types.AppliedOperation
	for op := range ops {
		got = append(got, op)
	}
	require.NoError(t, <-errc)
	require.Len(t, got, 4)
	assert.Equal(t, uint32(9), got[0].Block)
	assert.Equal(t, "vote", got[0].Op.Name())
	assert.Equal(t, "producer_reward", got[1].Op.Name())
	_, unknown := got[1].Op.Data.(*types.UnknownOperation)
	assert.True(t, unknown)
	assert.Equal(t, uint32(10), got[3].Block)
}
