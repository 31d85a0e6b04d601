package steem

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/anyswap/steem-client/params"
)

type handler func(params interface{}) (interface{}, error)

// fakeTransport answers calls from handlers through a json round trip
type fakeTransport struct {
	mu       sync.Mutex
	handlers map[string]handler
	calls    []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{handlers: make(map[string]handler)}
}

func (f *fakeTransport) handle(method string, h handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method] = h
}

func (f *fakeTransport) dispatch(api, method string, params, result interface{}) error {
	f.mu.Lock()
	h := f.handlers[api+"."+method]
	f.calls = append(f.calls, api+"."+method)
	f.mu.Unlock()
	if h == nil {
		return fmt.Errorf("unexpected call %v.%v", api, method)
	}
	res, err := h(params)
	if err != nil {
		return err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, result)
}

func (f *fakeTransport) Call(ctx context.Context, api, method string, params, result interface{}) error {
	return f.dispatch(api, method, params, result)
}

func (f *fakeTransport) Notify(ctx context.Context, api, method string, params []interface{}, result interface{}) error {
	return f.dispatch(api, method, params, result)
}

func (f *fakeTransport) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.calls {
		if call == method {
			count++
		}
	}
	return count
}

func newTestClient(transport Transport) *Client {
	return New(transport, Options{
		ChainID:       params.MainnetChainID(),
		AddressPrefix: "STM",
		ExpireTime:    time.Minute,
		PollInterval:  10 * time.Millisecond,
	})
}

// props returns dynamic global properties with the given irreversible block
func props(irreversible uint32) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"head_block_number": 1234567,
		"head_block_id": "0012d68701020304aabbccddeeff001122334455",
		"time": "2018-03-21T12:00:00",
		"current_witness": "gtg",
		"last_irreversible_block_num": %d,
		"current_supply": "271970447.816 STEEM",
		"current_sbd_supply": "13510063.236 SBD",
		"total_vesting_fund_steem": "193003868.999 STEEM",
		"total_vesting_shares": "393642839434.866178 VESTS"
	}`, irreversible))
}

// propsSequence serves irreversible block numbers in order, repeating the last
func propsSequence(nums ...uint32) handler {
	var mu sync.Mutex
	index := 0
	return func(interface{}) (interface{}, error) {
		mu.Lock()
		defer mu.Unlock()
		num := nums[index]
		if index < len(nums)-1 {
			index++
		}
		return props(num), nil
	}
}

func blockNumParam(params interface{}) uint32 {
	return params.([]interface{})[0].(uint32)
}
