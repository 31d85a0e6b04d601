package client

import (
	"encoding/json"
	"errors"
)

const noticeMethod = "notice"

var (
	errMissingID     = errors.New("message without id")
	errInvalidNotice = errors.New("notice params want [id, [payload]]")
)

type jsonRequest struct {
	ID     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

// jsonMessage is a response {id, result|error} or a notice {method, params}
type jsonMessage struct {
	ID     *uint64         `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *jsonError      `json:"error,omitempty"`
}

func encodeCall(id uint64, api, method string, params interface{}) ([]byte, error) {
	if params == nil {
		params = []interface{}{}
	}
	return json.Marshal(&jsonRequest{
		ID:     id,
		Method: "call",
		Params: []interface{}{api, method, params},
	})
}

// firstResult unwraps a notification result [payload]
func firstResult(raw json.RawMessage) json.RawMessage {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return raw
	}
	return list[0]
}

func decodeNotice(params json.RawMessage) (id uint64, payload json.RawMessage, err error) {
	var pair []json.RawMessage
	if err = json.Unmarshal(params, &pair); err != nil {
		return 0, nil, err
	}
	if len(pair) != 2 {
		return 0, nil, errInvalidNotice
	}
	if err = json.Unmarshal(pair[0], &id); err != nil {
		return 0, nil, err
	}
	return id, firstResult(pair[1]), nil
}
