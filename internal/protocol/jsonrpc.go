package protocol

import (
	"bytes"
	"encoding/json"
	"log"
)

// ========================= Variant: batched JSON-RPC =========================
// The mod server speaks JSON-RPC 2.0 with batching: every inbound frame is
// either an array of response objects or a single object (a one-element
// batch). Subscription pushes arrive as notifications; the reply to the
// initial get_battle_results request (id 1) carries the history of battles
// already fought this session.

const historyRequestID = 1

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	Method string          `json:"method,omitempty"`
	Params *rpcParams      `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
	ID     int             `json:"id,omitempty"`
}

type rpcParams struct {
	BattleResult *BattleResult `json:"battleResult"`
}

type rpcHistory struct {
	BattleResults []BattleResult `json:"battleResults"`
}

type jsonrpcDecoder struct{}

func (d *jsonrpcDecoder) Handshake() [][]byte {
	batch, _ := json.Marshal([]rpcRequest{
		{JSONRPC: "2.0", Method: "get_battle_results", ID: historyRequestID},
		{JSONRPC: "2.0", Method: "subscribe", ID: 2},
	})
	return [][]byte{batch}
}

func (d *jsonrpcDecoder) Decode(frame []byte) ([]BattleResult, error) {
	var batch []json.RawMessage
	if isBatch(frame) {
		if err := json.Unmarshal(frame, &batch); err != nil {
			return nil, err
		}
	} else {
		var single json.RawMessage
		if err := json.Unmarshal(frame, &single); err != nil {
			return nil, err
		}
		batch = []json.RawMessage{single}
	}
	var out []BattleResult
	for _, raw := range batch {
		var resp rpcResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, err
		}
		switch {
		case resp.Method == "subscription":
			if resp.Params != nil && resp.Params.BattleResult != nil {
				out = append(out, *resp.Params.BattleResult)
			}
		case present(resp.Result) && resp.ID == historyRequestID:
			var hist rpcHistory
			if err := json.Unmarshal(resp.Result, &hist); err != nil {
				return nil, err
			}
			out = append(out, hist.BattleResults...)
		case present(resp.Error):
			log.Printf("decode: server error: %s", resp.Error)
		}
	}
	return out, nil
}

// isBatch reports whether the frame is a JSON array.
func isBatch(frame []byte) bool {
	trimmed := bytes.TrimLeft(frame, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
