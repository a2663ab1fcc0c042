package protocol

import (
	"encoding/json"
	"log"
)

// ========================= Variant: tagged envelope ==========================
// The alternative mod server wraps everything in a {messageType, payload}
// envelope, one object per frame. REPLAY asks for battles already fought this
// session; SUBSCRIBE registers for live pushes.

type envelope struct {
	MessageType string          `json:"messageType"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

type resultPayload struct {
	Result *BattleResult `json:"result"`
}

type envelopeDecoder struct{}

func (d *envelopeDecoder) Handshake() [][]byte {
	empty := json.RawMessage(`{}`)
	replay, _ := json.Marshal(envelope{MessageType: "REPLAY", Payload: empty})
	subscribe, _ := json.Marshal(envelope{MessageType: "SUBSCRIBE", Payload: empty})
	return [][]byte{replay, subscribe}
}

func (d *envelopeDecoder) Decode(frame []byte) ([]BattleResult, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, err
	}
	switch env.MessageType {
	case "BATTLE_RESULT":
		if len(env.Payload) == 0 {
			return nil, nil
		}
		var body resultPayload
		if err := json.Unmarshal(env.Payload, &body); err != nil {
			return nil, err
		}
		if body.Result == nil {
			return nil, nil
		}
		return []BattleResult{*body.Result}, nil
	case "ERROR":
		log.Printf("decode: server error: %s", env.Payload)
	}
	return nil, nil
}
