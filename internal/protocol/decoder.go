package protocol

import "fmt"

// ========================= Decoder =========================
// Two mod servers exist in the wild speaking different framings over the same
// socket: a batched JSON-RPC dialect and a tagged messageType envelope. A
// deployment uses exactly one, picked at startup, so the variant is a
// construction-time choice rather than a runtime branch.

// Decoder turns inbound websocket frames into battle results.
type Decoder interface {
	// Handshake returns the frames to send once, in order, right after the
	// connection opens. This is the only outbound traffic the overlay ever
	// produces.
	Handshake() [][]byte
	// Decode extracts zero or more battle results from one inbound frame,
	// preserving arrival order. It returns an error only for malformed JSON;
	// well-formed frames of unexpected shape decode to nothing.
	Decode(frame []byte) ([]BattleResult, error)
}

// Variant names accepted by NewDecoder (and the BATTLE_PROTOCOL env var).
const (
	VariantJSONRPC  = "jsonrpc"
	VariantEnvelope = "envelope"
)

func NewDecoder(variant string) (Decoder, error) {
	switch variant {
	case VariantJSONRPC:
		return &jsonrpcDecoder{}, nil
	case VariantEnvelope:
		return &envelopeDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown protocol variant %q", variant)
	}
}
