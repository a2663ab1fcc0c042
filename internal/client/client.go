package client

import (
	"log"

	"github.com/gorilla/websocket"

	"github.com/pefman/wot-session-overlay/internal/protocol"
	"github.com/pefman/wot-session-overlay/internal/session"
)

// ========================= Upstream connection =========================
// The overlay is a websocket client of the in-game mod server. One dial, one
// handshake, then a read loop until the connection dies. There is no
// reconnection: the mod server lives on the same machine and only goes away
// when the game exits, at which point the session is over anyway.

// Client owns the single upstream connection.
type Client struct {
	url      string
	dec      protocol.Decoder
	sess     *session.Session
	onChange func()
}

// New wires a client. onChange fires after every session mutation, including
// the final transition to disconnected, so the caller can re-render.
func New(url string, dec protocol.Decoder, sess *session.Session, onChange func()) *Client {
	return &Client{url: url, dec: dec, sess: sess, onChange: onChange}
}

// Run dials, performs the handshake and consumes frames until the connection
// drops. A dial failure, clean close and transport error all end the same
// way: the session is marked disconnected for good and Run returns.
func (c *Client) Run() {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		log.Printf("ws: dial %s: %v", c.url, err)
		c.disconnect()
		return
	}
	defer conn.Close()
	log.Printf("ws: connected to %s", c.url)

	for _, frame := range c.dec.Handshake() {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Printf("ws: handshake write: %v", err)
			c.disconnect()
			return
		}
	}

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			log.Printf("ws: read: %v", err)
			c.disconnect()
			return
		}
		results, err := c.dec.Decode(frame)
		if err != nil {
			// One malformed frame must not take the overlay down; drop it
			// and keep listening.
			log.Printf("ws: dropping malformed frame: %v", err)
			continue
		}
		for _, r := range results {
			c.sess.Record(r)
		}
		if len(results) > 0 {
			c.onChange()
		}
	}
}

func (c *Client) disconnect() {
	c.sess.MarkDisconnected()
	c.onChange()
}
