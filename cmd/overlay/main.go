package main

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/pefman/wot-session-overlay/internal/client"
	"github.com/pefman/wot-session-overlay/internal/hub"
	"github.com/pefman/wot-session-overlay/internal/protocol"
	"github.com/pefman/wot-session-overlay/internal/render"
	"github.com/pefman/wot-session-overlay/internal/session"
)

// ========================= Config (env-configurable) =========================
// Defaults can be overridden via environment variables:
//   BATTLE_WS_URL    (default: ws://localhost:15455)
//   BATTLE_PROTOCOL  (jsonrpc | envelope, default: jsonrpc)
//   OVERLAY_PORT     (default: 8082)

var (
	overlayListenAddr string
	battleWSURL       string
	battleProtocol    string
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func init() {
	p := os.Getenv("PORT")
	if p == "" {
		p = getenv("OVERLAY_PORT", "8082")
	}
	overlayListenAddr = ":" + p
	battleWSURL = getenv("BATTLE_WS_URL", "ws://localhost:15455")
	battleProtocol = getenv("BATTLE_PROTOCOL", protocol.VariantJSONRPC)
}

// ========================= Overlay state =========================
// One JSON shape serves both the viewer push and /api/stats. WinRate is a
// pointer because it is NaN before the first battle and NaN is not valid
// JSON; the page shows "n/a" for null.

type overlayState struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Favicon      string   `json:"favicon"`
	WinRate      *float64 `json:"winRate,omitempty"`
	Victories    int      `json:"victories"`
	Defeats      int      `json:"defeats"`
	Battles      int      `json:"battles"`
	Disconnected bool     `json:"disconnected"`
}

func overlayStateOf(sn session.Snapshot) overlayState {
	st := overlayState{
		Title:        render.Title(sn),
		Content:      render.Content(sn),
		Favicon:      render.FaviconDataURI(sn),
		Victories:    sn.Victories,
		Defeats:      sn.Defeats,
		Battles:      sn.Battles(),
		Disconnected: sn.Disconnected,
	}
	if rate := sn.WinRate(); !math.IsNaN(rate) {
		st.WinRate = &rate
	}
	return st
}

// ========================= Web =========================

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func main() {
	dec, err := protocol.NewDecoder(battleProtocol)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sess := session.New()
	viewers := hub.New()

	push := func() {
		viewers.Broadcast(hub.Msg{Type: "overlay", Data: overlayStateOf(sess.Snapshot())})
	}
	up := client.New(battleWSURL, dec, sess, push)
	go up.Run()

	r := mux.NewRouter()
	r.HandleFunc("/", serveIndex)
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		handleViewerWS(w, req, viewers, sess)
	})
	r.HandleFunc("/favicon.ico", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(render.Favicon(sess.Snapshot()))
	})
	r.HandleFunc("/api/stats", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(overlayStateOf(sess.Snapshot()))
	})
	r.HandleFunc("/api/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "viewers": viewers.Count()})
	})
	r.HandleFunc("/version", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"version": buildVersion,
			"time":    buildTime,
		})
	})

	log.Printf("overlay listening on %s (upstream=%s protocol=%s)", overlayListenAddr, battleWSURL, battleProtocol)
	log.Fatal(http.ListenAndServe(overlayListenAddr, r))
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := strings.ReplaceAll(indexHTML, "{{BUILD_VERSION}}", buildVersion)
	_, _ = w.Write([]byte(html))
}

// handleViewerWS upgrades a browser connection, sends it the current overlay
// state and keeps it registered until the browser goes away. Viewers never
// send anything meaningful; the read loop only exists to notice the close.
func handleViewerWS(w http.ResponseWriter, r *http.Request, viewers *hub.Hub, sess *session.Session) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("viewer ws upgrade: %v", err)
		return
	}
	id := viewers.Add(conn)
	viewers.Send(id, hub.Msg{Type: "overlay", Data: overlayStateOf(sess.Snapshot())})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		viewers.Remove(id)
	}()
}
