package session

import (
	"math"
	"sync"

	"github.com/pefman/wot-session-overlay/internal/protocol"
)

// Session holds the win/loss tally for the current play session (in-memory,
// gone on restart). The upstream reader goroutine writes while overlay HTTP
// handlers read, so access goes through the mutex.
type Session struct {
	mu           sync.Mutex
	victories    int
	defeats      int
	disconnected bool
}

func New() *Session {
	return &Session{}
}

// Record tallies one battle result. Battles outside the counted kinds leave
// the counters untouched; an in-scope battle bumps exactly one counter.
func (s *Session) Record(r protocol.BattleResult) {
	if !protocol.IsRandomBattle(r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if protocol.IsVictory(r) {
		s.victories++
	} else {
		s.defeats++
	}
}

// MarkDisconnected flips the session into its terminal disconnected state.
// There is no way back; the overlay stays disconnected until restart.
func (s *Session) MarkDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnected = true
}

// Snapshot returns a consistent copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Victories:    s.victories,
		Defeats:      s.defeats,
		Disconnected: s.disconnected,
	}
}

type Snapshot struct {
	Victories    int  `json:"victories"`
	Defeats      int  `json:"defeats"`
	Disconnected bool `json:"disconnected"`
}

func (sn Snapshot) Battles() int {
	return sn.Victories + sn.Defeats
}

// WinRate is victories over counted battles, NaN before the first battle.
func (sn Snapshot) WinRate() float64 {
	total := sn.Battles()
	if total == 0 {
		return math.NaN()
	}
	return float64(sn.Victories) / float64(total)
}
