package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pefman/wot-session-overlay/internal/protocol"
)

func intp(v int) *int { return &v }

func battle(bonusType, winnerTeam, ownTeam *int) protocol.BattleResult {
	return protocol.BattleResult{
		Common:   protocol.Common{BonusType: bonusType, WinnerTeam: winnerTeam},
		Personal: protocol.Personal{Avatar: protocol.Avatar{Team: ownTeam}},
	}
}

func TestRecordVictory(t *testing.T) {
	s := New()
	s.Record(battle(intp(protocol.BonusTypeRandom), intp(1), intp(1)))
	sn := s.Snapshot()
	assert.Equal(t, 1, sn.Victories)
	assert.Equal(t, 0, sn.Defeats)
}

func TestRecordDefeat(t *testing.T) {
	s := New()
	s.Record(battle(intp(protocol.BonusTypeGrand), intp(2), intp(1)))
	sn := s.Snapshot()
	assert.Equal(t, 0, sn.Victories)
	assert.Equal(t, 1, sn.Defeats)
}

func TestRecordMissingTeamCountsAsDefeat(t *testing.T) {
	s := New()
	s.Record(battle(intp(protocol.BonusTypeRandom), nil, nil))
	sn := s.Snapshot()
	assert.Equal(t, 0, sn.Victories)
	assert.Equal(t, 1, sn.Defeats)
}

func TestRecordOutOfScopeIsNoop(t *testing.T) {
	s := New()
	s.Record(battle(intp(5), intp(1), intp(1)))
	s.Record(battle(nil, intp(1), intp(1)))
	sn := s.Snapshot()
	assert.Equal(t, 0, sn.Victories)
	assert.Equal(t, 0, sn.Defeats)
}

func TestWinRate(t *testing.T) {
	s := New()
	assert.True(t, math.IsNaN(s.Snapshot().WinRate()), "no battles yet")

	s.Record(battle(intp(protocol.BonusTypeRandom), intp(1), intp(1)))
	s.Record(battle(intp(protocol.BonusTypeRandom), intp(2), intp(1)))
	s.Record(battle(intp(protocol.BonusTypeGrand), intp(1), intp(1)))
	sn := s.Snapshot()
	assert.Equal(t, 3, sn.Battles())
	assert.InDelta(t, 2.0/3.0, sn.WinRate(), 1e-9)
}

func TestMarkDisconnectedIsPermanent(t *testing.T) {
	s := New()
	assert.False(t, s.Snapshot().Disconnected)
	s.MarkDisconnected()
	assert.True(t, s.Snapshot().Disconnected)

	// Counters still work after the connection is gone (history already
	// queued in the decoder could land late); the flag never clears.
	s.Record(battle(intp(protocol.BonusTypeRandom), intp(1), intp(1)))
	sn := s.Snapshot()
	assert.True(t, sn.Disconnected)
	assert.Equal(t, 1, sn.Victories)
}
