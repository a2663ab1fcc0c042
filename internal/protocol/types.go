package protocol

// ========================= Battle Result Model =========================
// Minimal shape of the record the game mod reports after every battle.
// The wire record carries far more than this; we only map the fields the
// overlay needs and let encoding/json drop the rest. Optional fields are
// pointers so "absent" stays distinguishable from a zero team id.

// Bonus type codes for the two battle kinds the overlay counts.
const (
	BonusTypeRandom = 1
	BonusTypeGrand  = 24
)

type BattleResult struct {
	Common   Common   `json:"common"`
	Personal Personal `json:"personal"`
}

type Common struct {
	BonusType  *int `json:"bonusType,omitempty"`
	WinnerTeam *int `json:"winnerTeam,omitempty"`
}

type Personal struct {
	Avatar Avatar `json:"avatar"`
}

type Avatar struct {
	Team *int `json:"team,omitempty"`
}

// IsRandomBattle reports whether the result belongs to a counted battle kind
// (random or grand battle). A missing bonusType is out of scope, not an error.
func IsRandomBattle(r BattleResult) bool {
	bt := r.Common.BonusType
	if bt == nil {
		return false
	}
	return *bt == BonusTypeRandom || *bt == BonusTypeGrand
}

// IsVictory reports whether the player's team won the battle. A battle with
// either team id missing is never a victory; two absent teams do not count
// as equal.
func IsVictory(r BattleResult) bool {
	own := r.Personal.Avatar.Team
	winner := r.Common.WinnerTeam
	if own == nil || winner == nil {
		return false
	}
	return *own == *winner
}
