// internal/agent/player.go
//
// The Player abstraction used by the benchmark harness. A player sees the
// same observable snapshot a UI would and proposes words to submit; the
// harness turns each proposal into SUBMIT_WORD events and reads the score
// deltas back off the machine.

package agent

import "context"

// View is the subset of the game snapshot shown to a player.
type View struct {
	Letters    string   `json:"letters"`
	Center     string   `json:"center"`
	FoundWords []string `json:"foundWords"`
	Score      int      `json:"score"`
}

// Turn is one round of proposals plus the cost of producing it.
// TokensUsed is zero for players that don't consume tokens.
type Turn struct {
	Words      []string
	TokensUsed int
}

// Player proposes words for the current puzzle. Returning an empty Turn
// signals the player has nothing further to suggest.
type Player interface {
	Propose(ctx context.Context, v View) (Turn, error)
}
