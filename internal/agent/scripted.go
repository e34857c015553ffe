// internal/agent/scripted.go
//
// Deterministic player that replays a fixed word list. Used for offline
// benchmark runs and in tests where the harness needs a predictable agent.

package agent

import "context"

// Scripted proposes a pre-set sequence of turns and then stops.
type Scripted struct {
	turns []Turn
	next  int
}

// NewScripted builds a scripted player where each call to Propose returns
// the next slice of words. tokensPerTurn lets tests simulate a token cost.
func NewScripted(turns [][]string, tokensPerTurn int) *Scripted {
	s := &Scripted{}
	for _, words := range turns {
		s.turns = append(s.turns, Turn{Words: words, TokensUsed: tokensPerTurn})
	}
	return s
}

// Propose returns the next scripted turn, or an empty turn when exhausted.
func (s *Scripted) Propose(_ context.Context, _ View) (Turn, error) {
	if s.next >= len(s.turns) {
		return Turn{}, nil
	}
	t := s.turns[s.next]
	s.next++
	return t, nil
}
